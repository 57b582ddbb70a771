package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/csheth/patentai/internal/fixtureserver"
	"github.com/csheth/patentai/internal/session"
)

const surgicalIdea = "a surgical light head with distance sensors that dims itself when the surgeon leans close"

func startFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	records, err := fixtureserver.LoadCorpus("")
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	srv := httptest.NewServer(fixtureserver.New(records, fixtureserver.Options{MinScore: fixtureserver.DefaultMinScore}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzePrintsTranscriptAndComparison(t *testing.T) {
	srv := startFixtureServer(t)

	out, err := execute(t, "analyze", "--endpoint", srv.URL, "--idea", surgicalIdea, "--compare")
	if err != nil {
		t.Fatalf("analyze: %v\n%s", err, out)
	}
	for _, want := range []string{
		"You:",
		session.IntroText,
		"Proximity detection for a surgical light",
		"Relevance: ",
		"Comparative Analysis: MOCK-005",
		"EXPERT OPINION",
		"Key Differences (Points of Novelty)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyzeRejectsShortIdea(t *testing.T) {
	_, err := execute(t, "analyze", "--endpoint", "http://127.0.0.1:1", "--idea", "too short")
	if err == nil || !strings.Contains(err.Error(), "at least 10 words") {
		t.Fatalf("expected word count error, got %v", err)
	}
}

func TestAnalyzeReportsSearchFailure(t *testing.T) {
	srv := httptest.NewServer(nil)
	baseURL := srv.URL
	srv.Close()

	out, err := execute(t, "analyze", "--endpoint", baseURL, "--idea", surgicalIdea, "--compare")
	if err == nil {
		t.Fatal("expected an error for an unreachable service")
	}
	if !strings.Contains(out, session.ApologyText) {
		t.Fatalf("apology missing:\n%s", out)
	}
	if strings.Contains(out, "Comparative Analysis") {
		t.Fatal("no comparison should be printed after a failed search")
	}
}

func TestAnalyzeReadsIdeaFile(t *testing.T) {
	srv := startFixtureServer(t)
	path := filepath.Join(t.TempDir(), "idea.txt")
	if err := os.WriteFile(path, []byte(surgicalIdea+"\n"), 0o644); err != nil {
		t.Fatalf("write idea: %v", err)
	}

	out, err := execute(t, "analyze", "--endpoint", srv.URL, "--idea-file", path)
	if err != nil {
		t.Fatalf("analyze: %v\n%s", err, out)
	}
	if !strings.Contains(out, "MOCK-005") {
		t.Fatalf("expected fixture match:\n%s", out)
	}
}

func TestConfigInitWritesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patentai.yaml")

	out, err := execute(t, "config", "init", path)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "wrote "+path) {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := execute(t, "config", "init", path); err == nil {
		t.Fatal("second init should refuse to overwrite")
	}
	if _, err := execute(t, "analyze", "--config", path, "--endpoint", "ftp://nowhere", "--idea", surgicalIdea); err == nil {
		t.Fatal("invalid endpoint override should fail validation")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "patentai ") {
		t.Fatalf("version output = %q", out)
	}
}
