package main

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/csheth/patentai/internal/tuitest"
)

func TestAnalystCompareFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("builds and drives the binary in a pseudo terminal")
	}
	srv := startFixtureServer(t)
	cmdDir := moduleDir(t)
	binary := buildBinary(t, cmdDir)

	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command: []string{binary, "--no-alt-screen", "--endpoint", srv.URL},
		Dir:     cmdDir,
		Env: []string{
			"PATENTAI_UI_ANALYSIS_DELAY=50ms",
			"PATENTAI_UI_TYPEWRITER_INTERVAL=1ms",
			"PATENTAI_LOG_LEVEL=",
		},
		Width:  110,
		Height: 40,
		Steps: []tuitest.Step{
			{WaitFor: "From Idea to Insight. Instantly.", Input: tuitest.Text(surgicalIdea)},
			{WaitFor: "enter to analyze", Input: tuitest.KeyEnter},
			{WaitFor: "Relevance:", Delay: 200 * time.Millisecond, Input: tuitest.KeyTab},
			{Delay: 100 * time.Millisecond, Input: tuitest.KeyEnter},
			{WaitFor: "EXPERT OPINION", Delay: 100 * time.Millisecond, Input: tuitest.KeyCtrlO},
			{WaitFor: "About PatentAI Analyst", Delay: 100 * time.Millisecond, Input: tuitest.KeyCtrlC},
		},
		Timeout: 20 * time.Second,
	})
	if err != nil {
		t.Fatalf("run CLI: %v", err)
	}

	if _, ok := rec.LastFrameContaining("EXPERT OPINION"); !ok {
		t.Fatalf("comparison never rendered; captured %d frames", len(rec.Frames))
	}
	screen := rec.PlainText()
	for _, want := range []string{"Comparative Analysis", "MOCK-005", "/ 10", "Key Similarities Found"} {
		if !strings.Contains(screen, want) {
			t.Fatalf("screen missing %q:\n%s", want, screen)
		}
	}
	if _, ok := rec.LastFrameContaining("How it Works"); !ok {
		t.Fatal("about overlay never rendered")
	}
}

func moduleDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	return filepath.Dir(file)
}

func buildBinary(t *testing.T, cmdDir string) string {
	t.Helper()
	name := "patentai-integration"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), name)
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = cmdDir
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build CLI: %v\n%s", err, output)
	}
	return binPath
}
