package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestFindSimilarPostsIdeaText(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != FindSimilarPath {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.Header.Get(requestIDHeader) == "" {
			t.Error("request id header missing")
		}
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload["idea_text"] != "a smart mug" {
			t.Errorf("idea_text = %q", payload["idea_text"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"matched_patents":[
			{"publication_number":"US-1","title":"Mug","abstract":"Keeps coffee warm.","score":0.9},
			{"publication_number":"US-2","title":"Cup","abstract":"Holds tea.","score":0.3}
		]}`))
	})

	got, err := client.FindSimilar(context.Background(), "a smart mug")
	if err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 patents, got %d", len(got))
	}
	if got[0].PublicationNumber != "US-1" || got[0].Score != 0.9 {
		t.Fatalf("unexpected first patent: %+v", got[0])
	}
	if got[1].Title != "Cup" || got[1].Abstract != "Holds tea." {
		t.Fatalf("unexpected second patent: %+v", got[1])
	}
}

func TestFindSimilarEmptyList(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"matched_patents":[]}` + "\n"))
	})
	got, err := client.FindSimilar(context.Background(), "idea")
	if err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestFindSimilarCollapsesFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"matched_patents":[`))
		}},
		{"empty object", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}},
		{"null list", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"matched_patents":null}`))
		}},
		{"wrong key", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":[]}`))
		}},
		{"trailing data", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"matched_patents":[]} trailing`))
		}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := newTestClient(t, tt.handler)
			_, err := client.FindSimilar(context.Background(), "idea")
			if !errors.Is(err, ErrSearchFailed) {
				t.Fatalf("expected ErrSearchFailed, got %v", err)
			}
		})
	}
}

func TestFindSimilarTransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	client, err := New(Config{BaseURL: base, Timeout: time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.FindSimilar(context.Background(), "idea"); !errors.Is(err, ErrSearchFailed) {
		t.Fatalf("expected ErrSearchFailed, got %v", err)
	}
}

func TestNewValidatesBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		endpoint string
		wantErr  bool
	}{
		{"default", "", "http://localhost:8000/api/find-similar", false},
		{"trailing slash", "https://patents.example.com/", "https://patents.example.com/api/find-similar", false},
		{"bad scheme", "ftp://example.com", "", true},
		{"no host", "http://", "", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, err := New(Config{BaseURL: tt.in})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q): %v", tt.in, err)
			}
			if client.Endpoint() != tt.endpoint {
				t.Fatalf("Endpoint() = %q, want %q", client.Endpoint(), tt.endpoint)
			}
		})
	}
}

func TestAbstractPreview(t *testing.T) {
	tests := []struct {
		name     string
		abstract string
		want     string
	}{
		{name: "short", abstract: "A mug.", want: "A mug...."},
		{name: "empty", abstract: "", want: "..."},
		{name: "exact", abstract: strings.Repeat("a", 200), want: strings.Repeat("a", 200) + "..."},
		{name: "long", abstract: strings.Repeat("b", 201), want: strings.Repeat("b", 200) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Patent{Abstract: tt.abstract}).AbstractPreview(); got != tt.want {
				t.Fatalf("AbstractPreview = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAbstractPreviewCountsRunes(t *testing.T) {
	got := Patent{Abstract: strings.Repeat("é", 250)}.AbstractPreview()
	if n := utf8.RuneCountInString(got); n != 203 {
		t.Fatalf("preview has %d runes, want 203", n)
	}
	if !utf8.ValidString(got) {
		t.Fatal("preview split a rune")
	}
}
