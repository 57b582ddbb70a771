package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FindSimilarPath is the endpoint that matches an idea against the patent corpus.
const FindSimilarPath = "/api/find-similar"

const (
	defaultBaseURL     = "http://localhost:8000"
	defaultHTTPTimeout = 30 * time.Second
	requestIDHeader    = "X-Request-ID"
	errorBodyLimit     = 512
)

// ErrSearchFailed marks every failed search. Transport errors, non-2xx statuses and
// undecodable payloads are deliberately not distinguished.
var ErrSearchFailed = errors.New("patent search failed")

// Patent is a prior-art candidate returned by the search service.
type Patent struct {
	PublicationNumber string  `json:"publication_number"`
	Title             string  `json:"title"`
	Abstract          string  `json:"abstract"`
	Score             float64 `json:"score"`
}

// PreviewRunes is how much of an abstract a result card shows.
const PreviewRunes = 200

// AbstractPreview returns the leading PreviewRunes runes of the abstract
// followed by "...". The marker is appended even when nothing was cut.
func (p Patent) AbstractPreview() string {
	runes := []rune(p.Abstract)
	if len(runes) > PreviewRunes {
		runes = runes[:PreviewRunes]
	}
	return string(runes) + "..."
}

// Client finds patents similar to an idea description.
type Client interface {
	FindSimilar(ctx context.Context, idea string) ([]Patent, error)
}

// Config describes how to reach the search service.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

type findSimilarRequest struct {
	IdeaText string `json:"idea_text"`
}

type findSimilarResponse struct {
	MatchedPatents *[]Patent `json:"matched_patents"`
}

// HTTPClient talks to the search service over JSON/HTTP.
type HTTPClient struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// New validates cfg and returns a ready client.
func New(cfg Config) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid search base url %q: %w", base, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid search base url %q: scheme must be http or https", base)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid search base url %q: missing host", base)
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		endpoint: base + FindSimilarPath,
		client:   client,
		logger:   logger,
	}, nil
}

// Endpoint reports the fully qualified find-similar URL.
func (c *HTTPClient) Endpoint() string {
	return c.endpoint
}

// FindSimilar posts the idea text and returns the matched patents in service order.
// A body without a matched_patents list is a failed search, not an empty one.
func (c *HTTPClient) FindSimilar(ctx context.Context, idea string) ([]Patent, error) {
	requestID := uuid.NewString()
	log := c.logger.With(zap.String("request_id", requestID))
	started := time.Now()

	patents, err := c.post(ctx, requestID, idea)
	if err != nil {
		log.Warn("patent search failed",
			zap.Duration("duration", time.Since(started)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	log.Info("patent search completed",
		zap.Int("matches", len(patents)),
		zap.Duration("duration", time.Since(started)),
	)
	return patents, nil
}

func (c *HTTPClient) post(ctx context.Context, requestID, idea string) ([]Patent, error) {
	payload, err := json.Marshal(findSimilarRequest{IdeaText: idea})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, fmt.Errorf("search API error: %s (%s)", resp.Status, strings.TrimSpace(string(body)))
	}

	dec := json.NewDecoder(resp.Body)
	var decoded findSimilarResponse
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("failed to decode search response: trailing data after JSON body")
	}
	if decoded.MatchedPatents == nil {
		return nil, errors.New("search response has no matched_patents list")
	}
	if *decoded.MatchedPatents == nil {
		return []Patent{}, nil
	}
	return *decoded.MatchedPatents, nil
}
