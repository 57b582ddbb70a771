// Package fixtureserver is a local stand-in for the patent search service. It
// speaks the same find-similar contract over a small JSON corpus and scores
// matches with a bag-of-words cosine similarity, which is enough to exercise
// the client end to end without a vector database.
package fixtureserver

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/csheth/patentai/internal/search"
)

//go:embed patents.json
var defaultCorpus []byte

const (
	DefaultLimit    = 5
	DefaultMinScore = 0.05
)

// Record is one corpus entry.
type Record struct {
	PublicationNumber string `json:"publication_number"`
	Title             string `json:"title"`
	Abstract          string `json:"abstract"`
}

// Options tunes matching.
type Options struct {
	Limit    int
	MinScore float64
	Logger   *zap.Logger
	Metrics  *Metrics
}

type document struct {
	record Record
	vector map[string]float64
	norm   float64
}

// Server serves find-similar requests over an in-memory corpus.
type Server struct {
	mu       sync.RWMutex
	docs     []document
	limit    int
	minScore float64
	logger   *zap.Logger
	metrics  *Metrics
}

// LoadCorpus reads records from path, or the built-in corpus when path is empty.
func LoadCorpus(path string) ([]Record, error) {
	data := defaultCorpus
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read corpus: %w", err)
		}
		data = raw
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode corpus: %w", err)
	}
	return records, nil
}

// New indexes records.
func New(records []Record, opts Options) *Server {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s := &Server{limit: opts.Limit, minScore: opts.MinScore, logger: opts.Logger, metrics: opts.Metrics}
	s.Reload(records)
	return s
}

// Reload swaps the indexed corpus. Requests in flight keep the old one.
func (s *Server) Reload(records []Record) {
	docs := make([]document, 0, len(records))
	for _, rec := range records {
		vec := termVector(rec.Title + " " + rec.Abstract)
		docs = append(docs, document{record: rec, vector: vec, norm: norm(vec)})
	}
	s.mu.Lock()
	s.docs = docs
	s.mu.Unlock()
	s.metrics.setCorpusSize(len(docs))
}

// Size reports how many records are indexed.
func (s *Server) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Match returns up to the configured limit of records scoring at least the
// minimum score, best first.
func (s *Server) Match(idea string) []search.Patent {
	query := termVector(idea)
	queryNorm := norm(query)
	results := []search.Patent{}
	if queryNorm == 0 {
		return results
	}
	s.mu.RLock()
	docs := s.docs
	s.mu.RUnlock()
	for _, doc := range docs {
		if doc.norm == 0 {
			continue
		}
		dot := 0.0
		for term, weight := range query {
			dot += weight * doc.vector[term]
		}
		score := dot / (queryNorm * doc.norm)
		if score < s.minScore || score == 0 {
			continue
		}
		results = append(results, search.Patent{
			PublicationNumber: doc.record.PublicationNumber,
			Title:             doc.record.Title,
			Abstract:          doc.record.Abstract,
			Score:             math.Round(score*10000) / 10000,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > s.limit {
		results = results[:s.limit]
	}
	return results
}

type findSimilarRequest struct {
	IdeaText *string `json:"idea_text"`
}

// Handler returns the HTTP routes of the fixture service.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	if s.metrics != nil {
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "PatentAI fixture search service is running."})
	})
	api := router.Group("/api")
	api.POST("/find-similar", s.findSimilar)
	return router
}

func (s *Server) findSimilar(c *gin.Context) {
	var req findSimilarRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IdeaText == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "idea_text is required"})
		return
	}
	matches := s.Match(*req.IdeaText)
	s.metrics.observeMatches(len(matches))
	c.JSON(http.StatusOK, gin.H{"matched_patents": matches})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		s.metrics.observeRequest(c.FullPath(), c.Writer.Status(), time.Since(started))
		s.logger.Info("fixture request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
			zap.Duration("duration", time.Since(started)),
		)
	}
}

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true, "be": true, "by": true,
	"for": true, "from": true, "has": true, "in": true, "is": true, "it": true, "of": true, "on": true,
	"or": true, "that": true, "the": true, "to": true, "with": true, "which": true, "this": true,
	"my": true, "your": true, "into": true, "can": true, "will": true, "its": true,
}

func termVector(text string) map[string]float64 {
	vec := map[string]float64{}
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, field := range fields {
		if len(field) < 2 || stopwords[field] {
			continue
		}
		vec[stem(field)]++
	}
	return vec
}

// stem folds the most common English plural endings.
func stem(word string) string {
	switch {
	case len(word) > 4 && strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case len(word) > 3 && strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss"):
		return word[:len(word)-1]
	default:
		return word
	}
}

func norm(vec map[string]float64) float64 {
	sum := 0.0
	for _, weight := range vec {
		sum += weight * weight
	}
	return math.Sqrt(sum)
}
