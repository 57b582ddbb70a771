// Package session holds the single-owner view state of the analyst client and
// the named transitions that mutate it. Every multi-field update happens inside
// one transition so callers never observe a half-applied change.
package session

import (
	"strings"

	"github.com/csheth/patentai/internal/analysis"
	"github.com/csheth/patentai/internal/search"
)

// MinIdeaWords is the smallest idea, in whitespace separated words, that may be submitted.
const MinIdeaWords = 10

const (
	IntroText     = "Based on your idea, I've found these conceptually similar patents:"
	NoResultsText = "No highly relevant patents were found from the database. This may indicate strong novelty."
	ApologyText   = "My apologies, an error occurred during the patent search."
)

// Mode is the top-level view. It only ever moves from ModeInitial to ModeChat.
type Mode int

const (
	ModeInitial Mode = iota
	ModeChat
)

func (m Mode) String() string {
	if m == ModeChat {
		return "chat"
	}
	return "initial"
}

// Kind tags a transcript entry.
type Kind string

const (
	KindUser   Kind = "user"
	KindAI     Kind = "ai"
	KindPatent Kind = "patent"
)

// Message is one transcript entry. Patent is set only for KindPatent.
type Message struct {
	Kind   Kind
	Text   string
	Patent *search.Patent
}

// Submission identifies an accepted search request.
type Submission struct {
	ID   uint64
	Idea string
}

// Comparison is the payload of the comparison overlay. Analysis stays nil until
// the delayed result for Token arrives.
type Comparison struct {
	Token    uint64
	Idea     string
	Patent   search.Patent
	Analysis *analysis.Analysis
}

// Loading reports whether the comparison is still waiting for its analysis.
func (c *Comparison) Loading() bool {
	return c != nil && c.Analysis == nil
}

// State is the whole client view state.
type State struct {
	Mode       Mode
	Input      string
	Messages   []Message
	Loading    bool
	Idea       string
	Comparison *Comparison
	InfoOpen   bool

	submission uint64
	token      uint64
}

// WordCount counts whitespace separated tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// CanSubmit reports whether text would be accepted by Submit right now.
func (s *State) CanSubmit(text string) bool {
	return !s.Loading && WordCount(text) >= MinIdeaWords
}

// SetInput records the pending composer text.
func (s *State) SetInput(text string) {
	s.Input = text
}

// Submit starts a search for idea. It returns false, leaving the state
// untouched, when the idea is too short or a search is already running.
func (s *State) Submit(idea string) (Submission, bool) {
	if !s.CanSubmit(idea) {
		return Submission{}, false
	}
	s.submission++
	s.Idea = idea
	s.Messages = []Message{{Kind: KindUser, Text: idea}}
	s.Mode = ModeChat
	s.Loading = true
	return Submission{ID: s.submission, Idea: idea}, true
}

// Complete appends the outcome of a successful search. Results for a
// submission other than the running one are ignored.
func (s *State) Complete(id uint64, patents []search.Patent) bool {
	if !s.pending(id) {
		return false
	}
	if len(patents) == 0 {
		s.Messages = append(s.Messages, Message{Kind: KindAI, Text: NoResultsText})
	} else {
		entries := make([]Message, 0, len(patents)+1)
		entries = append(entries, Message{Kind: KindAI, Text: IntroText})
		for i := range patents {
			patent := patents[i]
			entries = append(entries, Message{Kind: KindPatent, Patent: &patent})
		}
		s.Messages = append(s.Messages, entries...)
	}
	s.Loading = false
	return true
}

// Fail appends the apology for a failed search.
func (s *State) Fail(id uint64) bool {
	if !s.pending(id) {
		return false
	}
	s.Messages = append(s.Messages, Message{Kind: KindAI, Text: ApologyText})
	s.Loading = false
	return true
}

func (s *State) pending(id uint64) bool {
	return s.Loading && id == s.submission
}

// Patents lists the patent entries of the transcript in display order.
func (s *State) Patents() []search.Patent {
	var out []search.Patent
	for _, msg := range s.Messages {
		if msg.Kind == KindPatent && msg.Patent != nil {
			out = append(out, *msg.Patent)
		}
	}
	return out
}

// OpenComparison shows the comparison overlay for patent, replacing any
// previous payload, and returns the token the delayed analysis must carry.
func (s *State) OpenComparison(patent search.Patent) uint64 {
	s.token++
	s.Comparison = &Comparison{Token: s.token, Idea: s.Idea, Patent: patent}
	return s.token
}

// ResolveComparison stores result if token still names the open comparison.
func (s *State) ResolveComparison(token uint64, result analysis.Analysis) bool {
	if s.Comparison == nil || s.Comparison.Token != token {
		return false
	}
	s.Comparison.Analysis = &result
	return true
}

// CloseComparison discards the comparison payload.
func (s *State) CloseComparison() {
	s.Comparison = nil
}

// OpenInfo shows the about overlay.
func (s *State) OpenInfo() {
	s.InfoOpen = true
}

// CloseInfo hides the about overlay.
func (s *State) CloseInfo() {
	s.InfoOpen = false
}
