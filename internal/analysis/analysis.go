// Package analysis derives the comparison narrative shown when an idea is
// compared against a single patent. The narrative is a deterministic template
// lookup, not an inference step: the same patent always yields the same text.
package analysis

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/csheth/patentai/internal/search"
)

const (
	// MinNoveltyScore and MaxNoveltyScore bound every derived novelty score.
	MinNoveltyScore = 1.5
	MaxNoveltyScore = 9.5

	// DefaultDelay is the pause before a computed analysis is revealed.
	DefaultDelay = 1200 * time.Millisecond
)

// Analysis is the comparison result for one idea/patent pair.
type Analysis struct {
	NoveltyScore    float64
	ExpertOpinion   string
	KeySimilarities string
	KeyDifferences  string
}

// Band groups novelty scores for display.
type Band int

const (
	BandLow Band = iota
	BandModerate
	BandHigh
)

// Label returns the human readable band name.
func (b Band) Label() string {
	switch b {
	case BandHigh:
		return "High Novelty"
	case BandModerate:
		return "Moderate Novelty"
	default:
		return "Low Novelty"
	}
}

// BandFor classifies a novelty score.
func BandFor(score float64) Band {
	switch {
	case score > 7:
		return BandHigh
	case score > 4:
		return BandModerate
	default:
		return BandLow
	}
}

// Band reports the display band of the analysis score.
func (a Analysis) Band() Band {
	return BandFor(a.NoveltyScore)
}

// NoveltyScore inverts a similarity score in [0,1] onto the 10 point novelty
// scale and clamps it to [MinNoveltyScore, MaxNoveltyScore].
func NoveltyScore(similarity float64) float64 {
	score := (1 - similarity) * 10
	if score < MinNoveltyScore {
		return MinNoveltyScore
	}
	if score > MaxNoveltyScore {
		return MaxNoveltyScore
	}
	return score
}

type templateInput struct {
	patent  search.Patent
	novelty float64
}

type template func(templateInput) string

var opinionTemplates = []template{
	func(in templateInput) string {
		degree := "notable"
		if in.novelty > 7 {
			degree = "high"
		}
		return fmt.Sprintf("After a detailed comparison against patent %s, your idea demonstrates a %s degree of novelty. "+
			"While both concepts touch upon similar principles, the specific execution you've outlined introduces unique, potentially patentable elements.",
			in.patent.PublicationNumber, degree)
	},
	func(in templateInput) string {
		overlap := "clear"
		if in.novelty < 4 {
			overlap = "significant"
		}
		return fmt.Sprintf("The analysis of patent %s indicates that while the foundational technology is related, your invention carves out its own niche. "+
			"There is a %s conceptual overlap, but your approach to the user problem appears distinct.",
			in.patent.PublicationNumber, overlap)
	},
}

var similarityTemplates = []template{
	func(in templateInput) string {
		return fmt.Sprintf("The primary similarity is the shared goal within the domain of \"%s\". "+
			"Both your concept and this patent utilize a comparable class of technology to address a related problem.",
			strings.ToLower(in.patent.Title))
	},
	func(templateInput) string {
		return "A conceptual link can be established through the core mechanism. " +
			"Both frameworks seem to operate on a similar principle, indicating they belong to the same technological field."
	},
}

var differenceTemplates = []template{
	func(templateInput) string {
		return "The key point of novelty for your idea appears to be the unique method of user interaction and its integration with external data systems, " +
			"a key detail not explicitly covered in the patent's abstract."
	},
	func(templateInput) string {
		return "Your implementation differs most significantly in its target application. " +
			"While the patent focuses on a core technical mechanism, your idea reframes it for a different real-world context."
	},
}

// TemplateIndex selects one of n templates from the title length, measured in
// UTF-16 code units so titles outside the Basic Multilingual Plane count twice
// per character, as a browser string length would.
func TemplateIndex(title string, n int) int {
	if n <= 0 {
		return 0
	}
	return utf16Len(title) % n
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// Generate builds the comparison analysis for idea against patent. The idea
// text does not influence the result.
func Generate(idea string, patent search.Patent) Analysis {
	in := templateInput{patent: patent, novelty: NoveltyScore(patent.Score)}
	return Analysis{
		NoveltyScore:    in.novelty,
		ExpertOpinion:   pick(opinionTemplates, in),
		KeySimilarities: pick(similarityTemplates, in),
		KeyDifferences:  pick(differenceTemplates, in),
	}
}

func pick(templates []template, in templateInput) string {
	return templates[TemplateIndex(in.patent.Title, len(templates))](in)
}
