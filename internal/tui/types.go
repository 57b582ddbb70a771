package tui

import (
	"github.com/csheth/patentai/internal/analysis"
	"github.com/csheth/patentai/internal/search"
)

type focusArea int

const (
	focusComposer focusArea = iota
	focusResults
)

const (
	heroPill            = "Analyze Idea Novelty"
	heroHeading         = "From Idea to Insight. Instantly."
	composerPlaceholder = "Describe your invention in detail (e.g., a smart coffee mug that maintains a perfect temperature)..."
	compareHint         = "Compare My Idea"
	comparisonTitle     = "Comparative Analysis"
	comparisonLoading   = "Performing comparative analysis..."
)

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	maxModalWidth             = 96
)

type searchResultMsg struct {
	submission uint64
	patents    []search.Patent
	err        error
}

type analysisResultMsg struct {
	token  uint64
	result analysis.Analysis
}
