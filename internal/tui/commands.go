package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/patentai/internal/analysis"
	"github.com/csheth/patentai/internal/search"
	"github.com/csheth/patentai/internal/session"
)

func searchJob(client search.Client, sub session.Submission) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		patents, err := client.FindSimilar(ctx, sub.Idea)
		return searchResultMsg{submission: sub.ID, patents: patents, err: err}, err
	}
}

// analysisResult computes the comparison eagerly; only its delivery is delayed.
func analysisResult(token uint64, idea string, patent search.Patent) func() tea.Msg {
	result := analysis.Generate(idea, patent)
	return func() tea.Msg {
		return analysisResultMsg{token: token, result: result}
	}
}
