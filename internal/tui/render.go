package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/patentai/internal/analysis"
	"github.com/csheth/patentai/internal/search"
	"github.com/csheth/patentai/internal/session"
)

func relevanceLabel(score float64) string {
	return fmt.Sprintf("Relevance: %.3f", score)
}

func renderUserMessage(text string, width int) string {
	body := wordwrap.String(text, width-2)
	return lipgloss.JoinVertical(lipgloss.Left, userLabelStyle.Render(messageLabel(session.KindUser)), userMessageStyle.Render(body))
}

func renderAIMessage(text string, width int) string {
	body := wordwrap.String(text, width-2)
	return lipgloss.JoinVertical(lipgloss.Left, aiLabelStyle.Render(messageLabel(session.KindAI)), aiMessageStyle.Render(body))
}

func renderPatentCard(p search.Patent, width int, selected bool) string {
	inner := width - 4
	if inner < 20 {
		inner = 20
	}
	title := cardTitleStyle.Render(wordwrap.String(p.Title, inner))
	abstract := helperStyle.Render(wordwrap.String(p.AbstractPreview(), inner))

	meta := cardMetaStyle.Render(relevanceLabel(p.Score))
	if p.PublicationNumber != "" {
		number := runewidth.Truncate(p.PublicationNumber, inner/2, "…")
		meta += helperStyle.Render("  ·  " + number)
	}
	lines := []string{title, abstract, meta}
	style := cardStyle
	if selected {
		style = cardSelectedStyle
		lines = append(lines, compareHintStyle.Render(compareHint))
	}
	return style.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

func bandColor(b analysis.Band) lipgloss.Color {
	switch b {
	case analysis.BandHigh:
		return highBandColor
	case analysis.BandModerate:
		return midBandColor
	default:
		return lowBandColor
	}
}

func scoreLine(a analysis.Analysis) string {
	band := a.Band()
	label := lipgloss.NewStyle().Bold(true).Foreground(bandColor(band)).Render(band.Label())
	return fmt.Sprintf("%s %s  %s", scoreStyle.Render(fmt.Sprintf("%.1f", a.NoveltyScore)), helperStyle.Render("/ 10"), label)
}

func messageLabel(kind session.Kind) string {
	switch kind {
	case session.KindUser:
		return "You"
	case session.KindAI:
		return "Analyst"
	case session.KindPatent:
		return "Patent"
	default:
		return string(kind)
	}
}
