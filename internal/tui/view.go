package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/patentai/internal/about"
	"github.com/csheth/patentai/internal/session"
)

func (m *model) View() string {
	switch {
	case m.state.InfoOpen:
		return m.overlay(m.infoModalView())
	case m.state.Comparison != nil:
		return m.overlay(m.comparisonView())
	}
	var body string
	if m.state.Mode == session.ModeInitial {
		body = m.initialView()
	} else {
		m.refreshViewportIfDirty()
		body = m.viewport.View()
	}
	return joinNonEmpty([]string{m.headerView(), body, m.composerPanel(), m.footerView()})
}

func (m *model) headerView() string {
	title := headingStyle.Render("PatentAI Analyst")
	hint := helperStyle.Render("ctrl+o about")
	return lipgloss.JoinHorizontal(lipgloss.Center, renderLogo(), "  ", title, "   ", hint)
}

func (m *model) initialView() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		pillStyle.Render(heroPill),
		"",
		headingStyle.Render(heroHeading),
	)
	return lipgloss.Place(m.layout.viewportWidth, m.layout.viewportHeight, lipgloss.Center, lipgloss.Center, content)
}

func (m *model) composerPanel() string {
	style := composerBoxStyle
	if m.focus == focusComposer {
		style = composerFocusedBoxStyle
	}
	return lipgloss.JoinVertical(lipgloss.Left, style.Render(m.composer.View()), m.wordCounter())
}

func (m *model) wordCounter() string {
	words := session.WordCount(m.state.Input)
	counter := fmt.Sprintf("%d / %d words", words, session.MinIdeaWords)
	switch {
	case m.state.Loading:
		return helperStyle.Render(counter + "  ·  analyzing…")
	case m.state.CanSubmit(m.state.Input):
		return counterReadyStyle.Render(counter + "  ·  enter to analyze")
	default:
		return helperStyle.Render(counter)
	}
}

func (m *model) footerView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.sessionMeterView(),
		m.help.ShortHelpView(m.keys.bindingsFor(m)),
	)
}

func (m *model) sessionMeterView() string {
	stats := []string{fmt.Sprintf("Mode %s", strings.ToUpper(m.state.Mode.String()))}
	if m.config.Endpoint != "" {
		stats = append(stats, m.config.Endpoint)
	}
	if m.state.Mode == session.ModeChat {
		stats = append(stats, fmt.Sprintf("Patents %d", len(m.patents)))
	}
	stats = append(stats, m.jobStatusBadges()...)
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) jobStatusBadges() []string {
	var badges []string
	for _, kind := range []jobKind{jobKindSearch, jobKindAnalysis} {
		snap, ok := m.jobSnapshots[kind]
		if !ok {
			continue
		}
		badge := fmt.Sprintf("%s %s", kind, snap.Status)
		if snap.Status != jobStatusRunning {
			badge += fmt.Sprintf(" (%s)", snap.Duration.Round(time.Millisecond))
		}
		badges = append(badges, badge)
	}
	return badges
}

func (m *model) comparisonView() string {
	cmp := m.state.Comparison
	width := m.layout.modalWidth - 6
	parts := []string{
		modalTitle.Render(comparisonTitle),
		helperStyle.Render(wordwrap.String(fmt.Sprintf("%s · %s", cmp.Patent.PublicationNumber, cmp.Patent.Title), width)),
	}
	if cmp.Loading() {
		parts = append(parts, m.spinner.View()+" "+comparisonLoading)
	} else {
		result := *cmp.Analysis
		parts = append(parts,
			lipgloss.JoinVertical(lipgloss.Left, scoreLine(result), m.gauge.ViewAs(result.NoveltyScore/10)),
			joinLines(subheadStyle.Render("EXPERT OPINION"), wordwrap.String(result.ExpertOpinion, width)),
			joinLines(subheadStyle.Render("Key Similarities Found"), wordwrap.String(result.KeySimilarities, width)),
			joinLines(subheadStyle.Render("Key Differences (Points of Novelty)"), wordwrap.String(result.KeyDifferences, width)),
		)
	}
	parts = append(parts, helperStyle.Render("esc close · ctrl+o about"))
	return modalBoxStyle.Width(m.layout.modalWidth).Render(joinNonEmpty(parts))
}

func (m *model) infoModalView() string {
	body := about.Render(session.MinIdeaWords, m.layout.modalWidth-6)
	return modalBoxStyle.Width(m.layout.modalWidth).Render(joinNonEmpty([]string{body, helperStyle.Render("esc close")}))
}

// overlay centers box on the screen. Before the first resize the box is
// returned as is.
func (m *model) overlay(box string) string {
	if m.layout.windowWidth == 0 || m.layout.windowHeight == 0 {
		return box
	}
	return lipgloss.Place(m.layout.windowWidth, m.layout.windowHeight, lipgloss.Center, lipgloss.Center, box)
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

func renderLogo() string {
	if len(logoArtLines) == 0 {
		return ""
	}
	width := 0
	lineRunes := make([][]rune, len(logoArtLines))
	for i, line := range logoArtLines {
		runes := []rune(line)
		lineRunes[i] = runes
		if len(runes) > width {
			width = len(runes)
		}
	}
	lines := make([]string, len(lineRunes))
	for y, runes := range lineRunes {
		var b strings.Builder
		for x := 0; x < width; x++ {
			if x >= len(runes) || runes[x] == ' ' {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(logoFaceStyle.Render(string(runes[x])))
		}
		lines[y] = b.String()
	}
	return logoContainerStyle.Render(strings.Join(lines, "\n"))
}
