package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor    = lipgloss.Color("#6366f1")
	accentSoft     = lipgloss.Color("#a5b4fc")
	surfaceColor   = lipgloss.Color("#1e1b4b")
	textColor      = lipgloss.Color("#f5f3ff")
	mutedColor     = lipgloss.Color("244")
	highBandColor  = lipgloss.Color("#10B981")
	midBandColor   = lipgloss.Color("#F59E0B")
	lowBandColor   = lipgloss.Color("#EF4444")
	selectionColor = lipgloss.Color("#ffd166")

	helperStyle = lipgloss.NewStyle().Foreground(mutedColor)

	pillStyle    = lipgloss.NewStyle().Foreground(accentSoft).Border(lipgloss.RoundedBorder()).BorderForeground(accentColor).Padding(0, 2)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(textColor)

	userLabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(selectionColor)
	aiLabelStyle     = lipgloss.NewStyle().Bold(true).Foreground(accentSoft)
	userMessageStyle = lipgloss.NewStyle().Foreground(textColor).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(selectionColor).PaddingLeft(1)
	aiMessageStyle   = lipgloss.NewStyle().Foreground(textColor).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(accentColor).PaddingLeft(1)

	cardStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	cardSelectedStyle = cardStyle.BorderForeground(selectionColor)
	cardTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(textColor)
	cardMetaStyle     = lipgloss.NewStyle().Foreground(accentSoft)
	compareHintStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(selectionColor).Padding(0, 1)

	composerBoxStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	composerFocusedBoxStyle = composerBoxStyle.BorderForeground(accentColor)
	counterReadyStyle       = lipgloss.NewStyle().Foreground(highBandColor)

	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	modalBoxStyle  = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(accentColor).Padding(1, 2)
	modalTitle     = lipgloss.NewStyle().Bold(true).Foreground(textColor).Background(surfaceColor).Padding(0, 1)
	subheadStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentSoft)
	scoreStyle     = lipgloss.NewStyle().Bold(true).Foreground(textColor)

	logoFaceStyle      = lipgloss.NewStyle().Bold(true).Foreground(textColor).Background(surfaceColor)
	logoContainerStyle = lipgloss.NewStyle().Padding(0, 1)
	logoArtLines       = []string{
		"█▀█ ▄▀█ ▀█▀ █▀▀ █▄ █ ▀█▀   ▄▀█ █",
		"█▀▀ █▀█  █  ██▄ █ ▀█  █    █▀█ █",
	}
)
