package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/csheth/patentai/internal/search"
	"github.com/csheth/patentai/internal/session"
	"github.com/csheth/patentai/internal/typewriter"
)

// Config wires runtime options into the TUI program. Zero durations disable
// the analysis delay and the typewriter animation.
type Config struct {
	Search             search.Client
	Endpoint           string
	RequestTimeout     time.Duration
	AnalysisDelay      time.Duration
	TypewriterInterval time.Duration
	InitialIdea        string
	Logger             *zap.Logger
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	composer := textarea.New()
	composer.Placeholder = composerPlaceholder
	composer.ShowLineNumbers = false
	composer.Prompt = ""
	composer.CharLimit = 0
	composer.SetHeight(composerRows)
	composer.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")
	composer.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	gauge := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	m := &model{
		config:        config,
		logger:        logger,
		keys:          defaultKeyMap(),
		jobs:          newJobBus(logger),
		composer:      composer,
		spinner:       spin,
		viewport:      vp,
		gauge:         gauge,
		help:          help.New(),
		layout:        newPageLayout(),
		typers:        map[int]typewriter.Model{},
		jobSnapshots:  map[jobKind]jobSnapshot{},
		viewportDirty: true,
	}
	if config.InitialIdea != "" {
		m.composer.SetValue(config.InitialIdea)
		m.state.SetInput(m.composer.Value())
	}
	m.applyLayout()
	return m
}

type model struct {
	config Config
	logger *zap.Logger
	keys   keyMap
	jobs   *jobBus
	state  session.State

	composer textarea.Model
	spinner  spinner.Model
	viewport viewport.Model
	gauge    progress.Model
	help     help.Model
	layout   pageLayout

	focus        focusArea
	patents      []search.Patent
	selected     int
	typers       map[int]typewriter.Model
	jobSnapshots map[jobKind]jobSnapshot
	spinning     bool

	viewportDirty bool
	followTail    bool
	revealCard    bool
	cardSpans     []lineSpan
}

func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.applyLayout()
		return m, nil
	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.markViewportDirty()
		return m, cmd
	case typewriter.TickMsg:
		return m, m.advanceTypers(msg)
	case jobSignalMsg:
		m.recordJob(msg.Snapshot)
		return m, nil
	case jobResultEnvelope:
		m.recordJob(msg.Snapshot)
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case searchResultMsg:
		return m, m.handleSearchResult(msg)
	case analysisResultMsg:
		if m.state.ResolveComparison(msg.token, msg.result) {
			m.logger.Debug("comparison ready",
				zap.Uint64("token", msg.token),
				zap.Float64("novelty", msg.result.NoveltyScore),
			)
		} else {
			m.logger.Debug("discarded stale comparison", zap.Uint64("token", msg.token))
		}
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.followTail = false
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	m.state.SetInput(m.composer.Value())
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.skipTypers()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Info):
		m.state.OpenInfo()
		return nil
	}

	if m.state.InfoOpen {
		if key.Matches(msg, m.keys.Close) {
			m.state.CloseInfo()
		}
		return nil
	}
	if m.state.Comparison != nil {
		if key.Matches(msg, m.keys.Close) {
			m.logger.Debug("comparison closed", zap.Uint64("token", m.state.Comparison.Token))
			m.state.CloseComparison()
		}
		return nil
	}

	if m.focus == focusResults {
		return m.handleResultsKey(msg)
	}
	return m.handleComposerKey(msg)
}

func (m *model) handleComposerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.SwitchPane):
		if len(m.patents) > 0 {
			m.setFocus(focusResults)
		}
		return nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	m.state.SetInput(m.composer.Value())
	return cmd
}

func (m *model) handleResultsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.SwitchPane), key.Matches(msg, m.keys.Close):
		m.setFocus(focusComposer)
		return nil
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
		return nil
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
		return nil
	case key.Matches(msg, m.keys.Compare):
		if m.selected < 0 || m.selected >= len(m.patents) {
			return nil
		}
		return m.compare(m.patents[m.selected])
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// submit hands the composer text to the session. Rejected ideas are ignored
// without feedback beyond the live word counter.
func (m *model) submit() tea.Cmd {
	sub, ok := m.state.Submit(m.state.Input)
	if !ok {
		return nil
	}
	m.typers = map[int]typewriter.Model{}
	m.patents = nil
	m.selected = 0
	m.followTail = true
	m.markViewportDirty()
	m.logger.Info("search submitted",
		zap.Uint64("submission", sub.ID),
		zap.Int("words", session.WordCount(sub.Idea)),
	)
	if m.config.Search == nil {
		return func() tea.Msg {
			return searchResultMsg{submission: sub.ID, err: search.ErrSearchFailed}
		}
	}
	return tea.Batch(
		m.jobs.Start(jobKindSearch, m.config.RequestTimeout, searchJob(m.config.Search, sub)),
		m.startSpinner(),
	)
}

func (m *model) handleSearchResult(msg searchResultMsg) tea.Cmd {
	var applied bool
	if msg.err != nil {
		applied = m.state.Fail(msg.submission)
		if applied {
			m.logger.Warn("search failed", zap.Uint64("submission", msg.submission), zap.Error(msg.err))
		}
	} else {
		applied = m.state.Complete(msg.submission, msg.patents)
		if applied {
			m.logger.Info("search completed",
				zap.Uint64("submission", msg.submission),
				zap.Int("patents", len(msg.patents)),
			)
		}
	}
	if !applied {
		m.logger.Debug("discarded stale search result", zap.Uint64("submission", msg.submission))
		return nil
	}
	m.patents = m.state.Patents()
	m.selected = 0
	m.followTail = true
	m.markViewportDirty()
	return m.startTypers()
}

// compare opens the comparison overlay and schedules its analysis.
func (m *model) compare(patent search.Patent) tea.Cmd {
	token := m.state.OpenComparison(patent)
	m.logger.Info("comparison opened",
		zap.Uint64("token", token),
		zap.String("patent", patent.PublicationNumber),
	)
	return tea.Batch(
		m.jobs.Delay(jobKindAnalysis, m.config.AnalysisDelay, analysisResult(token, m.state.Idea, patent)),
		m.startSpinner(),
	)
}

func (m *model) setFocus(area focusArea) {
	m.focus = area
	if area == focusComposer {
		m.composer.Focus()
	} else {
		m.composer.Blur()
		m.revealCard = true
	}
	m.markViewportDirty()
}

func (m *model) moveSelection(delta int) {
	if len(m.patents) == 0 {
		return
	}
	next := m.selected + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.patents) {
		next = len(m.patents) - 1
	}
	m.selected = next
	m.revealCard = true
	m.followTail = false
	m.markViewportDirty()
}

// startTypers animates every AI message that has no typewriter yet.
func (m *model) startTypers() tea.Cmd {
	var cmds []tea.Cmd
	for idx, msg := range m.state.Messages {
		if msg.Kind != session.KindAI {
			continue
		}
		if _, ok := m.typers[idx]; ok {
			continue
		}
		tw := typewriter.New(m.config.TypewriterInterval)
		cmds = append(cmds, tw.Start(msg.Text))
		m.typers[idx] = tw
	}
	return tea.Batch(cmds...)
}

func (m *model) advanceTypers(msg typewriter.TickMsg) tea.Cmd {
	for idx, tw := range m.typers {
		if tw.ID() != msg.ID {
			continue
		}
		next, cmd := tw.Update(msg)
		m.typers[idx] = next
		m.markViewportDirty()
		return cmd
	}
	return nil
}

// skipTypers finishes every running reveal. Any key press does this before
// the key itself is handled.
func (m *model) skipTypers() {
	for idx, tw := range m.typers {
		if tw.Done() {
			continue
		}
		tw.Skip()
		m.typers[idx] = tw
		m.markViewportDirty()
	}
}

// recordJob updates the status bar unless a newer job of the same kind has
// started since.
func (m *model) recordJob(snap jobSnapshot) {
	if !m.jobs.current(snap) {
		m.logger.Debug("ignored superseded job", zap.String("job", snap.ID))
		return
	}
	m.jobSnapshots[snap.Kind] = snap
}

func (m *model) busy() bool {
	return m.state.Loading || m.state.Comparison.Loading()
}

func (m *model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *model) applyLayout() {
	m.viewport.Width = m.layout.viewportWidth
	m.viewport.Height = m.layout.viewportHeight
	m.composer.SetWidth(m.layout.viewportWidth - 2)
	m.gauge.Width = m.layout.modalWidth - 8
	m.help.Width = m.layout.windowWidth
	m.markViewportDirty()
}

func (m *model) markViewportDirty() {
	m.viewportDirty = true
}

func (m *model) refreshViewportIfDirty() {
	if !m.viewportDirty {
		return
	}
	view := m.buildTranscript()
	m.cardSpans = view.cardSpans
	m.viewport.SetContent(view.content)
	m.viewportDirty = false

	switch {
	case m.revealCard && m.selected < len(m.cardSpans):
		span := m.cardSpans[m.selected]
		if span.start < m.viewport.YOffset {
			m.viewport.SetYOffset(span.start)
		} else if bottom := span.end + 1; bottom > m.viewport.YOffset+m.viewport.Height {
			m.viewport.SetYOffset(bottom - m.viewport.Height)
		}
		m.revealCard = false
	case m.followTail:
		m.viewport.GotoBottom()
	}
}
