// Package typewriter reveals text one rune at a time as a lazy sequence of
// growing prefixes that ends with the full string. It only paces what is
// shown; the underlying string is never modified.
package typewriter

import (
	"sync/atomic"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultInterval is the pause between two revealed runes.
const DefaultInterval = 15 * time.Millisecond

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg advances one Model. Ticks addressed to another model, or to an
// earlier target of the same model, are ignored.
type TickMsg struct {
	ID  int
	tag int
}

// Model is a Bubble Tea component animating a single string.
type Model struct {
	Interval time.Duration

	id     int
	tag    int
	target string
	shown  int
}

// New returns an idle model with its own tick address.
func New(interval time.Duration) Model {
	return Model{Interval: interval, id: nextID()}
}

// ID reports the address used in TickMsg.
func (m Model) ID() int {
	return m.id
}

// Start begins revealing target. Starting with the current target is a no-op
// so redraws do not restart the animation.
func (m *Model) Start(target string) tea.Cmd {
	if target == m.target && m.tag != 0 {
		return nil
	}
	m.target = target
	m.tag++
	m.shown = 0
	if m.Interval <= 0 || target == "" {
		m.shown = len(target)
		return nil
	}
	return m.tick()
}

// Skip reveals the remaining text at once.
func (m *Model) Skip() {
	m.shown = len(m.target)
}

// Done reports whether the full target is visible.
func (m Model) Done() bool {
	return m.shown >= len(m.target)
}

// Target returns the string being revealed.
func (m Model) Target() string {
	return m.target
}

// Update handles TickMsg.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != m.id || tick.tag != m.tag {
		return m, nil
	}
	if m.Done() {
		return m, nil
	}
	_, size := utf8.DecodeRuneInString(m.target[m.shown:])
	m.shown += size
	if m.Done() {
		return m, nil
	}
	return m, m.tick()
}

// View renders the revealed prefix.
func (m Model) View() string {
	return m.target[:m.shown]
}

func (m Model) tick() tea.Cmd {
	id, tag := m.id, m.tag
	return tea.Tick(m.Interval, func(time.Time) tea.Msg {
		return TickMsg{ID: id, tag: tag}
	})
}
