package tui

import (
	"strings"

	"github.com/csheth/patentai/internal/session"
)

const (
	headerHeight   = 2
	composerRows   = 3
	composerChrome = 3
	footerHeight   = 2
	sectionGaps    = 3
	minBodyHeight  = 5
)

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	viewportWidth  int
	viewportHeight int
	composerHeight int
	modalWidth     int
}

func newPageLayout() pageLayout {
	layout := pageLayout{}
	layout.Update(80, 24)
	return layout
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth
	l.composerHeight = composerRows
	const chrome = headerHeight + composerRows + composerChrome + footerHeight + sectionGaps
	body := height - chrome
	if body < minBodyHeight {
		body = minBodyHeight
	}
	l.viewportHeight = body
	l.modalWidth = width - 4
	if l.modalWidth > maxModalWidth {
		l.modalWidth = maxModalWidth
	}
	if l.modalWidth < minViewportWidth {
		l.modalWidth = minViewportWidth
	}
}

// transcriptView is the rendered chat log plus the line span of every patent
// card so the selection can be scrolled into view.
type transcriptView struct {
	content   string
	cardSpans []lineSpan
}

type lineSpan struct {
	start int
	end   int
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

func (cb *contentBuilder) Line() int {
	return cb.lines
}

func (m *model) buildTranscript() transcriptView {
	cb := &contentBuilder{}
	wrap := m.wrapWidth(2)
	var spans []lineSpan
	patentIdx := 0
	for idx, msg := range m.state.Messages {
		if idx > 0 {
			cb.WriteString("\n\n")
		}
		switch msg.Kind {
		case session.KindUser:
			cb.WriteString(renderUserMessage(msg.Text, wrap))
		case session.KindAI:
			cb.WriteString(renderAIMessage(m.revealed(idx, msg.Text), wrap))
		case session.KindPatent:
			if msg.Patent == nil {
				continue
			}
			selected := m.focus == focusResults && patentIdx == m.selected
			start := cb.Line()
			cb.WriteString(renderPatentCard(*msg.Patent, wrap, selected))
			spans = append(spans, lineSpan{start: start, end: cb.Line()})
			patentIdx++
		}
	}
	if m.state.Loading {
		if cb.Line() > 0 || len(m.state.Messages) > 0 {
			cb.WriteString("\n\n")
		}
		cb.WriteString(aiLabelStyle.Render(messageLabel(session.KindAI)))
		cb.WriteRune('\n')
		cb.WriteString(m.spinner.View() + helperStyle.Render(" searching the patent corpus…"))
	}
	return transcriptView{content: cb.String(), cardSpans: spans}
}

func (m *model) revealed(idx int, text string) string {
	if tw, ok := m.typers[idx]; ok && tw.Target() == text {
		return tw.View()
	}
	return text
}

func (m *model) wrapWidth(padding int) int {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	if padding < 0 {
		padding = 0
	}
	available := width - padding
	if available < 20 {
		available = 20
	}
	return available
}
