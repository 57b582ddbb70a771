package tuitest

import (
	"regexp"
	"strings"
)

// Frame is one redraw of the screen. Plain has every escape sequence removed
// and trailing blanks trimmed.
type Frame struct {
	Index int
	ANSI  string
	Plain string
}

var (
	// Each redraw begins by homing the cursor or clearing the screen.
	redrawPattern = regexp.MustCompile(`\x1b\[(?:2J|1;1H|H)`)
	escapePattern = regexp.MustCompile(`\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)|\x1b\[[0-9;?]*[A-Za-z]|[\x0e\x0f]`)
)

func parseFrames(raw []byte) []Frame {
	stream := strings.ReplaceAll(string(raw), "\r", "")
	var frames []Frame
	for _, chunk := range redrawPattern.Split(stream, -1) {
		chunk = strings.Trim(chunk, "\x00")
		plain := tidyLines(stripANSI(chunk))
		if plain == "" {
			continue
		}
		frames = append(frames, Frame{Index: len(frames), ANSI: chunk, Plain: plain})
	}
	return frames
}

// LastFrameContaining returns the most recent frame whose plain text
// contains text.
func (r *Recording) LastFrameContaining(text string) (Frame, bool) {
	if r == nil {
		return Frame{}, false
	}
	for i := len(r.Frames) - 1; i >= 0; i-- {
		if strings.Contains(r.Frames[i].Plain, text) {
			return r.Frames[i], true
		}
	}
	return Frame{}, false
}

// FinalFrame returns the last frame drawn, or false when nothing was drawn.
func (r *Recording) FinalFrame() (Frame, bool) {
	return r.LastFrameContaining("")
}

// PlainText is every frame's plain text, oldest first.
func (r *Recording) PlainText() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	for i, frame := range r.Frames {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(frame.Plain)
	}
	return b.String()
}

func stripANSI(s string) string {
	return escapePattern.ReplaceAllString(s, "")
}

func tidyLines(s string) string {
	lines := strings.Split(s, "\n")
	last := -1
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
		if strings.TrimSpace(lines[i]) != "" {
			last = i
		}
	}
	return strings.Join(lines[:last+1], "\n")
}
