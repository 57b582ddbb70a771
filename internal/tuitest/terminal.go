package tuitest

import (
	"bytes"
	"io"
)

// terminalQueries are the capability probes lipgloss and termenv send on
// startup, paired with the answer of a plain dark terminal.
var terminalQueries = []struct {
	query    []byte
	response []byte
}{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

type terminalResponder struct {
	w   io.Writer
	buf []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, 128)}
}

func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerNext() {
	}
	// Keep a small tail so queries split across reads are still seen.
	if len(tr.buf) > 256 {
		tr.buf = tr.buf[len(tr.buf)-64:]
	}
}

// answerNext replies to the earliest pending query in the buffer.
func (tr *terminalResponder) answerNext() bool {
	first, at := -1, len(tr.buf)
	for i, q := range terminalQueries {
		if idx := bytes.Index(tr.buf, q.query); idx >= 0 && idx < at {
			first, at = i, idx
		}
	}
	if first < 0 {
		return false
	}
	q := terminalQueries[first]
	tr.buf = tr.buf[at+len(q.query):]
	_, _ = tr.w.Write(q.response)
	return true
}
