// Package tuitest drives a terminal program through a pseudo terminal and
// records what it draws, so interactive flows can be asserted end to end.
package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth   = 120
	defaultHeight  = 32
	defaultTimeout = 10 * time.Second
	pollInterval   = 20 * time.Millisecond
)

// Step is one scripted interaction. When WaitFor is set the harness blocks
// until that text has been drawn before applying Delay and writing Input.
type Step struct {
	WaitFor string
	Delay   time.Duration
	Input   []byte
}

// Config configures how the harness spawns and drives the program.
type Config struct {
	Command          []string
	Dir              string
	Env              []string
	Width            int
	Height           int
	Steps            []Step
	Timeout          time.Duration
	AllowedExitCodes []int
}

// Recording contains the raw terminal stream plus parsed frames.
type Recording struct {
	Raw      []byte
	Frames   []Frame
	Duration time.Duration
}

type screenBuffer struct {
	mu   sync.Mutex
	data bytes.Buffer
}

func (s *screenBuffer) Write(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.data.Write(p)
}

func (s *screenBuffer) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data.Bytes()...)
}

func (s *screenBuffer) Contains(text string) bool {
	return strings.Contains(stripANSI(string(s.Bytes())), text)
}

// Run executes the configured command inside a PTY, replays the scripted
// inputs, and captures every byte written to the terminal.
func Run(ctx context.Context, cfg Config) (*Recording, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	width, height, timeout := cfg.Width, cfg.Height, cfg.Timeout
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = buildEnv(cfg.Env)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)})
	if err != nil {
		return nil, fmt.Errorf("tuitest: start program: %w", err)
	}
	defer func() { _ = ptmx.Close() }()

	screen := &screenBuffer{}
	copyDone := make(chan struct{})
	go func() {
		defer close(copyDone)
		responder := newTerminalResponder(ptmx)
		buf := make([]byte, 4096)
		for {
			n, readErr := ptmx.Read(buf)
			if n > 0 {
				chunk := buf[:n]
				responder.Process(chunk)
				screen.Write(chunk)
			}
			if readErr != nil {
				return
			}
		}
	}()

	start := time.Now()
	for idx, step := range cfg.Steps {
		if step.WaitFor != "" {
			if err := waitFor(ctx, screen, step.WaitFor); err != nil {
				return nil, fmt.Errorf("tuitest: step %d: %w", idx, err)
			}
		}
		if step.Delay > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("tuitest: context cancelled before script finished: %w", ctx.Err())
			case <-time.After(step.Delay):
			}
		}
		if len(step.Input) > 0 {
			if _, err := ptmx.Write(step.Input); err != nil {
				return nil, fmt.Errorf("tuitest: write input: %w", err)
			}
		}
	}

	if err := waitExit(ctx, cmd, cfg.AllowedExitCodes); err != nil {
		return nil, err
	}

	// Closing the PTY lets the reader goroutine finish draining.
	_ = ptmx.Close()
	<-copyDone

	raw := screen.Bytes()
	return &Recording{Raw: raw, Frames: parseFrames(raw), Duration: time.Since(start)}, nil
}

func waitFor(ctx context.Context, screen *screenBuffer, text string) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		if screen.Contains(text) {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for %q: %w", text, ctx.Err())
		case <-ticker.C:
		}
	}
}

func waitExit(ctx context.Context, cmd *exec.Cmd, allowed []int) error {
	allowedCodes := map[int]struct{}{0: {}}
	for _, code := range allowed {
		allowedCodes[code] = struct{}{}
	}
	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
	}()
	select {
	case err := <-waitErr:
		if err == nil {
			return nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if _, ok := allowedCodes[exitErr.ExitCode()]; ok {
				return nil
			}
		}
		return fmt.Errorf("tuitest: program exited with error: %w", err)
	case <-ctx.Done():
		return fmt.Errorf("tuitest: timeout waiting for program exit: %w", ctx.Err())
	}
}

func buildEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	for _, entry := range env {
		if strings.HasPrefix(entry, "TERM=") {
			return env
		}
	}
	return append(env, "TERM=xterm-256color")
}

// Text types s as a single burst of runes.
func Text(s string) []byte {
	return []byte(s)
}

var (
	// KeyEnter sends a carriage return.
	KeyEnter = []byte{'\r'}
	// KeyTab moves focus between panes.
	KeyTab = []byte{'\t'}
	// KeyCtrlC requests the program to terminate.
	KeyCtrlC = []byte{3}
	// KeyCtrlJ sends a line feed.
	KeyCtrlJ = []byte{'\n'}
	// KeyCtrlO opens the about overlay.
	KeyCtrlO = []byte{15}
	KeyEsc   = []byte{27}
)
