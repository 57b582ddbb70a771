package tui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type jobKind string

type jobStatus string

const (
	jobKindSearch   jobKind = "search"
	jobKindAnalysis jobKind = "analysis"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

// jobBus is driven from the update loop only. latest holds the most recent
// job id per kind; older jobs of that kind are superseded.
type jobBus struct {
	counter int64
	latest  map[jobKind]string
	logger  *zap.Logger
}

func newJobBus(logger *zap.Logger) *jobBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &jobBus{latest: map[jobKind]string{}, logger: logger}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	id := fmt.Sprintf("%s-%d", kind, idx)
	b.latest[kind] = id
	return id
}

// current reports whether snap belongs to the newest job of its kind.
func (b *jobBus) current(snap jobSnapshot) bool {
	return b.latest[snap.Kind] == snap.ID
}

// Start runs runner off the update loop. A start signal is delivered first so
// the status bar can show the job before it finishes.
func (b *jobBus) Start(kind jobKind, timeout time.Duration, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	started := time.Now()
	startCmd := b.signal(id, kind, started)

	runCmd := func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		payload, err := runner(ctx)
		return b.finish(id, kind, started, payload, err)
	}

	return tea.Sequence(startCmd, runCmd)
}

// Delay delivers produce's message after d, wrapped like any other job result.
func (b *jobBus) Delay(kind jobKind, d time.Duration, produce func() tea.Msg) tea.Cmd {
	id := b.nextID(kind)
	started := time.Now()
	return tea.Sequence(
		b.signal(id, kind, started),
		tea.Tick(d, func(time.Time) tea.Msg {
			return b.finish(id, kind, started, produce(), nil)
		}),
	)
}

func (b *jobBus) signal(id string, kind jobKind, started time.Time) tea.Cmd {
	snapshot := jobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}
	return func() tea.Msg {
		return jobSignalMsg{Snapshot: snapshot}
	}
}

func (b *jobBus) finish(id string, kind jobKind, started time.Time, payload tea.Msg, err error) jobResultEnvelope {
	snapshot := jobSnapshot{
		ID:          id,
		Kind:        kind,
		StartedAt:   started,
		CompletedAt: time.Now(),
	}
	if err != nil {
		snapshot.Status = jobStatusFailed
		snapshot.Err = err.Error()
	} else {
		snapshot.Status = jobStatusSucceeded
	}
	snapshot.Duration = snapshot.CompletedAt.Sub(started)
	b.logger.Debug("job finished",
		zap.String("job", id),
		zap.String("status", string(snapshot.Status)),
		zap.Duration("duration", snapshot.Duration),
		zap.Error(err),
	)
	return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
}
