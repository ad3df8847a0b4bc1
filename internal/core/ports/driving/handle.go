package driving

import (
	"sync"

	"github.com/google/uuid"

	"github.com/coral-tools/coralsearch/internal/core/domain"
)

// ExecutionStatus is the lifecycle state of a submitted scan.
// Terminal states are final; there is no retry or resume.
type ExecutionStatus int

const (
	// StatusRunning means the scan is in flight.
	StatusRunning ExecutionStatus = iota

	// StatusCompleted means the scan finished and the result is available.
	// A completed run with zero hits is a normal outcome.
	StatusCompleted

	// StatusFailed means the whole run was aborted (missing root,
	// cancellation). No partial result set is exposed.
	StatusFailed
)

// String returns the status name.
func (s ExecutionStatus) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	default:
		return "failed"
	}
}

// ExecutionHandle is the caller's view of one scan: a live progress feed
// plus the terminal outcome. The write side belongs to the engine; callers
// only read.
type ExecutionHandle struct {
	// ID uniquely identifies the run.
	ID string

	progress chan ProgressEvent
	done     chan struct{}

	mu       sync.RWMutex
	status   ExecutionStatus
	result   domain.ResultSet
	err      error
	warnings []string
}

// NewExecutionHandle creates a running handle with a progress buffer of the
// given size. The engine owns the write side.
func NewExecutionHandle(progressBuffer int) *ExecutionHandle {
	if progressBuffer <= 0 {
		progressBuffer = 256
	}
	return &ExecutionHandle{
		ID:       uuid.New().String(),
		progress: make(chan ProgressEvent, progressBuffer),
		done:     make(chan struct{}),
		status:   StatusRunning,
	}
}

// Progress returns the live feed. It is closed when the run ends.
// Events are ordered best-effort; scanning events may be dropped under
// load so producers never block on a slow consumer.
func (h *ExecutionHandle) Progress() <-chan ProgressEvent { return h.progress }

// Done is closed when the run reaches a terminal state.
func (h *ExecutionHandle) Done() <-chan struct{} { return h.done }

// Status returns the current lifecycle state.
func (h *ExecutionHandle) Status() ExecutionStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

// Result returns the final sorted result set. It returns
// domain.ErrRunNotFinished while running and the run error after a failure.
func (h *ExecutionHandle) Result() (domain.ResultSet, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	switch h.status {
	case StatusCompleted:
		return h.result, nil
	case StatusFailed:
		return nil, h.err
	default:
		return nil, domain.ErrRunNotFinished
	}
}

// Warnings returns the recoverable problems recorded during the run.
// Unlike the live feed these are never dropped.
func (h *ExecutionHandle) Warnings() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, len(h.warnings))
	copy(out, h.warnings)
	return out
}

// Emit publishes an event to the live feed. Warnings and diagnostics are
// also recorded on the handle so they survive feed overflow. Emit never
// blocks: when the buffer is full the event is dropped from the feed.
// Events arriving after the run ended are discarded.
func (h *ExecutionHandle) Emit(ev ProgressEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.status != StatusRunning {
		return
	}
	if ev.Kind == EventWarning || ev.Kind == EventDiagnostic {
		h.warnings = append(h.warnings, ev.Message)
	}
	select {
	case h.progress <- ev:
	default:
	}
}

// Complete moves the handle to StatusCompleted with the final result set.
// It is a no-op if the run already ended.
func (h *ExecutionHandle) Complete(rs domain.ResultSet) {
	h.finish(StatusCompleted, rs, nil)
}

// Fail moves the handle to StatusFailed. It is a no-op if the run already
// ended.
func (h *ExecutionHandle) Fail(err error) {
	h.finish(StatusFailed, nil, err)
}

func (h *ExecutionHandle) finish(status ExecutionStatus, rs domain.ResultSet, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.status != StatusRunning {
		return
	}
	h.status = status
	h.result = rs
	h.err = err
	close(h.progress)
	close(h.done)
}
