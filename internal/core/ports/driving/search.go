package driving

import (
	"context"

	"github.com/coral-tools/coralsearch/internal/core/domain"
)

// SearchService accepts scan requests and runs them off the caller's
// goroutine. Submit never blocks beyond request validation.
type SearchService interface {
	// Submit validates the request and begins a scan. The returned handle
	// carries the live progress feed and, once the run reaches a terminal
	// state, the final result set.
	Submit(ctx context.Context, req domain.SearchRequest) (*ExecutionHandle, error)
}

// EventKind classifies live progress events.
type EventKind int

const (
	// EventScanning reports a path currently being visited. Best-effort:
	// scanning events are rate-limited and may be dropped.
	EventScanning EventKind = iota

	// EventMatch reports a hit as it is found, before aggregation.
	EventMatch

	// EventWarning reports a recoverable problem (unreadable directory,
	// missing extraction tool). Warnings are also recorded on the handle.
	EventWarning

	// EventDiagnostic reports a run-level condition such as an invalid
	// pattern that disabled content matching.
	EventDiagnostic
)

// ProgressEvent is one line of the live feed.
type ProgressEvent struct {
	// Kind classifies the event.
	Kind EventKind

	// Path is the file or directory the event refers to, when applicable.
	Path string

	// Message is the human-readable status line.
	Message string
}
