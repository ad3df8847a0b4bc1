package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates a malformed or incomplete search request.
	// Submitting an empty term or an empty root is a caller bug, not a
	// runtime condition the engine recovers from.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRootNotFound indicates the requested root directory does not exist.
	ErrRootNotFound = errors.New("root directory not found")

	// ErrRootUnreadable indicates the root directory exists but cannot be read.
	// This aborts the whole run; unreadable subdirectories do not.
	ErrRootUnreadable = errors.New("root directory unreadable")

	// ErrInvalidPattern indicates the search term is not a valid expression
	// under the selected regex dialect.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidGlob indicates an exclude or include glob could not be compiled.
	ErrInvalidGlob = errors.New("invalid glob pattern")

	// ErrExtractorUnavailable indicates the PDF text-extraction tool is not
	// installed. PDFs are skipped for the remainder of the run.
	ErrExtractorUnavailable = errors.New("text extractor unavailable")

	// ErrRunNotFinished indicates a result was requested before the run
	// reached a terminal state.
	ErrRunNotFinished = errors.New("run not finished")

	// ErrUnknownMode indicates an unrecognised search mode name.
	ErrUnknownMode = errors.New("unknown search mode")
)
