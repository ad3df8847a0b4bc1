// Package filesystem provides the tree traversal feeding the search engine.
// The walker holds no matching logic; it is pure enumeration gated by the
// path filter.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coral-tools/coralsearch/internal/core/domain"
	"github.com/coral-tools/coralsearch/internal/filter"
)

// Candidate is one non-pruned filesystem entry streamed to the matchers.
type Candidate struct {
	// Path is the absolute path of the entry.
	Path string

	// IsDir marks directories, which are only eligible for filename search.
	IsDir bool
}

// WalkError reports a subtree that could not be read. Fatal is set only
// when the root itself is unreadable, which aborts the run.
type WalkError struct {
	Path  string
	Err   error
	Fatal bool
}

// Error implements the error interface.
func (e *WalkError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying error for errors.Is checks.
func (e *WalkError) Unwrap() error { return e.Err }

// Walker enumerates a directory tree depth-first, pruning excluded
// subtrees before they are entered.
type Walker struct {
	root   string
	filter *filter.PathFilter
}

// NewWalker creates a walker rooted at root, gated by f.
func NewWalker(root string, f *filter.PathFilter) *Walker {
	return &Walker{root: root, filter: f}
}

// Validate checks that the root exists and is a readable directory.
func (w *Walker) Validate() error {
	info, err := os.Stat(w.root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", domain.ErrRootNotFound, w.root)
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrRootUnreadable, w.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrRootNotFound, w.root)
	}
	return nil
}

// Walk streams candidates and per-subtree errors over channels, in the
// same shape the rest of the engine consumes sync feeds. Both channels are
// closed when traversal finishes. Unreadable directories are reported and
// skipped; traversal continues for their siblings. Cancelling the context
// stops the walk.
func (w *Walker) Walk(ctx context.Context) (<-chan Candidate, <-chan *WalkError) {
	candidates := make(chan Candidate, 64)
	errs := make(chan *WalkError, 16)

	go func() {
		defer close(candidates)
		defer close(errs)
		w.walkDir(ctx, w.root, true, candidates, errs)
	}()

	return candidates, errs
}

func (w *Walker) walkDir(ctx context.Context, dir string, isRoot bool, candidates chan<- Candidate, errs chan<- *WalkError) {
	if ctx.Err() != nil {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		select {
		case errs <- &WalkError{Path: dir, Err: err, Fatal: isRoot}:
		case <-ctx.Done():
		}
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if w.filter.ShouldPrune(path) {
				continue
			}
			select {
			case candidates <- Candidate{Path: path, IsDir: true}:
			case <-ctx.Done():
				return
			}
			w.walkDir(ctx, path, false, candidates, errs)
			continue
		}

		if w.filter.Excluded(path) {
			continue
		}
		select {
		case candidates <- Candidate{Path: path, IsDir: false}:
		case <-ctx.Done():
			return
		}
	}
}
