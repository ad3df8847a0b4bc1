// Package services implements the search engine behind the driving ports:
// walking, matching, aggregation and run orchestration.
package services

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/coral-tools/coralsearch/internal/connectors/filesystem"
	"github.com/coral-tools/coralsearch/internal/core/domain"
	"github.com/coral-tools/coralsearch/internal/core/ports/driven"
	"github.com/coral-tools/coralsearch/internal/core/ports/driving"
	"github.com/coral-tools/coralsearch/internal/filter"
	"github.com/coral-tools/coralsearch/internal/logger"
)

// Ensure Orchestrator implements the interface.
var _ driving.SearchService = (*Orchestrator)(nil)

// scanEventsPerSecond throttles the live scanning feed so large trees do
// not flood the consumer. Matches, warnings and diagnostics are never
// throttled.
const scanEventsPerSecond = 30

// Orchestrator runs scans off the caller's goroutine and reports through
// the execution handle's two channels: live progress and final result.
type Orchestrator struct {
	extractor      driven.TextExtractor
	workers        int
	progressBuffer int
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithWorkers overrides the content-matching concurrency.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithProgressBuffer overrides the live feed buffer size.
func WithProgressBuffer(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.progressBuffer = n
		}
	}
}

// NewOrchestrator creates an orchestrator using the given PDF text
// extractor.
func NewOrchestrator(extractor driven.TextExtractor, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		extractor:      extractor,
		workers:        runtime.NumCPU(),
		progressBuffer: 256,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Submit validates the request and starts the scan. It never blocks beyond
// validation: the returned handle is already running, or already failed
// when the root directory is missing or unreadable.
func (o *Orchestrator) Submit(ctx context.Context, req domain.SearchRequest) (*driving.ExecutionHandle, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pathFilter, err := filter.New(req.ExcludePatterns, req.IncludePatterns)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	handle := driving.NewExecutionHandle(o.progressBuffer)
	walker := filesystem.NewWalker(req.RootDir, pathFilter)

	if err := walker.Validate(); err != nil {
		handle.Fail(err)
		return handle, nil
	}

	// A malformed regex term is not fatal: content matching is disabled
	// for the run and filename search still proceeds.
	pattern, compileErr := domain.Compile(req.Mode, req.Term)

	logger.Info("Starting search %s: term=%q mode=%s root=%s", handle.ID, req.Term, req.Mode.Label(), req.RootDir)
	go o.run(ctx, req, walker, pathFilter, pattern, compileErr, handle)

	return handle, nil
}

//nolint:gocyclo // Orchestration function with necessary sequential steps
func (o *Orchestrator) run(
	ctx context.Context,
	req domain.SearchRequest,
	walker *filesystem.Walker,
	pathFilter *filter.PathFilter,
	pattern *domain.CompiledPattern,
	compileErr error,
	handle *driving.ExecutionHandle,
) {
	if compileErr != nil {
		handle.Emit(driving.ProgressEvent{
			Kind:    driving.EventDiagnostic,
			Message: fmt.Sprintf("invalid %s pattern %q: content matching disabled for this run", req.Mode.Label(), req.Term),
		})
		logger.Warn("Pattern compile failed: %v", compileErr)
	}

	candidates, walkErrs := walker.Walk(ctx)

	// Single-writer aggregation: producers enqueue hits, one consumer
	// owns the path mapping.
	hits := make(chan domain.SearchHit, 256)
	agg := newAggregator()
	aggDone := make(chan struct{})
	go func() {
		defer close(aggDone)
		for hit := range hits {
			agg.apply(hit)
		}
	}()

	var fatal error
	walkErrsDone := make(chan struct{})
	go func() {
		defer close(walkErrsDone)
		for we := range walkErrs {
			if we.Fatal {
				fatal = fmt.Errorf("%w: %v", domain.ErrRootUnreadable, we.Err)
				continue
			}
			handle.Emit(driving.ProgressEvent{
				Kind:    driving.EventWarning,
				Path:    we.Path,
				Message: fmt.Sprintf("skipping %s: %v", we.Path, we.Err),
			})
		}
	}()

	emitHit := func(hit domain.SearchHit) {
		handle.Emit(driving.ProgressEvent{
			Kind:    driving.EventMatch,
			Path:    hit.Path,
			Message: fmt.Sprintf("match (%s): %s", hit.Origin, hit.Path),
		})
		hits <- hit
	}

	matcher := &contentMatcher{pattern: pattern, extractor: o.extractor}
	scanLimiter := rate.NewLimiter(rate.Limit(scanEventsPerSecond), 1)

	// pdfGate decides once per run whether PDFs can be searched.
	var pdfOnce sync.Once
	var pdfAvailable bool
	pdfGate := func() bool {
		pdfOnce.Do(func() {
			pdfAvailable = o.extractor != nil && o.extractor.Available(ctx)
			if !pdfAvailable {
				hint := ""
				if o.extractor != nil {
					hint = " To enable PDF searching, run: " + o.extractor.InstallHint()
				}
				handle.Emit(driving.ProgressEvent{
					Kind:    driving.EventWarning,
					Message: "pdftotext not found. PDF files will not be searched." + hint,
				})
			}
		})
		return pdfAvailable
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(o.workers)

	for cand := range candidates {
		if scanLimiter.Allow() {
			handle.Emit(driving.ProgressEvent{
				Kind:    driving.EventScanning,
				Path:    cand.Path,
				Message: "scanning " + cand.Path,
			})
		}

		// Filename matching covers every non-pruned file and directory,
		// regardless of mode and of include patterns.
		if domain.MatchName(req.Term, filepath.Base(cand.Path)) {
			emitHit(domain.SearchHit{Path: cand.Path, Origin: domain.OriginFilename})
		}

		if cand.IsDir || compileErr != nil || !pathFilter.ContentEligible(cand.Path) {
			continue
		}

		path := cand.Path
		group.Go(func() error {
			kind := classifyFile(path)
			if kind == domain.KindPDF && !pdfGate() {
				return nil
			}
			if err := matcher.matchFile(groupCtx, path, kind, emitHit); err != nil {
				if groupCtx.Err() != nil {
					return nil
				}
				handle.Emit(driving.ProgressEvent{
					Kind:    driving.EventWarning,
					Path:    path,
					Message: fmt.Sprintf("skipping %s: %v", path, err),
				})
			}
			return nil
		})
	}

	_ = group.Wait()
	<-walkErrsDone
	close(hits)
	<-aggDone

	switch {
	case ctx.Err() != nil:
		logger.Warn("Search %s cancelled: %v", handle.ID, ctx.Err())
		handle.Fail(ctx.Err())
	case fatal != nil:
		logger.Warn("Search %s failed: %v", handle.ID, fatal)
		handle.Fail(fatal)
	default:
		rs := agg.resultSet()
		logger.Info("Search %s complete: %d unique paths", handle.ID, len(rs))
		handle.Complete(rs)
	}
}
