// Package executor runs the arrangement counter over every line of a puzzle
// on a fixed pool of workers and reduces the per-line counts into a Summary.
//
// Lines are independent: each worker parses, optionally unfolds, and counts
// its line with a private memo table, then writes the outcome into the
// line's own result slot. The only synchronization point is the wait for all
// workers before the counts are summed.
package executor

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/vk/springgrid/internal/ctxlog"
	"github.com/vk/springgrid/internal/fsutil"
)

// Executor counts arrangements for a batch of lines.
type Executor struct {
	numWorkers int
	folds      int
}

// New creates an executor with the given pool size and fold count. A
// numWorkers of zero or less uses one worker per CPU; folds of one or less
// counts lines as written.
func New(numWorkers, folds int) *Executor {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Executor{numWorkers: numWorkers, folds: folds}
}

// Result is the outcome for one input line.
type Result struct {
	Line  fsutil.Line
	Count uint64
	Err   error
}

// Summary is the reduction of all line results, in input order.
type Summary struct {
	Total   uint64
	Results []Result
}

// Failed returns the results of lines that could not be counted.
func (s *Summary) Failed() []Result {
	var failed []Result
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// Err joins the errors of every failed line, or returns nil.
func (s *Summary) Err() error {
	var errs []error
	for _, r := range s.Failed() {
		errs = append(errs, r.Err)
	}
	return errors.Join(errs...)
}

// Run counts every line and sums the counts of the lines that succeeded.
// Malformed lines are reported in the Summary and contribute nothing to the
// total. The returned error is non-nil only when ctx was cancelled before
// every line finished.
func (e *Executor) Run(ctx context.Context, lines []fsutil.Line) (*Summary, error) {
	logger := ctxlog.FromContext(ctx)

	summary := &Summary{Results: make([]Result, len(lines))}
	if len(lines) == 0 {
		logger.Warn("No lines to count.")
		return summary, nil
	}

	tasks := make(chan int, len(lines))
	for i := range lines {
		tasks <- i
	}
	close(tasks)

	numWorkers := min(e.numWorkers, len(lines))
	logger.Debug("Starting worker pool.", "workers", numWorkers, "lines", len(lines), "folds", e.folds)

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func(workerID int) {
			defer wg.Done()
			e.worker(ctx, tasks, lines, summary.Results, workerID)
		}(i)
	}
	wg.Wait()

	for _, r := range summary.Results {
		if r.Err == nil {
			summary.Total += r.Count
		}
	}

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("counting interrupted: %w", err)
	}

	logger.Debug("All lines counted.", "total", summary.Total, "failed", len(summary.Failed()))
	return summary, nil
}
