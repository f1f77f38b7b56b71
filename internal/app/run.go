package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/springgrid/internal/config"
	"github.com/vk/springgrid/internal/ctxlog"
	"github.com/vk/springgrid/internal/executor"
	"github.com/vk/springgrid/internal/fsutil"
	"github.com/vk/springgrid/internal/report"
	"golang.org/x/sync/errgroup"
)

// outcome pairs a puzzle with the summary of its counted lines.
type outcome struct {
	puzzle  *config.Puzzle
	summary *executor.Summary
}

// Run executes the main application logic: it loads the puzzles, counts
// them, prints the totals and publishes the report when one is configured.
// Lines that fail to parse and totals that miss their expectation are
// reported through the returned error after the totals are printed.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, isManifest, err := a.loadModel(ctx)
	if err != nil {
		return err
	}
	if len(model.Puzzles) == 0 {
		return fmt.Errorf("no puzzles found in %s", a.config.InputPath)
	}
	a.logger.Info("Puzzles loaded.", "count", len(model.Puzzles))

	outcomes := make([]outcome, len(model.Puzzles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPuzzles)
	for i, p := range model.Puzzles {
		g.Go(func() error {
			summary, err := a.solvePuzzle(gctx, p)
			if err != nil {
				return fmt.Errorf("puzzle %q: %w", p.Name, err)
			}
			outcomes[i] = outcome{puzzle: p, summary: summary}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, o := range outcomes {
		if isManifest {
			fmt.Fprintf(a.outW, "%s\t%d\n", o.puzzle.Name, o.summary.Total)
		} else {
			fmt.Fprintln(a.outW, o.summary.Total)
		}
	}

	var problems []error
	for _, o := range outcomes {
		if err := a.check(o); err != nil {
			problems = append(problems, err)
		}
	}

	if model.Report != nil {
		if err := a.publish(ctx, *model.Report, outcomes); err != nil {
			problems = append(problems, fmt.Errorf("failed to publish report: %w", err))
		}
	}

	a.logger.Debug("App.Run method finished.", "problems", len(problems))
	return errors.Join(problems...)
}

// solvePuzzle reads a puzzle's lines and counts them on a worker pool.
func (a *App) solvePuzzle(ctx context.Context, p *config.Puzzle) (*executor.Summary, error) {
	ctx, logger := ctxlog.With(ctx, "puzzle", p.Name)

	var lines []fsutil.Line
	if len(p.Records) > 0 {
		lines = fsutil.LinesFromStrings(p.Records)
	} else {
		var err error
		if lines, err = fsutil.ReadLinesFromFile(p.InputPath); err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
	}

	logger.Info("🚀 Counting arrangements...", "lines", len(lines), "folds", p.Folds)
	summary, err := executor.New(a.config.WorkerCount, p.Folds).Run(ctx, lines)
	if err != nil {
		return nil, err
	}
	logger.Info("🏁 Counting finished.", "total", summary.Total, "failed", len(summary.Failed()))
	return summary, nil
}

// check surfaces failed lines and missed expectations of one puzzle.
func (a *App) check(o outcome) error {
	var errs []error
	if failed := o.summary.Failed(); len(failed) > 0 {
		errs = append(errs, fmt.Errorf("puzzle %q: %d of %d lines failed: %w",
			o.puzzle.Name, len(failed), len(o.summary.Results), o.summary.Err()))
	}
	if o.puzzle.Expect != nil && *o.puzzle.Expect != o.summary.Total {
		errs = append(errs, fmt.Errorf("puzzle %q: expected %d arrangements, got %d",
			o.puzzle.Name, *o.puzzle.Expect, o.summary.Total))
	}
	for _, err := range errs {
		a.logger.Error("Puzzle check failed.", "puzzle", o.puzzle.Name, "error", err)
	}
	return errors.Join(errs...)
}

func (a *App) publish(ctx context.Context, r config.Report, outcomes []outcome) error {
	payload := report.Payload{RunID: a.runID}
	for _, o := range outcomes {
		payload.Puzzles = append(payload.Puzzles, report.PuzzleResult{
			Name:   o.puzzle.Name,
			Total:  o.summary.Total,
			Lines:  len(o.summary.Results),
			Failed: len(o.summary.Failed()),
		})
	}
	return a.newPublisher(r).Publish(ctx, payload)
}
