package executor

import (
	"context"

	"github.com/vk/springgrid/internal/arrangement"
	"github.com/vk/springgrid/internal/ctxlog"
	"github.com/vk/springgrid/internal/fsutil"
	"github.com/vk/springgrid/internal/record"
)

// worker drains the task channel. Each task index owns results[i], so
// workers never write to the same slot.
func (e *Executor) worker(ctx context.Context, tasks <-chan int, lines []fsutil.Line, results []Result, workerID int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for i := range tasks {
		line := lines[i]
		results[i].Line = line

		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		lineLogger := logger.With("workerID", workerID, "line", line.No)

		parsed, err := record.ParseLine(line.No, line.Text)
		if err != nil {
			lineLogger.Error("Line rejected.", "error", err)
			results[i].Err = err
			continue
		}

		parsed = parsed.Unfold(e.folds)
		results[i].Count = arrangement.CountLine(parsed)
		lineLogger.Debug("Line counted.", "cells", parsed.Record.Len(), "unknowns", parsed.Record.Unknowns(), "groups", parsed.Groups.Len(), "count", results[i].Count)
	}

	logger.Debug("Worker finished.", "workerID", workerID)
}
