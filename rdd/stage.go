package rdd

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/rddkit/errors"
	"github.com/kbukum/rddkit/logger"
	"github.com/kbukum/rddkit/observability"
	"github.com/kbukum/rddkit/pipeline"
)

// Stage names recorded in lineage, logs, spans and metrics.
const (
	OpParallelize = "parallelize"
	OpEmpty       = "empty"
	OpMap         = "map"
	OpFlatMap     = "flatMap"
	OpFilter      = "filter"
	OpSortBy      = "sortBy"
	OpTakeOrdered = "takeOrdered"
	OpTop         = "top"
	OpReduce      = "reduce"
)

// stageResult describes what a stage produced, for reporting.
type stageResult struct {
	id         string
	partitions int
	records    int
}

// execute runs body as stage op on sc. It refuses to run on a stopped
// context or a canceled ctx, turns panics and errors from user functions
// into STAGE_FAILED, and reports the outcome to the logger, tracer and
// metrics. On failure the zero R is returned.
func execute[R any](ctx context.Context, sc *Context, op string, parent *Lineage, body func(context.Context) (R, stageResult, error)) (R, error) {
	var zero R
	if err := sc.checkRunning(); err != nil {
		return zero, err
	}
	if err := ctx.Err(); err != nil {
		return zero, errors.Canceled(op, err)
	}

	var attrs []attribute.KeyValue
	if parent != nil {
		attrs = append(attrs,
			attribute.String(observability.AttrParentID, parent.ID),
			attribute.Int(observability.AttrPartitions, parent.Partitions),
		)
	}
	ctx, run := observability.StartStage(ctx, sc.tracer, op, sc.metrics, attrs...)

	out, res, err := guard(ctx, body)
	log := sc.log.WithContext(ctx)
	if err != nil {
		appErr := stageError(op, err)
		run.End(ctx, 0, string(appErr.Code), appErr)
		fields := logger.Fields(logger.FieldStage, op, "code", string(appErr.Code))
		if parent != nil {
			fields[logger.FieldParentID] = parent.ID
			appErr.WithDetail(logger.FieldParentID, parent.ID)
		}
		log.Warn("stage failed", logger.MergeWithDuration(logger.MergeWithError(fields, appErr), run.Duration()))
		return zero, appErr
	}
	run.End(ctx, res.records, "", nil)

	if log.Enabled(zerolog.DebugLevel) {
		fields := logger.Fields(
			logger.FieldStage, op,
			logger.FieldCollectionID, res.id,
			logger.FieldPartitions, res.partitions,
			logger.FieldRecords, res.records,
		)
		if parent != nil {
			fields[logger.FieldParentID] = parent.ID
		}
		log.Debug("stage finished", logger.MergeWithDuration(fields, run.Duration()))
	}
	return out, nil
}

// guard calls body, converting a panic into an error.
func guard[R any](ctx context.Context, body func(context.Context) (R, stageResult, error)) (out R, res stageResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero R
			out, res = zero, stageResult{}
			if e, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", e)
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return body(ctx)
}

// stageError classifies an error raised while a stage ran.
func stageError(op string, err error) *errors.AppError {
	if appErr, ok := errors.AsAppError(err); ok {
		switch appErr.Code {
		case errors.ErrCodeStageFailed, errors.ErrCodeCanceled, errors.ErrCodeContextStopped, errors.ErrCodeEmptyCollection:
			return appErr
		}
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Canceled(op, err)
	}
	return errors.StageFailed(op, err)
}

// derive runs a stage that maps every partition of c through build and
// returns the resulting collection. Partition count is preserved.
func derive[T, U any](ctx context.Context, c *Collection[T], op string, build func(*pipeline.Pipeline[T]) *pipeline.Pipeline[U]) (*Collection[U], error) {
	return execute(ctx, c.sc, op, c.lineage, func(ctx context.Context) (*Collection[U], stageResult, error) {
		parts := make([][]U, len(c.partitions))
		for i, p := range c.partitions {
			out, err := pipeline.Collect(ctx, build(pipeline.FromSlice(p)))
			if err != nil {
				return nil, stageResult{}, err
			}
			parts[i] = out
		}
		nc := newCollection(c.sc, op, c.lineage, parts)
		return nc, nc.result(), nil
	})
}

func (c *Collection[T]) result() stageResult {
	return stageResult{id: c.ID(), partitions: c.NumPartitions(), records: c.Count()}
}
