package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Status values recorded on stage spans and metrics.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// StageRun tracks a single stage execution: one span plus the metric
// recording done when it ends. A nil Metrics skips metric recording.
type StageRun struct {
	Op        string
	StartTime time.Time
	Metrics   *StageMetrics

	span trace.Span
}

// StartStage opens a span named "rdd.<op>" on tracer and returns the run
// handle that ends it.
func StartStage(ctx context.Context, tracer trace.Tracer, op string, metrics *StageMetrics, attrs ...attribute.KeyValue) (context.Context, *StageRun) {
	ctx, span := tracer.Start(ctx, "rdd."+op, trace.WithAttributes(
		append([]attribute.KeyValue{attribute.String(AttrStageOp, op)}, attrs...)...,
	))
	return ctx, &StageRun{
		Op:        op,
		StartTime: time.Now(),
		Metrics:   metrics,
		span:      span,
	}
}

// End closes the span and records the stage outcome. code is the error code
// recorded for failures and is ignored when err is nil.
func (r *StageRun) End(ctx context.Context, records int, code string, err error) {
	duration := r.Duration()
	status := StatusOK
	if err != nil {
		status = StatusError
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, err.Error())
		r.span.SetAttributes(attribute.String(AttrErrorCode, code))
	}
	r.span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int(AttrRecords, records),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	r.span.End()

	if r.Metrics != nil {
		r.Metrics.RecordStage(ctx, r.Op, status, records, duration)
		if err != nil {
			r.Metrics.RecordError(ctx, r.Op, code)
		}
	}
}

// Duration returns the elapsed time since the stage started.
func (r *StageRun) Duration() time.Duration {
	return time.Since(r.StartTime)
}
