// Package observability provides OpenTelemetry tracing and metrics for the
// collection engine.
//
// Tracing:
//
//	cfg := observability.DefaultTracerConfig("rddtutorial")
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mcfg := observability.DefaultMeterConfig("rddtutorial")
//	mp, err := observability.InitMeter(ctx, &mcfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewStageMetrics(observability.Meter(observability.InstrumentationName))
//
// Stages:
//
//	ctx, run := observability.StartStage(ctx, tracer, "map", metrics)
//	run.End(ctx, records, "", err)
package observability
