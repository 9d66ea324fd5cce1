// Package observability provides OpenTelemetry tracing and metrics for
// pipeline runs.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("fnstat"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanPipelineRun)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("fnstat"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("fnstat"))
//	metrics.RecordRun(ctx, "stats", observability.StatusOK, duration)
//
// Without Init* calls the otel globals are no-ops, so instrumented code
// costs nothing when telemetry is not configured.
package observability
