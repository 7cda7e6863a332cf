// Package observability provides OpenTelemetry tracing and metrics integration
// for pipeline runs and processor executions.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("pipekit"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanProcessorExecute)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("pipekit"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("pipekit"))
//	metrics.RecordInstance(ctx, "gaussian_blur", "blur", "completed", duration)
//
// A RunContext ties the two together for one pipeline run: it opens the root
// span, stamps pipeline and run identifiers on it, and reports run metrics
// when the run ends.
package observability
