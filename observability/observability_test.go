package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultConfigs(t *testing.T) {
	tc := DefaultTracerConfig("pipekit")
	if tc.ServiceName != "pipekit" || tc.Endpoint != "localhost:4318" {
		t.Errorf("tracer defaults = %q/%q", tc.ServiceName, tc.Endpoint)
	}
	if tc.SampleRate != 1.0 || !tc.Insecure {
		t.Errorf("tracer defaults: rate=%f insecure=%v", tc.SampleRate, tc.Insecure)
	}

	mc := DefaultMeterConfig("pipekit")
	if mc.ServiceName != "pipekit" || mc.Interval != 15*time.Second {
		t.Errorf("meter defaults = %q/%v", mc.ServiceName, mc.Interval)
	}
	if mc.Environment != "development" || !mc.Insecure {
		t.Errorf("meter defaults: env=%q insecure=%v", mc.Environment, mc.Insecure)
	}
}

func TestSampler(t *testing.T) {
	if got := sampler(1.0).Description(); got != sdktrace.AlwaysSample().Description() {
		t.Errorf("rate 1.0: %s", got)
	}
	if got := sampler(0).Description(); got != sdktrace.NeverSample().Description() {
		t.Errorf("rate 0: %s", got)
	}
	if got := sampler(0.5).Description(); got == sdktrace.AlwaysSample().Description() {
		t.Errorf("rate 0.5 must ratio-sample, got %s", got)
	}
}

func TestNewMetricsRecords(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	// None of these may panic against a noop meter.
	ctx := context.Background()
	metrics.RecordRunStart(ctx, "detect-stars")
	metrics.RecordRunEnd(ctx, "detect-stars", "completed", 100*time.Millisecond)
	metrics.RecordInstance(ctx, "gaussian_blur", "blur", "completed", 50*time.Millisecond)
	metrics.RecordError(ctx, "execution_failed", "runner")
}

func TestRunContextRoundTrip(t *testing.T) {
	rc := NewRunContext("detect-stars", "run-1", nil)
	if rc.PipelineName != "detect-stars" || rc.RunID != "run-1" {
		t.Errorf("run context = %q/%q", rc.PipelineName, rc.RunID)
	}
	if rc.StartTime.IsZero() {
		t.Error("StartTime must be set")
	}

	ctx := WithRunContext(context.Background(), rc)
	if got := RunContextFromContext(ctx); got == nil || got.RunID != "run-1" {
		t.Errorf("RunContextFromContext = %+v", got)
	}
	if got := RunContextFromContext(context.Background()); got != nil {
		t.Errorf("empty context must carry no run context, got %+v", got)
	}
}

func TestRunContextDuration(t *testing.T) {
	rc := NewRunContext("detect-stars", "run-1", nil)
	rc.StartTime = time.Now().Add(-50 * time.Millisecond)

	d := rc.Duration()
	if d < 45*time.Millisecond || d > 200*time.Millisecond {
		t.Errorf("Duration = %v, want around 50ms", d)
	}
}

func TestRunLifecycle(t *testing.T) {
	metrics, _ := NewMetrics(noop.NewMeterProvider().Meter("test"))

	cases := []struct {
		name    string
		metrics *Metrics
		status  string
		err     error
	}{
		{"completed with metrics", metrics, "completed", nil},
		{"failed with metrics", metrics, "failed", fmt.Errorf("blur step failed")},
		{"nil metrics", nil, "completed", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rc := NewRunContext("detect-stars", "run-1", tc.metrics)
			ctx, span := rc.StartSpanForRun(context.Background())
			rc.EndRun(ctx, span, tc.status, tc.err)
		})
	}
}

// withRecordingTracer installs an in-memory SDK tracer for the duration of a
// test so spans actually record.
func withRecordingTracer(t *testing.T) {
	t.Helper()
	prev := otel.GetTracerProvider()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(tracetest.NewInMemoryExporter()))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
}

func TestSetSpanAttribute(t *testing.T) {
	withRecordingTracer(t)

	ctx, span := StartSpan(context.Background(), "attrs")
	defer span.End()

	SetSpanAttribute(ctx, "step", "blur")
	SetSpanAttribute(ctx, "iteration", 4)
	SetSpanAttribute(ctx, "records", int64(12))
	SetSpanAttribute(ctx, "sigma", 2.5)
	SetSpanAttribute(ctx, "expanded", true)
	SetSpanAttribute(ctx, "links", []string{"blur.out", "threshold.mask"})

	// Unsupported types are silently skipped.
	SetSpanAttribute(ctx, "odd", struct{}{})
}

func TestSetSpanAttributeNoSpan(t *testing.T) {
	SetSpanAttribute(context.Background(), "step", "blur")
}

func TestSetSpanError(t *testing.T) {
	withRecordingTracer(t)

	ctx, span := StartSpan(context.Background(), "failing")
	defer span.End()
	SetSpanError(ctx, fmt.Errorf("output frame missing"))

	// No recording span: must be a no-op, not a panic.
	SetSpanError(context.Background(), fmt.Errorf("ignored"))
}

func TestInitTracer(t *testing.T) {
	cases := []struct {
		name string
		cfg  TracerConfig
	}{
		{"defaults", DefaultTracerConfig("pipekit-test")},
		{"never sample", TracerConfig{ServiceName: "pipekit-test", ServiceVersion: "1.0.0", Environment: "test", Endpoint: "localhost:4318", Insecure: true, SampleRate: 0}},
		{"ratio sample", TracerConfig{ServiceName: "pipekit-test", ServiceVersion: "1.0.0", Environment: "test", Endpoint: "localhost:4318", Insecure: true, SampleRate: 0.5}},
		{"secure", TracerConfig{ServiceName: "pipekit-test", ServiceVersion: "1.0.0", Environment: "test", Endpoint: "localhost:4318", SampleRate: 1.0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tp, err := InitTracer(context.Background(), tc.cfg)
			if err != nil {
				t.Skipf("InitTracer: %v", err)
			}
			defer tp.Shutdown(context.Background())
		})
	}
}

func TestInitMeter(t *testing.T) {
	cases := []struct {
		name string
		cfg  MeterConfig
	}{
		{"defaults", DefaultMeterConfig("pipekit-test")},
		{"secure no interval", MeterConfig{ServiceName: "pipekit-test", ServiceVersion: "1.0.0", Environment: "test", Endpoint: "localhost:4318"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mp, err := InitMeter(context.Background(), tc.cfg)
			if err != nil {
				t.Skipf("InitMeter: %v", err)
			}
			defer mp.Shutdown(context.Background())
		})
	}
}
