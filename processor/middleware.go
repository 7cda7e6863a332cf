package processor

import (
	"context"
	"time"

	"github.com/asterion-dev/pipekit/logger"
	"github.com/asterion-dev/pipekit/observability"
)

// WithTracing wraps a Processor with OpenTelemetry span creation.
// Each execution creates a "processor.execute" span carrying the
// processor, step, and instance identifiers.
func WithTracing(p Processor) Processor {
	return &tracingProcessor{inner: p}
}

type tracingProcessor struct {
	inner Processor
}

func (p *tracingProcessor) ID() string { return p.inner.ID() }

func (p *tracingProcessor) Execute(ctx context.Context, exec *Exec) error {
	ctx, span := observability.StartSpan(ctx, observability.SpanProcessorExecute)
	defer span.End()

	observability.SetSpanAttribute(ctx, observability.AttrProcessorID, p.inner.ID())
	observability.SetSpanAttribute(ctx, observability.AttrStepID, exec.StepID)
	observability.SetSpanAttribute(ctx, observability.AttrInstanceID, exec.InstanceID)

	err := p.inner.Execute(ctx, exec)
	if err != nil {
		observability.SetSpanError(ctx, err)
	}

	return err
}

// WithMetrics wraps a Processor with metric recording.
// Records instance count, duration, and errors.
func WithMetrics(p Processor, metrics *observability.Metrics) Processor {
	return &metricsProcessor{inner: p, metrics: metrics}
}

type metricsProcessor struct {
	inner   Processor
	metrics *observability.Metrics
}

func (p *metricsProcessor) ID() string { return p.inner.ID() }

func (p *metricsProcessor) Execute(ctx context.Context, exec *Exec) error {
	start := time.Now()
	err := p.inner.Execute(ctx, exec)
	duration := time.Since(start)

	status := "completed"
	if err != nil {
		status = "failed"
		p.metrics.RecordError(ctx, "execute", p.inner.ID())
	}
	p.metrics.RecordInstance(ctx, p.inner.ID(), exec.StepID, status, duration)

	return err
}

// WithLogging wraps a Processor with execution logging.
// Logs processor id, step, instance, duration, and success/error status.
func WithLogging(p Processor, log *logger.Logger) Processor {
	return &loggingProcessor{inner: p, log: log}
}

type loggingProcessor struct {
	inner Processor
	log   *logger.Logger
}

func (p *loggingProcessor) ID() string { return p.inner.ID() }

func (p *loggingProcessor) Execute(ctx context.Context, exec *Exec) error {
	start := time.Now()
	err := p.inner.Execute(ctx, exec)
	duration := time.Since(start)

	fields := map[string]interface{}{
		logger.FieldProcessor:  p.inner.ID(),
		logger.FieldStepID:     exec.StepID,
		logger.FieldInstanceID: exec.InstanceID,
		logger.FieldDuration:   duration.Milliseconds(),
	}

	if err != nil {
		fields[logger.FieldError] = err.Error()
		p.log.Error("processor failed", fields)
	} else {
		p.log.Debug("processor completed", fields)
	}

	return err
}
