package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/asterion-dev/pipekit/device"
	apperrors "github.com/asterion-dev/pipekit/errors"
	"github.com/asterion-dev/pipekit/graph"
	"github.com/asterion-dev/pipekit/logger"
	"github.com/asterion-dev/pipekit/observability"
	"github.com/asterion-dev/pipekit/param"
	"github.com/asterion-dev/pipekit/process"
	"github.com/asterion-dev/pipekit/processor"
	"github.com/asterion-dev/pipekit/resilience"
)

// Config tunes a Runner.
type Config struct {
	// MaxIterations bounds the scheduling loop. A run that has not settled
	// within the bound aborts with an iteration-ceiling error.
	MaxIterations int
	// MaxConcurrent bounds the number of concurrently executing instances.
	MaxConcurrent int
	// Logger receives scheduling and execution events. Defaults to a
	// "runner" component logger.
	Logger *logger.Logger
	// Metrics, when set, records run and instance measurements.
	Metrics *observability.Metrics
}

// DefaultConfig returns the runner defaults.
func DefaultConfig() Config {
	return Config{
		MaxIterations: 1000,
		MaxConcurrent: 8,
	}
}

// Runner schedules and executes pipeline runs. A single Runner may serve
// concurrent Execute calls; they share its concurrency budget.
type Runner struct {
	config   Config
	log      *logger.Logger
	bulkhead *resilience.Bulkhead
}

// New creates a Runner. Zero config fields fall back to DefaultConfig.
func New(config Config) *Runner {
	def := DefaultConfig()
	if config.MaxIterations <= 0 {
		config.MaxIterations = def.MaxIterations
	}
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = def.MaxConcurrent
	}
	log := config.Logger
	if log == nil {
		log = logger.Get("runner")
	}
	return &Runner{
		config: config,
		log:    log,
		bulkhead: resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          "runner",
			MaxConcurrent: config.MaxConcurrent,
		}),
	}
}

// Execute runs a pipeline to completion: validate, seed, wire, schedule.
// It returns the full Data Store contents and the instance report, or the
// first fatal error. Non-fatal instance failures never abort the run; they
// are surfaced through the Result.
func (r *Runner) Execute(ctx context.Context, p *graph.Pipeline, seeds map[string]any, params param.Map, dev device.Context, reg *processor.Registry) (res *Result, err error) {
	if p == nil {
		return nil, apperrors.Configuration("a pipeline is required")
	}
	if reg == nil {
		return nil, apperrors.Configuration("a processor registry is required")
	}

	start := time.Now()
	runID := uuid.NewString()
	ctx = logger.ContextWithRunID(ctx, runID)
	log := r.log.WithContext(ctx).WithFields(logger.Fields("pipeline", p.Name))

	rc := observability.NewRunContext(p.Name, runID, r.config.Metrics)
	ctx = observability.WithRunContext(ctx, rc)
	ctx, span := rc.StartSpanForRun(ctx)
	if dev != nil {
		observability.SetSpanAttribute(ctx, observability.AttrDeviceName, dev.Name())
	}
	defer func() {
		status := "completed"
		if err != nil {
			status = "failed"
		}
		rc.EndRun(ctx, span, status, err)
	}()

	if err = graph.Validate(p); err != nil {
		return nil, err
	}

	st := newRun(p, params, dev, reg, log)
	if err = st.seed(seeds); err != nil {
		return nil, err
	}
	if err = st.wire(); err != nil {
		return nil, err
	}

	log.Info("pipeline run started", logger.Fields(
		"steps", len(p.Steps),
		"seeds", len(seeds),
	))

	if err = r.runLoop(ctx, st); err != nil {
		log.Error("pipeline run aborted", logger.Fields(logger.FieldError, err.Error()))
		return nil, err
	}

	res = newResult(p.Name, runID, st.records.All(), st.instances.All(), st.blocked, st.unexpanded(), time.Since(start))
	log.Info("pipeline run finished", logger.Fields(
		"completed", len(res.Completed()),
		"failed", len(res.Failed()),
		"pending", len(res.Pending()),
		"records", len(res.Records),
		logger.FieldDuration, res.Duration.Milliseconds(),
	))
	return res, nil
}

// outcome is what an executing instance reports back to the scheduling loop.
type outcome struct {
	instanceID string
	stepID     string
	// fatal aborts the run; non-fatal failures are already recorded on the
	// instance by the time the outcome is sent.
	fatal error
}

// runLoop drives ready instances to completion. Each iteration expands
// pending fan-outs, recomputes the ready set, launches every launchable
// instance, and blocks until at least one in-flight instance finishes, so
// freshly published data unblocks dependents without waiting for the whole
// batch. The loop stops once an iteration makes no progress with nothing in
// flight; running out of iterations first is a configuration signal.
func (r *Runner) runLoop(ctx context.Context, st *run) error {
	results := make(chan outcome)
	inFlight := 0

	// drain waits out every in-flight instance so the stores are settled
	// before the loop returns.
	drain := func() {
		for inFlight > 0 {
			<-results
			inFlight--
		}
	}

	started := make(map[string]bool)
	settled := false

	for iter := 0; iter < r.config.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			drain()
			return err
		}

		expanded, err := st.expandFanouts()
		if err != nil {
			drain()
			return err
		}

		ready := st.instances.ReadyPending(st.records, started)

		var launchable []process.Instance
		for _, in := range ready {
			if _, ok := st.registry.Lookup(in.ProcessorID); !ok {
				if _, seen := st.blocked[in.ID]; !seen {
					st.blocked[in.ID] = in.ProcessorID
					st.log.Warn("no processor registered, instance permanently blocked", logger.Fields(
						logger.FieldStepID, in.StepID,
						logger.FieldInstanceID, in.ID,
						logger.FieldProcessor, in.ProcessorID,
					))
				}
				continue
			}
			launchable = append(launchable, in)
		}

		st.log.Debug("scheduling iteration", logger.Fields(
			logger.FieldIteration, iter,
			"ready", len(ready),
			"launching", len(launchable),
			"in_flight", inFlight,
		))

		for _, in := range launchable {
			if err := r.bulkhead.AcquireSlot(ctx); err != nil {
				drain()
				return err
			}
			if err := st.instances.SetStatus(in.ID, process.StatusRunning); err != nil {
				r.bulkhead.ReleaseSlot()
				drain()
				return apperrors.Internal(err)
			}
			started[in.ID] = true
			inFlight++
			go func(in process.Instance) {
				out := r.executeInstance(ctx, st, in)
				r.bulkhead.ReleaseSlot()
				results <- out
			}(in)
		}

		progress := expanded || len(launchable) > 0

		if inFlight > 0 {
			out := <-results
			inFlight--
			if out.fatal != nil {
				drain()
				return out.fatal
			}
			progress = true
			// Collect whatever else finished in the meantime, without
			// waiting for the stragglers.
			for more := inFlight > 0; more; {
				select {
				case out := <-results:
					inFlight--
					if out.fatal != nil {
						drain()
						return out.fatal
					}
					more = inFlight > 0
				default:
					more = false
				}
			}
		}

		if !progress && inFlight == 0 {
			settled = true
			break
		}
	}

	if !settled {
		drain()
		return apperrors.IterationCeiling(r.config.MaxIterations)
	}
	return nil
}

// executeInstance resolves inputs, invokes the processor, and publishes the
// declared outputs. Non-fatal failures are recorded on the instance here;
// only fatal errors travel back through the outcome.
func (r *Runner) executeInstance(ctx context.Context, st *run, in process.Instance) outcome {
	out := outcome{instanceID: in.ID, stepID: in.StepID}

	inputs := make(map[string]any, len(in.Inputs))
	for _, l := range in.Inputs {
		rec, ok := st.records.FindByLink(l)
		if !ok || !rec.Instantiated {
			r.failInstance(st, in, apperrors.MissingInput(l.Name))
			return out
		}
		inputs[l.Name] = rec.Payload
	}

	ports := make([]string, len(in.Outputs))
	for i, l := range in.Outputs {
		ports[i] = l.Name
	}

	p, ok := st.registry.Lookup(in.ProcessorID)
	if !ok {
		out.fatal = apperrors.Internal(fmt.Errorf("processor %q disappeared from the registry", in.ProcessorID))
		_ = st.instances.Fail(in.ID, out.fatal.Error())
		return out
	}

	exec := processor.NewExec(in.ID, in.StepID, st.device, in.Params, inputs, ports)
	if err := r.instrument(p, st.log).Execute(ctx, exec); err != nil {
		if apperrors.IsFatal(err) {
			_ = st.instances.Fail(in.ID, err.Error())
			out.fatal = err
			return out
		}
		r.failInstance(st, in, err)
		return out
	}

	// Check every declared output before publishing any, so a partially
	// filled instance publishes nothing.
	values := make([]any, len(in.Outputs))
	for i, l := range in.Outputs {
		v, ok := exec.Output(l.Name)
		if !ok {
			r.failInstance(st, in, apperrors.OutputUnset(l.Name))
			return out
		}
		values[i] = v
	}

	for i, l := range in.Outputs {
		rec, ok := st.records.FindByLink(l)
		if !ok {
			out.fatal = apperrors.Internal(fmt.Errorf("no placeholder record for output %s", l.LinkID))
			_ = st.instances.Fail(in.ID, out.fatal.Error())
			return out
		}
		// Publish through the store's in-place mutator: the loop goroutine
		// may be attaching consumers to this record at the same time.
		if err := st.records.Instantiate(rec.ID, values[i]); err != nil {
			out.fatal = apperrors.Internal(err)
			_ = st.instances.Fail(in.ID, out.fatal.Error())
			return out
		}
		st.log.Debug("output published", logger.Fields(
			logger.FieldStepID, in.StepID,
			logger.FieldLink, string(l.LinkID),
			logger.FieldRecordID, rec.ID,
		))
	}

	if err := st.instances.Complete(in.ID); err != nil {
		out.fatal = apperrors.Internal(err)
		return out
	}
	return out
}

// failInstance records a non-fatal failure, wrapping plain processor errors
// so the failure reason carries an error code.
func (r *Runner) failInstance(st *run, in process.Instance, err error) {
	perr, ok := apperrors.AsError(err)
	if !ok {
		perr = apperrors.ExecutionFailed(in.StepID, err)
	}
	if ferr := st.instances.Fail(in.ID, perr.Error()); ferr != nil {
		st.log.WithError(ferr).Error("could not record instance failure")
	}
	st.log.WithStep(in.StepID).Warn("instance failed", logger.Fields(
		logger.FieldInstanceID, in.ID,
		logger.FieldError, perr.Error(),
	))
}

// instrument layers the standard middleware around a processor for one
// execution, logging under the run-scoped logger.
func (r *Runner) instrument(p processor.Processor, log *logger.Logger) processor.Processor {
	p = processor.WithTracing(p)
	if r.config.Metrics != nil {
		p = processor.WithMetrics(p, r.config.Metrics)
	}
	return processor.WithLogging(p, log)
}
