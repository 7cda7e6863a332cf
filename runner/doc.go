// Package runner provides the pipeline scheduler: it seeds the Data Store
// from caller inputs, instantiates and wires one process instance per step,
// fans collection inputs out into per-item instances, and drives the
// ready/execute/publish loop until the run settles.
//
// Instances found ready in the same iteration run concurrently, bounded by
// a bulkhead; the loop resumes as soon as any one completes so newly
// published data unblocks dependents without waiting for the whole batch.
// Fatal errors abort the run; non-fatal errors fail only their own instance
// and are surfaced through the Result.
//
//	r := runner.New(runner.Config{MaxConcurrent: 4})
//	res, err := r.Execute(ctx, pipeline, seeds, params, device.CPU(), registry)
package runner
