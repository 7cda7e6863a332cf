package runner

import (
	"time"

	"github.com/asterion-dev/pipekit/data"
	"github.com/asterion-dev/pipekit/process"
)

// Result is the outcome of one pipeline run: the full Data Store contents,
// every instance with its status history, and a key index for convenient
// lookup. Instantiated records are indexed under their fully-qualified link
// id and republished under their owning step id and bare output name; on an
// alias collision the first-published record wins, and the link id key is
// always authoritative.
type Result struct {
	// Pipeline is the name of the executed pipeline.
	Pipeline string
	// RunID identifies this run in logs and traces.
	RunID string
	// Records holds every data record in insertion order, placeholders
	// included.
	Records []data.Record
	// Instances holds every process instance in insertion order.
	Instances []process.Instance
	// Blocked maps permanently blocked instance ids to the processor id
	// that had no registered implementation.
	Blocked map[string]string
	// Unexpanded lists steps whose fan-out source never instantiated, so
	// no instances were ever created for them.
	Unexpanded []string
	// Duration is the wall-clock time of the whole run.
	Duration time.Duration

	index map[string]data.Record
}

func newResult(pipeline, runID string, records []data.Record, instances []process.Instance, blocked map[string]string, unexpanded []string, duration time.Duration) *Result {
	res := &Result{
		Pipeline:   pipeline,
		RunID:      runID,
		Records:    records,
		Instances:  instances,
		Blocked:    blocked,
		Unexpanded: unexpanded,
		Duration:   duration,
		index:      make(map[string]data.Record, len(records)*3),
	}
	for _, rec := range records {
		res.publish(string(rec.OutputLink.LinkID), rec)
		if rec.Instantiated {
			res.publish(rec.OutputLink.OwnerID, rec)
			res.publish(rec.OutputLink.Name, rec)
		}
	}
	return res
}

func (r *Result) publish(key string, rec data.Record) {
	if _, taken := r.index[key]; taken {
		return
	}
	r.index[key] = rec
}

// Record looks a record up by link id, owning step id, or bare output name.
func (r *Result) Record(key string) (data.Record, bool) {
	rec, ok := r.index[key]
	return rec, ok
}

// Payload returns the instantiated payload under the given key. It reports
// false for unknown keys and for placeholder records.
func (r *Result) Payload(key string) (any, bool) {
	rec, ok := r.index[key]
	if !ok || !rec.Instantiated {
		return nil, false
	}
	return rec.Payload, true
}

// Completed returns the instances that finished successfully.
func (r *Result) Completed() []process.Instance {
	return r.byStatus(process.StatusCompleted)
}

// Failed returns the instances that failed non-fatally.
func (r *Result) Failed() []process.Instance {
	return r.byStatus(process.StatusFailed)
}

// Pending returns the instances that never became ready.
func (r *Result) Pending() []process.Instance {
	return r.byStatus(process.StatusPending)
}

func (r *Result) byStatus(st process.Status) []process.Instance {
	var out []process.Instance
	for _, in := range r.Instances {
		if in.Status == st {
			out = append(out, in)
		}
	}
	return out
}
