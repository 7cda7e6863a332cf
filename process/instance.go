package process

import (
	"time"

	"github.com/google/uuid"

	"github.com/asterion-dev/pipekit/data"
	"github.com/asterion-dev/pipekit/param"
)

// Instance is one scheduled execution of a pipeline step. Its link lists
// and parameters are fixed at creation; only status, history, and the
// failure reason change afterwards, and only through the Store.
type Instance struct {
	// ID is the unique instance identity within the store.
	ID string
	// StepID names the pipeline step this instance executes. Fan-out
	// instances carry the qualified form "<stepID>[<i>]".
	StepID string
	// ProcessorID selects the processor implementation from the registry.
	ProcessorID string
	// Params are the resolved parameter values for this execution.
	Params param.Map
	// Inputs are the consuming-side links, one per declared input port.
	Inputs []data.Link
	// Outputs are the producing-side links, one per declared output port.
	Outputs []data.Link

	// Status is the current lifecycle state.
	Status Status
	// History records every status transition in order.
	History []StatusChange
	// FailureReason is set when the instance fails.
	FailureReason string

	CreatedAt time.Time
}

// NewInstance creates a pending instance for the given step.
func NewInstance(stepID, processorID string, params param.Map, inputs, outputs []data.Link) Instance {
	return Instance{
		ID:          uuid.NewString(),
		StepID:      stepID,
		ProcessorID: processorID,
		Params:      params,
		Inputs:      inputs,
		Outputs:     outputs,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}
}

// Duration returns the time between the first transition into running and
// the first transition into a terminal status, or zero if the instance has
// not covered that span yet.
func (in Instance) Duration() time.Duration {
	var started, ended time.Time
	for _, ch := range in.History {
		if ch.To == StatusRunning && started.IsZero() {
			started = ch.At
		}
		if ch.To.Terminal() && ended.IsZero() {
			ended = ch.At
		}
	}
	if started.IsZero() || ended.IsZero() {
		return 0
	}
	return ended.Sub(started)
}

// clone returns a copy that shares no mutable state with the receiver.
func (in Instance) clone() Instance {
	out := in
	out.Params = in.Params.Clone()
	if in.Inputs != nil {
		out.Inputs = append([]data.Link(nil), in.Inputs...)
	}
	if in.Outputs != nil {
		out.Outputs = append([]data.Link(nil), in.Outputs...)
	}
	if in.History != nil {
		out.History = append([]StatusChange(nil), in.History...)
	}
	return out
}
