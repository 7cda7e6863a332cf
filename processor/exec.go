package processor

import (
	"fmt"

	"github.com/asterion-dev/pipekit/device"
	"github.com/asterion-dev/pipekit/param"
)

// Exec carries everything one processor invocation needs: resolved input
// payloads by port name, empty output slots for the step's declared ports,
// resolved parameters, and the device context the run was given.
type Exec struct {
	// InstanceID identifies the process instance being executed.
	InstanceID string
	// StepID is the graph step this instance was created from.
	StepID string
	// Device is the compute context acquired for the run.
	Device device.Context
	// Params holds the resolved parameter values for this instance.
	Params param.Map

	inputs  map[string]any
	outputs map[string]any
	ports   []string
}

// NewExec builds the execution context for one instance. outputPorts lists
// the step's declared output names; Set rejects anything else.
func NewExec(instanceID, stepID string, dev device.Context, params param.Map, inputs map[string]any, outputPorts []string) *Exec {
	outputs := make(map[string]any, len(outputPorts))
	ports := make([]string, len(outputPorts))
	copy(ports, outputPorts)

	return &Exec{
		InstanceID: instanceID,
		StepID:     stepID,
		Device:     dev,
		Params:     params,
		inputs:     inputs,
		outputs:    outputs,
		ports:      ports,
	}
}

// Input returns the resolved payload for an input port.
func (e *Exec) Input(port string) (any, bool) {
	v, ok := e.inputs[port]
	return v, ok
}

// Inputs returns the input port names in no particular order.
func (e *Exec) Inputs() []string {
	names := make([]string, 0, len(e.inputs))
	for name := range e.inputs {
		names = append(names, name)
	}
	return names
}

// Set stores the payload for a declared output port. Writing to a port the
// step does not declare is an error.
func (e *Exec) Set(port string, value any) error {
	if !e.declared(port) {
		return fmt.Errorf("step %q declares no output port %q", e.StepID, port)
	}
	e.outputs[port] = value
	return nil
}

// Output returns the payload written to an output port, if any.
func (e *Exec) Output(port string) (any, bool) {
	v, ok := e.outputs[port]
	return v, ok
}

// OutputPorts returns the declared output port names in declaration order.
func (e *Exec) OutputPorts() []string {
	ports := make([]string, len(e.ports))
	copy(ports, e.ports)
	return ports
}

func (e *Exec) declared(port string) bool {
	for _, p := range e.ports {
		if p == port {
			return true
		}
	}
	return false
}
