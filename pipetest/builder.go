package pipetest

import (
	"github.com/asterion-dev/pipekit/data"
	"github.com/asterion-dev/pipekit/graph"
	"github.com/asterion-dev/pipekit/param"
)

// PipelineBuilder provides a fluent API for constructing test pipelines.
type PipelineBuilder struct {
	p graph.Pipeline
}

// NewPipeline creates a builder for a pipeline with the given name.
func NewPipeline(name string) *PipelineBuilder {
	return &PipelineBuilder{p: graph.Pipeline{Name: name}}
}

// Step appends a step and returns a builder scoped to it.
func (b *PipelineBuilder) Step(id, processorID string) *StepBuilder {
	b.p.Steps = append(b.p.Steps, graph.Step{ID: id, Processor: processorID})
	return &StepBuilder{b: b, idx: len(b.p.Steps) - 1}
}

// Build returns the constructed pipeline.
func (b *PipelineBuilder) Build() *graph.Pipeline {
	return &b.p
}

// StepBuilder wires inputs, params, and outputs onto one step.
type StepBuilder struct {
	b   *PipelineBuilder
	idx int
}

func (sb *StepBuilder) step() *graph.Step {
	return &sb.b.p.Steps[sb.idx]
}

// Input wires an input port to a source reference ("step.output" or a
// seed name).
func (sb *StepBuilder) Input(name, source string) *StepBuilder {
	s := sb.step()
	s.Inputs = append(s.Inputs, graph.Input{Name: name, Source: source})
	return sb
}

// CollectionInput wires a collection input port with the given mode.
func (sb *StepBuilder) CollectionInput(name, source, mode string) *StepBuilder {
	s := sb.step()
	s.Inputs = append(s.Inputs, graph.Input{Name: name, Source: source, Collection: true, Mode: mode})
	return sb
}

// Param declares a parameter with a default value.
func (sb *StepBuilder) Param(name string, def param.Value) *StepBuilder {
	s := sb.step()
	s.Params = append(s.Params, graph.Param{Name: name, Default: def})
	return sb
}

// ParamFrom declares a parameter resolved from a caller-supplied value.
func (sb *StepBuilder) ParamFrom(name, source string) *StepBuilder {
	s := sb.step()
	s.Params = append(s.Params, graph.Param{Name: name, Source: source})
	return sb
}

// Output declares a typed output port.
func (sb *StepBuilder) Output(name string, typ data.Type) *StepBuilder {
	s := sb.step()
	s.Outputs = append(s.Outputs, graph.Output{Name: name, Type: typ})
	return sb
}

// Step appends the next step to the pipeline being built.
func (sb *StepBuilder) Step(id, processorID string) *StepBuilder {
	return sb.b.Step(id, processorID)
}

// Build returns the constructed pipeline.
func (sb *StepBuilder) Build() *graph.Pipeline {
	return sb.b.Build()
}
