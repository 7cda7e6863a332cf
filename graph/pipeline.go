package graph

import (
	"strings"

	"github.com/asterion-dev/pipekit/data"
	"github.com/asterion-dev/pipekit/param"
)

// Pipeline is a YAML-defined step graph.
type Pipeline struct {
	// Name is the pipeline identifier.
	Name string `yaml:"name" validate:"required"`
	// Description is free-form documentation.
	Description string `yaml:"description,omitempty"`
	// Steps defines the processing steps in declaration order.
	Steps []Step `yaml:"steps" validate:"required,min=1,dive"`
}

// Step declares one processing step.
type Step struct {
	// ID is the step identifier, unique within the pipeline.
	ID string `yaml:"id" validate:"required"`
	// Processor is the registry lookup key for the implementation.
	Processor string `yaml:"processor" validate:"required"`
	// Inputs wires data into the step.
	Inputs []Input `yaml:"inputs,omitempty" validate:"dive"`
	// Params declares the step's parameters.
	Params []Param `yaml:"params,omitempty" validate:"dive"`
	// Outputs declares the data the step produces.
	Outputs []Output `yaml:"outputs,omitempty" validate:"dive"`
}

// Input wires a step input port to a data source.
type Input struct {
	// Name is the port the processor reads.
	Name string `yaml:"name" validate:"required"`
	// Source references the producing side: "stepId.outputName" for a step
	// output, a bare name for a pipeline seed input.
	Source string `yaml:"source" validate:"required"`
	// Collection marks the source as a collection.
	Collection bool `yaml:"collection,omitempty"`
	// Mode picks how a collection is consumed; empty defaults to together.
	Mode string `yaml:"mode,omitempty" validate:"omitempty,oneof=together individually"`
}

// Param declares a step parameter. A caller-supplied value named by Source
// overrides Default; a param with neither never resolves.
type Param struct {
	// Name is the parameter name the processor reads.
	Name string `yaml:"name" validate:"required"`
	// Source names the caller parameter that overrides the default.
	Source string `yaml:"source,omitempty"`
	// Default is the value used when no caller override applies.
	Default param.Value `yaml:"default,omitempty"`
}

// Output declares a named, typed step output.
type Output struct {
	// Name is the port the processor writes.
	Name string `yaml:"name" validate:"required"`
	// Type is the data type the port carries.
	Type data.Type `yaml:"type" validate:"required,oneof=frame frame_collection table"`
}

// Step returns the declared step with the given id.
func (p *Pipeline) Step(id string) (*Step, bool) {
	for i := range p.Steps {
		if p.Steps[i].ID == id {
			return &p.Steps[i], true
		}
	}
	return nil, false
}

// Output returns the step's declared output with the given name.
func (s *Step) Output(name string) (*Output, bool) {
	for i := range s.Outputs {
		if s.Outputs[i].Name == name {
			return &s.Outputs[i], true
		}
	}
	return nil, false
}

// Individually returns the step's individually-mode input, if it has one.
func (s *Step) Individually() (*Input, bool) {
	for i := range s.Inputs {
		if s.Inputs[i].CollectionMode() == data.ModeIndividually {
			return &s.Inputs[i], true
		}
	}
	return nil, false
}

// SourceRef splits the source reference into producer step and output name.
// A reference without a dot names a pipeline seed input.
func (i Input) SourceRef() (stepID, output string, seed bool) {
	if idx := strings.Index(i.Source, "."); idx > 0 {
		return i.Source[:idx], i.Source[idx+1:], false
	}
	return "", i.Source, true
}

// SourceLinkID derives the wiring identity the source reference names.
func (i Input) SourceLinkID() data.LinkID {
	stepID, output, seed := i.SourceRef()
	if seed {
		return data.SeedLinkID(output)
	}
	return data.OutputLinkID(stepID, output)
}

// CollectionMode returns the effective consumption mode.
func (i Input) CollectionMode() data.Mode {
	if i.Mode == string(data.ModeIndividually) {
		return data.ModeIndividually
	}
	return data.ModeTogether
}

// HasDefault reports whether the parameter declares a default value.
func (p Param) HasDefault() bool {
	return !p.Default.IsZero()
}
