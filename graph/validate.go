package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/asterion-dev/pipekit/data"
	apperrors "github.com/asterion-dev/pipekit/errors"
	"github.com/asterion-dev/pipekit/validation"
)

// Validate checks a pipeline definition: struct rules, duplicate identifiers,
// collection modes and their agreement with declared source types, parameter
// resolvability, and cycles among declared steps.
// Any violation is a fatal configuration error. A source reference to an
// undeclared step is not a violation; the consuming instance stays pending.
func Validate(p *Pipeline) error {
	if err := validation.Validate(p); err != nil {
		return err
	}

	v := validation.New()

	seenSteps := make(map[string]bool, len(p.Steps))
	for _, s := range p.Steps {
		field := "steps." + s.ID

		if seenSteps[s.ID] {
			v.AddError(field, "duplicate step id")
		}
		seenSteps[s.ID] = true

		if s.ID == data.SeedOwner {
			v.AddError(field, fmt.Sprintf("step id %q is reserved for pipeline inputs", data.SeedOwner))
		}
		if strings.ContainsAny(s.ID, ".[]") {
			v.AddError(field, "step id must not contain '.', '[' or ']'")
		}

		seenInputs := make(map[string]bool, len(s.Inputs))
		individually := 0
		for _, in := range s.Inputs {
			if seenInputs[in.Name] {
				v.AddError(field+".inputs."+in.Name, "duplicate input name")
			}
			seenInputs[in.Name] = true

			if in.Mode == string(data.ModeIndividually) {
				individually++
				if !in.Collection {
					v.AddError(field+".inputs."+in.Name, "mode individually requires collection: true")
				}
			}

			// When the source output is declared in this pipeline, the
			// collection flag must agree with its type; a mismatch can
			// never resolve and would leave the consumer pending forever.
			if src, outName, seed := in.SourceRef(); !seed {
				srcStep, ok := p.Step(src)
				if !ok {
					continue
				}
				out, ok := srcStep.Output(outName)
				if !ok {
					continue
				}
				sourceIsCollection := out.Type == data.TypeFrameCollection
				if in.Collection && !sourceIsCollection {
					v.AddError(field+".inputs."+in.Name, fmt.Sprintf(
						"collection: true but source %q produces %s", in.Source, out.Type))
				}
				if !in.Collection && sourceIsCollection {
					v.AddError(field+".inputs."+in.Name, fmt.Sprintf(
						"source %q produces a collection; declare collection: true", in.Source))
				}
			}
		}
		if individually > 1 {
			v.AddError(field+".inputs", "at most one input may use mode individually")
		}

		seenParams := make(map[string]bool, len(s.Params))
		for _, pm := range s.Params {
			if seenParams[pm.Name] {
				v.AddError(field+".params."+pm.Name, "duplicate parameter name")
			}
			seenParams[pm.Name] = true

			if pm.Source == "" && !pm.HasDefault() {
				v.AddError(field+".params."+pm.Name, "needs a source or a default")
			}
		}

		seenOutputs := make(map[string]bool, len(s.Outputs))
		for _, out := range s.Outputs {
			if seenOutputs[out.Name] {
				v.AddError(field+".outputs."+out.Name, "duplicate output name")
			}
			seenOutputs[out.Name] = true
		}
	}

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}

	if stuck := cycleMembers(p); len(stuck) > 0 {
		return apperrors.Configuration(
			fmt.Sprintf("cyclic step references involving: %s", strings.Join(stuck, ", ")),
		)
	}

	return nil
}

// cycleMembers runs Kahn's algorithm over the reference edges between
// declared steps and returns the ids it could not drain, sorted.
func cycleMembers(p *Pipeline) []string {
	declared := make(map[string]bool, len(p.Steps))
	for _, s := range p.Steps {
		declared[s.ID] = true
	}

	inDegree := make(map[string]int, len(p.Steps))
	dependents := make(map[string][]string) // producer -> [consumers...]

	for _, s := range p.Steps {
		inDegree[s.ID] += 0
	}
	for _, s := range p.Steps {
		for _, in := range s.Inputs {
			src, _, seed := in.SourceRef()
			if seed || !declared[src] {
				continue
			}
			inDegree[s.ID]++
			dependents[src] = append(dependents[src], s.ID)
		}
	}

	queue := make([]string, 0, len(p.Steps))
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++

		for _, dep := range dependents[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if visited == len(inDegree) {
		return nil
	}

	stuck := make([]string, 0)
	for id, deg := range inDegree {
		if deg > 0 {
			stuck = append(stuck, id)
		}
	}
	sort.Strings(stuck)
	return stuck
}
