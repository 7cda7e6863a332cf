package runner

import (
	"fmt"
	"sort"

	"github.com/asterion-dev/pipekit/data"
	"github.com/asterion-dev/pipekit/device"
	apperrors "github.com/asterion-dev/pipekit/errors"
	"github.com/asterion-dev/pipekit/graph"
	"github.com/asterion-dev/pipekit/logger"
	"github.com/asterion-dev/pipekit/param"
	"github.com/asterion-dev/pipekit/process"
	"github.com/asterion-dev/pipekit/processor"
)

// run carries the mutable state of one Execute call. The two stores are the
// only state shared with executing goroutines; everything else is touched by
// the scheduling loop alone.
type run struct {
	pipeline *graph.Pipeline
	params   param.Map
	device   device.Context
	registry *processor.Registry

	records   *data.Store
	instances *process.Store

	// seedTypes remembers the inferred type of each seed input so input
	// links can agree with the record they resolve to.
	seedTypes map[string]data.Type

	// fanouts holds the steps awaiting per-item expansion, keyed by step id.
	fanouts map[string]*fanout

	// blocked maps instance ids to the processor id no implementation is
	// registered under.
	blocked map[string]string

	log *logger.Logger
}

// fanout is a step with an individually-mode input, deferred until its
// source collection is instantiated.
type fanout struct {
	step     graph.Step
	input    graph.Input
	source   data.LinkID
	params   param.Map
	expanded bool
}

func newRun(p *graph.Pipeline, params param.Map, dev device.Context, reg *processor.Registry, log *logger.Logger) *run {
	return &run{
		pipeline:  p,
		params:    params,
		device:    dev,
		registry:  reg,
		records:   data.NewStore(),
		instances: process.NewStore(),
		seedTypes: make(map[string]data.Type),
		fanouts:   make(map[string]*fanout),
		blocked:   make(map[string]string),
		log:       log,
	}
}

// seed creates one instantiated record per caller-supplied pipeline input,
// published under "initial.<name>". Names are seeded in sorted order so the
// store's insertion order, and with it alias precedence, is deterministic.
func (r *run) seed(seeds map[string]any) error {
	names := make([]string, 0, len(seeds))
	for name := range seeds {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		payload := seeds[name]
		t := data.TypeOf(payload)
		r.seedTypes[name] = t
		rec := data.NewInstantiatedRecord(
			data.OutputAs(data.SeedOwner, name, t, data.SeedLinkID(name)),
			payload,
		)
		if err := r.records.Add(rec); err != nil {
			return apperrors.Internal(err)
		}
		r.log.Debug("seed input published", logger.Fields(
			logger.FieldLink, string(rec.OutputLink.LinkID),
			logger.FieldRecordID, rec.ID,
			"type", string(t),
		))
	}
	return nil
}

// wire creates one pending instance per declared step, a placeholder record
// per declared output, and attaches each resolvable input as a consumer of
// its producing record. Steps with an individually-mode input are registered
// for fan-out instead; their parameters are still resolved here so parameter
// errors surface before the loop starts.
func (r *run) wire() error {
	for _, step := range r.pipeline.Steps {
		params, err := r.resolveParams(step)
		if err != nil {
			return err
		}

		if in, ok := step.Individually(); ok {
			r.fanouts[step.ID] = &fanout{
				step:   step,
				input:  *in,
				source: in.SourceLinkID(),
				params: params,
			}
			continue
		}

		if err := r.addInstance(step.ID, step, params, nil); err != nil {
			return err
		}
	}
	return nil
}

// addInstance materializes one instance of a step under the given (possibly
// fan-out-qualified) id. itemLink, when non-nil, replaces the step's
// individually-mode input with a link to one collection element.
func (r *run) addInstance(instanceStepID string, step graph.Step, params param.Map, itemLink *data.Link) error {
	inputs := make([]data.Link, 0, len(step.Inputs))
	for _, in := range step.Inputs {
		if itemLink != nil && in.Name == itemLink.Name {
			inputs = append(inputs, *itemLink)
			continue
		}
		inputs = append(inputs, data.Input(
			instanceStepID, in.Name, r.inputType(in), in.SourceLinkID(), in.CollectionMode(),
		))
	}

	outputs := make([]data.Link, 0, len(step.Outputs))
	for _, out := range step.Outputs {
		outputs = append(outputs, data.Output(instanceStepID, out.Name, out.Type))
	}

	inst := process.NewInstance(instanceStepID, step.Processor, params, inputs, outputs)
	if err := r.instances.Add(inst); err != nil {
		return apperrors.Internal(err)
	}

	for _, out := range outputs {
		if err := r.records.Add(data.NewRecord(out)); err != nil {
			return apperrors.Internal(err)
		}
	}
	for _, in := range inputs {
		r.attachConsumer(in)
	}

	r.log.Debug("instance wired", logger.Fields(
		logger.FieldStepID, instanceStepID,
		logger.FieldInstanceID, inst.ID,
		logger.FieldProcessor, step.Processor,
	))
	return nil
}

// attachConsumer records the input link on its producing record, when that
// record already exists. A miss is fine: the resolver's output-link fallback
// finds the producer later without formal wiring. Attachment mutates the
// record in the store; fan-out expansion runs while producers are publishing,
// and a read-modify-write here could erase a concurrent publish.
func (r *run) attachConsumer(in data.Link) {
	rec, ok := r.records.FindByLink(in)
	if !ok {
		return
	}
	r.records.AttachInput(rec.ID, in)
}

// resolveParams resolves a step's parameters: a caller value under the
// declared source name wins, otherwise the declared default applies. A
// sourced parameter with no caller value and no default cannot resolve.
func (r *run) resolveParams(step graph.Step) (param.Map, error) {
	if len(step.Params) == 0 {
		return nil, nil
	}
	resolved := make(param.Map, len(step.Params))
	for _, pm := range step.Params {
		if pm.Source != "" {
			if v, ok := r.params[pm.Source]; ok {
				resolved[pm.Name] = v
				continue
			}
		}
		if pm.HasDefault() {
			resolved[pm.Name] = pm.Default
			continue
		}
		return nil, apperrors.Configuration(fmt.Sprintf(
			"step %q parameter %q has no value: nothing supplied under %q and no default declared",
			step.ID, pm.Name, pm.Source,
		))
	}
	return resolved, nil
}

// inputType derives the link type an input must carry to match its source:
// the declared type of the referenced step output, the inferred type of the
// referenced seed, or a collection-flag guess when the source does not exist
// (such a link never resolves, so the guess is inconsequential).
func (r *run) inputType(in graph.Input) data.Type {
	src, out, seed := in.SourceRef()
	if seed || src == data.SeedOwner {
		if t, ok := r.seedTypes[out]; ok {
			return t
		}
	} else if step, ok := r.pipeline.Step(src); ok {
		if o, ok := step.Output(out); ok {
			return o.Type
		}
	}
	if in.Collection {
		return data.TypeFrameCollection
	}
	return data.TypeFrame
}

// expandFanouts materializes instances for every registered fan-out whose
// source collection has been instantiated: one item record per element,
// one instance per item, outputs published under the instance-qualified
// step id. It reports whether anything expanded. Steps are visited in
// declaration order to keep record insertion order deterministic.
func (r *run) expandFanouts() (bool, error) {
	expanded := false
	for _, step := range r.pipeline.Steps {
		f, ok := r.fanouts[step.ID]
		if !ok || f.expanded {
			continue
		}
		probe := data.Input(f.step.ID, f.input.Name, data.TypeFrameCollection, f.source, data.ModeIndividually)
		rec, ok := r.records.FindByLink(probe)
		if !ok || !rec.Instantiated {
			continue
		}
		if err := r.expandOne(f, rec); err != nil {
			return expanded, err
		}
		f.expanded = true
		expanded = true
	}
	return expanded, nil
}

func (r *run) expandOne(f *fanout, rec data.Record) error {
	coll, ok := rec.Payload.(data.Collection)
	if !ok {
		return apperrors.Internal(fmt.Errorf(
			"record %s (%s) is typed as a collection but its payload %T cannot fan out",
			rec.ID, rec.OutputLink.LinkID, rec.Payload,
		))
	}

	n := coll.Len()
	for i := 0; i < n; i++ {
		item := coll.Item(i)
		itemType := data.TypeOf(item)
		itemID := data.ItemLinkID(f.source, i)
		itemRec := data.NewInstantiatedRecord(
			data.OutputAs(
				rec.OutputLink.OwnerID,
				fmt.Sprintf("%s[%d]", rec.OutputLink.Name, i),
				itemType,
				itemID,
			),
			item,
		)
		if err := r.records.Add(itemRec); err != nil {
			return apperrors.Internal(err)
		}

		instanceStepID := data.InstanceStepID(f.step.ID, i)
		itemLink := data.Input(instanceStepID, f.input.Name, itemType, itemID, data.ModeIndividually)
		if err := r.addInstance(instanceStepID, f.step, f.params.Clone(), &itemLink); err != nil {
			return err
		}
	}

	r.log.Info("collection fanned out", logger.Fields(
		logger.FieldStepID, f.step.ID,
		logger.FieldLink, string(f.source),
		"items", n,
	))
	return nil
}

// unexpanded lists the fan-out steps whose source never instantiated, in
// pipeline declaration order.
func (r *run) unexpanded() []string {
	var out []string
	for _, step := range r.pipeline.Steps {
		if f, ok := r.fanouts[step.ID]; ok && !f.expanded {
			out = append(out, step.ID)
		}
	}
	return out
}
