package processor

import "context"

// Processor is the execution unit behind a pipeline step.
type Processor interface {
	// ID is the identifier steps reference in their processor field.
	ID() string
	// Execute runs the processor against one resolved instance. It must
	// fill every declared output port via exec.Set before returning nil.
	Execute(ctx context.Context, exec *Exec) error
}

// Func adapts a plain function to the Processor interface.
func Func(id string, fn func(ctx context.Context, exec *Exec) error) Processor {
	return &funcProcessor{id: id, fn: fn}
}

type funcProcessor struct {
	id string
	fn func(ctx context.Context, exec *Exec) error
}

func (p *funcProcessor) ID() string { return p.id }

func (p *funcProcessor) Execute(ctx context.Context, exec *Exec) error {
	return p.fn(ctx, exec)
}
