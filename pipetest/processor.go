package pipetest

import (
	"context"
	"sync"

	"github.com/asterion-dev/pipekit/processor"
)

// MockProcessor is a configurable test processor.
// It records calls and writes preset outputs or returns a preset error.
type MockProcessor struct {
	id      string
	outputs map[string]any
	err     error
	fn      func(ctx context.Context, exec *processor.Exec) error

	mu    sync.Mutex
	calls int
}

var _ processor.Processor = (*MockProcessor)(nil)

// NewMockProcessor creates a mock that fills each declared output port from
// the outputs map. If err is non-nil, the mock fails with that error instead.
func NewMockProcessor(id string, outputs map[string]any, err error) *MockProcessor {
	return &MockProcessor{id: id, outputs: outputs, err: err}
}

// NewMockProcessorFunc creates a mock backed by a custom function.
func NewMockProcessorFunc(id string, fn func(ctx context.Context, exec *processor.Exec) error) *MockProcessor {
	return &MockProcessor{id: id, fn: fn}
}

func (p *MockProcessor) ID() string { return p.id }

func (p *MockProcessor) Execute(ctx context.Context, exec *processor.Exec) error {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if p.fn != nil {
		return p.fn(ctx, exec)
	}
	if p.err != nil {
		return p.err
	}
	for port, val := range p.outputs {
		if err := exec.Set(port, val); err != nil {
			return err
		}
	}
	return nil
}

// Calls returns how many times Execute was invoked.
func (p *MockProcessor) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// Reset clears the call counter.
func (p *MockProcessor) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = 0
}

// NewRegistry registers the given processors and returns the registry.
func NewRegistry(procs ...processor.Processor) *processor.Registry {
	reg := processor.NewRegistry()
	for _, p := range procs {
		reg.Register(p)
	}
	return reg
}
