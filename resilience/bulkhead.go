package resilience

import (
	"context"
	"errors"
	"time"
)

// Bulkhead errors.
var (
	ErrBulkheadFull    = errors.New("bulkhead is full")
	ErrBulkheadTimeout = errors.New("bulkhead wait timeout")
)

// BulkheadConfig configures a Bulkhead.
type BulkheadConfig struct {
	// Name identifies the bulkhead in logs.
	Name string
	// MaxConcurrent caps the number of simultaneously held slots.
	// Non-positive values fall back to 10.
	MaxConcurrent int
	// MaxWait bounds how long Execute waits for a slot; zero rejects
	// immediately when full. AcquireSlot ignores it and waits on the
	// context alone.
	MaxWait time.Duration
}

// Bulkhead caps how many executions run at once, so one saturated stage
// cannot starve the rest of the scheduler.
type Bulkhead struct {
	name string
	wait time.Duration
	sem  chan struct{}
}

// NewBulkhead creates a bulkhead with config.MaxConcurrent slots.
func NewBulkhead(config BulkheadConfig) *Bulkhead {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 10
	}
	return &Bulkhead{
		name: config.Name,
		wait: config.MaxWait,
		sem:  make(chan struct{}, config.MaxConcurrent),
	}
}

// AcquireSlot blocks until a slot frees up or the context ends. Pair every
// successful acquire with a ReleaseSlot.
func (b *Bulkhead) AcquireSlot(ctx context.Context) error {
	select {
	case b.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReleaseSlot returns a slot taken with AcquireSlot.
func (b *Bulkhead) ReleaseSlot() {
	<-b.sem
}

// Execute runs fn inside a slot. When every slot is taken it waits up to
// MaxWait and then reports ErrBulkheadFull (no wait configured) or
// ErrBulkheadTimeout.
func (b *Bulkhead) Execute(ctx context.Context, fn func() error) error {
	select {
	case b.sem <- struct{}{}:
	default:
		if b.wait <= 0 {
			return ErrBulkheadFull
		}
		timer := time.NewTimer(b.wait)
		defer timer.Stop()
		select {
		case b.sem <- struct{}{}:
		case <-timer.C:
			return ErrBulkheadTimeout
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	defer b.ReleaseSlot()
	return fn()
}

// InUse reports how many slots are currently held.
func (b *Bulkhead) InUse() int {
	return len(b.sem)
}
