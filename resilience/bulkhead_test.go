package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBulkheadExecuteWithinLimit(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "runner", MaxConcurrent: 3})

	var calls int32
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := b.Execute(context.Background(), func() error {
				atomic.AddInt32(&calls, 1)
				time.Sleep(10 * time.Millisecond)
				return nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if b.InUse() != 0 {
		t.Errorf("InUse = %d after all executions finished, want 0", b.InUse())
	}
}

// holdSlot occupies one Execute slot until release is closed.
func holdSlot(b *Bulkhead) (started, release chan struct{}) {
	started = make(chan struct{})
	release = make(chan struct{})
	go func() {
		_ = b.Execute(context.Background(), func() error {
			close(started)
			<-release
			return nil
		})
	}()
	return started, release
}

func TestBulkheadExecuteRejectsWhenFull(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "runner", MaxConcurrent: 1})

	started, release := holdSlot(b)
	<-started
	defer close(release)

	err := b.Execute(context.Background(), func() error { return nil })
	if !errors.Is(err, ErrBulkheadFull) {
		t.Errorf("err = %v, want ErrBulkheadFull", err)
	}
}

func TestBulkheadExecuteWaitsForSlot(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{
		Name:          "runner",
		MaxConcurrent: 1,
		MaxWait:       200 * time.Millisecond,
	})

	started := make(chan struct{})
	go func() {
		_ = b.Execute(context.Background(), func() error {
			close(started)
			time.Sleep(20 * time.Millisecond)
			return nil
		})
	}()
	<-started

	if err := b.Execute(context.Background(), func() error { return nil }); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBulkheadExecuteTimesOutWaiting(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{
		Name:          "runner",
		MaxConcurrent: 1,
		MaxWait:       10 * time.Millisecond,
	})

	started, release := holdSlot(b)
	<-started
	defer close(release)

	err := b.Execute(context.Background(), func() error { return nil })
	if !errors.Is(err, ErrBulkheadTimeout) {
		t.Errorf("err = %v, want ErrBulkheadTimeout", err)
	}
}

func TestBulkheadExecuteRespectsContext(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{
		Name:          "runner",
		MaxConcurrent: 1,
		MaxWait:       time.Second,
	})

	started, release := holdSlot(b)
	<-started
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := b.Execute(ctx, func() error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
}

func TestAcquireSlotBlocksUntilRelease(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "runner", MaxConcurrent: 1})

	if err := b.AcquireSlot(context.Background()); err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	acquired := make(chan error, 1)
	go func() {
		acquired <- b.AcquireSlot(context.Background())
	}()

	select {
	case <-acquired:
		t.Fatal("second acquire must block while the slot is held")
	case <-time.After(20 * time.Millisecond):
	}

	b.ReleaseSlot()

	select {
	case err := <-acquired:
		if err != nil {
			t.Errorf("acquire after release: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("acquire did not complete after release")
	}

	b.ReleaseSlot()
}

func TestAcquireSlotRespectsContext(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "runner", MaxConcurrent: 1})

	if err := b.AcquireSlot(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer b.ReleaseSlot()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := b.AcquireSlot(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
}

func TestBulkheadDefaultCapacity(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{Name: "runner"})
	for i := 0; i < 10; i++ {
		if err := b.AcquireSlot(context.Background()); err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
	}
	if got := b.InUse(); got != 10 {
		t.Errorf("InUse = %d, want 10", got)
	}
	for i := 0; i < 10; i++ {
		b.ReleaseSlot()
	}
}
