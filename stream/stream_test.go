package stream

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"testing"
	"time"
)

func TestFromSlice_Collect(t *testing.T) {
	s := FromSlice([]int{1, 2, 3})
	got, err := Collect(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestFromSlice_Empty(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestFrom_Iterator(t *testing.T) {
	iter := &sliceIter[string]{items: []string{"a", "b"}}
	got, err := Collect(context.Background(), From[string](iter))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v, want [a b]", got)
	}
}

func TestMap(t *testing.T) {
	s := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})
	got, err := Collect(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{2, 4, 6}) {
		t.Errorf("got %v, want [2 4 6]", got)
	}
}

func TestMap_Error(t *testing.T) {
	s := Map(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, errors.New("bad value")
		}
		return n, nil
	})
	got, err := Collect(context.Background(), s)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("expected [1] before the error, got %v", got)
	}
}

func TestFilter(t *testing.T) {
	s := Filter(FromSlice([]int{1, 2, 3, 4, 5, 6}), func(n int) bool { return n%2 == 0 })
	got, err := Collect(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{2, 4, 6}) {
		t.Errorf("got %v, want [2 4 6]", got)
	}
}

func TestForEach_StopsOnError(t *testing.T) {
	var seen []int
	err := ForEach(context.Background(), FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) error {
		if n == 2 {
			return errors.New("stop")
		}
		seen = append(seen, n)
		return nil
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !intSliceEqual(seen, []int{1}) {
		t.Errorf("expected [1] before the error, got %v", seen)
	}
}

func TestMapConcurrent(t *testing.T) {
	s := MapConcurrent(FromSlice([]int{1, 2, 3, 4, 5}), 3, func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})
	got, err := Collect(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	sort.Ints(got) // order not guaranteed
	if !intSliceEqual(got, []int{2, 4, 6, 8, 10}) {
		t.Errorf("got %v, want [2 4 6 8 10]", got)
	}
}

func TestMapConcurrent_Error(t *testing.T) {
	s := MapConcurrent(FromSlice([]int{1, 2, 3, 4, 5}), 2, func(_ context.Context, n int) (int, error) {
		if n == 3 {
			return 0, errors.New("worker failed")
		}
		return n, nil
	})
	if _, err := Collect(context.Background(), s); err == nil {
		t.Fatal("expected error from a worker")
	}
}

func TestMapConcurrent_BoundsWorkers(t *testing.T) {
	var current, peak int64
	s := MapConcurrent(FromSlice(make([]int, 8)), 2, func(_ context.Context, n int) (int, error) {
		cur := atomic.AddInt64(&current, 1)
		for {
			seen := atomic.LoadInt64(&peak)
			if cur <= seen || atomic.CompareAndSwapInt64(&peak, seen, cur) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt64(&current, -1)
		return n, nil
	})
	if _, err := Collect(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt64(&peak); got > 2 {
		t.Errorf("expected at most 2 workers, observed %d", got)
	}
}

func TestMapConcurrent_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := MapConcurrent(FromSlice([]int{1, 2, 3}), 2, func(_ context.Context, n int) (int, error) {
		return n, nil
	})
	if _, err := Collect(ctx, s); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
