package stream

import (
	"context"
	"sync"
)

// result carries a value or error through a channel.
type result[T any] struct {
	val T
	ok  bool
	err error
}

// send delivers r unless the context ends first.
func send[T any](ctx context.Context, ch chan<- result[T], r result[T]) bool {
	select {
	case ch <- r:
		return true
	case <-ctx.Done():
		return false
	}
}

// MapConcurrent applies fn to each value with up to n workers. Output order
// is NOT preserved; use Map when order matters. The first error cancels the
// remaining work.
func MapConcurrent[I, O any](s *Stream[I], n int, fn func(context.Context, I) (O, error)) *Stream[O] {
	if n <= 0 {
		n = 1
	}
	return &Stream[O]{
		create: func(ctx context.Context) Iterator[O] {
			source := s.create(ctx)
			wctx, cancel := context.WithCancel(ctx)
			out := make(chan result[O], n)
			in := make(chan I, n)

			// Feed the work channel from the source iterator.
			go func() {
				defer close(in)
				for {
					val, ok, err := source.Next(wctx)
					if err != nil {
						send(wctx, out, result[O]{err: err})
						return
					}
					if !ok {
						return
					}
					select {
					case in <- val:
					case <-wctx.Done():
						return
					}
				}
			}()

			var wg sync.WaitGroup
			wg.Add(n)
			for i := 0; i < n; i++ {
				go func() {
					defer wg.Done()
					for val := range in {
						o, err := fn(wctx, val)
						if err != nil {
							send(wctx, out, result[O]{err: err})
							cancel()
							return
						}
						if !send(wctx, out, result[O]{val: o, ok: true}) {
							return
						}
					}
				}()
			}

			go func() {
				wg.Wait()
				close(out)
			}()

			return &channelIter[O]{
				ch: out,
				closer: func() error {
					cancel()
					return source.Close()
				},
			}
		},
	}
}

// channelIter reads values off a channel fed by worker goroutines.
type channelIter[T any] struct {
	ch     <-chan result[T]
	closer func() error
}

func (it *channelIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	select {
	case r, open := <-it.ch:
		if !open {
			return zero, false, nil
		}
		return r.val, r.ok, r.err
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (it *channelIter[T]) Close() error {
	if it.closer != nil {
		return it.closer()
	}
	return nil
}
