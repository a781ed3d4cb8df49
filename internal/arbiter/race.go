package arbiter

import (
	"context"
	"time"
)

// Task is one contender in a Race. It should honour ctx where it can, but
// Race never waits for it to do so.
type Task[T any] func(ctx context.Context) (T, error)

// Settled is the outcome of the first task to finish.
type Settled[T any] struct {
	Index int // position of the winning task in the Race call
	Value T
	Err   error
}

// Race starts every task in its own goroutine and returns the first one to
// settle, fulfilled or rejected. Later settlements are discarded: the
// channel is buffered so losers finish and exit without a reader.
//
// The ctx handed to tasks is cancelled when Race returns. Tasks that must
// outlive the race ignore it.
//
// If ctx ends before any task settles, Race returns Index -1 and ctx.Err().
func Race[T any](ctx context.Context, tasks ...Task[T]) Settled[T] {
	if len(tasks) == 0 {
		return Settled[T]{Index: -1, Err: context.Canceled}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan Settled[T], len(tasks))
	for i, task := range tasks {
		go func() {
			v, err := task(ctx)
			results <- Settled[T]{Index: i, Value: v, Err: err}
		}()
	}

	select {
	case s := <-results:
		return s
	case <-ctx.Done():
		return Settled[T]{Index: -1, Err: ctx.Err()}
	}
}

// After returns a task that yields fn() once d has elapsed. It fails with
// ctx.Err() if ctx ends first.
func After[T any](d time.Duration, fn func() T) Task[T] {
	return func(ctx context.Context) (T, error) {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			return fn(), nil
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}
