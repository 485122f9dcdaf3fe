package mapper

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Lazy is a deferred query result. Nothing is read until Force is called.
// A plain Lazy queries on every Force; a memoized one keeps the first
// successful value. Errors are never cached.
type Lazy[T any] struct {
	fn   func(context.Context) (T, error)
	memo bool

	mu    sync.Mutex
	done  bool
	value T
}

// NewLazy wraps fn in a Lazy.
func NewLazy[T any](fn func(context.Context) (T, error)) *Lazy[T] {
	return &Lazy[T]{fn: fn}
}

// Force evaluates the lazy value.
func (l *Lazy[T]) Force(ctx context.Context) (T, error) {
	if !l.memo {
		return l.fn(ctx)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done {
		return l.value, nil
	}
	v, err := l.fn(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	l.value, l.done = v, true
	return v, nil
}

// Memoize returns a caching Lazy over the same computation.
func (l *Lazy[T]) Memoize() *Lazy[T] {
	return &Lazy[T]{fn: l.fn, memo: true}
}

// Memoized reports whether the lazy caches its value.
func (l *Lazy[T]) Memoized() bool {
	return l.memo
}

// Forced reports whether a memoized value is held.
func (l *Lazy[T]) Forced() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done
}

// Reset drops a memoized value so the next Force queries again.
func (l *Lazy[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	var zero T
	l.value, l.done = zero, false
}

// Load forces the lazy and discards the value. Useful to warm memoized lazies.
func (l *Lazy[T]) Load(ctx context.Context) error {
	_, err := l.Force(ctx)
	return err
}

// Forcer is implemented by every Lazy.
type Forcer interface {
	Load(ctx context.Context) error
}

// ForceAll loads the lazies concurrently and returns the first error.
// The context passed to the remaining loads is cancelled on that error.
func ForceAll(ctx context.Context, lazies ...Forcer) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, l := range lazies {
		g.Go(func() error {
			return l.Load(ctx)
		})
	}
	return g.Wait()
}

// Map derives a lazy value from another without forcing it.
func Map[T, U any](l *Lazy[T], fn func(T) (U, error)) *Lazy[U] {
	return NewLazy(func(ctx context.Context) (U, error) {
		v, err := l.Force(ctx)
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v)
	})
}
