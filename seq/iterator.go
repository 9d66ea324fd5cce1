package seq

import (
	"context"
	"iter"
)

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// --- Constructors ---

// FromSlice creates an iterator over a slice of values.
func FromSlice[T any](items []T) Iterator[T] {
	return &sliceIter[T]{items: items}
}

// FromSeq adapts a standard library iter.Seq. The sequence is started on the
// first Next and stopped by Close.
func FromSeq[T any](s iter.Seq[T]) Iterator[T] {
	return &pullIter[T]{seq: s}
}

// FromFunc creates an iterator from a pull function with the Next signature.
func FromFunc[T any](fn func(ctx context.Context) (T, bool, error)) Iterator[T] {
	return &funcIter[T]{fn: fn}
}

// Empty returns an exhausted iterator.
func Empty[T any]() Iterator[T] {
	return &sliceIter[T]{}
}

// --- Terminals ---

// Collect pulls all values and returns them as a slice. On error the values
// pulled so far are returned along with it.
func Collect[T any](ctx context.Context, it Iterator[T]) ([]T, error) {
	defer it.Close()
	var result []T
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, val)
	}
}

// ForEach pulls all values and calls fn for each, stopping at the first error.
func ForEach[T any](ctx context.Context, it Iterator[T], fn func(context.Context, T) error) error {
	defer it.Close()
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(ctx, val); err != nil {
			return err
		}
	}
}

// All exposes the iterator as an iter.Seq2 of values and errors for use with
// range. Iteration ends after the first error is yielded.
func All[T any](ctx context.Context, it Iterator[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer it.Close()
		for {
			val, ok, err := it.Next(ctx)
			if err != nil {
				yield(val, err)
				return
			}
			if !ok {
				return
			}
			if !yield(val, nil) {
				return
			}
		}
	}
}

// --- Internal iterators ---

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }

type pullIter[T any] struct {
	seq  iter.Seq[T]
	next func() (T, bool)
	stop func()
}

func (it *pullIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.next == nil {
		if it.seq == nil {
			var zero T
			return zero, false, nil
		}
		it.next, it.stop = iter.Pull(it.seq)
		it.seq = nil
	}
	val, ok := it.next()
	return val, ok, nil
}

func (it *pullIter[T]) Close() error {
	if it.stop != nil {
		it.stop()
	}
	it.seq = nil
	return nil
}

type funcIter[T any] struct {
	fn   func(ctx context.Context) (T, bool, error)
	done bool
}

func (it *funcIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.done {
		var zero T
		return zero, false, nil
	}
	val, ok, err := it.fn(ctx)
	if !ok && err == nil {
		it.done = true
	}
	return val, ok, err
}

func (it *funcIter[T]) Close() error { return nil }
