package seq

import "context"

// Map transforms each value using fn.
func Map[I, O any](src Iterator[I], fn func(context.Context, I) (O, error)) Iterator[O] {
	return &mapIter[I, O]{source: src, fn: fn}
}

// Filter keeps only values that satisfy the predicate.
func Filter[T any](src Iterator[T], fn func(T) bool) Iterator[T] {
	return &filterIter[T]{source: src, fn: func(_ context.Context, v T) (bool, error) { return fn(v), nil }}
}

// FilterE is Filter with a predicate that may fail. A predicate error is
// returned from the Next call that evaluated it.
func FilterE[T any](src Iterator[T], fn func(context.Context, T) (bool, error)) Iterator[T] {
	return &filterIter[T]{source: src, fn: fn}
}

// Flatten yields the values of each inner iterator in order, removing one
// level of nesting. Inner iterators are closed once exhausted.
func Flatten[T any](src Iterator[Iterator[T]]) Iterator[T] {
	return &flattenIter[T]{source: src}
}

// FlatMap transforms each value into an iterator and flattens the results.
func FlatMap[I, O any](src Iterator[I], fn func(context.Context, I) (Iterator[O], error)) Iterator[O] {
	return Flatten(Map(src, fn))
}

// Tap calls fn as a side-effect for each value, then passes the value through unchanged.
func Tap[T any](src Iterator[T], fn func(context.Context, T) error) Iterator[T] {
	return &tapIter[T]{source: src, fn: fn}
}

// Concat joins multiple iterators sequentially.
// All values from the first iterator are yielded before the second, etc.
func Concat[T any](iters ...Iterator[T]) Iterator[T] {
	return &concatIter[T]{iters: iters}
}

// Take yields at most n values. The source is not pulled past the n-th value.
func Take[T any](src Iterator[T], n int) Iterator[T] {
	return &takeIter[T]{source: src, remaining: n}
}

// --- Iterator implementations ---

type mapIter[I, O any] struct {
	source Iterator[I]
	fn     func(context.Context, I) (O, error)
}

func (it *mapIter[I, O]) Next(ctx context.Context) (result O, ok bool, err error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		var zero O
		return zero, false, err
	}
	out, err := it.fn(ctx, val)
	if err != nil {
		var zero O
		return zero, false, err
	}
	return out, true, nil
}

func (it *mapIter[I, O]) Close() error { return it.source.Close() }

type filterIter[T any] struct {
	source Iterator[T]
	fn     func(context.Context, T) (bool, error)
}

func (it *filterIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return val, false, err
		}
		keep, err := it.fn(ctx, val)
		if err != nil {
			var zero T
			return zero, false, err
		}
		if keep {
			return val, true, nil
		}
	}
}

func (it *filterIter[T]) Close() error { return it.source.Close() }

type flattenIter[T any] struct {
	source  Iterator[Iterator[T]]
	current Iterator[T]
}

func (it *flattenIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for {
		if it.current != nil {
			val, ok, err := it.current.Next(ctx)
			if err != nil {
				var zero T
				return zero, false, err
			}
			if ok {
				return val, true, nil
			}
			_ = it.current.Close()
			it.current = nil
		}
		inner, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			var zero T
			return zero, false, err
		}
		it.current = inner
	}
}

func (it *flattenIter[T]) Close() error {
	if it.current != nil {
		_ = it.current.Close()
	}
	return it.source.Close()
}

type tapIter[T any] struct {
	source Iterator[T]
	fn     func(context.Context, T) error
}

func (it *tapIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return val, ok, err
	}
	if err := it.fn(ctx, val); err != nil {
		var zero T
		return zero, false, err
	}
	return val, true, nil
}

func (it *tapIter[T]) Close() error { return it.source.Close() }

type concatIter[T any] struct {
	iters []Iterator[T]
	index int
}

func (it *concatIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for it.index < len(it.iters) {
		val, ok, err := it.iters[it.index].Next(ctx)
		if err != nil {
			return val, false, err
		}
		if ok {
			return val, true, nil
		}
		it.index++
	}
	var zero T
	return zero, false, nil
}

func (it *concatIter[T]) Close() error {
	var firstErr error
	for _, iter := range it.iters {
		if err := iter.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type takeIter[T any] struct {
	source    Iterator[T]
	remaining int
}

func (it *takeIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	if it.remaining <= 0 {
		var zero T
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return val, false, err
	}
	it.remaining--
	return val, true, nil
}

func (it *takeIter[T]) Close() error { return it.source.Close() }
