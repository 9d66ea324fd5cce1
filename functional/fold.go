package functional

import (
	"context"

	"github.com/kbukum/fnkit/errors"
	"github.com/kbukum/fnkit/seq"
)

// Number is the set of element types Mean accepts.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Identity returns its argument unchanged.
func Identity[T any](x T) T {
	return x
}

// Pointwise returns a function that applies fs[i] to xs[i] and returns the
// results in order. The result always has len(fs) elements: inputs beyond
// len(fs) are ignored, and fewer inputs than functions is a SHAPE_MISMATCH.
func Pointwise[T, R any](fs ...func(T) R) func(xs []T) ([]R, error) {
	return func(xs []T) ([]R, error) {
		if len(xs) < len(fs) {
			return nil, errors.ShapeMismatch("pointwise", len(fs), len(xs))
		}
		out := make([]R, len(fs))
		for i, f := range fs {
			out[i] = f(xs[i])
		}
		return out, nil
	}
}

// Foldl folds xs from the left: acc = f(acc, x) for each x in order.
func Foldl[A, E any](f func(acc A, elem E) A, init A, xs []E) A {
	acc := init
	for _, x := range xs {
		acc = f(acc, x)
	}
	return acc
}

// Foldr folds xs from the right: acc = f(x, acc) for each x from last to
// first. Note the element comes first, the reverse of Foldl.
func Foldr[E, A any](f func(elem E, acc A) A, init A, xs []E) A {
	acc := init
	for i := len(xs) - 1; i >= 0; i-- {
		acc = f(xs[i], acc)
	}
	return acc
}

// FoldlSeq is Foldl over a lazy iterator. The iterator is drained and closed.
func FoldlSeq[A, E any](ctx context.Context, f func(acc A, elem E) A, init A, it seq.Iterator[E]) (A, error) {
	acc := init
	err := seq.ForEach(ctx, it, func(_ context.Context, x E) error {
		acc = f(acc, x)
		return nil
	})
	return acc, err
}

// FoldrSeq is Foldr over a lazy iterator. A right fold needs the last element
// first, so the iterator is buffered in full before folding.
func FoldrSeq[E, A any](ctx context.Context, f func(elem E, acc A) A, init A, it seq.Iterator[E]) (A, error) {
	xs, err := seq.Collect(ctx, it)
	if err != nil {
		return init, err
	}
	return Foldr(f, init, xs), nil
}

// Mean returns the arithmetic mean of xs. An empty input is an EMPTY_INPUT error.
func Mean[N Number](xs []N) (float64, error) {
	if len(xs) == 0 {
		return 0, errors.EmptyInput("mean")
	}
	sum := Foldl(func(acc float64, x N) float64 { return acc + float64(x) }, 0, xs)
	return sum / float64(len(xs)), nil
}
