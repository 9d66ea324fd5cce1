package functional

import (
	"context"

	"github.com/kbukum/fnkit/errors"
	"github.com/kbukum/fnkit/seq"
)

// Each returns a single-stage pipeline mapping every element of its input
// sequence through New(stages...). The result is a lazy iterator: element i
// is computed when the consumer pulls it, and its error, if any, is
// returned from that Next call.
func Each(stages ...Stage) *Pipeline {
	inner := New(stages...)
	return &Pipeline{stages: []Stage{func(_ context.Context, xs any) (any, error) {
		it, err := iterate("each", xs)
		if err != nil {
			return nil, err
		}
		return seq.Map(it, inner.Run), nil
	}}}
}

// Join returns a single-stage pipeline flattening a sequence of sequences
// by exactly one level. An inner element that is not a sequence fails with
// NOT_ITERABLE when it is reached.
func Join() *Pipeline {
	return &Pipeline{stages: []Stage{func(_ context.Context, xss any) (any, error) {
		outer, err := iterate("join", xss)
		if err != nil {
			return nil, err
		}
		inner := seq.Map(outer, func(_ context.Context, xs any) (seq.Iterator[any], error) {
			return iterate("join", xs)
		})
		return seq.Flatten(inner), nil
	}}}
}

// Filt returns a single-stage pipeline keeping, in order, the elements of
// its input sequence for which pred returns true. Filtering is lazy.
func Filt(pred func(any) bool) *Pipeline {
	if pred == nil {
		panic(errors.InvalidStage("filt", 0))
	}
	return &Pipeline{stages: []Stage{func(_ context.Context, xs any) (any, error) {
		it, err := iterate("filt", xs)
		if err != nil {
			return nil, err
		}
		return seq.Filter(it, pred), nil
	}}}
}

// FiltOf is Filt with a typed predicate. An element that is not a T fails
// with TYPE_MISMATCH when it is pulled.
func FiltOf[T any](pred func(T) bool) *Pipeline {
	if pred == nil {
		panic(errors.InvalidStage("filt", 0))
	}
	return &Pipeline{stages: []Stage{func(_ context.Context, xs any) (any, error) {
		it, err := iterate("filt", xs)
		if err != nil {
			return nil, err
		}
		return seq.FilterE(it, func(_ context.Context, v any) (bool, error) {
			in, err := cast[T]("filt", v)
			if err != nil {
				return false, err
			}
			return pred(in), nil
		}), nil
	}}}
}

// MakeFilterStage returns the lazy filtering pipeline for pred. It is Filt
// under the name used by call sites that build rather than apply.
func MakeFilterStage(pred func(any) bool) *Pipeline {
	return Filt(pred)
}

// FilterNow filters xs immediately and returns the kept elements in order.
func FilterNow[T any](pred func(T) bool, xs []T) []T {
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		if pred(x) {
			out = append(out, x)
		}
	}
	return out
}

// Filter dispatches on argument count for callers that use a single name
// for both forms:
//
//	Filter(pred)     -> *Pipeline, same as Filt(pred)
//	Filter(pred, xs) -> []any holding the kept elements of xs
//
// pred must be a func(any) bool. Any other argument count is an
// ARITY_MISMATCH.
func Filter(args ...any) (any, error) {
	if len(args) != 1 && len(args) != 2 {
		return nil, errors.ArityMismatch("filter", len(args), 1, 2)
	}
	pred, ok := args[0].(func(any) bool)
	if !ok || pred == nil {
		return nil, errors.TypeMismatch("filter", "func(any) bool", args[0])
	}
	if len(args) == 1 {
		return Filt(pred), nil
	}
	it, err := iterate("filter", args[1])
	if err != nil {
		return nil, err
	}
	kept, err := seq.Collect(context.Background(), seq.Filter(it, pred))
	if err != nil {
		return nil, err
	}
	if kept == nil {
		kept = []any{}
	}
	return kept, nil
}
