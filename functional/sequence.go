package functional

import (
	"context"
	"iter"
	"reflect"

	"github.com/kbukum/fnkit/errors"
	"github.com/kbukum/fnkit/seq"
)

// Iterate adapts x to a lazy iterator of its elements. Accepted inputs are
// seq.Iterator[any], iter.Seq[any], and any slice or array. Strings, maps and
// scalars are not sequences and fail with NOT_ITERABLE.
func Iterate(x any) (seq.Iterator[any], error) {
	return iterate("iterate", x)
}

// CollectAs drains the sequence x into a typed slice.
func CollectAs[T any](ctx context.Context, x any) ([]T, error) {
	it, err := iterate("collect", x)
	if err != nil {
		return nil, err
	}
	typed := seq.Map(it, func(_ context.Context, v any) (T, error) {
		return cast[T]("collect", v)
	})
	return seq.Collect(ctx, typed)
}

func iterate(op string, x any) (seq.Iterator[any], error) {
	switch v := x.(type) {
	case seq.Iterator[any]:
		return v, nil
	case []any:
		return seq.FromSlice(v), nil
	case iter.Seq[any]:
		return seq.FromSeq(v), nil
	case func(yield func(any) bool):
		return seq.FromSeq(v), nil
	case nil, string:
		return nil, errors.NotIterable(op, x)
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return &reflectIter{v: rv}, nil
	}
	return nil, errors.NotIterable(op, x)
}

// reflectIter walks a slice or array of any element type.
type reflectIter struct {
	v reflect.Value
	i int
}

func (it *reflectIter) Next(_ context.Context) (any, bool, error) {
	if it.i >= it.v.Len() {
		return nil, false, nil
	}
	val := it.v.Index(it.i).Interface()
	it.i++
	return val, true, nil
}

func (it *reflectIter) Close() error { return nil }
