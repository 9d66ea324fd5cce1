// Package seq provides lazy, pull-based, single-pass iterators.
//
// Nothing is computed until a consumer calls Next. Each operator pulls one
// value from its source per Next call, so a consumer that stops early never
// triggers the remaining work. Iterators are forward-only: once a value has
// been returned it cannot be produced again without rebuilding the chain.
//
// # Operators
//
//   - Map: transform each value (the function may fail)
//   - Filter: keep values matching a predicate
//   - Flatten: remove one level of nesting from an iterator of iterators
//   - Tap: side-effect without altering the value
//   - Concat: join iterators sequentially
//   - Take: stop after n values
//
// # Usage
//
//	it := seq.FromSlice([]int{1, 2, 3, 4})
//	evens := seq.Filter(it, func(n int) bool { return n%2 == 0 })
//	doubled := seq.Map(evens, func(_ context.Context, n int) (int, error) {
//	    return n * 2, nil
//	})
//	out, err := seq.Collect(ctx, doubled) // [4 8]
package seq
