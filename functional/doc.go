// Package functional provides folds, function composition, and lazy
// pipeline combinators.
//
// A Pipeline is an ordered list of unary stages applied left to right. An
// empty Pipeline is the identity. Pipelines are composed with Compose (or
// Then) into a new Pipeline and run against a value with Run or Apply;
// composing never mutates either operand.
//
// Each, Join and Filt build single-stage pipelines whose output is a lazy
// seq.Iterator: elements are computed only as the consumer calls Next, and
// the iterator can be traversed once. A failure inside an element function
// surfaces from the Next call that pulls that element, unmodified.
//
// # Usage
//
//	double := functional.Lift(func(n int) int { return n * 2 })
//	p := functional.New(
//	    functional.Filt(func(v any) bool { return v.(int)%2 == 0 }).Stage(),
//	    functional.Each(double).Stage(),
//	)
//	out, err := p.Run(ctx, []int{1, 2, 3, 4})        // lazy iterator over 4, 8
//	vals, err := functional.CollectAs[int](ctx, out)     // [4 8]
//
// Lifted stages check the runtime type of their input and fail with a
// TYPE_MISMATCH error instead of panicking. Contract violations (too few
// inputs for Pointwise, a wrong argument count for Filter, a non-sequence
// given to a combinator) are reported as *errors.AppError values; errors
// returned by caller functions pass through untouched.
package functional
