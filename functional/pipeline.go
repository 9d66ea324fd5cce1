package functional

import (
	"context"
	"reflect"

	"github.com/kbukum/fnkit/errors"
)

// Stage is one unary step of a Pipeline. Stages are untyped because a
// pipeline may change the value's type at every step.
type Stage func(ctx context.Context, x any) (any, error)

// Pipeline is an ordered list of stages applied left to right.
// The zero value and a nil *Pipeline are both the identity.
type Pipeline struct {
	stages []Stage
}

// New creates a pipeline from stages. It panics if any stage is nil.
func New(stages ...Stage) *Pipeline {
	for i, s := range stages {
		if s == nil {
			panic(errors.InvalidStage("pipeline", i))
		}
	}
	return &Pipeline{stages: append([]Stage(nil), stages...)}
}

// Do is an alias for New.
func Do(stages ...Stage) *Pipeline {
	return New(stages...)
}

// Run applies every stage to x in order and returns the final value. The
// first stage error is returned as-is and later stages are skipped.
func (p *Pipeline) Run(ctx context.Context, x any) (any, error) {
	if p == nil {
		return x, nil
	}
	var err error
	for _, s := range p.stages {
		if x, err = s(ctx, x); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// Stage returns the pipeline as a single stage, for nesting inside another pipeline.
func (p *Pipeline) Stage() Stage {
	return p.Run
}

// Then returns Compose(p, next).
func (p *Pipeline) Then(next *Pipeline) *Pipeline {
	return Compose(p, next)
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	if p == nil {
		return 0
	}
	return len(p.stages)
}

// Stages returns a copy of the stage list.
func (p *Pipeline) Stages() []Stage {
	if p == nil {
		return nil
	}
	return append([]Stage(nil), p.stages...)
}

// Compose returns a new pipeline running a's stages followed by b's.
// Neither operand is modified.
func Compose(a, b *Pipeline) *Pipeline {
	return Chain(a, b)
}

// Chain concatenates the stages of every pipeline, in order, into a new pipeline.
func Chain(ps ...*Pipeline) *Pipeline {
	n := 0
	for _, p := range ps {
		n += p.Len()
	}
	stages := make([]Stage, 0, n)
	for _, p := range ps {
		if p != nil {
			stages = append(stages, p.stages...)
		}
	}
	return &Pipeline{stages: stages}
}

// Apply runs p on x and asserts the result to R.
func Apply[R any](ctx context.Context, p *Pipeline, x any) (R, error) {
	out, err := p.Run(ctx, x)
	if err != nil {
		var zero R
		return zero, err
	}
	return cast[R]("apply", out)
}

// Lift turns a typed function into a Stage.
func Lift[I, O any](fn func(I) O) Stage {
	return func(_ context.Context, x any) (any, error) {
		in, err := cast[I]("lift", x)
		if err != nil {
			return nil, err
		}
		return fn(in), nil
	}
}

// LiftE turns a typed function that may fail into a Stage.
func LiftE[I, O any](fn func(I) (O, error)) Stage {
	return func(_ context.Context, x any) (any, error) {
		in, err := cast[I]("lift", x)
		if err != nil {
			return nil, err
		}
		return fn(in)
	}
}

// LiftCtx turns a typed, context-aware function into a Stage.
func LiftCtx[I, O any](fn func(context.Context, I) (O, error)) Stage {
	return func(ctx context.Context, x any) (any, error) {
		in, err := cast[I]("lift", x)
		if err != nil {
			return nil, err
		}
		return fn(ctx, in)
	}
}

// cast asserts x to T. A nil x converts to the zero value of nil-able types.
func cast[T any](op string, x any) (T, error) {
	if v, ok := x.(T); ok {
		return v, nil
	}
	var zero T
	if x == nil {
		switch reflect.TypeFor[T]().Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return zero, nil
		}
	}
	return zero, errors.TypeMismatch(op, reflect.TypeFor[T]().String(), x)
}
