package fnstat

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kbukum/fnkit/errors"
	"github.com/kbukum/fnkit/functional"
	"github.com/kbukum/fnkit/seq"
)

// PipelineName labels the stats pipeline in spans, metrics and logs.
const PipelineName = "stats"

var predicates = map[string]func(float64) bool{
	PredicateAll:      func(float64) bool { return true },
	PredicateEven:     func(x float64) bool { return isInteger(x) && math.Mod(x, 2) == 0 },
	PredicateOdd:      func(x float64) bool { return isInteger(x) && math.Mod(x, 2) != 0 },
	PredicatePositive: func(x float64) bool { return x > 0 },
	PredicateNegative: func(x float64) bool { return x < 0 },
}

func isInteger(x float64) bool {
	return x == math.Trunc(x)
}

// Report is the result of one stats run.
type Report struct {
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
	// Mean is nil when no value was kept.
	Mean           *float64 `json:"mean"`
	AlternatingSum float64  `json:"alternating_sum"`
}

// Keep reports whether x passes the predicate and the bounds.
func (c StatsConfig) Keep(x float64) bool {
	pred, ok := predicates[c.Predicate]
	if !ok || !pred(x) {
		return false
	}
	if c.Min != nil && x < *c.Min {
		return false
	}
	if c.Max != nil && x > *c.Max {
		return false
	}
	return true
}

// Transform applies scale and offset.
func (c StatsConfig) Transform(x float64) float64 {
	return x*c.Scale + c.Offset
}

// Pipeline builds the lazy line-to-value pipeline.
func (c StatsConfig) Pipeline() *functional.Pipeline {
	return functional.Chain(
		functional.FiltOf(isData),
		functional.Each(functional.LiftE(parseLine)),
		functional.FiltOf(c.Keep),
		functional.Each(functional.Lift(c.Transform)),
	)
}

// parseLine parses the value on a data line. NaN and infinities are rejected.
func parseLine(l Line) (float64, error) {
	text := strings.TrimSpace(l.Text)
	x, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		appErr := errors.InvalidInput("value", fmt.Sprintf("%s:%d: %q is not a finite number", l.Source, l.No, text)).
			WithDetail("source", l.Source).
			WithDetail("line", l.No)
		if err != nil {
			appErr = appErr.WithCause(err)
		}
		return 0, appErr
	}
	return x, nil
}

// Compute runs the stats pipeline over lines and summarizes the kept values.
func Compute(ctx context.Context, cfg StatsConfig, lines seq.Iterator[any], opts ...functional.ObserveOption) (*Report, error) {
	p := functional.Observe(PipelineName, cfg.Pipeline(), opts...)
	out, err := p.Run(ctx, lines)
	if err != nil {
		return nil, err
	}
	it, err := functional.Iterate(out)
	if err != nil {
		return nil, err
	}
	if cfg.Limit > 0 {
		it = seq.Take(it, cfg.Limit)
	}
	xs, err := functional.CollectAs[float64](ctx, it)
	if err != nil {
		return nil, err
	}
	return Summarize(xs)
}

// Summarize reports count, sum, mean and alternating sum of xs.
func Summarize(xs []float64) (*Report, error) {
	r := &Report{
		Count:          len(xs),
		Sum:            functional.Foldl(func(acc, x float64) float64 { return acc + x }, 0, xs),
		AlternatingSum: functional.Foldr(func(x, acc float64) float64 { return x - acc }, 0, xs),
	}
	mean, err := functional.Mean(xs)
	switch {
	case err == nil:
		r.Mean = &mean
	case !errors.IsCode(err, errors.ErrCodeEmptyInput):
		return nil, err
	}
	return r, nil
}
