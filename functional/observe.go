package functional

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/fnkit/logger"
	"github.com/kbukum/fnkit/observability"
	"github.com/kbukum/fnkit/seq"
)

const observeScope = "github.com/kbukum/fnkit/functional"

type observeConfig struct {
	tracer  trace.Tracer
	metrics *observability.Metrics
	log     *logger.Logger
}

// ObserveOption configures Observe.
type ObserveOption func(*observeConfig)

// WithTracer sets the tracer used for run spans.
func WithTracer(t trace.Tracer) ObserveOption {
	return func(c *observeConfig) { c.tracer = t }
}

// WithMetrics sets the instruments run metrics are recorded on.
func WithMetrics(m *observability.Metrics) ObserveOption {
	return func(c *observeConfig) { c.metrics = m }
}

// WithLogger sets the logger for per-run debug lines.
func WithLogger(l *logger.Logger) ObserveOption {
	return func(c *observeConfig) { c.log = l }
}

// Observe wraps p into a single-stage pipeline that traces, measures and
// logs every run under name. The result and error of p are returned
// unchanged, except that a lazy iterator result is wrapped: pulled elements
// are counted, and the run is recorded only when the iterator fails, is
// exhausted or is closed. Until then the run span stays open.
//
// Without options the otel global providers and the global logger are used.
func Observe(name string, p *Pipeline, opts ...ObserveOption) *Pipeline {
	cfg := observeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.tracer == nil {
		cfg.tracer = observability.Tracer(observeScope)
	}
	if cfg.metrics == nil {
		// Instrument creation only fails on invalid names.
		cfg.metrics, _ = observability.NewMetrics(observability.Meter(observeScope))
	}
	if cfg.log == nil {
		cfg.log = logger.WithComponent("pipeline")
	}
	stages := p.Len()

	return &Pipeline{stages: []Stage{func(ctx context.Context, x any) (any, error) {
		ctx, span := cfg.tracer.Start(ctx, observability.SpanPipelineRun, trace.WithAttributes(
			attribute.String(observability.AttrPipeline, name),
			attribute.Int(observability.AttrStageCount, stages),
		))
		if id := logger.RunIDFromContext(ctx); id != "" {
			span.SetAttributes(attribute.String(observability.AttrRunID, id))
		}
		run := &observedRun{cfg: cfg, name: name, stages: stages, ctx: ctx, span: span, start: time.Now()}

		out, err := p.Run(ctx, x)
		if err != nil {
			run.finish(err)
			return nil, err
		}
		if it, ok := out.(seq.Iterator[any]); ok {
			return &observedIter{source: it, run: run}, nil
		}
		run.finish(nil)
		return out, nil
	}}}
}

// observedRun records one run exactly once: span status, run metrics and
// the debug line.
type observedRun struct {
	cfg    observeConfig
	name   string
	stages int
	ctx    context.Context
	span   trace.Span
	start  time.Time
	once   sync.Once
}

func (r *observedRun) finish(err error) {
	r.once.Do(func() {
		elapsed := time.Since(r.start)
		status := observability.StatusOK
		if err != nil {
			status = observability.StatusError
			r.span.RecordError(err)
			r.span.SetStatus(codes.Error, err.Error())
			r.span.SetAttributes(attribute.String(observability.AttrErrorCode, observability.ErrorCode(err)))
		}
		r.span.SetAttributes(
			attribute.String(observability.AttrStatus, status),
			attribute.Int64(observability.AttrDurationMs, elapsed.Milliseconds()),
		)
		r.span.End()

		if r.cfg.metrics != nil {
			r.cfg.metrics.RecordRun(r.ctx, r.name, status, elapsed)
			if err != nil {
				r.cfg.metrics.RecordError(r.ctx, r.name, observability.ErrorCode(err))
			}
		}

		fields := logger.Fields(
			logger.FieldPipeline, r.name,
			logger.FieldStages, r.stages,
			logger.FieldStatus, status,
		)
		log := r.cfg.log.WithContext(r.ctx)
		if err != nil {
			fields[logger.FieldErrorCode] = observability.ErrorCode(err)
			log.Debug("pipeline run failed", logger.MergeWithError(fields, err))
			return
		}
		log.Debug("pipeline run", fields)
	})
}

// observedIter counts pulled elements and finishes its run on the first
// error, on exhaustion, or on Close.
type observedIter struct {
	source seq.Iterator[any]
	run    *observedRun
}

func (it *observedIter) Next(ctx context.Context) (any, bool, error) {
	v, ok, err := it.source.Next(ctx)
	switch {
	case err != nil:
		it.run.finish(err)
	case !ok:
		it.run.finish(nil)
	case it.run.cfg.metrics != nil:
		it.run.cfg.metrics.RecordElements(it.run.ctx, it.run.name, 1)
	}
	return v, ok, err
}

func (it *observedIter) Close() error {
	err := it.source.Close()
	it.run.finish(nil)
	return err
}
