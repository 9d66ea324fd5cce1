package fnstat

import (
	"context"
	stderrors "errors"

	"github.com/kbukum/fnkit/bootstrap"
	"github.com/kbukum/fnkit/observability"
)

// registerTelemetry installs OTLP trace and metric providers for the run
// when telemetry is enabled. Providers are flushed by a stop hook.
func registerTelemetry(app *bootstrap.App[*Config]) {
	tc := app.Cfg.Telemetry
	if !tc.Enabled {
		return
	}

	var shutdown []func(context.Context) error
	app.OnStart(func(ctx context.Context) error {
		tracerCfg := observability.DefaultTracerConfig(app.Name)
		tracerCfg.ServiceVersion = app.Version
		tracerCfg.Environment = app.Cfg.Environment
		tracerCfg.Endpoint = tc.Endpoint
		tracerCfg.Insecure = tc.Insecure
		tracerCfg.SampleRate = tc.SampleRate

		tp, err := observability.InitTracer(ctx, tracerCfg)
		if err != nil {
			return err
		}
		shutdown = append(shutdown, tp.Shutdown)

		meterCfg := observability.DefaultMeterConfig(app.Name)
		meterCfg.ServiceVersion = app.Version
		meterCfg.Environment = app.Cfg.Environment
		meterCfg.Endpoint = tc.Endpoint
		meterCfg.Insecure = tc.Insecure
		meterCfg.Interval = tc.Interval

		mp, err := observability.InitMeter(ctx, &meterCfg)
		if err != nil {
			return err
		}
		shutdown = append(shutdown, mp.Shutdown)
		return nil
	})
	app.OnStop(func(ctx context.Context) error {
		var errs []error
		for _, fn := range shutdown {
			errs = append(errs, fn(ctx))
		}
		return stderrors.Join(errs...)
	})
}
