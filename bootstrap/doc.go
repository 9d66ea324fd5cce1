// Package bootstrap runs a command as a finite task with a uniform
// lifecycle: validated config, logger, run id, start hooks, the task itself,
// and stop hooks bounded by a graceful timeout.
//
//	app, err := bootstrap.NewApp(cfg)
//	app.OnStart(initTelemetry)
//	app.OnStop(flushTelemetry)
//	err = app.RunTask(ctx, func(ctx context.Context) error { ... })
//
// The context handed to the task carries the run id (see
// logger.ContextWithRunID) and is canceled on SIGINT or SIGTERM.
package bootstrap
