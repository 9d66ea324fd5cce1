package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/fnkit/errors"
	"github.com/kbukum/fnkit/logger"
)

// App holds what a task needs for one run.
// The type parameter C is the config type.
type App[C Config] struct {
	Name    string
	Version string
	RunID   string
	Cfg     C
	Logger  *logger.Logger

	gracefulTimeout time.Duration

	onStart []Hook
	onStop  []Hook
}

// NewApp creates an application from a typed config. It applies defaults,
// validates the config, and sets up the logger and run id.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.InvalidConfig("config validation failed").WithCause(err)
	}

	base := cfg.GetServiceConfig()
	o := resolveOptions(opts)

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		RunID:           o.runID,
		Cfg:             cfg,
		Logger:          o.logger,
		gracefulTimeout: 15 * time.Second,
	}
	if app.RunID == "" {
		app.RunID = uuid.NewString()
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if app.Logger == nil {
		app.Logger = logger.New(&base.Logging, base.Name)
	}
	return app, nil
}

// RunTask runs start hooks, the task, and stop hooks. The task context
// carries the run id and is canceled on SIGINT or SIGTERM. The task error
// wins over a stop error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	ctx = logger.ContextWithRunID(ctx, a.RunID)
	log := a.Logger.WithContext(ctx)

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			log.Info("received signal, canceling task", logger.Fields("signal", sig.String()))
			cancel()
		case <-taskCtx.Done():
		}
	}()

	start := time.Now()
	log.Debug("starting task", logger.Fields("name", a.Name, "version", a.Version))

	var taskErr error
	if err := runHooks(taskCtx, a.onStart); err != nil {
		taskErr = fmt.Errorf("start failed: %w", err)
	} else {
		taskErr = task(taskCtx)
	}

	stopErr := a.stop(ctx)

	fields := logger.DurationFields("task", time.Since(start))
	if taskErr != nil {
		log.Debug("task failed", logger.MergeWithError(fields, taskErr))
		return taskErr
	}
	log.Debug("task complete", fields)
	return stopErr
}

// stop runs the stop hooks in reverse order within the graceful timeout.
// Every hook runs; the first error is returned.
func (a *App[C]) stop(parent context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), a.gracefulTimeout)
	defer cancel()

	var first error
	for _, h := range slices.Backward(a.onStop) {
		if err := h(ctx); err != nil {
			a.Logger.WithContext(ctx).Error("stop hook failed", logger.Fields(logger.FieldError, err.Error()))
			if first == nil {
				first = err
			}
		}
	}
	return first
}
