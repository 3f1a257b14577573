package app

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/aatumaykin/rapture/internal/crontab"
	"github.com/aatumaykin/rapture/internal/deps"
	"github.com/aatumaykin/rapture/internal/executor"
	"github.com/aatumaykin/rapture/internal/logger"
	"github.com/aatumaykin/rapture/internal/logs"
	"github.com/aatumaykin/rapture/internal/menu"
	"github.com/aatumaykin/rapture/internal/metrics"
	"github.com/aatumaykin/rapture/internal/schedule"
	"github.com/aatumaykin/rapture/internal/setup"
	"github.com/aatumaykin/rapture/internal/transcode"
)

// Initialize builds all application components.
func (a *App) Initialize(ctx context.Context) error {
	if a.initialized {
		return fmt.Errorf("application already initialized")
	}
	if a.config == nil {
		return fmt.Errorf("configuration is required")
	}
	if a.logger == nil {
		a.logger = logger.Discard()
	}

	// 1. Process runner and filesystem
	if a.runner == nil {
		a.runner = executor.NewExecRunner(a.logger)
	}
	if a.fs == nil {
		a.fs = afero.NewOsFs()
	}
	if a.out == nil {
		a.out = os.Stdout
	}

	// 2. Crontab store and synthesizer
	if a.store == nil {
		a.store = crontab.NewCommandStore(a.runner)
	}
	opts := []schedule.Option{
		schedule.WithLauncher(a.config.Schedule.Launcher),
		schedule.WithLogger(a.logger),
	}
	if a.getwd != nil {
		opts = append(opts, schedule.WithWorkingDir(a.getwd))
	}
	a.synthesizer = schedule.New(a.store, opts...)

	// 3. Metrics
	a.metrics = metrics.NewRecorder(MetricsNamespace)

	// 4. Menu services
	a.services = menu.Services{
		Transcoder: transcode.NewLauncher(a.runner, a.config, a.logger),
		Checker:    deps.NewChecker(a.runner, a.config.Dependencies.Tools, a.logger),
		Installer: setup.NewInstaller(a.runner, a.fs, a.config.Setup,
			setup.WithOutput(a.out), setup.WithLogger(a.logger)),
		Viewer:    logs.NewViewer(a.runner, a.fs, a.config.Logs.File, a.config.Logs.Opener, a.logger),
		Scheduler: a.synthesizer,
		Metrics:   a.metrics,
	}

	a.initialized = true
	a.logger.DebugCtx(ctx, "Application initialized",
		logger.Field{Key: "launcher", Value: a.config.Schedule.Launcher},
		logger.Field{Key: "tools", Value: len(a.config.Dependencies.Tools)})
	return nil
}
