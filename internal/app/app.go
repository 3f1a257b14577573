// Package app provides the main application structure for rapture.
// It builds the menu services and their collaborators from the
// configuration and hands them to the menu or to single subcommands.
package app

import (
	"io"

	"github.com/spf13/afero"

	"github.com/aatumaykin/rapture/internal/config"
	"github.com/aatumaykin/rapture/internal/crontab"
	"github.com/aatumaykin/rapture/internal/executor"
	"github.com/aatumaykin/rapture/internal/logger"
	"github.com/aatumaykin/rapture/internal/menu"
	"github.com/aatumaykin/rapture/internal/metrics"
	"github.com/aatumaykin/rapture/internal/prompt"
	"github.com/aatumaykin/rapture/internal/schedule"
)

// MetricsNamespace prefixes every exported metric.
const MetricsNamespace = "rapture"

// App represents the main application structure.
// It holds references to all major components.
type App struct {
	// Configuration and core services
	config *config.Config
	logger *logger.Logger

	// Collaborators, replaceable in tests
	runner executor.Runner
	fs     afero.Fs
	store  crontab.Store
	getwd  func() (string, error)
	out    io.Writer

	// Built by Initialize
	metrics     *metrics.Recorder
	synthesizer *schedule.Synthesizer
	services    menu.Services
	initialized bool
}

// Option configures an App.
type Option func(*App)

// WithRunner replaces the process runner.
func WithRunner(r executor.Runner) Option {
	return func(a *App) {
		a.runner = r
	}
}

// WithFs replaces the filesystem used for existence checks.
func WithFs(fs afero.Fs) Option {
	return func(a *App) {
		a.fs = fs
	}
}

// WithCrontab replaces the crontab store.
func WithCrontab(store crontab.Store) Option {
	return func(a *App) {
		a.store = store
	}
}

// WithWorkingDir replaces working directory resolution for crontab entries.
func WithWorkingDir(getwd func() (string, error)) Option {
	return func(a *App) {
		a.getwd = getwd
	}
}

// WithOutput sets where setup progress is printed.
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		a.out = w
	}
}

// New creates a new App instance with the provided configuration and logger.
// Components are built in Initialize.
func New(cfg *config.Config, log *logger.Logger, opts ...Option) *App {
	a := &App{
		config: cfg,
		logger: log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Menu returns the interactive menu wired to the application services.
func (a *App) Menu(p prompt.Prompter, out io.Writer) *menu.Menu {
	m := menu.New(p, out, menu.WithLogger(a.logger), menu.WithMetrics(a.metrics))
	menu.Register(m, a.services)
	return m
}

// Synthesizer returns the crontab entry synthesizer.
func (a *App) Synthesizer() *schedule.Synthesizer {
	return a.synthesizer
}

// Metrics returns the metrics recorder.
func (a *App) Metrics() *metrics.Recorder {
	return a.metrics
}

// Config returns the configuration.
func (a *App) Config() *config.Config {
	return a.config
}
