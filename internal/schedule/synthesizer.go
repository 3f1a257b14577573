package schedule

import (
	"context"
	"os"
	"path/filepath"

	"github.com/aatumaykin/rapture/internal/constants"
	"github.com/aatumaykin/rapture/internal/crontab"
	"github.com/aatumaykin/rapture/internal/logger"
)

// Synthesizer builds crontab entries and appends them to a crontab store.
type Synthesizer struct {
	store    crontab.Store
	getwd    func() (string, error)
	launcher string
	logger   *logger.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithWorkingDir overrides how the launcher directory is resolved.
func WithWorkingDir(getwd func() (string, error)) Option {
	return func(s *Synthesizer) {
		s.getwd = getwd
	}
}

// WithLauncher sets the launcher file name run by the crontab entry.
func WithLauncher(name string) Option {
	return func(s *Synthesizer) {
		if name != "" {
			s.launcher = name
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Synthesizer) {
		s.logger = log
	}
}

// New creates a Synthesizer writing to store.
func New(store crontab.Store, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		store:    store,
		getwd:    os.Getwd,
		launcher: constants.DefaultLauncher,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Plan returns the entry Install would append, without touching the crontab.
func (s *Synthesizer) Plan(req Request) (Entry, error) {
	dir, err := s.getwd()
	if err != nil {
		return Entry{}, &PathResolutionError{Err: err}
	}
	if !filepath.IsAbs(dir) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return Entry{}, &PathResolutionError{Err: err}
		}
		dir = abs
	}

	return Entry{
		Expression: req.Expression(),
		Command:    filepath.Join(dir, s.launcher),
	}, nil
}

// Install appends the entry for timeOfDay and intervalHours to the crontab.
// Identical calls append identical lines.
func (s *Synthesizer) Install(ctx context.Context, timeOfDay string, intervalHours int) (Entry, error) {
	req := Request{TimeOfDay: timeOfDay, IntervalHours: intervalHours}

	entry, err := s.Plan(req)
	if err != nil {
		s.logger.ErrorCtx(ctx, "Failed to resolve launcher directory", err)
		return Entry{}, err
	}

	for _, w := range Lint(req) {
		s.logger.WarnCtx(ctx, "Suspicious cron expression",
			logger.Field{Key: "expression", Value: string(entry.Expression)},
			logger.Field{Key: "warning", Value: w})
	}

	current, err := s.store.Read(ctx)
	if err != nil {
		s.logger.ErrorCtx(ctx, "Failed to read crontab", err)
		return entry, &CrontabInstallError{Entry: entry, Err: err}
	}

	if err := s.store.Write(ctx, crontab.Append(current, entry.String())); err != nil {
		s.logger.ErrorCtx(ctx, "Failed to install crontab entry", err,
			logger.Field{Key: "entry", Value: entry.String()})
		return entry, &CrontabInstallError{Entry: entry, Err: err}
	}

	s.logger.InfoCtx(ctx, "Crontab entry installed", logger.Field{Key: "entry", Value: entry.String()})
	return entry, nil
}
