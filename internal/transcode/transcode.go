// Package transcode launches the external transcoding script.
package transcode

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aatumaykin/rapture/internal/config"
	"github.com/aatumaykin/rapture/internal/executor"
	"github.com/aatumaykin/rapture/internal/logger"
)

// ExitError is returned when the transcoding script exits with a non-zero status.
type ExitError struct {
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("transcoding script exited with code %d", e.ExitCode)
}

// Launcher runs the transcoding script with arguments taken from the configuration.
type Launcher struct {
	runner executor.Runner
	cfg    *config.Config
	logger *logger.Logger
}

// NewLauncher creates a new Launcher.
func NewLauncher(runner executor.Runner, cfg *config.Config, log *logger.Logger) *Launcher {
	if log == nil {
		log = logger.Discard()
	}
	return &Launcher{
		runner: runner,
		cfg:    cfg,
		logger: log,
	}
}

// Command builds the argument vector for the transcoding script.
func (l *Launcher) Command() executor.Command {
	t := l.cfg.Transcode
	args := []string{
		t.Script,
		"--input", l.cfg.Paths.InputDir,
		"--output", l.cfg.Paths.OutputDir,
		"--codec", t.Codec,
		"--crf", strconv.Itoa(t.Quality),
	}

	var secrets []string
	if md := l.cfg.MediaDetection; md.Enabled {
		args = append(args,
			"--use-media-detection",
			"--api-key", md.OMDbAPIKey,
			"--movies-dir", l.cfg.Paths.MoviesDir,
			"--tv-shows-dir", l.cfg.Paths.TVShowsDir,
		)
		secrets = append(secrets, md.OMDbAPIKey)
	}

	if t.DeleteOriginal {
		args = append(args, "--delete-original")
	}

	return executor.Command{
		Name:    t.Interpreter,
		Args:    args,
		Secrets: secrets,
	}
}

// Run starts the script and waits for it. Output goes to the terminal.
func (l *Launcher) Run(ctx context.Context) error {
	cmd := l.Command()
	l.logger.InfoCtx(ctx, "Starting transcoding", logger.Field{Key: "command", Value: cmd.Masked()})

	res, err := l.runner.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("failed to start transcoding: %w", err)
	}
	if !res.OK() {
		return &ExitError{ExitCode: res.ExitCode}
	}

	l.logger.InfoCtx(ctx, "Transcoding finished", logger.Field{Key: "duration", Value: res.Duration})
	return nil
}
