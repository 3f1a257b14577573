// Package logs hands the transcoding log file to the system file opener.
package logs

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/afero"

	"github.com/aatumaykin/rapture/internal/constants"
	"github.com/aatumaykin/rapture/internal/executor"
	"github.com/aatumaykin/rapture/internal/logger"
)

// NotFoundError is returned when the log file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf(constants.MsgLogsNotFound, e.Path)
}

// Viewer opens a log file with the platform's opener.
type Viewer struct {
	runner executor.Runner
	fs     afero.Fs
	path   string
	opener string
	logger *logger.Logger
}

// NewViewer creates a Viewer for path. An empty opener selects the
// platform default.
func NewViewer(runner executor.Runner, fs afero.Fs, path, opener string, log *logger.Logger) *Viewer {
	if opener == "" {
		opener = DefaultOpener(runtime.GOOS)
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Viewer{
		runner: runner,
		fs:     fs,
		path:   path,
		opener: opener,
		logger: log,
	}
}

// DefaultOpener returns the file opener for goos.
func DefaultOpener(goos string) string {
	if goos == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// Open checks that the log file exists and passes it to the opener.
func (v *Viewer) Open(ctx context.Context) error {
	exists, err := afero.Exists(v.fs, v.path)
	if err != nil {
		return fmt.Errorf("failed to check log file: %w", err)
	}
	if !exists {
		return &NotFoundError{Path: v.path}
	}

	cmd := executor.Command{Name: v.opener, Args: []string{v.path}}
	res, err := v.runner.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if !res.OK() {
		v.logger.WarnCtx(ctx, "Log opener exited with non-zero status",
			logger.Field{Key: "command", Value: cmd.String()},
			logger.Field{Key: "exit_code", Value: res.ExitCode})
		return fmt.Errorf("%s exited with code %d", v.opener, res.ExitCode)
	}
	return nil
}
