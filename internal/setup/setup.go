// Package setup installs the transcoder's dependencies, either through a
// project-provided setup script or through the host package manager.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"

	"github.com/aatumaykin/rapture/internal/config"
	"github.com/aatumaykin/rapture/internal/constants"
	"github.com/aatumaykin/rapture/internal/executor"
	"github.com/aatumaykin/rapture/internal/logger"
)

// ErrUnsupportedPlatform matches UnsupportedPlatformError with errors.Is.
var ErrUnsupportedPlatform = errors.New("automatic installation is not supported")

// UnsupportedPlatformError is returned when there is no setup script and
// no built-in plan for the host.
type UnsupportedPlatformError struct {
	Platform string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf(constants.MsgSetupUnsupported, e.Platform)
}

func (e *UnsupportedPlatformError) Is(target error) bool {
	return target == ErrUnsupportedPlatform
}

// Step is one command of an installation plan.
type Step struct {
	Description string
	Command     executor.Command
}

// StepError is returned when a step exits with a non-zero status.
type StepError struct {
	Step     string
	ExitCode int
}

func (e *StepError) Error() string {
	return fmt.Sprintf(constants.MsgSetupStepFailed, e.Step, e.ExitCode)
}

// Installer runs the setup script or the built-in plan.
type Installer struct {
	runner   executor.Runner
	fs       afero.Fs
	cfg      config.SetupConfig
	platform string
	out      io.Writer
	logger   *logger.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithPlatform overrides the detected operating system.
func WithPlatform(goos string) Option {
	return func(i *Installer) {
		i.platform = goos
	}
}

// WithOutput sets where progress lines are printed.
func WithOutput(w io.Writer) Option {
	return func(i *Installer) {
		i.out = w
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(i *Installer) {
		i.logger = log
	}
}

// NewInstaller creates a new Installer.
func NewInstaller(runner executor.Runner, fs afero.Fs, cfg config.SetupConfig, opts ...Option) *Installer {
	i := &Installer{
		runner:   runner,
		fs:       fs,
		cfg:      cfg,
		platform: runtime.GOOS,
		out:      io.Discard,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Plan returns the steps Install would run.
func (i *Installer) Plan() ([]Step, error) {
	if ok, _ := afero.Exists(i.fs, i.cfg.Script); ok {
		name := scriptPath(i.cfg.Script)
		return []Step{{
			Description: name,
			Command:     executor.Command{Name: name},
		}}, nil
	}

	var steps []Step
	switch i.platform {
	case "linux":
		steps = append(steps, Step{
			Description: constants.MsgSetupInstallingFFmpeg,
			Command:     executor.Command{Name: "sudo", Args: []string{"apt", "install", "-y", "ffmpeg"}},
		})
	case "darwin":
		steps = append(steps, Step{
			Description: constants.MsgSetupInstallingFFmpeg,
			Command:     executor.Command{Name: "brew", Args: []string{"install", "ffmpeg"}},
		})
	default:
		return nil, &UnsupportedPlatformError{Platform: i.platform}
	}

	if ok, _ := afero.Exists(i.fs, i.cfg.Requirements); ok {
		steps = append(steps, Step{
			Description: constants.MsgSetupInstallingRequirements,
			Command:     executor.Command{Name: "pip", Args: []string{"install", "-r", i.cfg.Requirements}},
		})
	}

	return steps, nil
}

// scriptPath makes a bare file name relative to the working directory so it
// is not looked up on PATH.
func scriptPath(script string) string {
	if strings.ContainsRune(script, '/') || strings.ContainsRune(script, filepath.Separator) {
		return script
	}
	return "." + string(filepath.Separator) + script
}

// Install runs the plan and stops at the first failing step.
func (i *Installer) Install(ctx context.Context) error {
	steps, err := i.Plan()
	if err != nil {
		return err
	}

	for _, step := range steps {
		if step.Description != step.Command.Name {
			fmt.Fprintln(i.out, step.Description)
		}

		i.logger.InfoCtx(ctx, "Running setup step", logger.Field{Key: "command", Value: step.Command.String()})
		res, err := i.runner.Run(ctx, step.Command)
		if err != nil {
			return fmt.Errorf("setup step %s: %w", step.Command.Name, err)
		}
		if !res.OK() {
			return &StepError{Step: step.Command.String(), ExitCode: res.ExitCode}
		}
	}

	return nil
}
