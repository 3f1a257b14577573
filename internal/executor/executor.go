// Package executor runs external programs from argument vectors.
//
// Commands are never passed through a shell: the program name and its
// arguments are handed to the operating system as-is. Every run reports
// the exit status of the child so callers can map it onto their own
// success and failure messages.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/aatumaykin/rapture/internal/logger"
	"github.com/kballard/go-shellquote"
)

// Command describes a single program invocation.
type Command struct {
	Name string
	Args []string
	Dir  string

	// Stdin, Stdout and Stderr default to the terminal of the current process.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Secrets are argument values replaced with *** when the command is logged.
	Secrets []string
}

// String returns the command line quoted the way a POSIX shell would read it.
func (c Command) String() string {
	return shellquote.Join(append([]string{c.Name}, c.Args...)...)
}

// Masked returns String with every secret replaced by ***.
func (c Command) Masked() string {
	line := c.String()
	for _, secret := range c.Secrets {
		if secret == "" {
			continue
		}
		line = strings.ReplaceAll(line, shellquote.Join(secret), "***")
		line = strings.ReplaceAll(line, secret, "***")
	}
	return line
}

// Result is the outcome of a finished process.
type Result struct {
	ExitCode int
	Duration time.Duration
}

// OK reports whether the process exited with status 0.
func (r Result) OK() bool {
	return r.ExitCode == 0
}

// Runner runs commands.
//
// Run returns an error only when the process could not be started or was
// interrupted by ctx; a non-zero exit status is reported through Result.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	logger *logger.Logger
}

// NewExecRunner creates a new ExecRunner. log may be nil.
func NewExecRunner(log *logger.Logger) *ExecRunner {
	return &ExecRunner{logger: log}
}

// Run starts the command and waits for it to finish.
func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = c.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = c.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if r.logger != nil {
		r.logger.DebugCtx(ctx, "Executing command",
			logger.Field{Key: "command", Value: c.Masked()},
			logger.Field{Key: "dir", Value: c.Dir})
	}

	start := time.Now()
	err := cmd.Run()
	result := Result{
		ExitCode: getExitCode(err),
		Duration: time.Since(start),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("%s interrupted: %w", c.Name, ctxErr)
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		if r.logger != nil {
			r.logger.ErrorCtx(ctx, "Command failed to start", err,
				logger.Field{Key: "command", Value: c.Masked()})
		}
		return result, fmt.Errorf("failed to run %s: %w", c.Name, err)
	}

	if r.logger != nil {
		r.logger.DebugCtx(ctx, "Command finished",
			logger.Field{Key: "command", Value: c.Masked()},
			logger.Field{Key: "exit_code", Value: result.ExitCode},
			logger.Field{Key: "duration", Value: result.Duration})
	}

	return result, nil
}

// getExitCode extracts the exit code from an error.
func getExitCode(err error) int {
	if err == nil {
		return 0
	}

	// Check if it's an exit error
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	// For context cancellation or start failures, return -1
	return -1
}
