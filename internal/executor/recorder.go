package executor

import (
	"context"
	"io"
	"strings"
	"sync"
)

// Handler produces the outcome of a recorded command.
type Handler func(cmd Command) (Result, error)

// Call is a command seen by a Recorder together with the text it received on stdin.
type Call struct {
	Command Command
	Stdin   string
}

// Recorder is a Runner that records commands instead of running them.
// Outcomes are scripted with On; unscripted commands exit with status 0.
type Recorder struct {
	mu       sync.Mutex
	calls    []Call
	handlers map[string]Handler
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{handlers: make(map[string]Handler)}
}

// On scripts the outcome for a command. key is either the full quoted
// command line ("crontab -l") or just the program name ("crontab");
// the full line wins when both are registered.
func (r *Recorder) On(key string, h Handler) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[key] = h
	return r
}

// Run records cmd and replays the scripted outcome.
func (r *Recorder) Run(ctx context.Context, cmd Command) (Result, error) {
	var stdin string
	if cmd.Stdin != nil {
		data, err := io.ReadAll(cmd.Stdin)
		if err != nil {
			return Result{ExitCode: -1}, err
		}
		stdin = string(data)
	}

	r.mu.Lock()
	r.calls = append(r.calls, Call{Command: cmd, Stdin: stdin})
	h, ok := r.handlers[cmd.String()]
	if !ok {
		h, ok = r.handlers[cmd.Name]
	}
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Result{ExitCode: -1}, err
	}
	if !ok {
		return Result{}, nil
	}
	return h(cmd)
}

// Calls returns the recorded calls in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Lines returns the quoted command line of every recorded call.
func (r *Recorder) Lines() []string {
	calls := r.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.Command.String()
	}
	return lines
}

// Exit scripts a command that prints nothing and exits with code.
func Exit(code int) Handler {
	return func(Command) (Result, error) {
		return Result{ExitCode: code}, nil
	}
}

// Output scripts a command that writes stdout and exits with code.
func Output(stdout string, code int) Handler {
	return func(cmd Command) (Result, error) {
		if cmd.Stdout != nil {
			if _, err := io.Copy(cmd.Stdout, strings.NewReader(stdout)); err != nil {
				return Result{ExitCode: -1}, err
			}
		}
		return Result{ExitCode: code}, nil
	}
}

// ErrorOutput scripts a command that writes stderr and exits with code.
func ErrorOutput(stderr string, code int) Handler {
	return func(cmd Command) (Result, error) {
		if cmd.Stderr != nil {
			if _, err := io.WriteString(cmd.Stderr, stderr); err != nil {
				return Result{ExitCode: -1}, err
			}
		}
		return Result{ExitCode: code}, nil
	}
}

// Fail scripts a command that cannot be started.
func Fail(err error) Handler {
	return func(Command) (Result, error) {
		return Result{ExitCode: -1}, err
	}
}
