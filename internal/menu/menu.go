// Package menu implements the numbered interactive menu.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/aatumaykin/rapture/internal/constants"
	"github.com/aatumaykin/rapture/internal/logger"
	"github.com/aatumaykin/rapture/internal/metrics"
	"github.com/aatumaykin/rapture/internal/prompt"
)

// Handler runs one menu action.
type Handler func(ctx context.Context) error

// Failure is an action error carrying the one line shown to the user.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func fail(message string, err error) error {
	return &Failure{Message: message, Err: err}
}

var headerStyle = lipgloss.NewStyle().Bold(true)

// Menu dispatches numbered choices to handlers.
type Menu struct {
	prompter prompt.Prompter
	out      io.Writer
	handlers map[Action]Handler
	logger   *logger.Logger
	metrics  *metrics.Recorder
}

// Option configures a Menu.
type Option func(*Menu)

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(m *Menu) {
		m.logger = log
	}
}

// WithMetrics records every dispatched action.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(m *Menu) {
		m.metrics = rec
	}
}

// New creates an empty Menu reading choices from p and printing to out.
func New(p prompt.Prompter, out io.Writer, opts ...Option) *Menu {
	m := &Menu{
		prompter: p,
		out:      out,
		handlers: make(map[Action]Handler),
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Handle registers the handler for a.
func (m *Menu) Handle(a Action, h Handler) {
	m.handlers[a] = h
}

// Dispatch runs the handler registered for a.
func (m *Menu) Dispatch(ctx context.Context, a Action) error {
	h, ok := m.handlers[a]
	if !ok {
		return fmt.Errorf("no handler for action %s", a)
	}

	runID := uuid.NewString()
	log := m.logger.With(
		logger.Field{Key: "run_id", Value: runID},
		logger.Field{Key: "action", Value: a.String()},
	)
	log.DebugCtx(ctx, "Action started")

	start := time.Now()
	err := h(ctx)
	elapsed := time.Since(start)

	if m.metrics != nil {
		m.metrics.ObserveAction(a.String(), elapsed, err)
	}
	if err != nil {
		log.InfoCtx(ctx, "Action failed",
			logger.Field{Key: "error", Value: err},
			logger.Field{Key: "duration", Value: elapsed})
		return err
	}

	log.DebugCtx(ctx, "Action finished", logger.Field{Key: "duration", Value: elapsed})
	return nil
}

// Execute dispatches a single action outside the loop and prints its
// failure the way Run does.
func (m *Menu) Execute(ctx context.Context, a Action) error {
	err := m.Dispatch(ctx, a)
	if err != nil {
		m.printError(err)
	}
	return err
}

// Run shows the menu until the user exits or input ends. Action errors are
// printed and the loop continues.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.render()

		answer, err := m.prompter.Ask(constants.MsgMenuPrompt)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				m.logger.Error("Failed to read menu choice", err)
			}
			fmt.Fprintln(m.out)
			break
		}

		action := ParseAction(answer)
		if action == ActionExit {
			break
		}
		if _, ok := m.handlers[action]; !ok {
			fmt.Fprintln(m.out, constants.MsgInvalidChoice)
			continue
		}

		if err := m.Dispatch(ctx, action); err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(m.out)
				break
			}
			m.printError(err)
		}

		if ctx.Err() != nil {
			break
		}
	}

	fmt.Fprintln(m.out, constants.MsgGoodbye)
	return nil
}

func (m *Menu) render() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, headerStyle.Render(constants.MsgMenuHeader))
	for _, a := range Actions {
		fmt.Fprintf(m.out, "%d. %s\n", a, a.Label())
	}
}

func (m *Menu) printError(err error) {
	var f *Failure
	if errors.As(err, &f) {
		color.New(color.FgRed).Fprintln(m.out, f.Message)
		return
	}
	color.New(color.FgRed).Fprintf(m.out, constants.MsgActionFailed+"\n", err)
}
