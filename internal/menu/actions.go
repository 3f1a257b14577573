package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/aatumaykin/rapture/internal/constants"
	"github.com/aatumaykin/rapture/internal/deps"
	"github.com/aatumaykin/rapture/internal/logs"
	"github.com/aatumaykin/rapture/internal/metrics"
	"github.com/aatumaykin/rapture/internal/prompt"
	"github.com/aatumaykin/rapture/internal/schedule"
	"github.com/aatumaykin/rapture/internal/setup"
)

// Transcoder starts the transcoding script.
type Transcoder interface {
	Run(ctx context.Context) error
}

// DependencyChecker probes the external tools.
type DependencyChecker interface {
	Check(ctx context.Context) (deps.Report, error)
}

// Installer installs the external tools.
type Installer interface {
	Install(ctx context.Context) error
}

// LogViewer opens the transcoding log.
type LogViewer interface {
	Open(ctx context.Context) error
}

// Scheduler appends crontab entries.
type Scheduler interface {
	Install(ctx context.Context, timeOfDay string, intervalHours int) (schedule.Entry, error)
}

// Services are the collaborators behind the menu actions.
type Services struct {
	Transcoder Transcoder
	Checker    DependencyChecker
	Installer  Installer
	Viewer     LogViewer
	Scheduler  Scheduler
	Metrics    *metrics.Recorder

	// Now is used for the next-run preview. Defaults to time.Now.
	Now func() time.Time
}

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
)

// Register installs the handlers for every action backed by svc.
func Register(m *Menu, svc Services) {
	if svc.Now == nil {
		svc.Now = time.Now
	}
	a := &actions{out: m.out, prompter: m.prompter, svc: svc}

	if svc.Transcoder != nil {
		m.Handle(ActionTranscode, a.transcode)
	}
	if svc.Checker != nil {
		m.Handle(ActionCheck, a.check)
	}
	if svc.Installer != nil {
		m.Handle(ActionSetup, a.setup)
	}
	if svc.Viewer != nil {
		m.Handle(ActionLogs, a.logs)
	}
	if svc.Scheduler != nil {
		m.Handle(ActionSchedule, a.schedule)
	}
}

type actions struct {
	out      io.Writer
	prompter prompt.Prompter
	svc      Services
}

func (a *actions) transcode(ctx context.Context) error {
	fmt.Fprintln(a.out, constants.MsgTranscodeStarting)
	if err := a.svc.Transcoder.Run(ctx); err != nil {
		return fail(constants.MsgTranscodeFailed, err)
	}
	okColor.Fprintln(a.out, constants.MsgTranscodeSuccess)
	return nil
}

func (a *actions) check(ctx context.Context) error {
	report, err := a.svc.Checker.Check(ctx)
	if err != nil {
		return err
	}

	for _, s := range report.Statuses {
		if s.Found {
			fmt.Fprintf(a.out, constants.MsgDependencyFound+"\n", s.Tool.Display, s.Version, s.Tool.Name)
		}
	}
	for _, s := range report.Outdated() {
		warnColor.Fprintf(a.out, constants.MsgDependencyTooOld+"\n", s.Tool.Display, s.Version, s.Tool.MinVersion)
	}

	if missing, ok := report.FirstMissing(); ok {
		return fail(fmt.Sprintf(constants.MsgDependencyMissing, missing.Tool.Display), nil)
	}

	okColor.Fprintln(a.out, constants.MsgDependenciesOK)
	return nil
}

func (a *actions) setup(ctx context.Context) error {
	fmt.Fprintln(a.out, constants.MsgSetupRunning)
	if err := a.svc.Installer.Install(ctx); err != nil {
		var unsupported *setup.UnsupportedPlatformError
		if errors.As(err, &unsupported) {
			return fail(unsupported.Error(), err)
		}
		return fail(constants.MsgSetupFailed, err)
	}
	okColor.Fprintln(a.out, constants.MsgSetupSuccess)
	return nil
}

func (a *actions) logs(ctx context.Context) error {
	fmt.Fprintln(a.out, constants.MsgLogsOpening)
	if err := a.svc.Viewer.Open(ctx); err != nil {
		var notFound *logs.NotFoundError
		if errors.As(err, &notFound) {
			return fail(notFound.Error(), err)
		}
		return err
	}
	return nil
}

func (a *actions) schedule(ctx context.Context) error {
	timeOfDay, err := a.prompter.Ask(constants.MsgScheduleTimePrompt)
	if err != nil {
		return err
	}
	interval, err := a.prompter.Ask(constants.MsgScheduleIntervalPrompt)
	if err != nil {
		return err
	}

	req := schedule.Request{
		TimeOfDay:     timeOfDay,
		IntervalHours: schedule.ParseInterval(prompt.NormalizeDigits(interval)),
	}

	entry, err := a.svc.Scheduler.Install(ctx, req.TimeOfDay, req.IntervalHours)
	if err != nil {
		var pathErr *schedule.PathResolutionError
		if errors.As(err, &pathErr) {
			return fail(constants.MsgSchedulePathFailed, err)
		}
		return fail(constants.MsgScheduleFailed, err)
	}

	if a.svc.Metrics != nil {
		a.svc.Metrics.CrontabEntryInstalled()
	}

	okColor.Fprintf(a.out, constants.MsgScheduleSuccess+"\n", timeOfDay, interval)
	for _, w := range schedule.Lint(req) {
		warnColor.Fprintf(a.out, constants.MsgScheduleWarning+"\n", w)
	}
	if next, ok := schedule.Next(entry.Expression, a.svc.Now()); ok {
		fmt.Fprintf(a.out, constants.MsgScheduleNextRun+"\n", next.Format(time.RFC1123))
	}
	return nil
}
