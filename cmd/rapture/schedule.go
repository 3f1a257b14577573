package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/rapture/internal/constants"
	"github.com/aatumaykin/rapture/internal/menu"
	"github.com/aatumaykin/rapture/internal/prompt"
	"github.com/aatumaykin/rapture/internal/schedule"
)

var (
	scheduleTime     string
	scheduleInterval string
	scheduleDryRun   bool
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule a recurring transcoding run",
	Long: `Append a crontab entry that starts the launcher in the current directory.

Without flags the time and interval are asked for interactively.
With --dry-run the entry is printed instead of installed.`,
	Example: `  rapture schedule --time 02:00 --interval 24
  rapture schedule --time 30 --interval 6 --dry-run`,
	Args: cobra.NoArgs,
	RunE: scheduleHandler,
}

func init() {
	scheduleCmd.Flags().StringVarP(&scheduleTime, "time", "t", "", "Time of day written into the minute field")
	scheduleCmd.Flags().StringVarP(&scheduleInterval, "interval", "i", "", "Interval in hours (24 daily, 168 weekly)")
	scheduleCmd.Flags().BoolVar(&scheduleDryRun, "dry-run", false, "Print the crontab entry without installing it")
	scheduleCmd.MarkFlagsRequiredTogether("time", "interval")
}

// schedulePrompter answers the schedule questions from flags when they are set.
func schedulePrompter(cmd *cobra.Command) prompt.Prompter {
	if cmd.Flags().Changed("time") {
		answers := scheduleTime + "\n" + scheduleInterval + "\n"
		return prompt.NewLinePrompter(strings.NewReader(answers), io.Discard)
	}
	return prompt.New(os.Stdin, os.Stdout)
}

func scheduleHandler(cmd *cobra.Command, args []string) error {
	p := schedulePrompter(cmd)
	if !scheduleDryRun {
		return runAction(cmd, menu.ActionSchedule, p)
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	a, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	timeOfDay, err := p.Ask(constants.MsgScheduleTimePrompt)
	if err != nil {
		return err
	}
	interval, err := p.Ask(constants.MsgScheduleIntervalPrompt)
	if err != nil {
		return err
	}

	req := schedule.Request{
		TimeOfDay:     timeOfDay,
		IntervalHours: schedule.ParseInterval(prompt.NormalizeDigits(interval)),
	}
	entry, err := a.Synthesizer().Plan(req)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), constants.MsgSchedulePathFailed)
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, constants.MsgScheduleDryRun+"\n", entry)
	for _, w := range schedule.Lint(req) {
		fmt.Fprintf(out, constants.MsgScheduleWarning+"\n", w)
	}
	return nil
}
