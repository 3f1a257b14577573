package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/rapture/internal/menu"
	"github.com/aatumaykin/rapture/internal/prompt"
)

// menuCmd represents the menu command
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show the interactive menu",
	Long: `Show the interactive menu until Exit is chosen or input ends.
The menu always exits with status 0; failed actions are reported inline.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

var (
	transcodeCmd = actionCmd(menu.ActionTranscode, "transcode", "Start the transcoding script")
	checkCmd     = actionCmd(menu.ActionCheck, "check", "Check that the required tools are installed")
	setupCmd     = actionCmd(menu.ActionSetup, "setup", "Install the required tools")
	logsCmd      = actionCmd(menu.ActionLogs, "logs", "Open the transcoding log")
)

func runMenu(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	a, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	m := a.Menu(prompt.New(os.Stdin, os.Stdout), cmd.OutOrStdout())
	return m.Run(ctx)
}

// actionCmd builds a subcommand that runs one menu action and exits with
// status 1 when the action fails.
func actionCmd(action menu.Action, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  short + ".\nSame as choosing \"" + action.Label() + "\" in the menu.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, action, prompt.New(os.Stdin, os.Stdout))
		},
	}
}

func runAction(cmd *cobra.Command, action menu.Action, p prompt.Prompter) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	a, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	return a.Menu(p, cmd.OutOrStdout()).Execute(ctx, action)
}
