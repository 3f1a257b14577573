package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/aatumaykin/rapture/internal/app"
	"github.com/aatumaykin/rapture/internal/config"
	"github.com/aatumaykin/rapture/internal/constants"
	"github.com/aatumaykin/rapture/internal/logger"
)

var (
	configPath string
	debug      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rapture",
	Short: "Rapture-Transcoder - media transcoding launcher",
	Long: `Rapture-Transcoder drives the transcoding script from an interactive menu:
start a run, check and install dependencies, open the log and
schedule recurring runs through crontab.

Without a subcommand the interactive menu is shown.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", constants.DefaultConfigPath, "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(transcodeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(logsCmd)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// bootstrap loads .env and the configuration, builds the logger and
// initializes the application. Failures are printed to stderr.
func bootstrap(ctx context.Context, cmd *cobra.Command, opts ...app.Option) (*app.App, error) {
	a, err := newApp(ctx, opts...)
	if err != nil {
		color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), constants.MsgActionFailed+"\n", err)
		return nil, err
	}
	return a, nil
}

func newApp(ctx context.Context, opts ...app.Option) (*app.App, error) {
	if err := config.LoadEnvOptional(constants.DefaultEnvPath); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", constants.DefaultEnvPath, err)
	}

	cfg, err := config.LoadOrDefault(afero.NewOsFs(), configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if debug {
		cfg.Logging.Level = "debug"
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.SetDefault(log)

	log.DebugCtx(ctx, "Starting Rapture-Transcoder",
		logger.Field{Key: "version", Value: Version},
		logger.Field{Key: "git_commit", Value: GitCommit},
		logger.Field{Key: "config", Value: configPath})

	a := app.New(cfg, log, opts...)
	if err := a.Initialize(ctx); err != nil {
		return nil, err
	}
	return a, nil
}
