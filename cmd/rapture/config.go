package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/rapture/internal/config"
	"github.com/aatumaykin/rapture/internal/constants"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Validate and manage Rapture-Transcoder configuration.`,
}

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate configuration file",
	Long: `Validate the configuration file and check for errors.
TOML is assumed unless the file ends in .yaml or .yml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) > 0 {
			path = args[0]
		}
		return validateConfigFile(cmd.OutOrStdout(), path)
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}

// validateConfigFile loads path and prints every validation error.
func validateConfigFile(out io.Writer, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(out, constants.MsgConfigLoadError, err)
		return err
	}

	errs := cfg.Validate()
	if len(errs) > 0 {
		fmt.Fprint(out, constants.MsgConfigValidationError)
		for _, e := range errs {
			fmt.Fprintf(out, constants.MsgConfigValidatePrefix, e)
		}
		return fmt.Errorf("%d configuration errors", len(errs))
	}

	fmt.Fprintf(out, "%s: %s\n", constants.MsgConfigValid, path)
	return nil
}
