package internal

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gha-debug/gha-debug/internal/config"
	"github.com/gha-debug/gha-debug/internal/logging"
	"github.com/gha-debug/gha-debug/internal/output"
)

func NewRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "gha-debug",
		Short: "Debug GitHub Actions workflows locally with step-by-step execution.",
		Long: `gha-debug runs GitHub Actions workflow files on your machine: shell steps
execute through the host shell against a simulated Actions environment, and
packaged actions are acknowledged without fetching third-party code. It also
lists workflow structure, shows the effective environment, and validates
workflow files for common mistakes.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Initialize(cfgFile); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			applyFlagOverrides(cmd)
			if err := logging.Init(logging.Options{
				Level:  config.Instance.LogLevel,
				Format: config.Instance.LogFormat,
				File:   config.Instance.LogFile,
			}); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is searched in standard locations)")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, or error")
	cmd.PersistentFlags().String("log-format", "", "Log format: human or json")
	cmd.PersistentFlags().String("log-file", "", "Also write logs to this file")

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewEnvCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewCompletionCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// applyFlagOverrides lets explicitly set flags win over file and
// environment configuration.
func applyFlagOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("no-color") {
		config.Instance.NoColor, _ = flags.GetBool("no-color")
	}
	if flags.Changed("log-level") {
		config.Instance.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		config.Instance.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Changed("log-file") {
		config.Instance.LogFile, _ = flags.GetString("log-file")
	}
}

// newConsole builds the console for one command invocation, honoring the
// configured color preference and the NO_COLOR convention.
func newConsole(cmd *cobra.Command) *output.Console {
	color := !config.Instance.NoColor && os.Getenv("NO_COLOR") == ""
	return output.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr(), color)
}

func Execute() {
	err := NewRootCmd().Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}
