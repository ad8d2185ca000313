package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scopeshot/scopeshot-cli/internal/infrastructure/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand(a *app) *cobra.Command {
	var configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect the effective scopeshot configuration.

Values come from the built-in defaults, the config file, SCOPESHOT_*
environment variables and command line flags, in increasing order of
precedence.`,
	}

	// Add subcommands
	configCmd.AddCommand(NewConfigShowCommand(a))
	configCmd.AddCommand(NewConfigPathCommand(a))

	return configCmd
}

// NewConfigShowCommand creates the show subcommand
func NewConfigShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cfg.Encode(cmd.OutOrStdout())
		},
	}
}

// NewConfigPathCommand creates the path subcommand
func NewConfigPathCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the configuration file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.File == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "No configuration file loaded (looked for %s in the home and working directories)\n", config.DefaultFileName)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file path: %s\n", a.cfg.File)
			return nil
		},
	}
}
