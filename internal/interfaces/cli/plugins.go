package cli

import (
	"github.com/spf13/cobra"

	"github.com/scopeshot/scopeshot-cli/internal/core/plugin"
)

// NewPluginsCommand creates the plugins command
func NewPluginsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List available screenshot plugins",
		Long:  `List the built-in screenshot plugins in registration order. Autodetection prefers earlier plugins on equal scores.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return plugin.WriteList(cmd.OutOrStdout(), a.service.Plugins())
		},
	}
}
