package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scopeshot/scopeshot-cli/internal/application/services"
	"github.com/scopeshot/scopeshot-cli/internal/core/plugin"
	"github.com/scopeshot/scopeshot-cli/internal/infrastructure/config"
)

// NewCaptureCommand creates the capture command
func NewCaptureCommand(a *app) *cobra.Command {
	var (
		address string
		list    bool
	)

	def := config.Default()

	cmd := &cobra.Command{
		Use:     "capture [filename]",
		Aliases: []string{"screenshot"},
		Short:   "Capture a screenshot from an instrument",
		Long: `Capture a screenshot from the instrument at the given address.

Without --plugin the instrument is identified with *IDN? and the best
matching plugin is used. Without a filename the image is saved as
screenshot_<address>_<timestamp>.<format> in the output directory.`,
		Example: `  # Autodetect the instrument and save with a generated name
  scopeshot capture -a 192.168.1.50

  # Use a specific plugin and file name
  scopeshot capture -a 192.168.1.50 -p rigol-1000z scope.png

  # Show the available plugins
  scopeshot capture --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return plugin.WriteList(cmd.OutOrStdout(), a.service.Plugins())
			}

			var filename string
			if len(args) == 1 {
				filename = args[0]
			}
			return runCapture(cmd, a, services.CaptureRequest{
				Address:    address,
				PluginName: a.cfg.Plugin,
				Filename:   filename,
				Timeout:    a.cfg.Timeout,
			})
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "Instrument IP address or hostname, optionally with :port")
	cmd.Flags().StringP("plugin", "p", def.Plugin, "Screenshot plugin to use (default autodetect)")
	cmd.Flags().DurationP("timeout", "t", def.Timeout, "Timeout for each instrument exchange, 0 disables it")
	cmd.Flags().Int("port", def.Port, "SCPI socket port used when the address carries none")
	cmd.Flags().StringP("output-dir", "o", def.OutputDir, "Directory for generated file names")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List available screenshot plugins")

	return cmd
}

// runCapture selects a plugin, captures and reports the saved file
func runCapture(cmd *cobra.Command, a *app, req services.CaptureRequest) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	sel, err := a.service.Select(ctx, req)
	if err != nil {
		return err
	}
	if sel.Autodetected {
		fmt.Fprintf(out, "Loaded %s screenshot plugin\n", sel.Descriptor.Name())
	}

	result, err := a.service.Capture(ctx, sel, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Saved screenshot image to %s\n", result.Filename)
	return nil
}
