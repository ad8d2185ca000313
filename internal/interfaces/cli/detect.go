package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/scopeshot/scopeshot-cli/internal/application/services"
	"github.com/scopeshot/scopeshot-cli/internal/infrastructure/config"
)

// NewDetectCommand creates the detect command
func NewDetectCommand(a *app) *cobra.Command {
	var address string

	def := config.Default()

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Identify an instrument and show plugin scores",
		Long: `Query the instrument identity with *IDN? and show how every plugin
scores against it, without capturing a screenshot.`,
		Example: `  scopeshot detect -a 192.168.1.50`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.service.Detect(cmd.Context(), address, a.cfg.Timeout)
			if err != nil {
				return err
			}
			return printDetectionReport(cmd, report)
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "Instrument IP address or hostname, optionally with :port")
	cmd.Flags().DurationP("timeout", "t", def.Timeout, "Timeout for the identity query, 0 disables it")
	cmd.Flags().Int("port", def.Port, "SCPI socket port used when the address carries none")

	return cmd
}

func printDetectionReport(cmd *cobra.Command, report *services.DetectionReport) error {
	out := cmd.OutOrStdout()
	id := report.Identity

	fmt.Fprintf(out, "Identity:     %s\n", id.Raw())
	fmt.Fprintf(out, "Manufacturer: %s\n", id.Manufacturer)
	fmt.Fprintf(out, "Model:        %s\n", id.Model)
	fmt.Fprintf(out, "Serial:       %s\n", id.Serial)
	fmt.Fprintf(out, "Firmware:     %s\n", id.Firmware)
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLUGIN\tSCORE")
	for _, r := range report.Scores {
		fmt.Fprintf(w, "%s\t%d\n", r.Name, r.Score)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)

	if report.Winner == "" {
		fmt.Fprintln(out, "No plugin matches this instrument")
		return nil
	}
	fmt.Fprintf(out, "Selected plugin: %s\n", report.Winner)
	return nil
}
