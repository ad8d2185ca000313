package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/scopeshot/scopeshot-cli/internal/application/services"
	"github.com/scopeshot/scopeshot-cli/internal/infrastructure/config"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// ServiceBuilder wires the screenshot service for an effective configuration.
// Diagnostics are written to stderr.
type ServiceBuilder func(cfg *config.Config, stderr io.Writer) (*services.ScreenshotService, error)

// CLIContainer holds all the dependencies for CLI commands
type CLIContainer struct {
	Loader *config.Loader
	Build  ServiceBuilder
}

// app is the per-invocation state shared by the subcommands. It is filled
// in by the root command before any subcommand runs.
type app struct {
	container *CLIContainer
	cfg       *config.Config
	service   *services.ScreenshotService
}

// NewRootCommand RootCommand represents the base command when called without any subcommands
func NewRootCommand(container *CLIContainer) *cobra.Command {
	a := &app{container: container}

	var rootCmd = &cobra.Command{
		Use:   "scopeshot",
		Short: "Capture screenshots from LXI instruments",
		Long: `scopeshot grabs the screen of a networked oscilloscope or multimeter
and saves it to an image file.

The instrument model is detected from its *IDN? response unless a plugin
is named explicitly.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	// Set custom version template
	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	// Add persistent flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default is $HOME/.scopeshot.yaml)")

	// Add subcommands
	rootCmd.AddCommand(NewCaptureCommand(a))
	rootCmd.AddCommand(NewPluginsCommand(a))
	rootCmd.AddCommand(NewDetectCommand(a))
	rootCmd.AddCommand(NewConfigCommand(a))

	return rootCmd
}

// setup loads the configuration for the command being run and wires the service
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.container.Loader.BindFlags(cmd.Flags()); err != nil {
		return err
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := a.container.Loader.Load(configPath)
	if err != nil {
		return err
	}

	service, err := a.container.Build(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.service = service
	return nil
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context, container *CLIContainer) {
	rootCmd := NewRootCommand(container)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
