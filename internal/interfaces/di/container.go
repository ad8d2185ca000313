package di

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/scopeshot/scopeshot-cli/internal/application/services"
	"github.com/scopeshot/scopeshot-cli/internal/core/plugin"
	"github.com/scopeshot/scopeshot-cli/internal/infrastructure/config"
	"github.com/scopeshot/scopeshot-cli/internal/infrastructure/instruments"
	"github.com/scopeshot/scopeshot-cli/internal/infrastructure/logging"
	"github.com/scopeshot/scopeshot-cli/internal/infrastructure/output"
	"github.com/scopeshot/scopeshot-cli/internal/infrastructure/transport/scpi"
	"github.com/scopeshot/scopeshot-cli/internal/interfaces/cli"
)

// Container holds all application dependencies. Components that depend on
// the effective configuration are created by Build once the command line
// has been parsed.
type Container struct {
	// Configuration
	Loader *config.Loader
	Config *config.Config

	// Infrastructure
	Transport *scpi.Transport
	Writer    *output.FileWriter

	// Core
	Registry   *plugin.Registry
	Selector   *plugin.Selector
	Dispatcher *plugin.Dispatcher

	// Application
	ScreenshotService *services.ScreenshotService

	// CLI
	CLIContainer *cli.CLIContainer

	// Logger
	Logger zerolog.Logger
}

// NewContainer creates the dependency injection container
func NewContainer() *Container {
	c := &Container{
		Loader: config.NewLoader(),
		Logger: logging.NewConsoleLogger(os.Stderr, false),
	}

	c.CLIContainer = &cli.CLIContainer{
		Loader: c.Loader,
		Build:  c.Build,
	}
	return c
}

// Build wires every component for cfg and returns the screenshot service
func (c *Container) Build(cfg *config.Config, stderr io.Writer) (*services.ScreenshotService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: no configuration", config.ErrInvalidConfig)
	}
	c.Config = cfg

	// 1. Logger
	c.Logger = logging.NewConsoleLogger(stderr, cfg.Debug)
	if cfg.File != "" {
		c.Logger.Debug().Str("file", cfg.File).Msg("configuration loaded")
	}

	// 2. Infrastructure
	c.Transport = scpi.NewTransport(cfg.Port, c.Logger)
	c.Writer = output.NewFileWriter(cfg.OutputDir)

	// 3. Plugin registry
	c.Registry = plugin.NewRegistry(plugin.DefaultCapacity)
	if err := instruments.RegisterBuiltins(c.Registry, c.Transport); err != nil {
		return nil, fmt.Errorf("failed to register plugins: %w", err)
	}

	// 4. Core services
	matcher := plugin.NewRegexpMatcher()
	querier := scpi.NewIdentityQuerier(c.Transport)
	c.Selector = plugin.NewSelector(c.Registry, matcher, querier, c.Logger)
	c.Dispatcher = plugin.NewDispatcher(c.Logger)

	// 5. Application service
	c.ScreenshotService = services.NewScreenshotService(
		c.Registry,
		c.Selector,
		c.Dispatcher,
		querier,
		matcher,
		c.Writer,
		c.Logger,
	)

	c.Logger.Debug().
		Int("plugins", c.Registry.Len()).
		Int("port", cfg.Port).
		Dur("timeout", cfg.Timeout).
		Msg("container initialized")

	return c.ScreenshotService, nil
}

// GetCLIContainer returns the CLI container for command execution
func (c *Container) GetCLIContainer() *cli.CLIContainer {
	return c.CLIContainer
}

// HealthCheck reports components that were not wired
func (c *Container) HealthCheck() error {
	if c.ScreenshotService == nil {
		return fmt.Errorf("screenshot service not initialized")
	}
	if c.Registry == nil || c.Registry.Len() == 0 {
		return fmt.Errorf("no screenshot plugins registered")
	}
	return nil
}

// GetVersion returns version information
func (c *Container) GetVersion() map[string]string {
	return map[string]string{
		"version":    cli.Version,
		"build_time": cli.BuildTime,
	}
}
