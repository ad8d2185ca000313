package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/scopeshot/scopeshot-cli/internal/infrastructure/logging"
	"github.com/scopeshot/scopeshot-cli/internal/interfaces/cli"
	"github.com/scopeshot/scopeshot-cli/internal/interfaces/di"
)

func main() {
	container := di.NewContainer()
	logger := logging.NewConsoleLogger(os.Stderr, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Warn().Msg("interrupted, screenshot not saved")
		cancel()
		os.Exit(1)
	}()

	cli.Execute(ctx, container.GetCLIContainer())
}
