package ports

import (
	"context"

	"github.com/scopeshot/scopeshot-cli/internal/core/plugin"
)

// PluginSelector resolves which plugin handles an instrument
type PluginSelector interface {
	Select(ctx context.Context, req plugin.SelectRequest) (*plugin.Selection, error)
}

// PluginDispatcher runs the capture handler of a selected plugin
type PluginDispatcher interface {
	Run(ctx context.Context, d plugin.Descriptor, req plugin.CaptureRequest) (*plugin.Screenshot, error)
}
