package plugin

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Dispatcher invokes the capture handler of a selected plugin
type Dispatcher struct {
	logger zerolog.Logger
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// Run calls the plugin handler exactly once and returns its outcome unchanged
func (d *Dispatcher) Run(ctx context.Context, desc Descriptor, req CaptureRequest) (*Screenshot, error) {
	if desc.IsZero() || desc.Handler() == nil {
		return nil, fmt.Errorf("no plugin to dispatch")
	}

	d.logger.Debug().
		Str("plugin", desc.Name()).
		Str("address", req.Address).
		Dur("timeout", req.Timeout).
		Msg("capturing screenshot")

	shot, err := desc.Handler().Capture(ctx, req)
	if err != nil {
		return nil, err
	}
	if shot == nil || len(shot.Data) == 0 {
		return nil, fmt.Errorf("%s: %w", desc.Name(), ErrEmptyScreenshot)
	}

	d.logger.Debug().Str("plugin", desc.Name()).Int("bytes", len(shot.Data)).Str("format", shot.Format).Msg("screenshot captured")
	return shot, nil
}
