package instruments

import (
	"github.com/scopeshot/scopeshot-cli/internal/core/plugin"
	"github.com/scopeshot/scopeshot-cli/internal/core/ports/transport"
)

// NewKeysightIVX creates the plugin for Keysight InfiniiVision X-series oscilloscopes
func NewKeysightIVX(t transport.Transport) plugin.Descriptor {
	return plugin.MustDescriptor(
		"keysight-ivx",
		"Keysight InfiniiVision 2000X/3000X series oscilloscope",
		plugin.SplitPatterns(`KEYSIGHT\sTECHNOLOGIES [DM]SO-X.[23][0-9]{3}[AT]`),
		&blockCapture{
			transport: t,
			commands:  []string{":DISPLAY:DATA? PNG,COLOR"},
			format:    "png",
		},
	)
}
