package instruments

import (
	"github.com/scopeshot/scopeshot-cli/internal/core/plugin"
	"github.com/scopeshot/scopeshot-cli/internal/core/ports/transport"
)

// NewTektronix2000 creates the plugin for Tektronix TDS 2000 oscilloscopes.
// The hardcopy is sent over the connection as a raw BMP file.
func NewTektronix2000(t transport.Transport) plugin.Descriptor {
	return plugin.MustDescriptor(
		"tektronix-2000",
		"Tektronix TDS 2000 series oscilloscope",
		plugin.SplitPatterns("TEKTRONIX TDS.2[0-9]{3}"),
		&bmpCapture{
			transport: t,
			commands:  []string{"HARDCOPY:FORMAT BMP", "HARDCOPY START"},
		},
	)
}
