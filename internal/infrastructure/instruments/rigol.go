package instruments

import (
	"github.com/scopeshot/scopeshot-cli/internal/core/plugin"
	"github.com/scopeshot/scopeshot-cli/internal/core/ports/transport"
)

// NewRigol1000Z creates the plugin for Rigol DS/MSO 1000Z oscilloscopes.
// Display data arguments are color, invert and format.
func NewRigol1000Z(t transport.Transport) plugin.Descriptor {
	return plugin.MustDescriptor(
		"rigol-1000z",
		"Rigol DS/MSO 1000Z series oscilloscope",
		plugin.SplitPatterns(`RIGOL\sTECHNOLOGIES [DM]SO?1[0-9]{3}Z`),
		&blockCapture{
			transport: t,
			commands:  []string{":DISP:DATA? ON,FALSE,PNG"},
			format:    "png",
		},
	)
}

// NewRigol2000 creates the plugin for Rigol DS/MSO 2000 oscilloscopes
func NewRigol2000(t transport.Transport) plugin.Descriptor {
	return plugin.MustDescriptor(
		"rigol-2000",
		"Rigol DS/MSO 2000 series oscilloscope",
		plugin.SplitPatterns(`RIGOL\sTECHNOLOGIES [DM]SO?2[0-9]{3}`),
		&blockCapture{
			transport: t,
			commands:  []string{":DISP:DATA?"},
			format:    "bmp",
		},
	)
}
