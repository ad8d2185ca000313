package instruments

import (
	"github.com/scopeshot/scopeshot-cli/internal/core/plugin"
	"github.com/scopeshot/scopeshot-cli/internal/core/ports/transport"
)

// NewRohdeSchwarzHMO1000 creates the plugin for R&S HMO 1000 oscilloscopes
func NewRohdeSchwarzHMO1000(t transport.Transport) plugin.Descriptor {
	return plugin.MustDescriptor(
		"rs-hmo1000",
		"Rohde & Schwarz HMO 1000 series oscilloscope",
		plugin.SplitPatterns("(?i)rohde&schwarz HMO1[0-9]{3}"),
		&blockCapture{
			transport: t,
			commands:  []string{"HCOP:FORM PNG", "HCOP:DATA?"},
			format:    "png",
		},
	)
}
