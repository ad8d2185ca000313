package instruments

import (
	"github.com/scopeshot/scopeshot-cli/internal/core/plugin"
	"github.com/scopeshot/scopeshot-cli/internal/core/ports/transport"
)

// NewSiglentSDM3000 creates the plugin for Siglent SDM 3000 multimeters.
// "scdp" dumps the screen as a raw BMP file.
func NewSiglentSDM3000(t transport.Transport) plugin.Descriptor {
	return plugin.MustDescriptor(
		"siglent-sdm3000",
		"Siglent SDM 3000/3000X series digital multimeter",
		plugin.SplitPatterns(`SIGLENT\sTECHNOLOGIES Siglent\sTechnologies SDM3...`),
		&bmpCapture{
			transport: t,
			commands:  []string{"scdp"},
		},
	)
}
