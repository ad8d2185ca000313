package instruments

import (
	"github.com/scopeshot/scopeshot-cli/internal/core/plugin"
	"github.com/scopeshot/scopeshot-cli/internal/core/ports/transport"
)

// Builtins returns the built-in plugins in registration order
func Builtins(t transport.Transport) []plugin.Descriptor {
	return []plugin.Descriptor{
		NewKeysightIVX(t),
		NewRigol1000Z(t),
		NewRigol2000(t),
		NewRohdeSchwarzHMO1000(t),
		NewTektronix2000(t),
		NewSiglentSDM3000(t),
	}
}

// RegisterBuiltins adds every built-in plugin to reg
func RegisterBuiltins(reg *plugin.Registry, t transport.Transport) error {
	return reg.RegisterAll(Builtins(t)...)
}
