package plugin

import (
	"errors"
	"fmt"
)

// Registry and selection errors
var (
	ErrRegistryFull     = errors.New("screenshot plugin list full")
	ErrDuplicatePlugin  = errors.New("duplicate screenshot plugin name")
	ErrUnknownPlugin    = errors.New("unknown plugin name")
	ErrIdentityQuery    = errors.New("unable to retrieve instrument ID")
	ErrAutodetectFailed = errors.New("could not autodetect which screenshot plugin to use - please specify plugin name manually")
	ErrEmptyScreenshot  = errors.New("plugin returned no image data")
)

// UnknownPluginError is returned when an explicitly named plugin is not registered
type UnknownPluginError struct {
	Name string
}

func (e *UnknownPluginError) Error() string {
	return fmt.Sprintf("unknown plugin name: %s", e.Name)
}

// Is makes errors.Is(err, ErrUnknownPlugin) hold for *UnknownPluginError
func (e *UnknownPluginError) Is(target error) bool {
	return target == ErrUnknownPlugin
}
