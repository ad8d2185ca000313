package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidConfig marks configuration values that cannot be used
var ErrInvalidConfig = errors.New("invalid configuration")

// Validator checks configuration values
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks every field of cfg
func (v *Validator) Validate(cfg *Config) error {
	if cfg.Timeout < 0 {
		return fmt.Errorf("%w: timeout cannot be negative (%s)", ErrInvalidConfig, cfg.Timeout)
	}
	if err := v.ValidatePort(cfg.Port); err != nil {
		return err
	}
	if strings.IndexFunc(cfg.Plugin, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: plugin name %q cannot contain whitespace", ErrInvalidConfig, cfg.Plugin)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return nil
}

// ValidatePort validates a TCP port number
func (v *Validator) ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%w: port must be between 1 and 65535, got %d", ErrInvalidConfig, port)
	}
	return nil
}
