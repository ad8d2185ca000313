package plugin

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// CaptureRequest carries the connection parameters handed to a Handler
type CaptureRequest struct {
	// Address is the instrument network address (host or host:port)
	Address string

	// Identity is the instrument identity string when the plugin was
	// autodetected. Handlers are free to ignore it.
	Identity string

	// Timeout is applied to every transport call. Zero means no timeout.
	Timeout time.Duration
}

// Screenshot is the raw image returned by an instrument
type Screenshot struct {
	Data   []byte
	Format string
}

// Handler performs the instrument specific screenshot exchange
type Handler interface {
	Capture(ctx context.Context, req CaptureRequest) (*Screenshot, error)
}

// HandlerFunc adapts an ordinary function to the Handler interface
type HandlerFunc func(ctx context.Context, req CaptureRequest) (*Screenshot, error)

// Capture calls f(ctx, req)
func (f HandlerFunc) Capture(ctx context.Context, req CaptureRequest) (*Screenshot, error) {
	return f(ctx, req)
}

// pattern is one independent identity matching fragment. re is nil when the
// source failed to compile; such a fragment never matches.
type pattern struct {
	source string
	re     *regexp.Regexp
}

// Descriptor is an immutable description of a registered screenshot plugin
type Descriptor struct {
	name        string
	description string
	patterns    []pattern
	handler     Handler
}

// NewDescriptor creates a Descriptor with validation
func NewDescriptor(name, description string, patterns []string, handler Handler) (Descriptor, error) {
	if name == "" {
		return Descriptor{}, fmt.Errorf("plugin name cannot be empty")
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return Descriptor{}, fmt.Errorf("plugin name %q cannot contain whitespace", name)
	}
	if handler == nil {
		return Descriptor{}, fmt.Errorf("plugin %s has no handler", name)
	}

	compiled := make([]pattern, 0, len(patterns))
	for _, src := range patterns {
		if src == "" {
			continue
		}
		// A malformed pattern is kept with a nil regexp so it never matches
		re, _ := regexp.Compile(src)
		compiled = append(compiled, pattern{source: src, re: re})
	}

	return Descriptor{
		name:        name,
		description: description,
		patterns:    compiled,
		handler:     handler,
	}, nil
}

// MustDescriptor is like NewDescriptor but panics on invalid input.
// It is meant for the hardcoded built-in plugin table.
func MustDescriptor(name, description string, patterns []string, handler Handler) Descriptor {
	d, err := NewDescriptor(name, description, patterns, handler)
	if err != nil {
		panic(err)
	}
	return d
}

// SplitPatterns splits a whitespace separated pattern string into its
// independent fragments
func SplitPatterns(patterns string) []string {
	return strings.Fields(patterns)
}

// Name returns the unique plugin name
func (d Descriptor) Name() string {
	return d.name
}

// Description returns the human readable plugin description
func (d Descriptor) Description() string {
	return d.description
}

// Patterns returns a copy of the identity patterns in declaration order
func (d Descriptor) Patterns() []string {
	out := make([]string, len(d.patterns))
	for i, p := range d.patterns {
		out[i] = p.source
	}
	return out
}

// HasPatterns reports whether the plugin can be autodetected at all
func (d Descriptor) HasPatterns() bool {
	return len(d.patterns) > 0
}

// Handler returns the capture capability of the plugin
func (d Descriptor) Handler() Handler {
	return d.handler
}

// IsZero reports whether d is the zero Descriptor
func (d Descriptor) IsZero() bool {
	return d.name == ""
}

// String implements the Stringer interface
func (d Descriptor) String() string {
	return d.name
}
