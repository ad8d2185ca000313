package plugin

import (
	"context"
	"testing"
)

// Local test helpers

// nopHandler returns a fixed screenshot
var nopHandler = HandlerFunc(func(ctx context.Context, req CaptureRequest) (*Screenshot, error) {
	return &Screenshot{Data: []byte("image"), Format: "png"}, nil
})

// mustDescriptor creates a descriptor with a no-op handler, failing the test on error
func mustDescriptor(t testing.TB, name, patterns string) Descriptor {
	t.Helper()
	d, err := NewDescriptor(name, name+" description", SplitPatterns(patterns), nopHandler)
	if err != nil {
		t.Fatalf("NewDescriptor(%q) error = %v", name, err)
	}
	return d
}

// newTestRegistry registers the given descriptors in order
func newTestRegistry(t testing.TB, descriptors ...Descriptor) *Registry {
	t.Helper()
	reg := NewRegistry(0)
	if err := reg.RegisterAll(descriptors...); err != nil {
		t.Fatalf("RegisterAll() error = %v", err)
	}
	return reg
}
