package plugin

import "fmt"

// DefaultCapacity is the maximum number of plugins a registry accepts when
// no explicit capacity is given
const DefaultCapacity = 50

// Registry is an ordered, append-only collection of plugin descriptors.
// It is populated once at start-up and read-only afterwards.
type Registry struct {
	capacity    int
	descriptors []Descriptor
}

// NewRegistry returns an empty registry bounded by capacity.
// A capacity <= 0 selects DefaultCapacity.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry{
		capacity:    capacity,
		descriptors: make([]Descriptor, 0, capacity),
	}
}

// Register appends d to the registry
func (r *Registry) Register(d Descriptor) error {
	if d.IsZero() {
		return fmt.Errorf("cannot register an empty plugin descriptor")
	}
	if len(r.descriptors) >= r.capacity {
		return fmt.Errorf("%w: cannot add %s (capacity %d)", ErrRegistryFull, d.Name(), r.capacity)
	}
	if _, exists := r.FindByName(d.Name()); exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePlugin, d.Name())
	}

	r.descriptors = append(r.descriptors, d)
	return nil
}

// RegisterAll registers every descriptor in order, stopping at the first error
func (r *Registry) RegisterAll(descriptors ...Descriptor) error {
	for _, d := range descriptors {
		if err := r.Register(d); err != nil {
			return err
		}
	}
	return nil
}

// All returns the registered descriptors in registration order
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// FindByName returns the first descriptor whose name equals name exactly
func (r *Registry) FindByName(name string) (Descriptor, bool) {
	for _, d := range r.descriptors {
		if d.Name() == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Len returns the number of registered plugins
func (r *Registry) Len() int {
	return len(r.descriptors)
}

// Capacity returns the maximum number of plugins the registry accepts
func (r *Registry) Capacity() int {
	return r.capacity
}
