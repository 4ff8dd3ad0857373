package mapgesture

import "sync"

// Registry provides thread-safe registration and lookup of named factories.
// It supports priority-based selection when multiple implementations exist.
//
// Type parameter T is the type returned by factories. Hosts use this to
// let an application select a View implementation by name at startup —
// e.g. a "live" view backed by the real map renderer versus a
// "recording" view that logs mutations for replay in tests.
//
// Example:
//
//	var views = mapgesture.NewRegistry[View](
//	    mapgesture.WithPriority("live", "recording", "null"),
//	)
//
//	views.Register("live", func() View { return NewLiveView(renderer) })
//	views.Register("null", func() View { return NewNullView() })
//
//	best := views.Best() // Returns "live" if available, otherwise "null"
//
//	engine, ok := mapgesture.NewEngineForView(views, "live")
type Registry[T any] struct {
	mu        sync.RWMutex
	factories map[string]func() T
	priority  []string
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	priority []string
}

// WithPriority sets the priority order for implementation selection.
// Names listed first are preferred over names listed later.
// Names not in the list have lowest priority; which of them is chosen
// is not defined (registration order is not tracked).
func WithPriority(names ...string) RegistryOption {
	return func(c *registryConfig) {
		c.priority = names
	}
}

// NewRegistry creates a new Registry with optional configuration.
func NewRegistry[T any](opts ...RegistryOption) *Registry[T] {
	cfg := &registryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Registry[T]{
		factories: make(map[string]func() T),
		priority:  cfg.priority,
	}
}

// Register adds a factory for the given name.
// If a factory with the same name already exists, it is replaced.
// Thread-safe.
func (r *Registry[T]) Register(name string, factory func() T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Unregister removes the factory with the given name.
// Thread-safe.
func (r *Registry[T]) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.factories, name)
}

// Get returns the factory output for the given name.
// Returns the zero value of T if not found.
// Thread-safe.
func (r *Registry[T]) Get(name string) T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if factory, ok := r.factories[name]; ok {
		return factory()
	}

	var zero T
	return zero
}

// Has returns true if a factory with the given name is registered.
// Thread-safe.
func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Best returns the highest-priority registered implementation.
// Returns the zero value of T if no implementations are registered.
// Thread-safe.
func (r *Registry[T]) Best() T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Try priority list first
	for _, name := range r.priority {
		if factory, ok := r.factories[name]; ok {
			return factory()
		}
	}

	// Fall back to any registered factory
	for _, factory := range r.factories {
		return factory()
	}

	var zero T
	return zero
}

// BestName returns the name of the highest-priority registered implementation.
// Returns empty string if no implementations are registered.
// Thread-safe.
func (r *Registry[T]) BestName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Try priority list first
	for _, name := range r.priority {
		if _, ok := r.factories[name]; ok {
			return name
		}
	}

	// Fall back to any registered factory
	for name := range r.factories {
		return name
	}

	return ""
}

// Available returns all registered names.
// Thread-safe.
func (r *Registry[T]) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

// Count returns the number of registered factories.
// Thread-safe.
func (r *Registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

// NewEngineForView constructs an Engine around the View registered
// under name in reg, for hosts that select a view by name at startup
// instead of constructing one inline (e.g. "live" in production,
// "recording" or "null" in tests). It reports false, with a nil
// Engine, if no View is registered under that name.
func NewEngineForView(reg *Registry[View], name string) (*Engine, bool) {
	if !reg.Has(name) {
		return nil, false
	}
	return NewEngine(reg.Get(name)), true
}

// NewEngineForBestView constructs an Engine around reg's
// highest-priority registered View, for hosts that want the engine
// wired to whatever view implementation is available without naming
// one explicitly. It reports false, with a nil Engine, if reg has no
// registered View at all.
func NewEngineForBestView(reg *Registry[View]) (*Engine, bool) {
	if reg.Count() == 0 {
		return nil, false
	}
	return NewEngine(reg.Best()), true
}
