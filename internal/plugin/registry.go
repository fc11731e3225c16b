package plugin

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a fresh plugin instance.
type Factory func() Plugin

// Registry manages plugin registration and discovery.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	metadata  map[string]PluginMetadata
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		metadata:  make(map[string]PluginMetadata),
	}
}

// Register adds a plugin factory to the registry. The factory is invoked
// once to read and validate the plugin's metadata.
// Returns an error if a plugin with the same name already exists.
func (r *Registry) Register(factory Factory) error {
	if factory == nil {
		return fmt.Errorf("cannot register nil plugin factory")
	}
	probe := factory()
	if probe == nil {
		return fmt.Errorf("plugin factory returned nil")
	}

	metadata := probe.Metadata()
	if err := metadata.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.metadata[metadata.Name]; exists {
		return fmt.Errorf("plugin %s already registered (%s)", metadata.Name, existing)
	}

	r.factories[metadata.Name] = factory
	r.metadata[metadata.Name] = metadata
	return nil
}

// MustRegister is like Register but panics on error. Intended for
// registering built-in plugins at startup.
func (r *Registry) MustRegister(factory Factory) {
	if err := r.Register(factory); err != nil {
		panic(err)
	}
}

// New creates a fresh instance of the named plugin.
func (r *Registry) New(name string) (Plugin, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("plugin %s not found (available: %v)", name, r.Names())
	}
	return factory(), nil
}

// Has reports whether a plugin with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered plugin names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
