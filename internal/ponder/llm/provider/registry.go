package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kiosk404/ponder/internal/ponder/llm/provider/spi"
	"github.com/kiosk404/ponder/internal/ponder/pkg/errno"
)

// Registry is a thread-safe registry for LLM providers.
type Registry struct {
	mu       sync.RWMutex
	registry map[string]spi.PluginFactory
}

// NewRegistry creates a new instance of the Registry.
func NewRegistry() *Registry {
	return &Registry{
		registry: make(map[string]spi.PluginFactory),
	}
}

// Register adds a provider plugin factory to the registry.
// Returns an error if a plugin with the same name is already registered
func (r *Registry) Register(name string, factory spi.PluginFactory) error {
	if name == "" || factory == nil {
		return fmt.Errorf("provider registration needs a name and a factory")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerLocked(name, factory)
}

func (r *Registry) registerLocked(name string, factory spi.PluginFactory) error {
	if _, ok := r.registry[name]; ok {
		return fmt.Errorf("%w: %s", errno.ErrProviderRegistered, name)
	}
	r.registry[name] = factory
	return nil
}

// MustRegister adds a provider plugin factory to the registry.
// Panics if a plugin with the same name is already registered
func (r *Registry) MustRegister(name string, factory spi.PluginFactory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Unregister removes a provider plugin factory from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.registry[name]; !ok {
		return fmt.Errorf("%w: %s", errno.ErrProviderNotFound, name)
	}
	delete(r.registry, name)
	return nil
}

// Get returns the plugin factory for the given name.
func (r *Registry) Get(name string) (spi.PluginFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errno.ErrProviderNotFound, name)
	}
	return factory, nil
}

// Plugin instantiates the named provider.
func (r *Registry) Plugin(name string) (spi.ProviderPlugin, error) {
	factory, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return factory(), nil
}

// List returns all registered provider names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.registry))
	for name := range r.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge combines another registry into this one. Nothing is merged when any
// name in other is already registered here.
func (r *Registry) Merge(other *Registry) error {
	if other == nil || other == r {
		return nil
	}
	other.mu.RLock()
	incoming := make(map[string]spi.PluginFactory, len(other.registry))
	for name, factory := range other.registry {
		incoming[name] = factory
	}
	other.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	for name := range incoming {
		if _, ok := r.registry[name]; ok {
			return fmt.Errorf("%w: %s", errno.ErrProviderRegistered, name)
		}
	}
	for name, factory := range incoming {
		_ = r.registerLocked(name, factory)
	}
	return nil
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.registry)
}

// Range calls fn for every provider in name order until fn returns false.
func (r *Registry) Range(fn func(name string, factory spi.PluginFactory) bool) {
	for _, name := range r.List() {
		factory, err := r.Get(name)
		if err != nil {
			continue
		}
		if !fn(name, factory) {
			break
		}
	}
}
