package scorers

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a fresh module instance.
type Factory func() Module

// Registry maps module names to factories. One registry is built at
// process start and handed to the engine; it is not ambient global state.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry pre-loaded with the built-in modules.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}

	// Built-ins. Registration errors here would mean duplicate names in
	// this file, so they are ignored deliberately.
	_ = r.Register(ModuleObscenity, func() Module { return NewObscenityModule() })
	_ = r.Register(ModuleSentiment, func() Module { return NewSentimentModule() })
	_ = r.Register(ModuleHarassment, func() Module { return NewHarassmentModule() })
	_ = r.Register(ModuleSocialEngineering, func() Module { return NewSocialEngineeringModule() })
	_ = r.Register(ModulePatternTable, func() Module { return NewPatternTableModule() })

	return r
}

// Built-in module names.
const (
	ModuleObscenity         = "obscenity"
	ModuleSentiment         = "sentiment"
	ModuleHarassment        = "harassment"
	ModuleSocialEngineering = "social_engineering"
	ModulePatternTable      = "pattern_table"
)

// Register adds a factory under name. Names are unique; re-registering is
// an error so two modules can never silently shadow each other.
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("scoring module already registered: %s", name)
	}
	r.factories[name] = factory
	return nil
}

// Create instantiates the named module.
func (r *Registry) Create(name string) (Module, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("scoring module not registered: %s", name)
	}
	return factory(), nil
}

// Names returns all registered module names, sorted.
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
