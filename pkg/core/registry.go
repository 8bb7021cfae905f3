package core

import (
	"fmt"
	"sync"
)

// Global registry for searcher self-registration
var globalRegistry = &Registry{
	searchers: make(map[EntityType]Searcher),
}

type Registry struct {
	searchers map[EntityType]Searcher
	mu        sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		searchers: make(map[EntityType]Searcher),
	}
}

// RegisterSearcher allows searcher packages to register themselves during init()
func RegisterSearcher(s Searcher) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.searchers[s.Type()] = s
}

// GetGlobalRegistry returns a copy of the global registry with all
// self-registered searchers.
func GetGlobalRegistry() *Registry {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	registry := NewRegistry()
	for t, s := range globalRegistry.searchers {
		registry.searchers[t] = s
	}
	return registry
}

func (r *Registry) Register(s Searcher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.searchers[s.Type()]; exists {
		return fmt.Errorf("searcher for %s already registered", s.Type())
	}

	r.searchers[s.Type()] = s
	return nil
}

func (r *Registry) Get(t EntityType) (Searcher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.searchers[t]
	if !exists {
		return nil, fmt.Errorf("no searcher registered for %s", t)
	}
	return s, nil
}

// All returns the registered searchers in entity priority order.
func (r *Registry) All() []Searcher {
	r.mu.RLock()
	defer r.mu.RUnlock()

	searchers := make([]Searcher, 0, len(r.searchers))
	for _, t := range AllEntityTypes {
		if s, exists := r.searchers[t]; exists {
			searchers = append(searchers, s)
		}
	}
	return searchers
}

// Types returns the entity kinds with a registered searcher, in priority
// order.
func (r *Registry) Types() []EntityType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]EntityType, 0, len(r.searchers))
	for _, t := range AllEntityTypes {
		if _, exists := r.searchers[t]; exists {
			types = append(types, t)
		}
	}
	return types
}
