package stage

import (
	"fmt"
	"sync"
)

// Info contains metadata about a registered stage.
type Info struct {
	ID    string
	Title string
	Index int // 1-based play order
}

// Factory creates a fresh stage for one attempt.
type Factory func(env Env) Stage

// Registry maps stage IDs to factories in play order.
// It is built explicitly by the caller; nothing registers itself.
type Registry struct {
	mu        sync.RWMutex
	order     []string
	factories map[string]Factory
	titles    map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		titles:    make(map[string]string),
	}
}

// Register appends a stage to the play order.
// Panics if a stage with the same ID is already registered.
func (r *Registry) Register(id, title string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[id]; exists {
		panic(fmt.Sprintf("stage: %q already registered", id))
	}
	r.order = append(r.order, id)
	r.factories[id] = f
	r.titles[id] = title
}

// List returns all stages in play order.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Info, 0, len(r.order))
	for i, id := range r.order {
		result = append(result, Info{ID: id, Title: r.titles[id], Index: i + 1})
	}
	return result
}

// Len returns the number of registered stages.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Create instantiates a stage by ID.
func (r *Registry) Create(id string, env Env) (Stage, error) {
	r.mu.RLock()
	f, ok := r.factories[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("stage: unknown stage %q", id)
	}
	return f(env.normalize()), nil
}

// Exists checks if a stage with the given ID is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[id]
	return ok
}

// Index returns the 1-based play position of id, or 0.
func (r *Registry) Index(id string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i, s := range r.order {
		if s == id {
			return i + 1
		}
	}
	return 0
}

// First returns the first stage ID, or "" for an empty registry.
func (r *Registry) First() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.order) == 0 {
		return ""
	}
	return r.order[0]
}

// Next returns the stage after id in play order.
func (r *Registry) Next(id string) (string, bool) {
	i := r.Index(id)
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i == 0 || i >= len(r.order) {
		return "", false
	}
	return r.order[i], true
}
