package recommender

import (
	"sort"
	"sync"
)

// Registry manages the available recommendation models
type Registry struct {
	mu           sync.RWMutex
	models       map[ModelType]Model
	defaultModel ModelType
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{models: make(map[ModelType]Model)}
}

// DefaultRegistry returns a registry with every built-in model
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, m := range []Model{ItemSimilarity{}, Popularity{}, Random{Seed: 42}, NewContent(DefaultContentDimensions)} {
		_ = r.Register(m)
	}
	_ = r.SetDefault(DefaultModel)
	return r
}

// Register adds a model; the first registered model becomes the default
func (r *Registry) Register(m Model) error {
	if m == nil || m.Type() == "" {
		return NewError(KindValidation, "model must have a name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.models[m.Type()]; exists {
		return NewError(KindValidation, "model %s already registered", m.Type())
	}
	r.models[m.Type()] = m
	if r.defaultModel == "" {
		r.defaultModel = m.Type()
	}
	return nil
}

// Get returns the named model, or the default when name is empty
func (r *Registry) Get(name ModelType) (Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name == "" {
		name = r.defaultModel
	}
	m, ok := r.models[name]
	if !ok {
		return nil, NewError(KindValidation, "unknown model %q", name)
	}
	return m, nil
}

// IsRegistered reports whether a model with that name exists
func (r *Registry) IsRegistered(name ModelType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.models[name]
	return ok
}

// List returns registered model names in a stable order, default first
func (r *Registry) List() []ModelType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ModelType, 0, len(r.models))
	for name := range r.models {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool {
		if (out[i] == r.defaultModel) != (out[j] == r.defaultModel) {
			return out[i] == r.defaultModel
		}
		return out[i] < out[j]
	})
	return out
}

// Default returns the default model name
func (r *Registry) Default() ModelType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultModel
}

// SetDefault changes the default model
func (r *Registry) SetDefault(name ModelType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.models[name]; !ok {
		return NewError(KindValidation, "unknown model %q", name)
	}
	r.defaultModel = name
	return nil
}
