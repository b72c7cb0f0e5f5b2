package presets

import (
	"sync"
	"time"
)

// Registry holds the current presets in memory
type Registry struct {
	mu         sync.RWMutex
	presets    []Preset
	bySlug     map[string]Preset
	lastReload time.Time
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{bySlug: make(map[string]Preset)}
}

// Update replaces all presets
func (r *Registry) Update(presets []Preset) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.presets = append([]Preset(nil), presets...)
	r.bySlug = make(map[string]Preset, len(presets))
	for _, p := range presets {
		r.bySlug[p.Slug] = p
	}
	r.lastReload = time.Now()
}

// Get retrieves a preset by slug
func (r *Registry) Get(slug string) (Preset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.bySlug[slug]
	return p, ok
}

// All returns the presets in display order
func (r *Registry) All() []Preset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Preset{}, r.presets...)
}

// Count returns the number of presets
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.presets)
}

// GetLastReload returns the timestamp of the last reload
func (r *Registry) GetLastReload() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.lastReload
}
