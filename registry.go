package craft

import (
	"sort"
	"sync"
)

// Registry maps component ids to loaded components and allocates serials.
//
// Entries are keyed by id and hold the component's owner (the widget that
// embeds it) when one is set. Collisions are not errors: Set on an id that
// is already held overwrites the entry, which is how two sticky components
// with the same name behave.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Loadable
	serial  int
}

// NewRegistry creates an empty registry whose first serial is 0.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Loadable)}
}

// Push registers c under its own id.
func (reg *Registry) Push(c Loadable) {
	reg.Set(c.ID(), c)
}

// Set registers c under id, replacing any existing entry.
func (reg *Registry) Set(id string, c Loadable) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.entries[id] = c
}

// Get returns the component registered under id.
func (reg *Registry) Get(id string) (Loadable, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	c, ok := reg.entries[id]
	return c, ok
}

// Del removes the entry for id, whoever holds it.
func (reg *Registry) Del(id string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.entries, id)
}

// NextSerial returns the next serial. Serials increase strictly and are
// never reused.
func (reg *Registry) NextSerial() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	n := reg.serial
	reg.serial++
	return n
}

// Len returns the number of registered components.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.entries)
}

// IDs returns the registered ids in sorted order.
func (reg *Registry) IDs() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	ids := make([]string, 0, len(reg.entries))
	for id := range reg.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Lookup returns the component registered under id as a T.
//
//	list, ok := craft.Lookup[*TagList](ctx.Registry(), "app_TagList")
func Lookup[T any](reg *Registry, id string) (T, bool) {
	var zero T
	c, ok := reg.Get(id)
	if !ok {
		return zero, false
	}
	t, ok := c.(T)
	return t, ok
}
