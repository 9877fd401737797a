// Package keyboard dispatches key-up events to registered actions.
//
// Actions are grouped by key code and identified by a caller-chosen id,
// so one owner can remove all of its actions at once:
//
//	m := keyboard.NewManager()
//	m.Activate(window)
//	m.Register("close_"+id, keyboard.Escape, c.Dismiss)
//	...
//	m.Remove("close_" + id)
package keyboard

import (
	"sync"

	"github.com/pthm/craft/lib/platform"
)

// Common key codes.
const (
	Enter  = 13
	Escape = 27
	Left   = 37
	Up     = 38
	Right  = 39
	Down   = 40
)

// Action runs when its key is released.
type Action func()

type binding struct {
	id     string
	action Action
}

// Manager is a key code dispatch table.
type Manager struct {
	mu       sync.Mutex
	bindings map[int][]binding
	detach   func()
}

// NewManager creates an empty, inactive manager.
func NewManager() *Manager {
	return &Manager{bindings: make(map[int][]binding)}
}

// Register binds action to key under id. Registering an id again for the
// same key replaces its action in place. Empty ids, zero keys and nil
// actions are ignored.
func (m *Manager) Register(id string, key int, action Action) {
	if id == "" || key == 0 || action == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.bindings[key]
	for i := range list {
		if list[i].id == id {
			list[i].action = action
			return
		}
	}
	m.bindings[key] = append(list, binding{id: id, action: action})
}

// Remove drops every action registered under id.
func (m *Manager) Remove(id string) {
	if id == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, list := range m.bindings {
		kept := list[:0]
		for _, b := range list {
			if b.id != id {
				kept = append(kept, b)
			}
		}
		if len(kept) == 0 {
			delete(m.bindings, key)
			continue
		}
		m.bindings[key] = kept
	}
}

// Dispatch runs the actions bound to key in registration order and returns
// how many ran.
func (m *Manager) Dispatch(key int) int {
	m.mu.Lock()
	list := append([]binding(nil), m.bindings[key]...)
	m.mu.Unlock()

	for _, b := range list {
		b.action()
	}
	return len(list)
}

// Clear drops all actions.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings = make(map[int][]binding)
}

// Len returns the number of registered actions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, list := range m.bindings {
		n += len(list)
	}
	return n
}

// Activate starts dispatching key-up events from p. Activating an active
// manager is a no-op.
func (m *Manager) Activate(p platform.Platform) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.detach != nil {
		return
	}
	m.detach = p.AddEventListener(platform.EventKeyUp, func(ev *platform.Event) {
		m.Dispatch(ev.KeyCode)
	})
}

// Deactivate stops listening for key-up events. Registrations are kept.
func (m *Manager) Deactivate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.detach != nil {
		m.detach()
		m.detach = nil
	}
}

// Active reports whether the manager is listening.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.detach != nil
}
