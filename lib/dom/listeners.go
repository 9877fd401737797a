package dom

import "github.com/pthm/craft/lib/platform"

type listenerEntry struct {
	id int
	fn platform.Listener
}

// listenerSet keeps listeners per event type in registration order.
type listenerSet struct {
	next   int
	byType map[string][]listenerEntry
}

func (s *listenerSet) add(typ string, fn platform.Listener) func() {
	if s.byType == nil {
		s.byType = make(map[string][]listenerEntry)
	}
	s.next++
	id := s.next
	s.byType[typ] = append(s.byType[typ], listenerEntry{id: id, fn: fn})
	return func() { s.remove(typ, id) }
}

func (s *listenerSet) remove(typ string, id int) {
	entries := s.byType[typ]
	for i, e := range entries {
		if e.id == id {
			s.byType[typ] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

// fire invokes a snapshot of the listeners so handlers may add or remove
// listeners while the event is being delivered.
func (s *listenerSet) fire(ev *platform.Event) {
	entries := s.byType[ev.Type]
	if len(entries) == 0 {
		return
	}
	snapshot := make([]listenerEntry, len(entries))
	copy(snapshot, entries)
	for _, e := range snapshot {
		e.fn(ev)
	}
}

func (s *listenerSet) count(typ string) int {
	return len(s.byType[typ])
}

func (s *listenerSet) clear() {
	s.byType = nil
}
