package main

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pthm/craft/example/components"
)

// Store is an in-memory bookmark store that implements components.TagStore.
type Store struct {
	mu     sync.RWMutex
	items  map[string]*components.Item
	nextID int
}

// NewStore creates a new store with sample data.
func NewStore() *Store {
	s := &Store{
		items:  make(map[string]*components.Item),
		nextID: 1,
	}

	s.Add("The Go Programming Language", "https://go.dev", "go", "languages")
	s.Add("Effective Go", "https://go.dev/doc/effective_go", "go", "docs")
	s.Add("templ", "https://templ.guide", "go", "html")
	s.Add("MDN Web Docs", "https://developer.mozilla.org", "docs", "html")

	return s
}

// Add stores a new item and returns its ID.
func (s *Store) Add(title, url string, tags ...string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("item-%d", s.nextID)
	s.nextID++
	s.items[id] = &components.Item{ID: id, Title: title, URL: url, Tags: tags}
	return id
}

// Tags returns every tag with its item count, sorted by name.
func (s *Store) Tags() []components.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, it := range s.items {
		for _, tag := range it.Tags {
			counts[tag]++
		}
	}

	tags := make([]components.Tag, 0, len(counts))
	for name, n := range counts {
		tags = append(tags, components.Tag{Name: name, Count: n})
	}
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Name < tags[j].Name
	})
	return tags
}

// Items returns the items carrying tag, sorted by title.
func (s *Store) Items(tag string) []*components.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*components.Item
	for _, it := range s.items {
		for _, t := range it.Tags {
			if t == tag {
				out = append(out, it)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Title < out[j].Title
	})
	return out
}
