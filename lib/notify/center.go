// Package notify is a synchronous publish/subscribe center keyed by event
// name.
//
// Subscribers register a name pattern; `*` matches any run of characters.
// Each pattern is compiled once when it is registered and a fired name is
// tested against every registered pattern:
//
//	c := notify.NewCenter()
//	id, _ := c.Listen("Content*", func(n notify.Notification) { ... })
//	c.Notify("ContentTapped", ev) // delivered
//	c.Remove("Content*", id)
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/gobwas/glob"
	"github.com/google/uuid"
)

// Notification is one delivered event.
type Notification struct {
	Name      string
	Payload   any
	Timestamp time.Time
}

// Handler receives notifications.
type Handler func(n Notification)

type subscription struct {
	id      string
	pattern string
	matcher glob.Glob
	handler Handler
	once    bool
}

// Center fans notifications out to subscribers on the caller's goroutine.
type Center struct {
	mu   sync.RWMutex
	subs []*subscription
	now  func() time.Time
}

// Option configures a Center.
type Option func(*Center)

// WithClock sets the time source used to stamp notifications.
func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

// NewCenter creates an empty center.
func NewCenter(opts ...Option) *Center {
	c := &Center{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Listen subscribes h to every name matching pattern and returns the
// subscription id.
func (c *Center) Listen(pattern string, h Handler) (string, error) {
	return c.subscribe(pattern, h, false)
}

// Once is Listen, except the subscription is removed after its first
// delivery.
func (c *Center) Once(pattern string, h Handler) (string, error) {
	return c.subscribe(pattern, h, true)
}

func (c *Center) subscribe(pattern string, h Handler, once bool) (string, error) {
	if h == nil {
		return "", fmt.Errorf("notify: nil handler for %q", pattern)
	}
	m, err := glob.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("notify: compile pattern %q: %w", pattern, err)
	}

	sub := &subscription{
		id:      uuid.NewString(),
		pattern: pattern,
		matcher: m,
		handler: h,
		once:    once,
	}

	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()

	return sub.id, nil
}

// Remove cancels the subscription registered under pattern with id. It
// reports whether a subscription was removed.
func (c *Center) Remove(pattern, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked(func(s *subscription) bool {
		return s.id == id && s.pattern == pattern
	})
}

// Notify delivers payload to every subscriber whose pattern matches name,
// in subscription order, and returns the number of handlers called.
// Handlers may subscribe or remove; changes apply to the next Notify.
func (c *Center) Notify(name string, payload any) int {
	c.mu.Lock()
	var matched []*subscription
	for _, s := range c.subs {
		if s.matcher.Match(name) {
			matched = append(matched, s)
		}
	}
	c.removeLocked(func(s *subscription) bool {
		if !s.once {
			return false
		}
		for _, m := range matched {
			if m == s {
				return true
			}
		}
		return false
	})
	c.mu.Unlock()

	n := Notification{Name: name, Payload: payload, Timestamp: c.now()}
	for _, s := range matched {
		s.handler(n)
	}
	return len(matched)
}

// Len returns the number of live subscriptions.
func (c *Center) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.subs)
}

func (c *Center) removeLocked(drop func(*subscription) bool) bool {
	kept := c.subs[:0]
	removed := false
	for _, s := range c.subs {
		if drop(s) {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	// clear the tail so dropped handlers can be collected
	for i := len(kept); i < len(c.subs); i++ {
		c.subs[i] = nil
	}
	c.subs = kept
	return removed
}
