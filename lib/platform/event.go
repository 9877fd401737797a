package platform

import "time"

// Event types used across craft.
const (
	EventPopState      = "popstate"
	EventClick         = "click"
	EventKeyUp         = "keyup"
	EventMouseUp       = "mouseup"
	EventTouchStart    = "touchstart"
	EventTouchMove     = "touchmove"
	EventTouchEnd      = "touchend"
	EventTransitionEnd = "transitionend"
)

// Touch is one contact point.
type Touch struct {
	ClientX float64
	ClientY float64
}

// Event is a DOM-style event.
type Event struct {
	Type      string
	Target    Element
	Timestamp time.Time

	// State is the encoded history state for popstate events.
	State string
	// KeyCode is set for keyboard events.
	KeyCode int
	// Touches lists active contacts for touch events.
	Touches []Touch
	// Property names the transitioned property for transitionend.
	Property string

	defaultPrevented bool
	stopped          bool
}

// NewEvent returns an event of the given type stamped with t.
func NewEvent(typ string, t time.Time) *Event {
	return &Event{Type: typ, Timestamp: t}
}

// PreventDefault marks the event as handled.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation stops bubbling past the current element.
func (e *Event) StopPropagation() { e.stopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.stopped }
