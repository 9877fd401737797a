// Package platform declares the rendering surface craft consumes.
//
// A platform creates isolated rendering hosts, injects style and markup text
// into them, mounts them into anchor elements, delivers DOM-style events and
// exposes the browser location and history. craft never draws anything
// itself; it only drives a Platform.
//
// The lib/dom package provides an in-memory implementation used for tests,
// headless rendering and server-side prerendering.
package platform

import "time"

// Listener receives events dispatched on an element or the window.
type Listener func(ev *Event)

// Platform is the window-level surface.
type Platform interface {
	Document() Document
	Location() Location
	History() History

	// AddEventListener subscribes to window events (popstate, keyup).
	// The returned function removes the subscription.
	AddEventListener(typ string, fn Listener) (remove func())

	// AfterFunc schedules fn on the UI loop after d.
	AfterFunc(d time.Duration, fn func()) Timer
	Now() time.Time

	Device() DeviceInfo
}

// Document looks up anchors and creates isolated hosts.
type Document interface {
	// GetElementByID searches the light tree. Isolated host subtrees are
	// not searched.
	GetElementByID(id string) (Element, bool)

	// CreateHost creates a detached host element whose isolated subtree is
	// empty until SetContent is called.
	CreateHost(id string) (Host, error)
}

// Element is a node in the rendered tree.
type Element interface {
	ID() string

	AppendChild(child Element) error
	RemoveChild(child Element) error
	Parent() (Element, bool)
	Contains(other Element) bool

	SetStyle(prop, value string)
	Style(prop string) string
	SetInnerHTML(markup string) error

	AddEventListener(typ string, fn Listener) (remove func())
	DispatchEvent(ev *Event)

	OuterHTML() string
}

// Host is an element owning an isolated subtree (a shadow root).
type Host interface {
	Element

	// SetContent replaces the isolated subtree with a style block and the
	// given markup.
	SetContent(style, markup string) error

	// ContentRoot is where child hosts are appended: the first element
	// carrying the class "root", or the isolated root itself.
	ContentRoot() Element

	// Lookup searches the isolated subtree by id.
	Lookup(id string) (Element, bool)

	// Release detaches the host and drops its listeners.
	Release()
}

// Location is the current URL.
type Location interface {
	Href() string
	Hash() string
	Pathname() string
}

// History mutates the session history without firing popstate.
type History interface {
	PushState(state, title, url string) error
	ReplaceState(state, title, url string) error
}

// Timer is a pending AfterFunc call.
type Timer interface {
	// Stop reports whether the call was prevented.
	Stop() bool
}

// DeviceInfo describes the display and input capabilities.
type DeviceInfo struct {
	UserAgent    string
	PixelRatio   float64
	ScreenWidth  int
	ScreenHeight int
	Touch        bool
}
