package craft

import (
	"strings"

	"github.com/pthm/craft/lib/platform"
)

// Route is one navigation request, as delivered to ResolveRoutingRequest.
// Routes are values and never change after construction.
type Route struct {
	path   string
	launch bool
	event  *platform.Event
}

// NewRoute builds a route. A nil event means the route did not come from a
// history event.
func NewRoute(path string, launch bool, ev *platform.Event) Route {
	return Route{path: path, launch: launch, event: ev}
}

// Path returns the parsed path, possibly "".
func (r Route) Path() string { return r.path }

// Launch reports whether the route comes from Bringup.
func (r Route) Launch() bool { return r.launch }

// Event returns the history event that caused the route, or nil.
func (r Route) Event() *platform.Event { return r.event }

// HasEvent reports whether the route carries a history event.
func (r Route) HasEvent() bool { return r.event != nil }

// Segments splits the path on "/" and drops empty segments.
//
//	NewRoute("/tag/42/", false, nil).Segments() // ["tag", "42"]
func (r Route) Segments() []string {
	parts := strings.Split(r.path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
