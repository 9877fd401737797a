package craft

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pthm/craft/lib/platform"
)

// Router names accepted by the "router" setting.
const (
	RouterHash = "hash"
	RouterPath = "path"
)

// Router parses the current location into a Route and delivers it to the
// context's root view controller.
//
// Route delivers synchronously: ResolveRoutingRequest has returned by the
// time Route does. A Route call made while a resolution is running, for
// example by a resolver that redirects, is queued and delivered after the
// running resolution returns, in call order, before the outermost Route
// returns. The nested call itself returns nil; errors from queued
// resolutions are joined into the outermost call's error.
type Router interface {
	Route(ev *platform.Event, launch bool) error

	// Normalize returns path in the router's canonical form.
	Normalize(path string) string

	// Name returns the router name, RouterHash or RouterPath.
	Name() string
}

// HashRouter routes on the location fragment. The path is the text after
// a leading "#/", or "" when the fragment has no such marker.
type HashRouter struct {
	dispatcher
}

// NewHashRouter creates a hash router for ctx.
func NewHashRouter(ctx *Context) *HashRouter {
	r := &HashRouter{}
	r.dispatcher = dispatcher{ctx: ctx, name: RouterHash, parse: parseHash}
	return r
}

// Normalize strips leading '#' and '/' characters and prefixes "#/".
func (r *HashRouter) Normalize(path string) string {
	return "#/" + strings.TrimLeft(path, "#/")
}

// PathRouter routes on the location path. The path is handed over
// untouched, leading slash included; trimming it is up to the resolver.
type PathRouter struct {
	dispatcher
}

// NewPathRouter creates a path router for ctx.
func NewPathRouter(ctx *Context) *PathRouter {
	r := &PathRouter{}
	r.dispatcher = dispatcher{ctx: ctx, name: RouterPath, parse: parsePath}
	return r
}

// Normalize strips leading '#' and '/' characters and prefixes "/".
func (r *PathRouter) Normalize(path string) string {
	return "/" + strings.TrimLeft(path, "#/")
}

// NewRouter creates the router registered under name.
func NewRouter(ctx *Context, name string) (Router, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", RouterHash:
		return NewHashRouter(ctx), nil
	case RouterPath:
		return NewPathRouter(ctx), nil
	default:
		return nil, fmt.Errorf("craft: router %q: %w", name, ErrUnknownRouter)
	}
}

func parseHash(loc platform.Location) string {
	if path, ok := strings.CutPrefix(loc.Hash(), "#/"); ok {
		return path
	}
	return ""
}

func parsePath(loc platform.Location) string {
	return loc.Pathname()
}

type pendingRoute struct {
	ev     *platform.Event
	launch bool
}

// dispatcher holds the delivery protocol shared by both routers.
type dispatcher struct {
	ctx       *Context
	name      string
	parse     func(platform.Location) string
	resolving bool
	queue     []pendingRoute
	delivered int
}

func (d *dispatcher) Name() string { return d.name }

// Delivered returns the number of routes delivered so far.
func (d *dispatcher) Delivered() int { return d.delivered }

func (d *dispatcher) Route(ev *platform.Event, launch bool) error {
	if d.resolving {
		d.queue = append(d.queue, pendingRoute{ev: ev, launch: launch})
		d.ctx.logger.Debug("route queued", "router", d.name, "pending", len(d.queue))
		return nil
	}

	d.resolving = true
	defer func() {
		d.resolving = false
		d.queue = nil
	}()

	errs := []error{d.deliver(ev, launch)}
	for len(d.queue) > 0 {
		next := d.queue[0]
		d.queue = d.queue[1:]
		errs = append(errs, d.deliver(next.ev, next.launch))
	}
	return errors.Join(errs...)
}

func (d *dispatcher) deliver(ev *platform.Event, launch bool) error {
	root := d.ctx.RootViewController()
	if root == nil {
		return fmt.Errorf("craft: route: %w", ErrNoRootViewController)
	}
	route := NewRoute(d.parse(d.ctx.platform.Location()), launch, ev)
	d.delivered++
	d.ctx.logger.Debug("route", "router", d.name, "path", route.Path(), "launch", launch)
	return root.ResolveRoutingRequest(route)
}
