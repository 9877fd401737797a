package craft

import (
	"fmt"

	"github.com/pthm/craft/lib/platform"
)

// HistoryEntry is one pushState/replaceState call.
type HistoryEntry struct {
	// State is packed with the context's state codec. nil stores no state.
	State any
	Title string
	// Path is the URL handed to the history primitive, as given.
	Path string
	// Sealed encrypts the state instead of signing it.
	Sealed bool
}

// RootViewController is the root of the view tree. It is bound into the
// context with SetRootViewController and bridges browser history to the
// tree: Bringup delivers the launch route and every popstate after that
// is routed through the context's router.
//
// Applications either embed *RootViewController and define
// ResolveRoutingRequest, or pass a Resolver:
//
//	root := craft.NewRootViewController(ctx, craft.Options{},
//	    craft.ResolverFunc(func(r craft.Route) error { ... }))
type RootViewController struct {
	*ViewController
	resolver  Routable
	broughtUp bool
}

// ResolverFunc adapts a function to Routable.
type ResolverFunc func(route Route) error

// ResolveRoutingRequest calls f.
func (f ResolverFunc) ResolveRoutingRequest(route Route) error { return f(route) }

// NewRootViewController creates an unloaded root view controller. resolver
// may be nil when the embedding widget defines ResolveRoutingRequest.
func NewRootViewController(ctx *Context, opts Options, resolver Routable) *RootViewController {
	r := &RootViewController{
		ViewController: NewViewController(ctx, opts),
		resolver:       resolver,
	}
	r.self = r
	return r
}

func (r *RootViewController) rootNode() *RootViewController { return r }

// IsBroughtUp reports whether Bringup has run.
func (r *RootViewController) IsBroughtUp() bool { return r.broughtUp }

// Bringup delivers the launch route: launch true, no event. It runs once;
// later calls fail with ErrAlreadyBroughtUp. The root must be bound with
// Context.SetRootViewController first, otherwise Bringup fails with
// ErrNoRootViewController and can be retried after binding.
func (r *RootViewController) Bringup() error {
	if r.broughtUp {
		return fmt.Errorf("craft: bringup %s: %w", r.id, ErrAlreadyBroughtUp)
	}
	if bound := r.ctx.root; bound == nil || bound.rootNode() != r {
		return fmt.Errorf("craft: bringup %s: %w", r.id, ErrNoRootViewController)
	}
	r.broughtUp = true
	r.ctx.logger.Debug("bringup", "component_id", r.id)
	return r.ctx.Router().Route(nil, true)
}

// DidReceivePopstate forwards a history event to the router.
func (r *RootViewController) DidReceivePopstate(ev *platform.Event, launch bool) error {
	return r.ctx.Router().Route(ev, launch)
}

// ResolveRoutingRequest hands route to the resolver. Without one it fails
// with ErrNotImplemented, since nothing would ever be shown.
func (r *RootViewController) ResolveRoutingRequest(route Route) error {
	if r.resolver == nil {
		r.ctx.logger.Error("no routing resolver", "component_id", r.id, "path", route.Path())
		return fmt.Errorf("craft: resolve %q: %w", route.Path(), ErrNotImplemented)
	}
	return r.resolver.ResolveRoutingRequest(route)
}

// PushState adds a history entry. No popstate is fired.
func (r *RootViewController) PushState(entry HistoryEntry) error {
	state, err := r.ctx.codec.Encode(entry.State, entry.Sealed)
	if err != nil {
		return fmt.Errorf("craft: push state %q: %w", entry.Path, err)
	}
	if err := r.ctx.platform.History().PushState(state, entry.Title, entry.Path); err != nil {
		return fmt.Errorf("craft: push state %q: %w", entry.Path, err)
	}
	return nil
}

// ReplaceState replaces the current history entry.
func (r *RootViewController) ReplaceState(entry HistoryEntry) error {
	state, err := r.ctx.codec.Encode(entry.State, entry.Sealed)
	if err != nil {
		return fmt.Errorf("craft: replace state %q: %w", entry.Path, err)
	}
	if err := r.ctx.platform.History().ReplaceState(state, entry.Title, entry.Path); err != nil {
		return fmt.Errorf("craft: replace state %q: %w", entry.Path, err)
	}
	return nil
}

// Navigate pushes a history entry for path, normalized by the router, and
// routes it. Called from a resolver, the route is queued behind the
// running one.
func (r *RootViewController) Navigate(path string) error {
	router := r.ctx.Router()
	if err := r.PushState(HistoryEntry{Path: router.Normalize(path)}); err != nil {
		return err
	}
	return router.Route(nil, false)
}

// DecodeState unpacks the history state carried by ev into v. A nil event
// or an entry without state leaves v untouched.
func (r *RootViewController) DecodeState(ev *platform.Event, v any) error {
	if ev == nil {
		return nil
	}
	if err := r.ctx.codec.Decode(ev.State, v); err != nil {
		return fmt.Errorf("craft: decode state: %w", err)
	}
	return nil
}
