package components

import (
	"strings"

	"github.com/pthm/craft"
)

// AppRoot swaps the page view on every route.
type AppRoot struct {
	*craft.RootViewController
	store   TagStore
	current page
}

// NewAppRoot creates the root view controller.
func NewAppRoot(ctx *craft.Context, store TagStore) *AppRoot {
	r := &AppRoot{store: store}
	r.RootViewController = craft.NewRootViewController(ctx, craft.Options{
		Owner:  r,
		Sticky: true,
	}, nil)
	return r
}

// ResolveRoutingRequest shows the view for route.
func (r *AppRoot) ResolveRoutingRequest(route craft.Route) error {
	ctx := r.Context()
	segs := route.Segments()

	switch {
	case len(segs) == 0:
		return r.show(NewTagList(ctx, r.store))
	case len(segs) == 2 && segs[0] == "tag":
		return r.show(NewTagDetail(ctx, r.store, segs[1]))
	default:
		return r.show(NewNotFound(ctx, "/"+strings.Join(segs, "/")))
	}
}

type page interface {
	craft.Viewable
	LoadView() error
	UnloadView() error
}

func (r *AppRoot) show(p page) error {
	if r.current != nil {
		if err := r.RemoveView(r.current); err != nil {
			return err
		}
		if err := r.current.UnloadView(); err != nil {
			return err
		}
		r.current = nil
	}
	if err := p.LoadView(); err != nil {
		return err
	}
	if err := r.AppendView(p); err != nil {
		return err
	}
	r.current = p
	return nil
}
