package craft

import "github.com/pthm/craft/lib/platform"

// Loadable is implemented by everything with a load/unload lifecycle.
// Widgets get it by embedding *Component, *View, *ViewController or
// *RootViewController.
//
// LoadView assigns the id, creates the rendering host, injects style and
// markup and registers the component. UnloadView deregisters it and
// releases the host; the instance is disposed afterwards and cannot be
// loaded again.
type Loadable interface {
	ID() string
	LoadView() error
	UnloadView() error
	IsLoaded() bool
}

// Composable is implemented by views that hold child views.
//
// AppendView requires both views to be loaded. It sets the child's
// controller back-reference and appends the child's host to the content
// root. RemoveView detaches the host and clears the back-reference without
// unloading the child: disposal stays with whoever created it.
type Composable interface {
	Loadable
	AppendView(child Viewable) error
	RemoveView(child Viewable) error
}

// Routable receives resolved routes.
type Routable interface {
	ResolveRoutingRequest(route Route) error
}

// Presentable shows and hides itself. The completion callback is optional.
type Presentable interface {
	ShowView(done func()) error
	HideView(done func()) error
}

// Viewable is a child argument to AppendView and RemoveView: a view, any
// widget embedding one, or ViewOptions.
type Viewable interface {
	viewNode() *View
}

// RootController is the tree root bound into a Context. Widgets embedding
// *RootViewController satisfy it and usually override
// ResolveRoutingRequest.
type RootController interface {
	Composable
	Routable
	Bringup() error
	DidReceivePopstate(ev *platform.Event, launch bool) error
	rootNode() *RootViewController
}

// Qualified is implemented by widgets that declare a stable qualified
// name, such as "app/views.TagList". It is used to derive component names
// and sticky ids. `craft generate` writes these methods.
type Qualified interface {
	QualifiedName() string
}

// ViewDidLoader is implemented by widgets that need to run code once
// their host has been created, for example to look up elements or install
// listeners.
type ViewDidLoader interface {
	ViewDidLoad() error
}

// AppearanceObserver is implemented by content shown by a presenting
// controller such as ModalViewController.
type AppearanceObserver interface {
	ViewWillAppear()
	ViewDidAppear()
	ViewWillDisappear()
	ViewDidDisappear()
}
