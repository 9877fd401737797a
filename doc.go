// Package craft is a component toolkit for single-page applications.
//
// craft manages the lifecycle and identity of UI components, composes them
// into a tree of views and view controllers, and turns browser history
// events into routing requests delivered to the root of that tree. It
// drives a rendering surface declared by lib/platform; lib/dom is an
// in-memory implementation used for tests and server-side prerendering.
//
// # Core Concepts
//
// Every widget embeds one of the craft types and passes itself as the
// owner:
//
//	type TagList struct {
//	    *craft.View
//	    tags []Tag
//	}
//
//	func NewTagList(ctx *craft.Context, tags []Tag) *TagList {
//	    l := &TagList{tags: tags}
//	    l.View = craft.NewView(ctx, craft.Options{Owner: l, Template: l.template})
//	    return l
//	}
//
// A component starts unloaded. LoadView derives its id from its name
// (name_serial, or just the name when Sticky), creates an isolated host,
// injects the templ markup and style and registers the owner under the id.
// UnloadView deregisters it and releases the host; a disposed component
// cannot be loaded again.
//
// # Composition
//
// AppendView attaches a loaded child under a loaded parent and points the
// child's ViewController back-reference at the parent. The reference does
// not own the child: RemoveView detaches it but leaves it loaded.
//
// ViewController additionally republishes taps on its host as the
// ContentTapped notification. RootViewController is the tree root bound
// into the Context. ModalViewController presents content over a mask.
//
// # Routing
//
// Bringup delivers the launch route once. After that every popstate is
// handed to the context's Router, which parses the location into a Route
// and calls ResolveRoutingRequest on the root:
//
//	func (r *Root) ResolveRoutingRequest(route craft.Route) error {
//	    switch seg := route.Segments(); {
//	    case len(seg) == 2 && seg[0] == "tag":
//	        return r.showTag(seg[1])
//	    default:
//	        return r.showList()
//	    }
//	}
//
// The hash router reads the text after "#/"; the path router reads the
// pathname. Routes requested while one is being resolved are queued and
// delivered in order after it returns.
//
// # Context
//
// All shared state lives in a Context: the application, the platform, the
// registry, the router, the root, the notification center, the keyboard
// manager, the animator and the history state codec. Boot creates one per
// application; tests create as many as they need.
//
//	ctx, err := craft.Boot(app, craft.WithPlatform(dom.NewWindow()))
//
// # Code Generation
//
// Run 'craft generate' to write QualifiedName methods for widget types.
// Qualified names keep sticky ids stable across refactors that rename Go
// types.
package craft
