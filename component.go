package craft

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/craft/lib/platform"
)

type lifecycle int

const (
	unloaded lifecycle = iota
	loaded
	disposed
)

func (l lifecycle) String() string {
	switch l {
	case loaded:
		return "loaded"
	case disposed:
		return "disposed"
	default:
		return "unloaded"
	}
}

// Options configure a component.
type Options struct {
	// Name overrides the derived component name.
	Name string

	// Sticky gives the component an id derived from its name alone
	// instead of name_serial. Two sticky components with the same name
	// share an id; the one loaded last owns the registry entry.
	Sticky bool

	// Owner is the widget embedding the component. It is what the
	// registry stores and what names are derived from.
	Owner Loadable

	// Template produces the markup injected into the host.
	Template func(id string) templ.Component

	// Style produces the style text injected into the host.
	Style func(id string) string

	// Display selects the display value ShowView applies. Views only.
	Display DisplayMode
}

// Component is the base unit of identity and rendering.
//
// A component starts unloaded. LoadView gives it an id and a host and
// registers it; UnloadView disposes it. Every operation touching the host
// fails with ErrNotLoaded unless the component is loaded.
//
// Widgets embed *Component (usually through *View) and pass themselves as
// the owner:
//
//	type Badge struct {
//	    *craft.View
//	    label string
//	}
//
//	func NewBadge(ctx *craft.Context, label string) *Badge {
//	    b := &Badge{label: label}
//	    b.View = craft.NewView(ctx, craft.Options{Owner: b, Template: b.template})
//	    return b
//	}
type Component struct {
	ctx   *Context
	opts  Options
	self  Loadable
	owner Loadable

	id    string
	state lifecycle
	host  platform.Host

	didLoad  []func() error
	unloaded []func()
}

// NewComponent creates an unloaded component. It panics if ctx is nil.
func NewComponent(ctx *Context, opts Options) *Component {
	if ctx == nil {
		panic("craft: NewComponent called with nil context")
	}
	c := &Component{ctx: ctx, opts: opts, owner: opts.Owner}
	c.self = c
	return c
}

// Context returns the application context the component belongs to.
func (c *Component) Context() *Context { return c.ctx }

// ID returns the id assigned by LoadView, or "" before that.
func (c *Component) ID() string { return c.id }

// IsLoaded reports whether the component is loaded.
func (c *Component) IsLoaded() bool { return c.state == loaded }

// IsDisposed reports whether the component was unloaded.
func (c *Component) IsDisposed() bool { return c.state == disposed }

// IsSticky reports whether the component uses a sticky id.
func (c *Component) IsSticky() bool { return c.opts.Sticky }

// SetOwner sets the widget embedding the component. It must be called
// before LoadView.
func (c *Component) SetOwner(owner Loadable) {
	c.owner = owner
}

// Owner returns the widget registered for this component: the owner if
// one was set, otherwise the innermost craft type wrapping it.
func (c *Component) Owner() Loadable {
	if c.owner != nil {
		return c.owner
	}
	return c.self
}

// Name returns the component name ids are derived from. In order of
// precedence: Options.Name, the owner's QualifiedName, the owner's Go type
// name, "Component".
func (c *Component) Name() string {
	if c.opts.Name != "" {
		return c.opts.Name
	}
	owner := c.Owner()
	if q, ok := owner.(Qualified); ok {
		if name := q.QualifiedName(); name != "" {
			return name
		}
	}
	if name := typeName(owner); name != "" {
		return name
	}
	return "Component"
}

// OnViewDidLoad registers fn to run after the host is created. Hooks run
// in registration order, before the owner's ViewDidLoad.
func (c *Component) OnViewDidLoad(fn func() error) {
	c.didLoad = append(c.didLoad, fn)
}

// OnViewDidUnload registers fn to run after the host is released.
func (c *Component) OnViewDidUnload(fn func()) {
	c.unloaded = append(c.unloaded, fn)
}

// LoadView creates the host and registers the component. When a
// ViewDidLoad hook fails the load is rolled back: the component is
// unloaded and unregistered again and the joined hook errors are returned.
func (c *Component) LoadView() error {
	switch c.state {
	case loaded:
		return fmt.Errorf("craft: load %s: %w", c.id, ErrAlreadyLoaded)
	case disposed:
		return fmt.Errorf("craft: load %s: %w", c.id, ErrDisposed)
	}

	name := SafeName(c.Name())
	id := name
	if !c.opts.Sticky {
		id = name + "_" + strconv.Itoa(c.ctx.registry.NextSerial())
	}

	host, err := c.ctx.platform.Document().CreateHost(id)
	if err != nil {
		return fmt.Errorf("craft: load %s: create host: %w", id, err)
	}

	style := ""
	if c.opts.Style != nil {
		style = c.opts.Style(id)
	}
	markup, err := renderMarkup(c.opts.Template, id)
	if err != nil {
		host.Release()
		return fmt.Errorf("craft: load %s: render template: %w", id, err)
	}
	if err := host.SetContent(style, markup); err != nil {
		host.Release()
		return fmt.Errorf("craft: load %s: %w", id, err)
	}

	c.id = id
	c.host = host
	c.state = loaded

	owner := c.Owner()
	prev, hadPrev := c.ctx.registry.Get(id)
	if c.opts.Sticky {
		if hadPrev && !same(prev, owner) {
			c.ctx.logger.Warn("sticky id collision, overwriting registry entry", "component_id", id)
		}
		c.ctx.registry.Set(id, owner)
	} else {
		c.ctx.registry.Push(owner)
	}
	c.ctx.logger.Debug("view loaded", "component_id", id, "sticky", c.opts.Sticky)

	var errs []error
	for _, fn := range c.didLoad {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	if l, ok := c.owner.(ViewDidLoader); ok {
		if err := l.ViewDidLoad(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		c.rollback(prev, hadPrev)
		return fmt.Errorf("craft: view did load %s: %w", id, err)
	}
	return nil
}

// rollback undoes a load whose ViewDidLoad hooks failed: the registry
// entry is restored, the host released and the component is unloaded
// again, so LoadView can be retried.
func (c *Component) rollback(prev Loadable, hadPrev bool) {
	if hadPrev {
		c.ctx.registry.Set(c.id, prev)
	} else {
		c.ctx.registry.Del(c.id)
	}
	c.host.Release()
	c.ctx.logger.Debug("view load rolled back", "component_id", c.id)

	c.host = nil
	c.id = ""
	c.state = unloaded
	for _, fn := range c.unloaded {
		fn()
	}
}

// UnloadView deregisters the component and releases its host. The id is
// deleted from the registry unconditionally, even if a sticky sibling
// overwrote the entry.
func (c *Component) UnloadView() error {
	if c.state != loaded {
		return fmt.Errorf("craft: unload %s: %w", c.id, ErrNotLoaded)
	}
	c.ctx.registry.Del(c.id)
	c.host.Release()
	c.host = nil
	c.state = disposed
	c.ctx.logger.Debug("view unloaded", "component_id", c.id)

	for _, fn := range c.unloaded {
		fn()
	}
	return nil
}

// Host returns the rendering host.
func (c *Component) Host() (platform.Host, error) {
	if err := c.requireLoaded("host"); err != nil {
		return nil, err
	}
	return c.host, nil
}

// ContentRoot returns the element children are appended to.
func (c *Component) ContentRoot() (platform.Element, error) {
	if err := c.requireLoaded("content root"); err != nil {
		return nil, err
	}
	return c.host.ContentRoot(), nil
}

// Element finds an element by id inside the component's host.
func (c *Component) Element(id string) (platform.Element, error) {
	if err := c.requireLoaded("lookup"); err != nil {
		return nil, err
	}
	el, ok := c.host.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("craft: lookup %s in %s: %w", id, c.id, ErrElementNotFound)
	}
	return el, nil
}

// HostStyle returns an inline style property of the host.
func (c *Component) HostStyle(prop string) (string, error) {
	if err := c.requireLoaded("style"); err != nil {
		return "", err
	}
	return c.host.Style(prop), nil
}

// HTML returns the serialized host, or "" when not loaded.
func (c *Component) HTML() string {
	if c.state != loaded {
		return ""
	}
	return c.host.OuterHTML()
}

func (c *Component) requireLoaded(op string) error {
	switch c.state {
	case loaded:
		return nil
	case disposed:
		return fmt.Errorf("craft: %s %s: %w", op, c.id, ErrDisposed)
	default:
		return fmt.Errorf("craft: %s %s: %w", op, c.Name(), ErrNotLoaded)
	}
}

// SafeName maps a qualified name to an id-safe name: path separators and
// dots become underscores.
func SafeName(name string) string {
	return strings.NewReplacer("/", "_", ".", "_").Replace(name)
}

func same(a, b Loadable) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == nil || ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func typeName(v any) string {
	if v == nil {
		return ""
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func renderMarkup(tmpl func(id string) templ.Component, id string) (string, error) {
	if tmpl == nil {
		return "", nil
	}
	comp := tmpl(id)
	if comp == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := comp.Render(context.Background(), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
