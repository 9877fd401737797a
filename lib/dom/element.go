package dom

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pthm/craft/lib/platform"
)

var (
	// ErrForeignElement is returned when an element from another
	// implementation or window is passed in.
	ErrForeignElement = errors.New("dom: element does not belong to this window")
	// ErrNotChild is returned by RemoveChild for a non-child.
	ErrNotChild = errors.New("dom: node is not a child of this element")
	// ErrHierarchy is returned when an append would create a cycle.
	ErrHierarchy = errors.New("dom: append would create a cycle")
)

// Element wraps an html.Node owned by a Window.
type Element struct {
	w         *Window
	n         *html.Node
	styles    map[string]string
	listeners listenerSet
}

var _ platform.Element = (*Element)(nil)

func (e *Element) node() *html.Node { return e.n }

// Node exposes the underlying html node.
func (e *Element) Node() *html.Node { return e.n }

// ID returns the id attribute.
func (e *Element) ID() string {
	return attr(e.n, "id")
}

// Attr returns the named attribute.
func (e *Element) Attr(key string) string {
	return attr(e.n, key)
}

// SetAttr sets the named attribute.
func (e *Element) SetAttr(key, val string) {
	setAttr(e.n, key, val)
}

// AppendChild moves child to the end of e's children.
func (e *Element) AppendChild(child platform.Element) error {
	c, err := e.w.own(child)
	if err != nil {
		return err
	}
	for p := e.n; p != nil; p = p.Parent {
		if p == c {
			return ErrHierarchy
		}
	}
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	e.n.AppendChild(c)
	return nil
}

// RemoveChild detaches child from e.
func (e *Element) RemoveChild(child platform.Element) error {
	c, err := e.w.own(child)
	if err != nil {
		return err
	}
	if c.Parent != e.n {
		return ErrNotChild
	}
	e.n.RemoveChild(c)
	return nil
}

// Parent returns the parent element, if any.
func (e *Element) Parent() (platform.Element, bool) {
	if e.n.Parent == nil || e.n.Parent.Type != html.ElementNode {
		return nil, false
	}
	return e.w.wrap(e.n.Parent), true
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other platform.Element) bool {
	o, err := e.w.own(other)
	if err != nil {
		return false
	}
	for p := o; p != nil; p = p.Parent {
		if p == e.n {
			return true
		}
	}
	return false
}

// Children returns the element children in order.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.w.wrap(c))
		}
	}
	return out
}

// SetStyle sets an inline style property. An empty value removes it.
func (e *Element) SetStyle(prop, value string) {
	e.loadStyles()
	if value == "" {
		delete(e.styles, prop)
	} else {
		e.styles[prop] = value
	}
	e.syncStyleAttr()
}

// Style returns an inline style property.
func (e *Element) Style(prop string) string {
	e.loadStyles()
	return e.styles[prop]
}

func (e *Element) loadStyles() {
	if e.styles == nil {
		e.styles = parseStyleAttr(attr(e.n, "style"))
	}
}

func (e *Element) syncStyleAttr() {
	if len(e.styles) == 0 {
		removeAttr(e.n, "style")
		return
	}
	keys := make([]string, 0, len(e.styles))
	for k := range e.styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.styles[k]
	}
	setAttr(e.n, "style", strings.Join(parts, "; "))
}

// SetInnerHTML replaces the children of e with parsed markup.
func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := parseFragment(markup, e.n)
	if err != nil {
		return fmt.Errorf("dom: parse markup: %w", err)
	}
	e.w.clearChildren(e.n)
	for _, n := range nodes {
		e.n.AppendChild(n)
	}
	return nil
}

// AddEventListener subscribes fn to events of typ reaching e.
func (e *Element) AddEventListener(typ string, fn platform.Listener) func() {
	return e.listeners.add(typ, fn)
}

// ListenerCount returns the number of listeners for typ on e.
func (e *Element) ListenerCount(typ string) int {
	return e.listeners.count(typ)
}

// DispatchEvent delivers ev to e and bubbles it through the ancestors,
// crossing isolated roots into their hosts.
func (e *Element) DispatchEvent(ev *platform.Event) {
	if ev.Target == nil {
		ev.Target = e
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = e.w.clock.Now()
	}
	for n := e.n; n != nil; n = n.Parent {
		if el, ok := e.w.nodes[n]; ok {
			el.listeners.fire(ev)
		}
		if ev.PropagationStopped() {
			return
		}
	}
}

// OuterHTML renders e and its subtree.
func (e *Element) OuterHTML() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, e.n); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML renders the children of e.
func (e *Element) InnerHTML() string {
	var buf bytes.Buffer
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}

// TextContent concatenates the text nodes of the subtree.
func (e *Element) TextContent() string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.n)
	return sb.String()
}

func parseFragment(markup string, context *html.Node) ([]*html.Node, error) {
	ctx := context
	if ctx == nil || ctx.Type != html.ElementNode || ctx.DataAtom == 0 || ctx.DataAtom == atom.Template {
		ctx = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	}
	return html.ParseFragment(strings.NewReader(markup), ctx)
}

func parseStyleAttr(s string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
