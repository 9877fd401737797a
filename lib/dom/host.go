package dom

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pthm/craft/lib/platform"
)

// HostTag is the element name used for component hosts.
const HostTag = "craft-view"

// Host is an element with an isolated subtree. The subtree is rendered as
// a declarative shadow root (<template shadowrootmode="open">) so that
// serialized output can be attached by a browser as-is.
type Host struct {
	*Element
	shadow   *html.Node
	released bool
}

var _ platform.Host = (*Host)(nil)

func newHost(w *Window, id string) (*Host, error) {
	if id == "" {
		return nil, errors.New("dom: host id is empty")
	}
	n := &html.Node{
		Type: html.ElementNode,
		Data: HostTag,
		Attr: []html.Attribute{{Key: "id", Val: id}},
	}
	shadow := &html.Node{
		Type:     html.ElementNode,
		Data:     "template",
		DataAtom: atom.Template,
		Attr:     []html.Attribute{{Key: "shadowrootmode", Val: "open"}},
	}
	n.AppendChild(shadow)
	h := &Host{Element: &Element{w: w, n: n}, shadow: shadow}
	w.nodes[n] = h.Element
	return h, nil
}

// SetContent replaces the isolated subtree with a style block followed by
// the parsed markup.
func (h *Host) SetContent(style, markup string) error {
	nodes, err := parseFragment(markup, nil)
	if err != nil {
		return fmt.Errorf("dom: parse markup for %s: %w", h.ID(), err)
	}
	h.w.clearChildren(h.shadow)
	if style != "" {
		s := &html.Node{Type: html.ElementNode, Data: "style", DataAtom: atom.Style}
		s.AppendChild(&html.Node{Type: html.TextNode, Data: style})
		h.shadow.AppendChild(s)
	}
	for _, n := range nodes {
		h.shadow.AppendChild(n)
	}
	return nil
}

// ShadowRoot returns the isolated root element.
func (h *Host) ShadowRoot() *Element {
	return h.w.wrap(h.shadow)
}

// ContentRoot returns the first element with class "root" in the isolated
// subtree, or the isolated root itself.
func (h *Host) ContentRoot() platform.Element {
	if n := findNode(h.shadow, func(n *html.Node) bool { return hasClass(n, "root") }); n != nil {
		return h.w.wrap(n)
	}
	return h.w.wrap(h.shadow)
}

// Lookup finds an element by id inside the isolated subtree, without
// descending into nested hosts.
func (h *Host) Lookup(id string) (platform.Element, bool) {
	n := findNode(h.shadow, func(n *html.Node) bool { return attr(n, "id") == id })
	if n == nil {
		return nil, false
	}
	return h.w.wrap(n), true
}

// Release detaches the host, drops the listeners registered on it and
// forgets the wrappers of its isolated subtree. Nested hosts are left to
// their own Release.
func (h *Host) Release() {
	if h.released {
		return
	}
	h.released = true
	if p := h.n.Parent; p != nil {
		p.RemoveChild(h.n)
	}
	h.listeners.clear()
	delete(h.w.nodes, h.n)
	h.w.forget(h.shadow)
}

// Released reports whether Release was called.
func (h *Host) Released() bool {
	return h.released
}

func isShadowRoot(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Template && attr(n, "shadowrootmode") != ""
}

// findNode walks the children of root depth-first and returns the first
// element matching pred. Nested shadow roots are not entered.
func findNode(root *html.Node, pred func(*html.Node) bool) *html.Node {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if isShadowRoot(c) {
			continue
		}
		if pred(c) {
			return c
		}
		if found := findNode(c, pred); found != nil {
			return found
		}
	}
	return nil
}
