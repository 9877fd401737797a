// Package dom is an in-memory implementation of the craft platform.
//
// A Window holds an HTML document parsed with golang.org/x/net/html, a
// session history, window-level listeners and a manual clock. Everything is
// delivered synchronously on the caller's goroutine: navigating fires
// popstate before returning, and timers fire only from Advance.
//
//	w := dom.NewWindow(dom.WithURL("https://app.test/#/tag/42"))
//	ctx, err := craft.Boot(app, craft.WithPlatform(w))
//	w.Back()                      // popstate
//	w.Advance(200 * time.Millisecond) // transitions settle
//	fmt.Println(w.DocumentHTML())
package dom

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/pthm/craft/lib/platform"
)

// DefaultDocument is the document a Window starts with.
const DefaultDocument = `<!DOCTYPE html><html><head></head><body><div id="CraftRoot"></div></body></html>`

// DefaultURL is the location a Window starts at.
const DefaultURL = "http://localhost/"

type historyEntry struct {
	url   *url.URL
	state string
	title string
}

// Window is an in-memory browser window.
type Window struct {
	doc       *html.Node
	nodes     map[*html.Node]*Element
	entries   []historyEntry
	index     int
	listeners listenerSet
	clock     *Clock
	device    platform.DeviceInfo
}

var _ platform.Platform = (*Window)(nil)

type config struct {
	url      string
	document string
	start    time.Time
	device   platform.DeviceInfo
}

// Option configures a Window.
type Option func(*config)

// WithURL sets the initial location.
func WithURL(raw string) Option {
	return func(c *config) { c.url = raw }
}

// WithDocument sets the initial document markup.
func WithDocument(markup string) Option {
	return func(c *config) { c.document = markup }
}

// WithStartTime sets the manual clock's initial reading.
func WithStartTime(t time.Time) Option {
	return func(c *config) { c.start = t }
}

// WithDevice sets the reported device capabilities.
func WithDevice(info platform.DeviceInfo) Option {
	return func(c *config) { c.device = info }
}

// NewWindow creates a window. It panics if the initial URL or document
// cannot be parsed, since both are programmer-supplied constants.
func NewWindow(opts ...Option) *Window {
	c := &config{
		url:      DefaultURL,
		document: DefaultDocument,
		start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		device: platform.DeviceInfo{
			UserAgent:    "craft-dom",
			PixelRatio:   1,
			ScreenWidth:  390,
			ScreenHeight: 844,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	u, err := url.Parse(c.url)
	if err != nil {
		panic(fmt.Sprintf("dom: invalid initial url %q: %v", c.url, err))
	}
	doc, err := html.Parse(strings.NewReader(c.document))
	if err != nil {
		panic(fmt.Sprintf("dom: invalid document: %v", err))
	}

	return &Window{
		doc:     doc,
		nodes:   make(map[*html.Node]*Element),
		entries: []historyEntry{{url: u}},
		clock:   NewClock(c.start),
		device:  c.device,
	}
}

// Document returns the document view of the window.
func (w *Window) Document() platform.Document { return document{w} }

// Location returns the current location.
func (w *Window) Location() platform.Location { return location{w.current().url} }

// History returns the history primitive.
func (w *Window) History() platform.History { return history{w} }

// Device returns the configured device capabilities.
func (w *Window) Device() platform.DeviceInfo { return w.device }

// Now returns the manual clock reading.
func (w *Window) Now() time.Time { return w.clock.Now() }

// AfterFunc schedules fn on the manual clock.
func (w *Window) AfterFunc(d time.Duration, fn func()) platform.Timer {
	return w.clock.AfterFunc(d, fn)
}

// Advance moves the manual clock forward, firing due timers.
func (w *Window) Advance(d time.Duration) { w.clock.Advance(d) }

// Clock exposes the manual clock.
func (w *Window) Clock() *Clock { return w.clock }

// AddEventListener subscribes to window-level events.
func (w *Window) AddEventListener(typ string, fn platform.Listener) func() {
	return w.listeners.add(typ, fn)
}

// ListenerCount returns the number of window listeners for typ.
func (w *Window) ListenerCount(typ string) int {
	return w.listeners.count(typ)
}

// Dispatch delivers ev to window listeners.
func (w *Window) Dispatch(ev *platform.Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = w.clock.Now()
	}
	w.listeners.fire(ev)
}

// KeyUp dispatches a keyup event with the given key code.
func (w *Window) KeyUp(code int) {
	ev := platform.NewEvent(platform.EventKeyUp, w.clock.Now())
	ev.KeyCode = code
	w.Dispatch(ev)
}

// SetHash navigates to a new fragment, pushing a history entry and firing
// popstate like a browser does for fragment navigation.
func (w *Window) SetHash(hash string) {
	u := *w.current().url
	u.Fragment = strings.TrimPrefix(hash, "#")
	u.RawFragment = ""
	w.push(historyEntry{url: &u})
	w.popstate()
}

// Go moves delta entries through the history and fires popstate. Moves
// outside the history are ignored.
func (w *Window) Go(delta int) {
	next := w.index + delta
	if delta == 0 || next < 0 || next >= len(w.entries) {
		return
	}
	w.index = next
	w.popstate()
}

// Back is Go(-1).
func (w *Window) Back() { w.Go(-1) }

// Forward is Go(1).
func (w *Window) Forward() { w.Go(1) }

// HistoryLength returns the number of session history entries.
func (w *Window) HistoryLength() int { return len(w.entries) }

// HistoryState returns the encoded state and title of the current entry.
func (w *Window) HistoryState() (state, title string) {
	e := w.current()
	return e.state, e.title
}

// Body returns the body element.
func (w *Window) Body() *Element {
	n := findNode(w.doc, func(n *html.Node) bool { return n.Data == "body" })
	if n == nil {
		return nil
	}
	return w.wrap(n)
}

// DocumentHTML renders the whole document.
func (w *Window) DocumentHTML() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, w.doc); err != nil {
		return ""
	}
	return buf.String()
}

func (w *Window) current() historyEntry {
	return w.entries[w.index]
}

func (w *Window) push(e historyEntry) {
	w.entries = append(w.entries[:w.index+1], e)
	w.index = len(w.entries) - 1
}

func (w *Window) popstate() {
	ev := platform.NewEvent(platform.EventPopState, w.clock.Now())
	ev.State = w.current().state
	w.listeners.fire(ev)
}

func (w *Window) resolve(raw string) (*url.URL, error) {
	cur := w.current().url
	if raw == "" {
		u := *cur
		return &u, nil
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("dom: invalid url %q: %w", raw, err)
	}
	u := cur.ResolveReference(ref)
	if u.Scheme != cur.Scheme || u.Host != cur.Host {
		return nil, fmt.Errorf("dom: url %q is not same-origin with %q", raw, cur.String())
	}
	return u, nil
}

// wrap returns the Element for n, creating it on first use so that
// listeners and styles stay attached to the node.
func (w *Window) wrap(n *html.Node) *Element {
	if el, ok := w.nodes[n]; ok {
		return el
	}
	el := &Element{w: w, n: n}
	w.nodes[n] = el
	return el
}

func (w *Window) own(el platform.Element) (*html.Node, error) {
	holder, ok := el.(interface{ node() *html.Node })
	if !ok {
		return nil, ErrForeignElement
	}
	n := holder.node()
	if got, ok := w.nodes[n]; !ok || got.w != w {
		return nil, ErrForeignElement
	}
	return n, nil
}

// clearChildren removes all children of n and forgets wrappers of the
// removed subtree, except host elements, which are owned by their
// components and may be re-attached elsewhere.
func (w *Window) clearChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		w.forget(c)
		c = next
	}
}

func (w *Window) forget(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == HostTag {
		return
	}
	delete(w.nodes, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.forget(c)
	}
}

type document struct{ w *Window }

func (d document) GetElementByID(id string) (platform.Element, bool) {
	n := findNode(d.w.doc, func(n *html.Node) bool { return attr(n, "id") == id })
	if n == nil {
		return nil, false
	}
	return d.w.wrap(n), true
}

func (d document) CreateHost(id string) (platform.Host, error) {
	return newHost(d.w, id)
}

type location struct{ u *url.URL }

func (l location) Href() string { return l.u.String() }

func (l location) Hash() string {
	f := l.u.EscapedFragment()
	if f == "" {
		return ""
	}
	return "#" + f
}

func (l location) Pathname() string {
	p := l.u.EscapedPath()
	if p == "" {
		return "/"
	}
	return p
}

type history struct{ w *Window }

func (h history) PushState(state, title, raw string) error {
	u, err := h.w.resolve(raw)
	if err != nil {
		return err
	}
	h.w.push(historyEntry{url: u, state: state, title: title})
	return nil
}

func (h history) ReplaceState(state, title, raw string) error {
	u, err := h.w.resolve(raw)
	if err != nil {
		return err
	}
	h.w.entries[h.w.index] = historyEntry{url: u, state: state, title: title}
	return nil
}
