package craft

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pthm/craft/lib/dom"
	"github.com/pthm/craft/lib/notify"
)

// TestResult holds the rendered output of a component for assertions.
type TestResult struct {
	ID   string
	HTML string
	// Events lists the notification names posted on the harness context,
	// in order.
	Events []string
}

// TestRender loads c if needed and returns its serialized host.
//
// Use this for unit tests of templates and load hooks:
//
//	result, err := craft.TestRender(badge)
//	if !result.HTMLContains("badge") {
//	    t.Fatal("missing badge markup")
//	}
func TestRender(c Loadable) (*TestResult, error) {
	if c == nil {
		return nil, fmt.Errorf("craft: test render: nil component")
	}
	if !c.IsLoaded() {
		if err := c.LoadView(); err != nil {
			return nil, err
		}
	}
	result := &TestResult{ID: c.ID()}
	if h, ok := c.(interface{ HTML() string }); ok {
		result.HTML = h.HTML()
	}
	return result, nil
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HTMLContainsAny checks if the HTML contains any of the given substrings.
func (r *TestResult) HTMLContainsAny(substrs ...string) bool {
	for _, s := range substrs {
		if strings.Contains(r.HTML, s) {
			return true
		}
	}
	return false
}

// HasEvent checks if a notification with the given name was posted.
func (r *TestResult) HasEvent(name string) bool {
	for _, e := range r.Events {
		if e == name {
			return true
		}
	}
	return false
}

// TestHarness is an isolated context on an in-memory window, logging at
// debug level into a buffer.
//
//	h, err := craft.NewTestHarness(craft.WithWindow(dom.WithURL("http://app.test/#/tag/1")))
//	ctx := h.Context
//	h.Window.Back()
type TestHarness struct {
	Window  *dom.Window
	Context *Context

	logs    *bytes.Buffer
	ctxOpts []Option

	mu     sync.Mutex
	events []string
	stop   func() bool
}

type harnessConfig struct {
	window  []dom.Option
	context []Option
}

// HarnessOption configures a TestHarness.
type HarnessOption func(*harnessConfig)

// WithWindow passes options to the in-memory window.
func WithWindow(opts ...dom.Option) HarnessOption {
	return func(c *harnessConfig) { c.window = append(c.window, opts...) }
}

// WithContextOptions passes options to the context. WithPlatform and
// WithLogger are set by the harness and take precedence.
func WithContextOptions(opts ...Option) HarnessOption {
	return func(c *harnessConfig) { c.context = append(c.context, opts...) }
}

// NewTestHarness creates a window and a context bound to it.
func NewTestHarness(opts ...HarnessOption) (*TestHarness, error) {
	cfg := &harnessConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	h := &TestHarness{
		Window: dom.NewWindow(cfg.window...),
		logs:   &bytes.Buffer{},
	}
	logger := slog.New(slog.NewTextHandler(h.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h.ctxOpts = append(append([]Option{}, cfg.context...), WithPlatform(h.Window), WithLogger(logger))

	ctx, err := NewContext(h.ctxOpts...)
	if err != nil {
		return nil, err
	}
	h.bind(ctx)
	return h, nil
}

// Boot boots app on the harness window, replacing the harness context.
func (h *TestHarness) Boot(app App) error {
	ctx, err := Boot(app, h.ctxOpts...)
	if ctx != nil {
		h.Context.Close()
		h.bind(ctx)
	}
	return err
}

// Render is TestRender with the notifications posted so far.
func (h *TestHarness) Render(c Loadable) (*TestResult, error) {
	result, err := TestRender(c)
	if err != nil {
		return nil, err
	}
	result.Events = h.Events()
	return result, nil
}

// Events returns the notification names posted on the harness context.
func (h *TestHarness) Events() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.events...)
}

// Logs returns everything logged so far.
func (h *TestHarness) Logs() string { return h.logs.String() }

// LogContains checks if the log output contains a substring.
func (h *TestHarness) LogContains(substr string) bool {
	return strings.Contains(h.logs.String(), substr)
}

// Close detaches the harness context.
func (h *TestHarness) Close() {
	if h.stop != nil {
		h.stop()
	}
	h.Context.Close()
}

func (h *TestHarness) bind(ctx *Context) {
	if h.stop != nil {
		h.stop()
	}
	h.Context = ctx
	center := ctx.Notifications()
	id, err := center.Listen("*", func(n notify.Notification) {
		h.mu.Lock()
		h.events = append(h.events, n.Name)
		h.mu.Unlock()
	})
	if err != nil {
		h.stop = nil
		return
	}
	h.stop = func() bool { return center.Remove("*", id) }
}

// RouteRecorder is a Routable that remembers every route it receives.
type RouteRecorder struct {
	mu     sync.Mutex
	routes []Route

	// Next, if set, is called after recording.
	Next func(Route) error
}

// ResolveRoutingRequest records route.
func (r *RouteRecorder) ResolveRoutingRequest(route Route) error {
	r.mu.Lock()
	r.routes = append(r.routes, route)
	next := r.Next
	r.mu.Unlock()
	if next != nil {
		return next(route)
	}
	return nil
}

// Routes returns the recorded routes in delivery order.
func (r *RouteRecorder) Routes() []Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Route(nil), r.routes...)
}

// Paths returns the recorded route paths in delivery order.
func (r *RouteRecorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	paths := make([]string, len(r.routes))
	for i, route := range r.routes {
		paths[i] = route.Path()
	}
	return paths
}
