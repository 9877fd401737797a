package craft

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pthm/craft/lib/device"
	"github.com/pthm/craft/lib/encoding"
	"github.com/pthm/craft/lib/gesture"
	"github.com/pthm/craft/lib/keyboard"
	"github.com/pthm/craft/lib/notify"
	"github.com/pthm/craft/lib/platform"
	"github.com/pthm/craft/lib/transition"
)

// Context holds everything one application instance shares: the
// application, the platform, the registry, the router, the root anchor and
// the root view controller, plus the notification center, keyboard
// manager, animator and history state codec.
//
// There are no package-level singletons; every component is created with
// the context it belongs to, and tests build as many isolated contexts as
// they need.
type Context struct {
	app         App
	platform    platform.Platform
	registry    *Registry
	router      Router
	rootElement platform.Element
	root        RootController
	defaults    Defaults
	logger      *slog.Logger

	codec         *encoding.Codec
	notifications *notify.Center
	keyboard      *keyboard.Manager
	animator      *transition.Animator

	removePopstate func()
	removeClick    func()
}

type settings struct {
	platform platform.Platform
	logger   *slog.Logger
	defaults *Defaults
	registry *Registry
}

// Option configures a Context.
type Option func(*settings)

// WithPlatform sets the platform the context drives. Required.
func WithPlatform(p platform.Platform) Option {
	return func(s *settings) { s.platform = p }
}

// WithLogger sets the logger. The default writes text to stderr at the
// configured log level.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithDefaults replaces the stock settings.
func WithDefaults(d Defaults) Option {
	return func(s *settings) { s.defaults = &d }
}

// WithRegistry sets the component registry.
func WithRegistry(reg *Registry) Option {
	return func(s *settings) { s.registry = reg }
}

// NewContext creates a context with the router named by the settings and
// no application. Boot is the usual entry point; NewContext serves tests
// and hosts that drive the tree without an application descriptor.
func NewContext(opts ...Option) (*Context, error) {
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}
	if s.platform == nil {
		return nil, ErrNoPlatform
	}

	d := NewDefaults()
	if s.defaults != nil {
		d = *s.defaults
	}
	logger := s.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: ParseLevel(d.LogLevel)}))
	}
	registry := s.registry
	if registry == nil {
		registry = NewRegistry()
	}

	key := []byte(d.StateKey)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("craft: generate state key: %w", err)
		}
	}
	codec, err := encoding.NewCodec(key)
	if err != nil {
		return nil, fmt.Errorf("craft: state codec: %w", err)
	}

	c := &Context{
		platform:      s.platform,
		registry:      registry,
		defaults:      d,
		logger:        logger,
		codec:         codec,
		notifications: notify.NewCenter(notify.WithClock(s.platform.Now)),
		keyboard:      keyboard.NewManager(),
		animator: transition.NewAnimator(s.platform, transition.Config{
			Duration:       d.Transition.Duration(),
			Ease:           d.Transition.Ease,
			FallbackMargin: d.Transition.FallbackMargin(),
		}),
	}

	router, err := NewRouter(c, d.Router)
	if err != nil {
		return nil, err
	}
	c.router = router
	return c, nil
}

// App returns the application descriptor.
func (c *Context) App() App { return c.app }

// SetApp sets the application descriptor.
func (c *Context) SetApp(app App) { c.app = app }

// Router returns the bound router.
func (c *Context) Router() Router { return c.router }

// SetRouter binds r. The router cannot change once the root view
// controller has been brought up.
func (c *Context) SetRouter(r Router) error {
	if c.root != nil && c.root.rootNode().broughtUp {
		return fmt.Errorf("craft: set router: %w", ErrAlreadyBroughtUp)
	}
	c.router = r
	return nil
}

// RootElement returns the anchor the root view controller is mounted in.
func (c *Context) RootElement() platform.Element { return c.rootElement }

// SetRootElement sets the anchor. It must be called before
// SetRootViewController to take effect.
func (c *Context) SetRootElement(el platform.Element) { c.rootElement = el }

// RootViewController returns the bound root, or nil.
func (c *Context) RootViewController() RootController { return c.root }

// SetRootViewController binds root: it loads root if needed, mounts its
// host into the root element and routes every later popstate to it. When
// no root element was set, the element with id Defaults.RootElementID is
// used. Popstate events arriving before Bringup are dropped; Bringup reads
// the location they left behind. Clicks on anchors carrying LinkAttr inside
// the root element are default-prevented and routed through Navigate.
//
// A context holds one root for its lifetime: binding the bound root again
// is a no-op, binding another fails with ErrRootAlreadyBound.
func (c *Context) SetRootViewController(root RootController) error {
	if root == nil {
		return fmt.Errorf("craft: set root view controller: %w", ErrNoRootViewController)
	}
	if c.root != nil {
		if c.root.rootNode() == root.rootNode() {
			return nil
		}
		return fmt.Errorf("craft: set root view controller %s: %w", root.rootNode().id, ErrRootAlreadyBound)
	}
	if c.rootElement == nil {
		el, ok := c.platform.Document().GetElementByID(c.defaults.RootElementID)
		if !ok {
			return fmt.Errorf("craft: root element #%s: %w", c.defaults.RootElementID, ErrNoRootElement)
		}
		c.rootElement = el
	}

	if !root.IsLoaded() {
		if err := root.LoadView(); err != nil {
			return err
		}
	}
	node := root.rootNode()
	if err := c.rootElement.AppendChild(node.host); err != nil {
		return fmt.Errorf("craft: mount %s: %w", node.id, err)
	}

	c.root = root
	c.removePopstate = c.platform.AddEventListener(platform.EventPopState, func(ev *platform.Event) {
		if !node.broughtUp {
			c.logger.Debug("popstate before bringup dropped", "component_id", node.id)
			return
		}
		if err := root.DidReceivePopstate(ev, false); err != nil {
			c.logger.Error("popstate routing failed", "component_id", node.id, "error", err)
		}
	})
	c.removeClick = c.rootElement.AddEventListener(platform.EventClick, func(ev *platform.Event) {
		href, ok := linkTarget(ev.Target)
		if !ok || !node.broughtUp {
			return
		}
		ev.PreventDefault()
		if err := node.Navigate(href); err != nil {
			c.logger.Error("link navigation failed", "component_id", node.id, "href", href, "error", err)
		}
	})
	return nil
}

// linkTarget walks up from el to the nearest anchor carrying LinkAttr and
// returns its href.
func linkTarget(el platform.Element) (string, bool) {
	for el != nil {
		if a, ok := el.(interface{ Attr(string) string }); ok && a.Attr(LinkAttr) == "true" {
			return a.Attr("href"), true
		}
		parent, ok := el.Parent()
		if !ok {
			return "", false
		}
		el = parent
	}
	return "", false
}

// Platform returns the platform.
func (c *Context) Platform() platform.Platform { return c.platform }

// Registry returns the component registry.
func (c *Context) Registry() *Registry { return c.registry }

// Defaults returns the effective settings.
func (c *Context) Defaults() Defaults { return c.defaults }

// Logger returns the context logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

// StateCodec returns the history state codec.
func (c *Context) StateCodec() *StateCodec { return c.codec }

// Notifications returns the notification center.
func (c *Context) Notifications() *notify.Center { return c.notifications }

// Keyboard returns the key-up dispatch table. It is inactive until
// Keyboard().Activate(ctx.Platform()) is called.
func (c *Context) Keyboard() *keyboard.Manager { return c.keyboard }

// Animator returns the transition animator.
func (c *Context) Animator() *transition.Animator { return c.animator }

// Device returns a capability probe for the platform.
func (c *Context) Device() device.Probe { return device.New(c.platform) }

// EnableTap installs a tap recognizer on el that follows the device's
// input type.
func (c *Context) EnableTap(el platform.Element, fn gesture.Handler) *gesture.Tap {
	return gesture.EnableTap(el, c.Device().IsTouch(), fn)
}

// EnableSwipe installs a swipe recognizer on el. Zero thresholds in opts
// take the configured gesture defaults.
func (c *Context) EnableSwipe(el platform.Element, opts gesture.SwipeOptions) *gesture.Swipe {
	g := c.defaults.Gesture
	if opts.DiffThreshold <= 0 {
		opts.DiffThreshold = g.DiffThreshold
	}
	if opts.TimeThreshold <= 0 {
		opts.TimeThreshold = time.Duration(g.TimeThresholdMs) * time.Millisecond
	}
	if opts.MultiThreshold <= 0 {
		opts.MultiThreshold = time.Duration(g.MultiThresholdMs) * time.Millisecond
	}
	return gesture.EnableSwipe(el, opts)
}

// Close detaches the context from the platform: popstate stops reaching
// the root and the keyboard manager is deactivated.
func (c *Context) Close() {
	if c.removePopstate != nil {
		c.removePopstate()
		c.removePopstate = nil
	}
	if c.removeClick != nil {
		c.removeClick()
		c.removeClick = nil
	}
	c.keyboard.Deactivate()
}
