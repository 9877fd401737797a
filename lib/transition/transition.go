// Package transition applies declarative style transitions to elements.
//
// Animate writes a CSS transition for the requested properties, sets their
// target values and returns a Completion. The completion resolves on the
// element's first matching transitionend event or, if the platform never
// reports one, on a fallback timer armed for duration + delay + margin.
// Whichever fires first cancels the other.
package transition

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pthm/craft/lib/platform"
)

// Defaults used when Options leave a field zero.
const (
	DefaultDuration       = 150 * time.Millisecond
	DefaultEase           = "ease-in"
	DefaultFallbackMargin = 50 * time.Millisecond
)

var (
	// ErrCanceled is reported by a completion stopped with Cancel.
	ErrCanceled = errors.New("transition: canceled")
	// ErrNoElement is reported when Animate is given a nil element.
	ErrNoElement = errors.New("transition: no element")
)

// Scheduler arms fallback timers.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) platform.Timer
}

// Options describe one transition.
type Options struct {
	// Properties maps style properties to their target values.
	Properties map[string]string
	Duration   time.Duration
	Delay      time.Duration
	Ease       string
}

// Config holds animator-wide defaults.
type Config struct {
	Duration       time.Duration
	Ease           string
	FallbackMargin time.Duration
}

// DefaultConfig returns the stock animator defaults.
func DefaultConfig() Config {
	return Config{
		Duration:       DefaultDuration,
		Ease:           DefaultEase,
		FallbackMargin: DefaultFallbackMargin,
	}
}

// Animator runs transitions on one platform.
type Animator struct {
	sched Scheduler
	cfg   Config
}

// NewAnimator creates an animator. Zero fields in cfg take the defaults.
func NewAnimator(sched Scheduler, cfg Config) *Animator {
	def := DefaultConfig()
	if cfg.Duration <= 0 {
		cfg.Duration = def.Duration
	}
	if cfg.Ease == "" {
		cfg.Ease = def.Ease
	}
	if cfg.FallbackMargin <= 0 {
		cfg.FallbackMargin = def.FallbackMargin
	}
	return &Animator{sched: sched, cfg: cfg}
}

// Config returns the effective defaults.
func (a *Animator) Config() Config { return a.cfg }

// Animate starts a transition on el.
func (a *Animator) Animate(el platform.Element, opts Options) *Completion {
	c := newCompletion()
	if el == nil {
		c.resolve(ErrNoElement)
		return c
	}

	duration := opts.Duration
	if duration <= 0 {
		duration = a.cfg.Duration
	}
	ease := opts.Ease
	if ease == "" {
		ease = a.cfg.Ease
	}
	delay := opts.Delay
	if delay < 0 {
		delay = 0
	}

	keys := make([]string, 0, len(opts.Properties))
	for k := range opts.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s %dms %s %dms", k, duration.Milliseconds(), ease, delay.Milliseconds())
	}
	el.SetStyle("transition", strings.Join(parts, ", "))

	var removeListener func()
	var timer platform.Timer
	finish := func(err error) {
		if c.settled() {
			return
		}
		if timer != nil {
			timer.Stop()
		}
		if removeListener != nil {
			removeListener()
		}
		el.SetStyle("transition", "")
		c.resolve(err)
	}
	c.cancel = func() { finish(ErrCanceled) }

	removeListener = el.AddEventListener(platform.EventTransitionEnd, func(ev *platform.Event) {
		if ev.Property != "" {
			if _, ok := opts.Properties[ev.Property]; !ok {
				return
			}
		}
		finish(nil)
	})
	timer = a.sched.AfterFunc(duration+delay+a.cfg.FallbackMargin, func() { finish(nil) })

	for _, k := range keys {
		el.SetStyle(k, opts.Properties[k])
	}
	return c
}

// Completion is the single result of a transition.
type Completion struct {
	done      chan struct{}
	err       error
	callbacks []func(error)
	cancel    func()
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// Resolved returns a completion that has already finished with err.
func Resolved(err error) *Completion {
	c := newCompletion()
	c.resolve(err)
	return c
}

// All returns a completion that resolves once every c has, with the first
// error any of them reported. Canceling it cancels the pending ones.
func All(cs ...*Completion) *Completion {
	out := newCompletion()
	remaining := len(cs)
	if remaining == 0 {
		out.resolve(nil)
		return out
	}
	out.cancel = func() {
		for _, c := range cs {
			c.Cancel()
		}
	}
	var first error
	for _, c := range cs {
		c.OnDone(func(err error) {
			if err != nil && first == nil {
				first = err
			}
			remaining--
			if remaining == 0 {
				out.resolve(first)
			}
		})
	}
	return out
}

// Done is closed once the transition has finished or was canceled.
func (c *Completion) Done() <-chan struct{} { return c.done }

// Err returns nil while pending or after a normal finish, ErrCanceled after
// Cancel, or the error the transition could not start with.
func (c *Completion) Err() error { return c.err }

// Cancel stops a pending transition. It reports whether the transition was
// still pending.
func (c *Completion) Cancel() bool {
	if c.settled() || c.cancel == nil {
		return false
	}
	c.cancel()
	return true
}

// OnDone registers fn to run when the completion resolves. If it already
// has, fn runs immediately.
func (c *Completion) OnDone(fn func(err error)) {
	if c.settled() {
		fn(c.err)
		return
	}
	c.callbacks = append(c.callbacks, fn)
}

func (c *Completion) settled() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Completion) resolve(err error) {
	if c.settled() {
		return
	}
	c.err = err
	close(c.done)
	cbs := c.callbacks
	c.callbacks = nil
	for _, fn := range cbs {
		fn(err)
	}
}
