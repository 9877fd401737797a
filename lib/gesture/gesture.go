// Package gesture recognizes taps and swipes from platform pointer events.
package gesture

import (
	"math"
	"time"

	"github.com/pthm/craft/lib/platform"
)

// Swipe defaults.
const (
	DefaultDiffThreshold  = 50
	DefaultTimeThreshold  = 40 * time.Millisecond
	DefaultMultiThreshold = 60 * time.Millisecond
)

// Handler receives the event that completed a gesture.
type Handler func(ev *platform.Event)

// Tap calls a handler when a press is released on its target.
type Tap struct {
	remove func()
}

// EnableTap installs a tap recognizer on target. Touch devices listen for
// touchend, others for mouseup.
func EnableTap(target platform.Element, touch bool, fn Handler) *Tap {
	typ := platform.EventMouseUp
	if touch {
		typ = platform.EventTouchEnd
	}
	remove := target.AddEventListener(typ, func(ev *platform.Event) {
		if fn != nil {
			fn(ev)
		}
	})
	return &Tap{remove: remove}
}

// Disable removes the recognizer.
func (t *Tap) Disable() {
	if t.remove != nil {
		t.remove()
		t.remove = nil
	}
}

// SwipeOptions configure a swipe recognizer. Zero thresholds take the
// defaults.
type SwipeOptions struct {
	Left, Right, Up, Down Handler

	// DiffThreshold is the minimum |dx|+|dy| in pixels.
	DiffThreshold float64
	// TimeThreshold is the minimum time since touchstart.
	TimeThreshold time.Duration
	// MultiThreshold is the minimum time since the last multi-touch move.
	MultiThreshold time.Duration
}

// Swipe tracks one touch sequence at a time and reports its direction.
type Swipe struct {
	opts    SwipeOptions
	removes []func()

	tracking       bool
	xDown, yDown   float64
	tDown          time.Time
	lastMultiTouch time.Time
}

// EnableSwipe installs a swipe recognizer on target.
func EnableSwipe(target platform.Element, opts SwipeOptions) *Swipe {
	if opts.DiffThreshold <= 0 {
		opts.DiffThreshold = DefaultDiffThreshold
	}
	if opts.TimeThreshold <= 0 {
		opts.TimeThreshold = DefaultTimeThreshold
	}
	if opts.MultiThreshold <= 0 {
		opts.MultiThreshold = DefaultMultiThreshold
	}
	s := &Swipe{opts: opts}
	s.removes = []func(){
		target.AddEventListener(platform.EventTouchStart, s.touchStart),
		target.AddEventListener(platform.EventTouchMove, s.touchMove),
	}
	return s
}

// Disable removes the recognizer.
func (s *Swipe) Disable() {
	for _, r := range s.removes {
		r()
	}
	s.removes = nil
	s.tracking = false
}

func (s *Swipe) touchStart(ev *platform.Event) {
	if len(ev.Touches) == 0 {
		return
	}
	s.tracking = true
	s.xDown = ev.Touches[0].ClientX
	s.yDown = ev.Touches[0].ClientY
	s.tDown = ev.Timestamp
}

func (s *Swipe) touchMove(ev *platform.Event) {
	if !s.tracking || len(ev.Touches) == 0 {
		return
	}
	if len(ev.Touches) > 1 {
		s.lastMultiTouch = ev.Timestamp
		return
	}

	xDiff := s.xDown - ev.Touches[0].ClientX
	yDiff := s.yDown - ev.Touches[0].ClientY

	if math.Abs(xDiff)+math.Abs(yDiff) < s.opts.DiffThreshold {
		return
	}
	if ev.Timestamp.Sub(s.tDown) < s.opts.TimeThreshold {
		return
	}
	if !s.lastMultiTouch.IsZero() && ev.Timestamp.Sub(s.lastMultiTouch) < s.opts.MultiThreshold {
		return
	}

	var h Handler
	switch {
	case math.Abs(xDiff) > math.Abs(yDiff) && xDiff > 0:
		h = s.opts.Left
	case math.Abs(xDiff) > math.Abs(yDiff):
		h = s.opts.Right
	case yDiff > 0:
		h = s.opts.Up
	default:
		h = s.opts.Down
	}
	if h != nil {
		h(ev)
	}
	s.tracking = false
}
