package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pthm/craft/lib/dom"
	"github.com/pthm/craft/lib/platform"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func touch(typ string, at time.Duration, points ...platform.Touch) *platform.Event {
	ev := platform.NewEvent(typ, t0.Add(at))
	ev.Touches = points
	return ev
}

func pt(x, y float64) platform.Touch { return platform.Touch{ClientX: x, ClientY: y} }

func newHost(t *testing.T) platform.Host {
	t.Helper()
	h, err := dom.NewWindow().Document().CreateHost("Pad_0")
	require.NoError(t, err)
	return h
}

func TestEnableTap(t *testing.T) {
	tests := []struct {
		name  string
		touch bool
		fire  string
		want  int
	}{
		{"mouse", false, platform.EventMouseUp, 1},
		{"mouse ignores touchend", false, platform.EventTouchEnd, 0},
		{"touch", true, platform.EventTouchEnd, 1},
		{"touch ignores mouseup", true, platform.EventMouseUp, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHost(t)
			taps := 0
			EnableTap(h, tt.touch, func(*platform.Event) { taps++ })

			h.DispatchEvent(platform.NewEvent(tt.fire, t0))
			require.Equal(t, tt.want, taps)
		})
	}
}

func TestTap_Disable(t *testing.T) {
	h := newHost(t)
	taps := 0
	tap := EnableTap(h, false, func(*platform.Event) { taps++ })
	tap.Disable()
	tap.Disable()

	h.DispatchEvent(platform.NewEvent(platform.EventMouseUp, t0))
	require.Zero(t, taps)
}

func TestSwipe_Directions(t *testing.T) {
	tests := []struct {
		name string
		to   platform.Touch
		want string
	}{
		{"left", pt(40, 100), "left"},
		{"right", pt(160, 100), "right"},
		{"up", pt(100, 40), "up"},
		{"down", pt(100, 160), "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHost(t)
			var got []string
			rec := func(dir string) Handler {
				return func(*platform.Event) { got = append(got, dir) }
			}
			EnableSwipe(h, SwipeOptions{Left: rec("left"), Right: rec("right"), Up: rec("up"), Down: rec("down")})

			h.DispatchEvent(touch(platform.EventTouchStart, 0, pt(100, 100)))
			h.DispatchEvent(touch(platform.EventTouchMove, 50*time.Millisecond, tt.to))
			h.DispatchEvent(touch(platform.EventTouchMove, 80*time.Millisecond, tt.to))

			require.Equal(t, []string{tt.want}, got, "one swipe per touch sequence")
		})
	}
}

func TestSwipe_Thresholds(t *testing.T) {
	tests := []struct {
		name   string
		events []*platform.Event
		want   int
	}{
		{
			name: "too short",
			events: []*platform.Event{
				touch(platform.EventTouchStart, 0, pt(100, 100)),
				touch(platform.EventTouchMove, 100*time.Millisecond, pt(80, 80)),
			},
			want: 0,
		},
		{
			name: "too fast",
			events: []*platform.Event{
				touch(platform.EventTouchStart, 0, pt(100, 100)),
				touch(platform.EventTouchMove, 39*time.Millisecond, pt(0, 100)),
			},
			want: 0,
		},
		{
			name: "after multi-touch",
			events: []*platform.Event{
				touch(platform.EventTouchStart, 0, pt(100, 100)),
				touch(platform.EventTouchMove, 50*time.Millisecond, pt(90, 100), pt(10, 10)),
				touch(platform.EventTouchMove, 100*time.Millisecond, pt(0, 100)),
			},
			want: 0,
		},
		{
			name: "multi-touch cooled down",
			events: []*platform.Event{
				touch(platform.EventTouchStart, 0, pt(100, 100)),
				touch(platform.EventTouchMove, 50*time.Millisecond, pt(90, 100), pt(10, 10)),
				touch(platform.EventTouchMove, 110*time.Millisecond, pt(0, 100)),
			},
			want: 1,
		},
		{
			name: "move without start",
			events: []*platform.Event{
				touch(platform.EventTouchMove, 100*time.Millisecond, pt(0, 100)),
			},
			want: 0,
		},
		{
			name: "start at origin",
			events: []*platform.Event{
				touch(platform.EventTouchStart, 0, pt(0, 0)),
				touch(platform.EventTouchMove, 100*time.Millisecond, pt(100, 0)),
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHost(t)
			swipes := 0
			count := func(*platform.Event) { swipes++ }
			EnableSwipe(h, SwipeOptions{Left: count, Right: count, Up: count, Down: count})

			for _, ev := range tt.events {
				h.DispatchEvent(ev)
			}
			require.Equal(t, tt.want, swipes)
		})
	}
}

func TestSwipe_CustomThreshold(t *testing.T) {
	h := newHost(t)
	swipes := 0
	EnableSwipe(h, SwipeOptions{
		Left:          func(*platform.Event) { swipes++ },
		DiffThreshold: 10,
		TimeThreshold: time.Millisecond,
	})

	h.DispatchEvent(touch(platform.EventTouchStart, 0, pt(100, 100)))
	h.DispatchEvent(touch(platform.EventTouchMove, 5*time.Millisecond, pt(85, 100)))
	require.Equal(t, 1, swipes)
}

func TestSwipe_Disable(t *testing.T) {
	h := newHost(t)
	s := EnableSwipe(h, SwipeOptions{})
	require.Equal(t, 1, h.(*dom.Host).ListenerCount(platform.EventTouchStart))

	s.Disable()
	require.Equal(t, 0, h.(*dom.Host).ListenerCount(platform.EventTouchStart))
	require.Equal(t, 0, h.(*dom.Host).ListenerCount(platform.EventTouchMove))
}
