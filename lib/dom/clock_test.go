package dom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClock_FiresInDeadlineOrder(t *testing.T) {
	c := NewClock(time.Unix(0, 0))
	var order []string

	c.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })

	c.Advance(20 * time.Millisecond)
	require.Equal(t, []string{"a", "b"}, order)
	require.Equal(t, 1, c.Pending())

	c.Advance(10 * time.Millisecond)
	require.Equal(t, []string{"a", "b", "c"}, order)
	require.Equal(t, 0, c.Pending())
}

func TestClock_Stop(t *testing.T) {
	c := NewClock(time.Unix(0, 0))
	fired := false
	tm := c.AfterFunc(time.Second, func() { fired = true })

	require.True(t, tm.Stop())
	require.False(t, tm.Stop())
	c.Advance(2 * time.Second)
	require.False(t, fired)
}

func TestClock_StopAfterFire(t *testing.T) {
	c := NewClock(time.Unix(0, 0))
	tm := c.AfterFunc(time.Millisecond, func() {})
	c.Advance(time.Millisecond)
	require.False(t, tm.Stop())
}

func TestClock_NestedScheduling(t *testing.T) {
	start := time.Unix(0, 0)
	c := NewClock(start)
	var at []time.Duration

	c.AfterFunc(10*time.Millisecond, func() {
		at = append(at, c.Now().Sub(start))
		c.AfterFunc(5*time.Millisecond, func() {
			at = append(at, c.Now().Sub(start))
		})
	})

	c.Advance(50 * time.Millisecond)
	require.Equal(t, []time.Duration{10 * time.Millisecond, 15 * time.Millisecond}, at)
	require.Equal(t, 50*time.Millisecond, c.Now().Sub(start))
}
