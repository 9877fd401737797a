package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCenter_MatchesRegisteredPatternAgainstFiredName(t *testing.T) {
	tests := []struct {
		pattern string
		fired   string
		want    bool
	}{
		{"ContentTapped", "ContentTapped", true},
		{"Content*", "ContentTapped", true},
		{"*Tapped", "ContentTapped", true},
		{"*", "anything", true},
		{"Content*", "Modal", false},
		{"ContentTapped", "Content*", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.fired, func(t *testing.T) {
			c := NewCenter()
			hits := 0
			_, err := c.Listen(tt.pattern, func(Notification) { hits++ })
			require.NoError(t, err)

			delivered := c.Notify(tt.fired, nil)

			if tt.want {
				require.Equal(t, 1, hits)
				require.Equal(t, 1, delivered)
			} else {
				require.Zero(t, hits)
				require.Zero(t, delivered)
			}
		})
	}
}

func TestCenter_DeliversInSubscriptionOrder(t *testing.T) {
	c := NewCenter()
	var order []string
	_, _ = c.Listen("a", func(Notification) { order = append(order, "first") })
	_, _ = c.Listen("*", func(Notification) { order = append(order, "second") })
	_, _ = c.Listen("a", func(Notification) { order = append(order, "third") })

	c.Notify("a", nil)
	require.Equal(t, []string{"first", "second", "third"}, order)
}

func TestCenter_PayloadAndTimestamp(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := NewCenter(WithClock(func() time.Time { return at }))

	var got Notification
	_, _ = c.Listen("Tag*", func(n Notification) { got = n })
	c.Notify("TagSelected", 42)

	require.Equal(t, Notification{Name: "TagSelected", Payload: 42, Timestamp: at}, got)
}

func TestCenter_Once(t *testing.T) {
	c := NewCenter()
	hits := 0
	_, err := c.Once("ready", func(Notification) { hits++ })
	require.NoError(t, err)

	c.Notify("ready", nil)
	c.Notify("ready", nil)

	require.Equal(t, 1, hits)
	require.Equal(t, 0, c.Len())
}

func TestCenter_Remove(t *testing.T) {
	c := NewCenter()
	hits := 0
	id, _ := c.Listen("x", func(Notification) { hits++ })

	require.False(t, c.Remove("y", id), "pattern must match")
	require.True(t, c.Remove("x", id))
	require.False(t, c.Remove("x", id))

	c.Notify("x", nil)
	require.Zero(t, hits)
}

func TestCenter_SubscribeDuringNotify(t *testing.T) {
	c := NewCenter()
	late := 0
	_, _ = c.Listen("e", func(Notification) {
		_, _ = c.Listen("e", func(Notification) { late++ })
	})

	c.Notify("e", nil)
	require.Zero(t, late)

	c.Notify("e", nil)
	require.Equal(t, 1, late)
}

func TestCenter_RejectsBadPattern(t *testing.T) {
	c := NewCenter()
	_, err := c.Listen("[", func(Notification) {})
	require.Error(t, err)

	_, err = c.Listen("ok", nil)
	require.Error(t, err)
	require.Zero(t, c.Len())
}

func TestCenter_UniqueIDs(t *testing.T) {
	c := NewCenter()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := c.Listen("n", func(Notification) {})
		require.NoError(t, err)
		require.False(t, seen[id])
		seen[id] = true
	}
}
