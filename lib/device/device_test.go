package device

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pthm/craft/lib/dom"
	"github.com/pthm/craft/lib/platform"
)

const iPhoneUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 12_0 like Mac OS X)"

func TestHasDisplayCutout(t *testing.T) {
	tests := []struct {
		name string
		info platform.DeviceInfo
		want bool
	}{
		{"iPhone XS", platform.DeviceInfo{UserAgent: iPhoneUA, PixelRatio: 3, ScreenWidth: 375, ScreenHeight: 812}, true},
		{"iPhone XS Max", platform.DeviceInfo{UserAgent: iPhoneUA, PixelRatio: 3, ScreenWidth: 414, ScreenHeight: 896}, true},
		{"iPhone XR", platform.DeviceInfo{UserAgent: iPhoneUA, PixelRatio: 2, ScreenWidth: 414, ScreenHeight: 896}, true},
		{"iPhone 8", platform.DeviceInfo{UserAgent: iPhoneUA, PixelRatio: 2, ScreenWidth: 375, ScreenHeight: 667}, false},
		{"android same size", platform.DeviceInfo{UserAgent: "Android", PixelRatio: 3, ScreenWidth: 375, ScreenHeight: 812}, false},
		{"zero ratio", platform.DeviceInfo{UserAgent: iPhoneUA, ScreenWidth: 828, ScreenHeight: 1792}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FromInfo(tt.info).HasDisplayCutout())
		})
	}
}

func TestIsTouch(t *testing.T) {
	require.False(t, New(dom.NewWindow()).IsTouch())
	require.True(t, New(dom.NewWindow(dom.WithDevice(platform.DeviceInfo{Touch: true}))).IsTouch())
}
