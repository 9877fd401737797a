// Package device answers capability questions about the display.
package device

import (
	"regexp"

	"github.com/pthm/craft/lib/platform"
)

var iOS = regexp.MustCompile(`iPad|iPhone|iPod`)

// Physical screen sizes of iOS devices with a display cutout.
var cutoutScreens = [][2]int{
	{1125, 2436}, // iPhone X, XS
	{1242, 2688}, // iPhone XS Max
	{828, 1792},  // iPhone XR
}

// Probe reads capabilities from a platform.
type Probe struct {
	info platform.DeviceInfo
}

// New returns a probe for p.
func New(p platform.Platform) Probe {
	return Probe{info: p.Device()}
}

// FromInfo returns a probe for a fixed description.
func FromInfo(info platform.DeviceInfo) Probe {
	return Probe{info: info}
}

// HasDisplayCutout reports whether the screen has a notch. Only the known
// iOS screen sizes are recognized.
func (p Probe) HasDisplayCutout() bool {
	if !iOS.MatchString(p.info.UserAgent) {
		return false
	}
	ratio := p.info.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	w := int(float64(p.info.ScreenWidth) * ratio)
	h := int(float64(p.info.ScreenHeight) * ratio)
	for _, s := range cutoutScreens {
		if w == s[0] && h == s[1] {
			return true
		}
	}
	return false
}

// IsTouch reports whether the device delivers touch events.
func (p Probe) IsTouch() bool {
	return p.info.Touch
}
