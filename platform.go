package craft

import "github.com/pthm/craft/lib/platform"

// Platform types, aliased so applications rarely import lib/platform.
type (
	Platform = platform.Platform
	Element  = platform.Element
	Host     = platform.Host
	Event    = platform.Event
)
