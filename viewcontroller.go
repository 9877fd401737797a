package craft

import (
	"github.com/a-h/templ"

	"github.com/pthm/craft/lib/gesture"
	"github.com/pthm/craft/lib/platform"
)

// EventContentTapped is posted on the context's notification center for
// every tap on a view controller's host. The payload is the *Event.
const EventContentTapped = "ContentTapped"

const defaultControllerStyle = `:host {
	height: 100%;
	width: 100%;
	margin: 0px;
	overflow: hidden;
	box-sizing: border-box;
}
.root {
	height: 100%;
	width: 100%;
	margin: 0px;
	overflow: hidden;
	box-sizing: border-box;
}`

// ViewController is a view that manages the content appended to it and
// cascades itself as the controller of that content.
//
// When loaded it installs a tap recognizer on its host and posts each tap
// as EventContentTapped. Without a Template it renders a single
// <div class="root"> content root.
type ViewController struct {
	*View
	tap *gesture.Tap
}

// NewViewController creates an unloaded view controller.
func NewViewController(ctx *Context, opts Options) *ViewController {
	if opts.Template == nil {
		opts.Template = func(string) templ.Component { return Raw(`<div class="root"></div>`) }
	}
	if opts.Style == nil {
		opts.Style = func(string) string { return defaultControllerStyle }
	}
	vc := &ViewController{View: NewView(ctx, opts)}
	vc.self = vc
	vc.OnViewDidLoad(vc.enableContentTapped)
	vc.OnViewDidUnload(func() {
		if vc.tap != nil {
			vc.tap.Disable()
			vc.tap = nil
		}
	})
	return vc
}

func (vc *ViewController) enableContentTapped() error {
	ctx := vc.ctx
	vc.tap = ctx.EnableTap(vc.host, func(ev *platform.Event) {
		ctx.Notifications().Notify(EventContentTapped, ev)
	})
	return nil
}

// AppendView makes vc the child's controller, then attaches the child's
// host to vc's content root. The reference is set before the host is
// attached.
func (vc *ViewController) AppendView(child Viewable) error {
	return vc.appendView(child, vc.composable())
}
