package components

import (
	"github.com/a-h/templ"

	"github.com/pthm/craft"
)

// NotFound is shown for paths no view handles.
type NotFound struct {
	*craft.View
	path string
}

// NewNotFound creates an unloaded not-found view.
func NewNotFound(ctx *craft.Context, path string) *NotFound {
	n := &NotFound{path: path}
	n.View = craft.NewView(ctx, craft.Options{
		Owner: n,
		Template: craft.Markup(func(string) string {
			return `<p class="missing">Nothing at ` + templ.EscapeString(n.path) + `</p>`
		}),
	})
	return n
}
