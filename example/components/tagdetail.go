package components

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/craft"
)

// TagDetail lists the items carrying one tag.
type TagDetail struct {
	*craft.View
	store TagStore
	tag   string
}

// NewTagDetail creates an unloaded detail view for tag.
func NewTagDetail(ctx *craft.Context, store TagStore, tag string) *TagDetail {
	d := &TagDetail{store: store, tag: tag}
	d.View = craft.NewView(ctx, craft.Options{
		Owner:    d,
		Template: craft.Markup(d.markup),
	})
	return d
}

// Tag returns the tag shown.
func (d *TagDetail) Tag() string { return d.tag }

func (d *TagDetail) markup(string) string {
	items := d.store.Items(d.tag)

	var b strings.Builder
	fmt.Fprintf(&b, `<h1>#%s</h1>`, templ.EscapeString(d.tag))
	if len(items) == 0 {
		b.WriteString(`<p class="empty">No items</p>`)
	}
	b.WriteString(`<ul>`)
	for _, it := range items {
		fmt.Fprintf(&b, `<li><a href="%s">%s</a></li>`,
			templ.EscapeString(string(templ.URL(it.URL))), templ.EscapeString(it.Title))
	}
	back := craft.LinkHref(d.Context().Router(), "")
	fmt.Fprintf(&b, `</ul><a class="back" href="%s">All tags</a>`, templ.EscapeString(string(back)))
	return b.String()
}
