package components

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/craft"
)

// TagList shows every tag with a link to its items.
type TagList struct {
	*craft.View
	store TagStore
}

// NewTagList creates an unloaded tag list.
func NewTagList(ctx *craft.Context, store TagStore) *TagList {
	t := &TagList{store: store}
	t.View = craft.NewView(ctx, craft.Options{
		Owner:    t,
		Template: craft.Markup(t.markup),
		Style:    func(string) string { return tagListStyle },
	})
	return t
}

func (t *TagList) markup(id string) string {
	router := t.Context().Router()

	var b strings.Builder
	fmt.Fprintf(&b, `<nav id="%s-tags"><h1>Tags</h1><ul>`, templ.EscapeString(id))
	for _, tag := range t.store.Tags() {
		href := craft.LinkHref(router, "tag/"+tag.Name)
		fmt.Fprintf(&b, `<li><a href="%s">%s</a> <span class="count">%d</span></li>`,
			templ.EscapeString(string(href)), templ.EscapeString(tag.Name), tag.Count)
	}
	b.WriteString(`</ul></nav>`)
	return b.String()
}

const tagListStyle = `
ul { list-style: none; padding: 0; }
.count { color: #888; }
`
