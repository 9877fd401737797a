package craft

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// Raw returns a component that writes markup as-is. The markup is not
// escaped; use it for trusted constants only.
//
//	craft.Options{Template: func(string) templ.Component {
//	    return craft.Raw(`<div class="root"></div>`)
//	}}
func Raw(markup string) templ.Component {
	return templ.Raw(markup)
}

// Markup adapts a function producing markup from the component id into a
// Template, for widgets written without .templ files.
func Markup(fn func(id string) string) func(id string) templ.Component {
	return func(id string) templ.Component {
		return templ.Raw(fn(id))
	}
}

// Text returns a component that writes s with HTML escaping.
func Text(s string) templ.Component {
	return templ.Raw(templ.EscapeString(s))
}

// RenderString renders comp and returns the markup.
//
// Components render once, at load time; use this to build markup for
// SetInnerHTML when a view updates part of its subtree:
//
//	html, err := craft.RenderString(ctx, tagRow(tag))
//	if err == nil {
//	    err = list.SetInnerHTML(html)
//	}
func RenderString(ctx context.Context, comp templ.Component) (string, error) {
	if comp == nil {
		return "", nil
	}
	var sb strings.Builder
	if err := comp.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
