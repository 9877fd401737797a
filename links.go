package craft

import "github.com/a-h/templ"

// LinkAttr marks anchors whose clicks are routed in-app instead of
// loading a new document.
const LinkAttr = "data-craft-link"

// LinkAttrs builds the attributes for an anchor that navigates to path
// under router. The href is the router-normalized path: "#/tag/42" for the
// hash router, "/tag/42" for the path router.
//
// Templates spread the result onto an anchor:
//
//	<a { craft.LinkAttrs(ctx.Router(), "tag/" + id)... }>{ name }</a>
//
// Under the path router the anchor carries LinkAttr; the bound root
// intercepts clicks on it and calls Navigate. The hash router works with
// plain anchors since the browser fires popstate for fragment changes.
func LinkAttrs(router Router, path string) templ.Attributes {
	attrs := templ.Attributes{
		"href": router.Normalize(path),
	}
	if router.Name() == RouterPath {
		attrs[LinkAttr] = "true"
	}
	return attrs
}

// LinkHref returns the router-normalized href for path.
func LinkHref(router Router, path string) templ.SafeURL {
	return templ.SafeURL(router.Normalize(path))
}
