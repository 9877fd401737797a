package craft

// DisplayMode defines the display value a view uses while shown.
//
// The mode also decides the :host rule added to the view's style, so a
// freshly loaded view lays out the same way it does after ShowView.
type DisplayMode string

const (
	// DisplayBlock shows the view as a block. This is the default.
	DisplayBlock DisplayMode = "block"

	// DisplayInlineBlock shows the view as an inline block.
	DisplayInlineBlock DisplayMode = "inline-block"
)

// displayNone is applied by HideView.
const displayNone = "none"

func (m DisplayMode) value() string {
	if m == "" {
		return string(DisplayBlock)
	}
	return string(m)
}

func (m DisplayMode) hostRule() string {
	return ":host { display: " + m.value() + "; }"
}
