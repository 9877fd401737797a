package craft

import (
	"fmt"
	"strings"
)

// View is a component that can hold child views and remembers the
// controller it is attached to.
type View struct {
	*Component
	controller Composable
}

// NewView creates an unloaded view. The host style gets a :host rule for
// the view's display mode.
func NewView(ctx *Context, opts Options) *View {
	style := opts.Style
	display := opts.Display
	opts.Style = func(id string) string {
		rule := display.hostRule()
		if style == nil {
			return rule
		}
		return strings.TrimSpace(style(id)) + "\n" + rule
	}
	v := &View{Component: NewComponent(ctx, opts)}
	v.self = v
	return v
}

func (v *View) viewNode() *View { return v }

// Controller returns the view or controller this view is attached to,
// or nil. The reference does not own the view.
func (v *View) Controller() Composable { return v.controller }

// SetController sets the controller back-reference. Controllers that
// manage views they did not append themselves use this to propagate the
// reference.
func (v *View) SetController(c Composable) { v.controller = c }

// ViewOptions wraps a child passed to AppendView.
type ViewOptions struct {
	View Viewable

	// Hidden appends the child with display none.
	Hidden bool
}

func (o ViewOptions) viewNode() *View {
	if o.View == nil {
		return nil
	}
	return o.View.viewNode()
}

// AppendView attaches child as the last child of v's content root and
// points the child's back-reference at v.
func (v *View) AppendView(child Viewable) error {
	return v.appendView(child, v.composable())
}

func (v *View) appendView(child Viewable, controller Composable) error {
	cv := nodeOf(child)
	if cv == nil {
		return fmt.Errorf("craft: append to %s: nil view", v.id)
	}
	if err := v.requireLoaded("append"); err != nil {
		return err
	}
	if err := cv.requireLoaded("append"); err != nil {
		return err
	}

	cv.controller = controller
	if err := v.host.ContentRoot().AppendChild(cv.host); err != nil {
		cv.controller = nil
		return fmt.Errorf("craft: append %s to %s: %w", cv.id, v.id, err)
	}
	if o, ok := child.(ViewOptions); ok && o.Hidden {
		cv.host.SetStyle("display", displayNone)
	}
	return nil
}

// RemoveView detaches child from v's content root and clears its
// back-reference. The child stays loaded.
func (v *View) RemoveView(child Viewable) error {
	cv := nodeOf(child)
	if cv == nil {
		return fmt.Errorf("craft: remove from %s: nil view", v.id)
	}
	if err := v.requireLoaded("remove"); err != nil {
		return err
	}
	if cv.state != loaded {
		return fmt.Errorf("craft: remove %s from %s: %w", cv.id, v.id, ErrNotAttached)
	}
	if err := v.host.ContentRoot().RemoveChild(cv.host); err != nil {
		return fmt.Errorf("craft: remove %s from %s: %w", cv.id, v.id, ErrNotAttached)
	}
	if same(cv.controller, v.composable()) {
		cv.controller = nil
	}
	return nil
}

// ShowView sets the display mode on the host and calls done.
func (v *View) ShowView(done func()) error {
	if err := v.requireLoaded("show"); err != nil {
		return err
	}
	v.host.SetStyle("display", v.opts.Display.value())
	if done != nil {
		done()
	}
	return nil
}

// HideView sets display none on the host and calls done.
func (v *View) HideView(done func()) error {
	if err := v.requireLoaded("hide"); err != nil {
		return err
	}
	v.host.SetStyle("display", displayNone)
	if done != nil {
		done()
	}
	return nil
}

// IsHidden reports whether the host has display none.
func (v *View) IsHidden() bool {
	return v.state == loaded && v.host.Style("display") == displayNone
}

// composable returns the value children see as their controller: the
// owning widget when it can hold children, otherwise v.
func (v *View) composable() Composable {
	if c, ok := v.Owner().(Composable); ok {
		return c
	}
	return v
}

func nodeOf(child Viewable) *View {
	if child == nil {
		return nil
	}
	return child.viewNode()
}
