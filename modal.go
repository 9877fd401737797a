package craft

import (
	"fmt"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/pthm/craft/lib/platform"
	"github.com/pthm/craft/lib/transition"
)

const modalMarkup = `<div class="root"><div id="mask" class="mask"></div><div id="container" class="container"></div></div>`

const modalStyle = `:host {
	position: absolute;
	top: 0px;
	left: 0px;
	width: 100%;
	height: 100%;
	overflow: hidden;
}
.root {
	position: relative;
	width: 100%;
	height: 100%;
}
.mask {
	display: none;
	position: absolute;
	width: 100%;
	height: 100%;
	opacity: 0;
}
.container {
	position: absolute;
	width: 100%;
	height: 100%;
}`

// ModalViewController presents one content view over a mask. The content
// slides up from below the screen while the mask fades in, and slides back
// down while the mask fades out.
//
// Content implementing AppearanceObserver is told when it will and did
// appear or disappear.
type ModalViewController struct {
	*ViewController
	mask      platform.Element
	container platform.Element
	content   *View
	cfg       ModalDefaults

	removeTouch []func()
}

// NewModalViewController creates an unloaded modal controller using the
// context's modal settings.
func NewModalViewController(ctx *Context, opts Options) *ModalViewController {
	opts.Template = func(string) templ.Component { return Raw(modalMarkup) }
	opts.Style = func(string) string { return modalStyle }
	m := &ModalViewController{
		ViewController: NewViewController(ctx, opts),
		cfg:            ctx.defaults.Modal,
	}
	m.self = m
	m.OnViewDidLoad(m.bindElements)
	m.OnViewDidUnload(func() {
		for _, remove := range m.removeTouch {
			remove()
		}
		m.removeTouch = nil
		m.mask, m.container, m.content = nil, nil, nil
	})
	return m
}

func (m *ModalViewController) bindElements() error {
	mask, err := m.Element("mask")
	if err != nil {
		return err
	}
	container, err := m.Element("container")
	if err != nil {
		return err
	}
	m.mask, m.container = mask, container

	block := func(ev *platform.Event) { ev.PreventDefault() }
	m.removeTouch = append(m.removeTouch,
		m.host.AddEventListener(platform.EventTouchMove, block),
		mask.AddEventListener(platform.EventTouchMove, block),
	)
	return nil
}

// Content returns the presented view, or nil.
func (m *ModalViewController) Content() *View { return m.content }

// SetContent replaces the presented view. The content is loaded if needed,
// placed one screen height below its resting position and made a child of
// the modal.
func (m *ModalViewController) SetContent(content Viewable) error {
	cv := nodeOf(content)
	if cv == nil {
		return fmt.Errorf("craft: set modal content of %s: nil view", m.id)
	}
	if err := m.requireLoaded("set content"); err != nil {
		return err
	}
	if !cv.IsLoaded() {
		if err := cv.LoadView(); err != nil {
			return err
		}
	}

	if prev := m.content; prev != nil && prev != cv {
		if err := m.container.RemoveChild(prev.host); err == nil && same(prev.controller, m.composable()) {
			prev.controller = nil
		}
	}
	m.container.SetStyle("margin-top", m.offscreen())
	if err := m.container.AppendChild(cv.host); err != nil {
		return fmt.Errorf("craft: set modal content %s: %w", cv.id, err)
	}
	cv.controller = m.composable()
	m.content = cv
	return nil
}

// ShowMask displays the mask at the configured color and opacity.
func (m *ModalViewController) ShowMask(done func()) error {
	if err := m.requireLoaded("show mask"); err != nil {
		return err
	}
	m.mask.SetStyle("background-color", m.cfg.MaskColor)
	m.mask.SetStyle("display", string(DisplayBlock))
	m.mask.SetStyle("opacity", strconv.FormatFloat(m.cfg.MaskOpacity, 'f', -1, 64))
	if done != nil {
		done()
	}
	return nil
}

// HideMask fades the mask out after the hide delay and then removes it
// from layout.
func (m *ModalViewController) HideMask(done func()) (*transition.Completion, error) {
	if err := m.requireLoaded("hide mask"); err != nil {
		return nil, err
	}
	c := m.ctx.animator.Animate(m.mask, transition.Options{
		Properties: map[string]string{"opacity": "0"},
		Duration:   m.duration(),
		Delay:      millis(m.cfg.DelayHideMs),
	})
	c.OnDone(func(err error) {
		if err != nil {
			return
		}
		m.mask.SetStyle("display", displayNone)
		if done != nil {
			done()
		}
	})
	return c, nil
}

// ShowContent shows the mask and slides the content into place. done runs
// once the content has arrived; a canceled completion skips it.
func (m *ModalViewController) ShowContent(done func()) (*transition.Completion, error) {
	if err := m.requireLoaded("show content"); err != nil {
		return nil, err
	}
	if m.content == nil {
		return nil, fmt.Errorf("craft: show content of %s: nil view", m.id)
	}
	observer := m.observer()
	if observer != nil {
		observer.ViewWillAppear()
	}
	if err := m.ShowMask(nil); err != nil {
		return nil, err
	}
	c := m.ctx.animator.Animate(m.container, transition.Options{
		Properties: map[string]string{"margin-top": "0px"},
		Duration:   m.duration(),
		Delay:      millis(m.cfg.DelayShowMs),
	})
	c.OnDone(func(err error) {
		if err != nil {
			return
		}
		if observer != nil {
			observer.ViewDidAppear()
		}
		if done != nil {
			done()
		}
	})
	return c, nil
}

// HideContent slides the content below the screen while the mask fades
// out. done runs once both have finished.
func (m *ModalViewController) HideContent(done func()) (*transition.Completion, error) {
	if err := m.requireLoaded("hide content"); err != nil {
		return nil, err
	}
	if m.content == nil {
		return nil, fmt.Errorf("craft: hide content of %s: nil view", m.id)
	}
	observer := m.observer()
	if observer != nil {
		observer.ViewWillDisappear()
	}
	mask, err := m.HideMask(nil)
	if err != nil {
		return nil, err
	}
	slide := m.ctx.animator.Animate(m.container, transition.Options{
		Properties: map[string]string{"margin-top": m.offscreen()},
		Duration:   m.duration(),
	})
	slide.OnDone(func(err error) {
		if err == nil && observer != nil {
			observer.ViewDidDisappear()
		}
	})
	all := transition.All(slide, mask)
	all.OnDone(func(err error) {
		if err == nil && done != nil {
			done()
		}
	})
	return all, nil
}

// Present loads the modal if needed, mounts it on the root view
// controller, sets content and shows it.
func (m *ModalViewController) Present(content Viewable) (*transition.Completion, error) {
	root := m.ctx.RootViewController()
	if root == nil {
		return nil, fmt.Errorf("craft: present: %w", ErrNoRootViewController)
	}
	if !m.IsLoaded() {
		if err := m.LoadView(); err != nil {
			return nil, err
		}
	}
	if m.controller == nil {
		if err := root.AppendView(m); err != nil {
			return nil, err
		}
	}
	if err := m.SetContent(content); err != nil {
		return nil, err
	}
	return m.ShowContent(nil)
}

// Dismiss hides the content and then detaches the modal from its
// controller. The modal and its content stay loaded.
func (m *ModalViewController) Dismiss(done func()) (*transition.Completion, error) {
	return m.HideContent(func() {
		if parent := m.controller; parent != nil {
			if err := parent.RemoveView(m); err != nil {
				m.ctx.logger.Warn("modal dismiss", "component_id", m.id, "error", err)
			}
		}
		if done != nil {
			done()
		}
	})
}

func (m *ModalViewController) observer() AppearanceObserver {
	if m.content == nil {
		return nil
	}
	o, _ := m.content.Owner().(AppearanceObserver)
	return o
}

func (m *ModalViewController) offscreen() string {
	return strconv.Itoa(m.ctx.platform.Device().ScreenHeight) + "px"
}

func (m *ModalViewController) duration() time.Duration {
	return millis(m.cfg.DurationMs)
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
