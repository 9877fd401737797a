package craft

import (
	"testing"

	"github.com/pthm/craft/lib/platform"
)

func TestLinkAttrs(t *testing.T) {
	tests := []struct {
		name       string
		router     Router
		path       string
		expectHref string
		expectData bool
	}{
		{"hash", NewHashRouter(nil), "tag/42", "#/tag/42", false},
		{"hash already normalized", NewHashRouter(nil), "#/tag/42", "#/tag/42", false},
		{"path", NewPathRouter(nil), "tag/42", "/tag/42", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := LinkAttrs(tt.router, tt.path)
			if attrs["href"] != tt.expectHref {
				t.Errorf("href = %v, want %q", attrs["href"], tt.expectHref)
			}
			_, ok := attrs["data-craft-link"]
			if ok != tt.expectData {
				t.Errorf("data-craft-link present = %v, want %v", ok, tt.expectData)
			}
		})
	}
}

func TestLinkHref(t *testing.T) {
	if got := LinkHref(NewHashRouter(nil), "/list"); string(got) != "#/list" {
		t.Errorf("LinkHref() = %q, want #/list", got)
	}
}

func TestLinkClick_RoutesThroughNavigate(t *testing.T) {
	h := newTestHarness(t)
	if err := h.Context.SetRouter(NewPathRouter(h.Context)); err != nil {
		t.Fatalf("SetRouter() error = %v", err)
	}
	root, rec := bootRecorder(t, h)

	nav := NewView(h.Context, Options{
		Name: "Nav",
		Template: Markup(func(id string) string {
			return `<a id="tag" href="/tag/42" data-craft-link="true"><span id="label">42</span></a>` +
				`<a id="out" href="https://example.com/">out</a>`
		}),
	})
	loadAll(t, nav)
	if err := root.AppendView(nav); err != nil {
		t.Fatalf("AppendView() error = %v", err)
	}

	label, ok := hostOf(t, nav).Lookup("label")
	if !ok {
		t.Fatal("label missing")
	}
	click := platform.NewEvent(platform.EventClick, h.Window.Now())
	label.DispatchEvent(click)

	if !click.DefaultPrevented() {
		t.Error("link click should be default-prevented")
	}
	if got := h.Window.Location().Pathname(); got != "/tag/42" {
		t.Errorf("Pathname() = %q, want /tag/42", got)
	}
	paths := rec.Paths()
	if len(paths) != 2 || paths[1] != "/tag/42" {
		t.Errorf("routes = %v, want launch then /tag/42", paths)
	}

	out, _ := hostOf(t, nav).Lookup("out")
	plain := platform.NewEvent(platform.EventClick, h.Window.Now())
	out.DispatchEvent(plain)
	if plain.DefaultPrevented() {
		t.Error("plain anchor click should not be intercepted")
	}

	h.Context.Close()
	label.DispatchEvent(platform.NewEvent(platform.EventClick, h.Window.Now()))
	if len(rec.Paths()) != 2 {
		t.Error("clicks after Close should not route")
	}
}

func TestLinkClick_IgnoredBeforeBringup(t *testing.T) {
	h := newTestHarness(t)
	rec := &RouteRecorder{}
	root := NewRootViewController(h.Context, Options{
		Template: Markup(func(id string) string {
			return `<a id="tag" href="#/tag/1" data-craft-link="true">1</a>`
		}),
	}, rec)
	if err := h.Context.SetRootViewController(root); err != nil {
		t.Fatalf("SetRootViewController() error = %v", err)
	}

	link, ok := hostOf(t, root).Lookup("tag")
	if !ok {
		t.Fatal("link missing")
	}
	click := platform.NewEvent(platform.EventClick, h.Window.Now())
	link.DispatchEvent(click)
	if click.DefaultPrevented() || len(rec.Paths()) != 0 {
		t.Error("clicks before bringup should fall through")
	}
}
