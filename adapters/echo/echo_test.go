package craftecho

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/pthm/craft"
)

// pathApp renders the routed path into a paragraph under the root.
type pathApp struct{}

func (pathApp) DidBootApplication(ctx *craft.Context) error {
	var root *craft.RootViewController
	root = craft.NewRootViewController(ctx, craft.Options{Name: "AppRoot", Sticky: true},
		craft.ResolverFunc(func(r craft.Route) error {
			if r.Path() == "/missing" {
				return echo.ErrNotFound
			}
			if r.Path() == "/broken" {
				return io.ErrUnexpectedEOF
			}
			page := craft.NewView(ctx, craft.Options{Name: "Page", Template: craft.Markup(func(string) string {
				return "<p>path " + templ.EscapeString(r.Path()) + "</p>"
			})})
			if err := page.LoadView(); err != nil {
				return err
			}
			return root.AppendView(page)
		}))
	if err := ctx.SetRootViewController(root); err != nil {
		return err
	}
	return root.Bringup()
}

func newPathApp() craft.App { return pathApp{} }

func serve(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMount(t *testing.T) {
	e := echo.New()
	Mount(e, newPathApp)

	rec := serve(e, "/tags/42?x=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "path /tags/42") {
		t.Errorf("body missing routed path:\n%s", body)
	}
	if !strings.Contains(body, `shadowrootmode="open"`) {
		t.Errorf("body missing declarative shadow root:\n%s", body)
	}
}

func TestMountGroup(t *testing.T) {
	e := echo.New()
	called := false
	g := e.Group("/app", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			called = true
			return next(c)
		}
	})
	MountGroup(g, newPathApp)

	rec := serve(e, "/app/list")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !called {
		t.Error("group middleware not run")
	}
	if !strings.Contains(rec.Body.String(), "path /app/list") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		expect int
	}{
		{"http error passes through", "/missing", http.StatusNotFound},
		{"other errors are 500", "/broken", http.StatusInternalServerError},
	}

	e := echo.New()
	Mount(e, newPathApp)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := serve(e, tt.target); rec.Code != tt.expect {
				t.Errorf("status = %d, want %d", rec.Code, tt.expect)
			}
		})
	}
}

func TestHandler_NoRootElement(t *testing.T) {
	e := echo.New()
	Mount(e, newPathApp, WithDocument(`<html><body></body></html>`))

	if rec := serve(e, "/"); rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestHandler_ForcesPathRouter(t *testing.T) {
	d := craft.NewDefaults()
	d.Router = craft.RouterHash
	e := echo.New()
	Mount(e, newPathApp, WithDefaults(d))

	if body := serve(e, "/tags").Body.String(); !strings.Contains(body, "path /tags") {
		t.Errorf("body = %s", body)
	}
}

func TestHandler_Settle(t *testing.T) {
	var ran bool
	app := craft.AppFunc(func(ctx *craft.Context) error {
		ctx.Platform().AfterFunc(100*time.Millisecond, func() { ran = true })
		return pathApp{}.DidBootApplication(ctx)
	})
	e := echo.New()
	Mount(e, func() craft.App { return app }, WithSettle(time.Second))

	if rec := serve(e, "/"); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !ran {
		t.Error("timers should fire while settling")
	}
}

func TestRender(t *testing.T) {
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		return Render(c, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<h1>hi</h1>")
			return err
		}))
	})

	rec := serve(e, "/")
	if rec.Body.String() != "<h1>hi</h1>" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != echo.MIMETextHTMLCharsetUTF8 {
		t.Errorf("Content-Type = %q", ct)
	}
}
