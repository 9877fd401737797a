// Package craftecho serves craft applications from Echo by prerendering
// them on the in-memory platform.
//
// Each request boots a fresh application on a dom.Window positioned at the
// request URL, with the path router, and answers with the resulting
// document:
//
//	e := echo.New()
//	craftecho.Mount(e, func() craft.App { return app.New(store) })
//
// Or mount on a group with middleware:
//
//	g := e.Group("/app", authMiddleware)
//	craftecho.MountGroup(g, newApp)
package craftecho

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/pthm/craft"
	"github.com/pthm/craft/lib/dom"
)

// NewApp returns a fresh application for one request.
type NewApp func() craft.App

// Option configures Handler, Mount and MountGroup.
type Option func(*options)

type options struct {
	document string
	defaults craft.Defaults
	logger   *slog.Logger
	settle   time.Duration
}

// WithDocument sets the document each request starts from. It must contain
// the root element. Defaults to dom.DefaultDocument.
func WithDocument(markup string) Option {
	return func(o *options) {
		o.document = markup
	}
}

// WithDefaults sets the context defaults. The router is always the path
// router.
func WithDefaults(d craft.Defaults) Option {
	return func(o *options) {
		o.defaults = d
	}
}

// WithLogger sets the logger passed to each context.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithSettle advances the window clock by d after boot so pending
// transitions finish before the document is rendered.
func WithSettle(d time.Duration) Option {
	return func(o *options) {
		o.settle = d
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		document: dom.DefaultDocument,
		defaults: craft.NewDefaults(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.defaults.Router = craft.RouterPath
	return o
}

// Handler returns an Echo handler that prerenders newApp at the request
// URL. An *echo.HTTPError returned while booting is passed through, so a
// resolver can answer echo.ErrNotFound; any other error is a 500.
func Handler(newApp NewApp, opts ...Option) echo.HandlerFunc {
	o := newOptions(opts)

	return func(c echo.Context) error {
		req := c.Request()
		w := dom.NewWindow(
			dom.WithURL(fmt.Sprintf("%s://%s%s", c.Scheme(), req.Host, req.URL.RequestURI())),
			dom.WithDocument(o.document),
		)

		ctx, err := craft.Boot(newApp(),
			craft.WithPlatform(w),
			craft.WithDefaults(o.defaults),
			craft.WithLogger(o.logger.With("path", req.URL.Path)),
		)
		if ctx != nil {
			defer ctx.Close()
		}
		if err != nil {
			var he *echo.HTTPError
			if errors.As(err, &he) {
				return he
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
		}

		if o.settle > 0 {
			w.Advance(o.settle)
		}
		return c.HTML(http.StatusOK, w.DocumentHTML())
	}
}

// Mount registers the prerender handler for every GET path on e.
func Mount(e *echo.Echo, newApp NewApp, opts ...Option) {
	e.GET("/*", Handler(newApp, opts...))
}

// MountGroup registers the prerender handler for every GET path on g.
// The handler shares the group's middleware.
func MountGroup(g *echo.Group, newApp NewApp, opts ...Option) {
	g.GET("/*", Handler(newApp, opts...))
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return craftecho.Render(c, page())
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return component.Render(c.Request().Context(), c.Response())
}
