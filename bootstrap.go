package craft

import (
	"fmt"
	"reflect"
)

// App is the application descriptor handed to Boot.
//
// DidBootApplication runs once the context is ready. It typically builds
// the root view controller, binds it and brings it up:
//
//	func (a *TagBrowser) DidBootApplication(ctx *craft.Context) error {
//	    root := NewRoot(ctx)
//	    if err := ctx.SetRootViewController(root); err != nil {
//	        return err
//	    }
//	    return root.Bringup()
//	}
type App interface {
	DidBootApplication(ctx *Context) error
}

// AppFunc adapts a function to App.
type AppFunc func(ctx *Context) error

// DidBootApplication calls f.
func (f AppFunc) DidBootApplication(ctx *Context) error { return f(ctx) }

// RouterProvider is implemented by applications that choose their router.
// It takes precedence over the "router" setting. Returning nil keeps the
// configured router.
type RouterProvider interface {
	Router(ctx *Context) Router
}

// Boot creates the context for app and launches it. The router is the
// one app provides, else the one named by the settings, else the hash
// router.
//
// The context is returned together with any error from
// DidBootApplication so callers can still inspect or close it. A nil app,
// including a typed nil such as (*MyApp)(nil), fails with ErrNoApp.
func Boot(app App, opts ...Option) (*Context, error) {
	if isNil(app) {
		return nil, ErrNoApp
	}
	ctx, err := NewContext(opts...)
	if err != nil {
		return nil, fmt.Errorf("craft: boot: %w", err)
	}
	ctx.SetApp(app)

	if p, ok := app.(RouterProvider); ok {
		if r := p.Router(ctx); r != nil {
			ctx.router = r
		}
	}
	ctx.logger.Debug("boot", "router", ctx.router.Name())

	if err := app.DidBootApplication(ctx); err != nil {
		return ctx, fmt.Errorf("craft: boot: %w", err)
	}
	return ctx, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Slice, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
