// Package components holds the tag browser's views.
package components

//go:generate go run github.com/pthm/craft/cmd/craft generate .

import "github.com/pthm/craft"

// App boots the tag browser.
type App struct {
	Store TagStore
	Root  *AppRoot
}

// NewApp creates the application descriptor.
func NewApp(store TagStore) *App {
	return &App{Store: store}
}

// DidBootApplication binds the root and routes the launch location.
func (a *App) DidBootApplication(ctx *craft.Context) error {
	a.Root = NewAppRoot(ctx, a.Store)
	if err := ctx.SetRootViewController(a.Root); err != nil {
		return err
	}
	return a.Root.Bringup()
}
