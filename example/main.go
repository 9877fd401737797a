package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pthm/craft"
	craftecho "github.com/pthm/craft/adapters/echo"
	"github.com/pthm/craft/example/components"
)

const page = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Tags</title></head>
<body><div id="CraftRoot"></div></body>
</html>`

func newServer(store components.TagStore, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())

	craftecho.Mount(e, func() craft.App { return components.NewApp(store) },
		craftecho.WithDocument(page),
		craftecho.WithLogger(logger),
	)
	return e
}

func main() {
	d, err := craft.LoadDefaults(os.Getenv("CRAFT_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: craft.ParseLevel(d.LogLevel),
	}))

	e := newServer(NewStore(), logger)
	e.Use(middleware.Logger())

	log.Fatal(e.Start(":8080"))
}
