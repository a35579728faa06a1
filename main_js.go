//go:build js && wasm

package main

import (
	"context"

	"github.com/spaghettifunk/walkthedog/engine"
	"github.com/spaghettifunk/walkthedog/engine/core"
	"github.com/spaghettifunk/walkthedog/engine/platform/web"
	"github.com/spaghettifunk/walkthedog/internal/app"
)

// main is the start hook the page runs once after instantiating the wasm
// module. Failures are reported on the browser console; the program stays
// alive so frame callbacks keep running.
func main() {
	core.SetLogOutput(web.Console{})
	if err := start(context.Background()); err != nil {
		core.SetLogOutput(web.Console{Method: "error"})
		core.LogError("startup failed: %s", err)
	}
	select {}
}

func start(ctx context.Context) error {
	a, err := app.New(engine.DefaultApplicationConfig(), web.New())
	if err != nil {
		return err
	}
	return a.Run(ctx, 0)
}
