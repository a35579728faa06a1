package engine

import (
	"context"

	"github.com/spaghettifunk/walkthedog/engine/systems"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	State             interface{}
	FnBoot            Boot
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

// Boot runs the asynchronous startup sequence once the systems are ready.
// The frame loop is not scheduled until it returns without error.
type Boot func(ctx context.Context) error
type Initialize func() error

// Update and Render receive the time since the previous frame in seconds.
type Update func(deltaTime float64) error
type Render func(deltaTime float64) error
type OnResize func(width, height int) error
type Shutdown func() error
