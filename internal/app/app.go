// Package app wires the testbed game to an engine on a given host. Both
// the browser start hook and the native CLI go through it.
package app

import (
	"context"
	"errors"

	"github.com/spaghettifunk/walkthedog/engine"
	"github.com/spaghettifunk/walkthedog/engine/core"
	"github.com/spaghettifunk/walkthedog/engine/platform"
	"github.com/spaghettifunk/walkthedog/testbed"
)

type App struct {
	Config *engine.ApplicationConfig
	Game   *testbed.TestGame
	Engine *engine.Engine
}

// New creates and initializes the engine. A missing drawing surface fails
// here, before anything is loaded.
func New(config *engine.ApplicationConfig, host platform.Host) (*App, error) {
	if config == nil {
		config = engine.DefaultApplicationConfig()
	}
	core.SetLogLevel(config.Level())

	game := testbed.NewTestGame(config)
	e, err := engine.New(game.Game, host)
	if err != nil {
		return nil, err
	}
	if err := e.Initialize(); err != nil {
		core.LogError("failed to initialize %s: %s", config.Name, err)
		return nil, err
	}
	return &App{Config: config, Game: game, Engine: e}, nil
}

// Run boots the game and animates it until ctx is done or frames frames
// have run. Zero frames means no limit. The engine is shut down before
// returning.
func (a *App) Run(ctx context.Context, frames uint64) error {
	a.Engine.SetFrameLimit(frames)
	err := a.Engine.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	err = errors.Join(err, a.Engine.Shutdown())
	m := a.Engine.Metrics()
	core.LogInfo("ran %d frames (%.1f fps, %.2f ms/frame)", a.Engine.Frames(), m.FPS(), m.FrameTime())
	return err
}
