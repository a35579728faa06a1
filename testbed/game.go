package testbed

import (
	"context"
	"fmt"

	"github.com/spaghettifunk/walkthedog/engine"
	"github.com/spaghettifunk/walkthedog/engine/core"
	"github.com/spaghettifunk/walkthedog/engine/platform"
	"github.com/spaghettifunk/walkthedog/engine/renderer/metadata"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	width  int
	height int

	idle  platform.Image
	sheet *metadata.Sheet
	rhb   platform.Image

	// frame counts ticks through one animation cycle.
	frame  int
	booted bool
}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	if config == nil {
		config = engine.DefaultApplicationConfig()
	}
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnBoot = tg.Boot
	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}
	*g.state() = gameState{}
	return nil
}

// Boot draws the idle dog at the origin, then fetches the sprite sheet and
// its image and draws the first run frame. Nothing is drawn from a
// resource that failed to resolve.
func (g *TestGame) Boot(ctx context.Context) error {
	core.LogInfo("booting testbed...")

	sprites := g.ApplicationConfig.Sprites
	state := g.state()
	sm := g.SystemManager

	idle, err := sm.ImageSystem.Load(ctx, sprites.Idle)
	if err != nil {
		return err
	}
	state.idle = idle
	if err := sm.RendererSystem.DrawImage(idle, 0, 0); err != nil {
		return err
	}

	sheet, err := sm.Fetcher.FetchSheet(ctx, sprites.Sheet)
	if err != nil {
		return err
	}
	state.sheet = sheet
	core.Logger().Debug("sprite sheet", "path", sprites.Sheet, "frames", len(sheet.Frames))

	rhb, err := sm.ImageSystem.Load(ctx, sprites.SheetImage)
	if err != nil {
		return err
	}
	state.rhb = rhb

	if err := sm.RendererSystem.DrawFrame(rhb, sheet, sprites.FrameName(0), sprites.Dest()); err != nil {
		return err
	}
	state.booted = true
	return nil
}

// Update advances the animation by one tick.
func (g *TestGame) Update(deltaTime float64) error {
	state := g.state()
	if !state.booted {
		return nil
	}
	sprites := g.ApplicationConfig.Sprites
	state.frame = (state.frame + 1) % (sprites.Frames * sprites.TicksPerCel)
	return nil
}

// Render clears the play area and draws the current run cel.
func (g *TestGame) Render(deltaTime float64) error {
	state := g.state()
	if !state.booted {
		return nil
	}
	sprites := g.ApplicationConfig.Sprites
	if err := g.SystemManager.RendererSystem.Clear(sprites.ClearArea()); err != nil {
		return err
	}
	name := sprites.FrameName(state.frame / sprites.TicksPerCel)
	return g.SystemManager.RendererSystem.DrawFrame(state.rhb, state.sheet, name, sprites.Dest())
}

func (g *TestGame) OnResize(width, height int) error {
	state := g.state()
	state.width = width
	state.height = height
	return nil
}

func (g *TestGame) Shutdown() error {
	core.LogDebug("TestGame Shutdown fn....")
	return nil
}

// Frame reports the current animation tick.
func (g *TestGame) Frame() int {
	return g.state().frame
}
