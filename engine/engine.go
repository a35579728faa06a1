package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/spaghettifunk/walkthedog/engine/core"
	"github.com/spaghettifunk/walkthedog/engine/platform"
	"github.com/spaghettifunk/walkthedog/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting down"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

var ErrInvalidStage = errors.New("invalid engine stage")

type Engine struct {
	mu           sync.Mutex
	currentStage Stage

	gameInstance  *Game
	host          platform.Host
	window        platform.Window
	systemManager *systems.SystemManager
	metrics       *core.Metrics
	frames        atomic.Uint64

	width      int
	height     int
	lastTime   float64
	frameLimit uint64

	// cancel ends the running frame loop. failure is the first error of
	// a game callback.
	cancel  context.CancelFunc
	failure error
}

func New(g *Game, host platform.Host) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, errors.New("game and application config are required")
	}
	if host == nil {
		return nil, fmt.Errorf("host: %w", core.ErrNotFound)
	}
	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		host:         host,
		metrics:      core.NewMetrics(),
		width:        g.ApplicationConfig.Width,
		height:       g.ApplicationConfig.Height,
		lastTime:     -1,
	}, nil
}

// SetFrameLimit makes Run return after n frames. Zero means no limit.
func (e *Engine) SetFrameLimit(n uint64) {
	e.frameLimit = n
}

func (e *Engine) Stage() Stage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentStage
}

func (e *Engine) setStage(s Stage) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.currentStage = s
}

// Metrics returns the frame timing collected by the running loop.
func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

// Frames reports the number of frames run so far.
func (e *Engine) Frames() uint64 {
	return e.frames.Load()
}

// Initialize acquires the drawing surface and hands the systems to the
// game. Any error leaves the engine unusable.
func (e *Engine) Initialize() error {
	if s := e.Stage(); s != EngineStageUninitialized {
		return fmt.Errorf("initialize in stage %s: %w", s, ErrInvalidStage)
	}
	e.setStage(EngineStageInitializing)

	config := e.gameInstance.ApplicationConfig
	ctx, err := platform.Context(e.host, config.CanvasID)
	if err != nil {
		return err
	}
	// Context already proved the window exists.
	e.window, _ = e.host.Window()
	e.systemManager = systems.NewSystemManager(e.window, ctx)
	e.gameInstance.SystemManager = e.systemManager

	if fn := e.gameInstance.FnInitialize; fn != nil {
		if err := fn(); err != nil {
			return err
		}
	}
	if fn := e.gameInstance.FnOnResize; fn != nil {
		if err := fn(e.width, e.height); err != nil {
			return err
		}
	}

	e.setStage(EngineStageInitialized)
	core.LogInfo("%s initialized", config.Name)
	return nil
}

// Run boots the game and then drives it from animation frames until ctx
// is done, a game callback fails, the frame limit is reached or the host
// refuses a frame request. A boot failure returns before any frame is
// scheduled.
func (e *Engine) Run(ctx context.Context) error {
	if s := e.Stage(); s != EngineStageInitialized {
		return fmt.Errorf("run in stage %s: %w", s, ErrInvalidStage)
	}
	e.setStage(EngineStageRunning)

	if fn := e.gameInstance.FnBoot; fn != nil {
		if err := fn(ctx); err != nil {
			core.LogError("boot failed: %s", err)
			return err
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	e.mu.Lock()
	e.cancel = cancel
	e.mu.Unlock()

	loop, err := systems.ScheduleLoop(runCtx, e.window, e.frame)
	if err != nil {
		return err
	}

	select {
	case <-loop.Done():
	case <-runCtx.Done():
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.failure != nil {
		return e.failure
	}
	if err := loop.Err(); err != nil && !errors.Is(err, systems.ErrLoopStopped) {
		return err
	}
	return nil
}

func (e *Engine) frame(timestampMs float64) {
	var deltaMs float64
	if e.lastTime >= 0 {
		deltaMs = timestampMs - e.lastTime
	}
	e.lastTime = timestampMs
	e.metrics.Update(deltaMs)

	delta := deltaMs / 1000
	if fn := e.gameInstance.FnUpdate; fn != nil {
		if err := fn(delta); err != nil {
			e.fail(fmt.Errorf("game update failed: %w", err))
			return
		}
	}
	if fn := e.gameInstance.FnRender; fn != nil {
		if err := fn(delta); err != nil {
			e.fail(fmt.Errorf("game render failed: %w", err))
			return
		}
	}

	if n := e.frames.Add(1); e.frameLimit > 0 && n >= e.frameLimit {
		e.stop()
	}
}

func (e *Engine) fail(err error) {
	core.LogError("%s, shutting down", err)
	e.mu.Lock()
	if e.failure == nil {
		e.failure = err
	}
	e.mu.Unlock()
	e.stop()
}

func (e *Engine) stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
	}
}

func (e *Engine) Shutdown() error {
	e.stop()
	e.setStage(EngineStageShuttingDown)
	if fn := e.gameInstance.FnShutdown; fn != nil {
		if err := fn(); err != nil {
			return err
		}
	}
	core.LogInfo("engine shut down after %d frames", e.Frames())
	return nil
}
