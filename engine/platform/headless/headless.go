// Package headless is a native host for the engine. It stands in for the
// browser: an event loop delivers image load notifications and animation
// frames on a single goroutine, images are decoded from an assets
// directory, and the canvas is an in-memory RGBA image.
package headless

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"sync"
	"time"

	"github.com/spaghettifunk/walkthedog/engine/assets"
	"github.com/spaghettifunk/walkthedog/engine/containers"
	"github.com/spaghettifunk/walkthedog/engine/core"
	"github.com/spaghettifunk/walkthedog/engine/math"
	"github.com/spaghettifunk/walkthedog/engine/platform"
	"github.com/spaghettifunk/walkthedog/engine/renderer/metadata"
	"github.com/spaghettifunk/walkthedog/engine/signal"
)

// maxPendingFrames bounds the animation frame requests waiting for the
// next frame.
const maxPendingFrames = 256

type Config struct {
	// AssetsDir is the directory resource paths are resolved against.
	AssetsDir string
	CanvasID  string
	Width     int
	Height    int
	// FrameRate is the number of animation frames delivered per second.
	FrameRate int
	// Workers is the number of goroutines decoding and reading assets.
	Workers int
}

// Host owns the window and its event loop.
type Host struct {
	window *Window
}

// New indexes cfg.AssetsDir and creates the window and its canvas. The
// event loop does not run until Run is called.
func New(cfg Config) (*Host, error) {
	if cfg.CanvasID == "" {
		cfg.CanvasID = platform.DefaultCanvasID
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", cfg.Width, cfg.Height)
	}
	cfg.FrameRate = math.Clamp(cfg.FrameRate, 1, 240)
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		return nil, err
	}
	if err := am.Initialize(cfg.AssetsDir); err != nil {
		am.Close()
		return nil, err
	}
	js, err := newJobSystem(cfg.Workers, 64)
	if err != nil {
		am.Close()
		return nil, err
	}

	w := &Window{
		config:  cfg,
		assets:  am,
		jobs:    js,
		tasks:   make(chan func(), 256),
		stopped: make(chan struct{}),
		canvas:  newCanvas(cfg.Width, cfg.Height),
		clock:   core.NewClock(),
		pending: containers.NewRingQueue[frameRequest](maxPendingFrames),
	}
	w.document = &Document{elements: map[string]platform.Element{
		cfg.CanvasID: w.canvas,
	}}
	return &Host{window: w}, nil
}

func (h *Host) Window() (platform.Window, bool) {
	return h.window, true
}

// Canvas returns the drawing surface.
func (h *Host) Canvas() *Canvas {
	return h.window.canvas
}

// Run runs the event loop until ctx is done.
func (h *Host) Run(ctx context.Context) error {
	return h.window.run(ctx)
}

// Close stops the workers and the asset watcher.
func (h *Host) Close() error {
	h.window.jobs.shutdown()
	return h.window.assets.Close()
}

// Window implements platform.Window.
type Window struct {
	config   Config
	assets   *assets.AssetManager
	jobs     *jobSystem
	document *Document
	canvas   *Canvas
	clock    *core.Clock

	// tasks are run by the event loop in submission order.
	tasks    chan func()
	stopped  chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	frameID int
	pending *containers.RingQueue[frameRequest]
}

type frameRequest struct {
	id int
	cb platform.FrameCallback
}

func (w *Window) Document() (platform.Document, bool) {
	return w.document, true
}

func (w *Window) NewImage() (platform.Image, error) {
	return &Image{window: w}, nil
}

// Fetch reads the asset named path on a worker. Assets missing from the
// index produce a 404 response rather than an error, as a web server would.
func (w *Window) Fetch(ctx context.Context, path string) (*platform.Response, error) {
	sig := signal.New[*platform.Response]()
	w.jobs.submit(job{
		Run: func() error {
			r, err := w.assets.LoadAsset(path, metadata.ResourceTypeBinary)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					sig.Succeed(&platform.Response{Path: path, Status: 404})
					return nil
				}
				return err
			}
			sig.Succeed(&platform.Response{Path: path, Status: 200, OK: true, Body: r.Data.([]byte)})
			return nil
		},
		OnFailure: func(err error) { sig.Fail(err) },
	})
	return sig.Wait(ctx)
}

func (w *Window) RequestAnimationFrame(cb platform.FrameCallback) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.pending.Enqueue(frameRequest{id: w.frameID + 1, cb: cb}); err != nil {
		return 0, fmt.Errorf("%d animation frames already pending: %w", w.pending.Len(), err)
	}
	w.frameID++
	return w.frameID, nil
}

// post queues fn on the event loop. Tasks posted after the loop has
// stopped are dropped.
func (w *Window) post(fn func()) {
	select {
	case w.tasks <- fn:
	case <-w.stopped:
	}
}

func (w *Window) run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(w.config.FrameRate))
	defer ticker.Stop()

	defer w.stopOnce.Do(func() { close(w.stopped) })

	w.clock.Start()
	defer w.clock.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-w.tasks:
			fn()
		case <-ticker.C:
			w.clock.Update()
			w.runFrames(w.clock.Elapsed())
		}
	}
}

// runFrames runs the callbacks requested before this frame began. Requests
// made by the callbacks themselves run on the next frame.
func (w *Window) runFrames(timestampMs float64) {
	w.mu.Lock()
	n := w.pending.Len()
	w.mu.Unlock()

	for i := 0; i < n; i++ {
		w.mu.Lock()
		r, err := w.pending.Dequeue()
		w.mu.Unlock()
		if err != nil {
			return
		}
		r.cb(timestampMs)
	}
}

type Document struct {
	elements map[string]platform.Element
}

func (d *Document) ElementByID(id string) (platform.Element, bool) {
	el, ok := d.elements[id]
	return el, ok
}
