// Package testutil provides an in-memory host for exercising the engine
// without a browser. Draw calls are recorded, image loads follow a scripted
// behaviour per source, and animation frames are stepped by the test.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/walkthedog/engine/platform"
)

// ErrDecode is the cause reported by scripted image failures.
var ErrDecode = errors.New("scripted decode failure")

// ErrFrameRequest is returned by RequestAnimationFrame once the budget set
// with FailFramesAfter is spent.
var ErrFrameRequest = errors.New("scripted frame request failure")

// ImageBehavior scripts how an image reacts to SetSrc.
type ImageBehavior int

const (
	// LoadAsync fires the load handler from another goroutine. It is the
	// default for sources without a script.
	LoadAsync ImageBehavior = iota
	// LoadSync fires the load handler inside SetSrc, like a cached image.
	LoadSync
	FailAsync
	FailSync
	// LoadTwice fires the load handler twice.
	LoadTwice
	// FailThenLoad fires the error handler and then the load handler.
	FailThenLoad
	// LoadThenFail fires the load handler and then the error handler.
	LoadThenFail
)

type Host struct {
	Win *Window
}

// NewHost returns a host with a window, a document and a canvas element
// with the given id.
func NewHost(canvasID string) *Host {
	return &Host{Win: NewWindow(canvasID)}
}

func (h *Host) Window() (platform.Window, bool) {
	if h.Win == nil {
		return nil, false
	}
	return h.Win, true
}

type Window struct {
	Doc *Document

	mu         sync.Mutex
	images     map[string]ImageBehavior
	sizes      map[string][2]int
	resources  map[string]platform.Response
	fetchErrs  map[string]error
	created    []*Image
	pending    []platform.FrameCallback
	requests   int
	frameLimit int
}

func NewWindow(canvasID string) *Window {
	return &Window{
		Doc: &Document{Elements: map[string]*Element{
			canvasID: {Ctx: &Context{}},
		}},
		images:     make(map[string]ImageBehavior),
		sizes:      make(map[string][2]int),
		resources:  make(map[string]platform.Response),
		fetchErrs:  make(map[string]error),
		frameLimit: -1,
	}
}

func (w *Window) Document() (platform.Document, bool) {
	if w.Doc == nil {
		return nil, false
	}
	return w.Doc, true
}

// Canvas returns the recording context of the element with the given id.
func (w *Window) Canvas(id string) *Context {
	el := w.Doc.Elements[id]
	if el == nil {
		return nil
	}
	return el.Ctx
}

// ScriptImage sets the behaviour and reported size of images loaded from src.
func (w *Window) ScriptImage(src string, b ImageBehavior, width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.images[src] = b
	w.sizes[src] = [2]int{width, height}
}

// AddResource makes body available to Fetch at path with a 200 status.
func (w *Window) AddResource(path string, body []byte) {
	w.AddResponse(platform.Response{Path: path, Status: 200, OK: true, Body: body})
}

func (w *Window) AddResponse(r platform.Response) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resources[r.Path] = r
}

// FailFetch makes Fetch of path fail with err.
func (w *Window) FailFetch(path string, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fetchErrs[path] = err
}

func (w *Window) NewImage() (platform.Image, error) {
	img := &Image{win: w}
	w.mu.Lock()
	w.created = append(w.created, img)
	w.mu.Unlock()
	return img, nil
}

// Images returns the images created so far.
func (w *Window) Images() []*Image {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]*Image(nil), w.created...)
}

func (w *Window) Fetch(ctx context.Context, path string) (*platform.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err, ok := w.fetchErrs[path]; ok {
		return nil, err
	}
	r, ok := w.resources[path]
	if !ok {
		return &platform.Response{Path: path, Status: 404}, nil
	}
	return &r, nil
}

// FailFramesAfter makes every animation frame request after the first n fail.
func (w *Window) FailFramesAfter(n int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.frameLimit = n
}

func (w *Window) RequestAnimationFrame(cb platform.FrameCallback) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.frameLimit >= 0 && w.requests >= w.frameLimit {
		return 0, ErrFrameRequest
	}
	w.requests++
	w.pending = append(w.pending, cb)
	return w.requests, nil
}

// Step runs the callbacks pending at the time of the call with the given
// timestamp and reports how many ran. Callbacks requested while stepping
// wait for the next step.
func (w *Window) Step(timestampMs float64) int {
	w.mu.Lock()
	pending := w.pending
	w.pending = nil
	w.mu.Unlock()
	for _, cb := range pending {
		cb(timestampMs)
	}
	return len(pending)
}

// Pending reports the number of animation frame callbacks waiting to run.
func (w *Window) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

func (w *Window) behavior(src string) (ImageBehavior, [2]int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.images[src], w.sizes[src]
}

type Document struct {
	Elements map[string]*Element
}

func (d *Document) ElementByID(id string) (platform.Element, bool) {
	el, ok := d.Elements[id]
	if !ok {
		return nil, false
	}
	return el, true
}

type Element struct {
	// Ctx is nil for elements that are not drawable.
	Ctx *Context
}

func (e *Element) Context(kind string) (platform.Context2D, bool) {
	if e.Ctx == nil || kind != "2d" {
		return nil, false
	}
	return e.Ctx, true
}

type Image struct {
	win *Window

	mu      sync.Mutex
	onLoad  func()
	onError func(error)
	src     string
	size    [2]int
	// FiredBeforeHandlers records a source set before both handlers.
	FiredBeforeHandlers bool
}

func (i *Image) SetOnLoad(f func()) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.onLoad = f
}

func (i *Image) SetOnError(f func(error)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.onError = f
}

func (i *Image) SetSrc(src string) {
	b, size := i.win.behavior(src)
	i.mu.Lock()
	i.src = src
	i.size = size
	onLoad, onError := i.onLoad, i.onError
	if onLoad == nil || onError == nil {
		i.FiredBeforeHandlers = true
	}
	i.mu.Unlock()

	load := func() {
		if onLoad != nil {
			onLoad()
		}
	}
	fail := func() {
		if onError != nil {
			onError(fmt.Errorf("%s: %w", src, ErrDecode))
		}
	}
	switch b {
	case LoadSync:
		load()
	case FailSync:
		fail()
	case FailAsync:
		go fail()
	case LoadTwice:
		go func() { load(); load() }()
	case FailThenLoad:
		go func() { fail(); load() }()
	case LoadThenFail:
		go func() { load(); fail() }()
	default:
		go load()
	}
}

func (i *Image) Src() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.src
}

func (i *Image) Size() (int, int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.size[0], i.size[1]
}

// DrawCall is a recorded Context2D operation.
type DrawCall struct {
	Op   string
	Src  string
	Args []float64
}

type Context struct {
	mu    sync.Mutex
	calls []DrawCall
}

func (c *Context) record(op string, img platform.Image, args ...float64) {
	var src string
	if img != nil {
		src = img.Src()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, DrawCall{Op: op, Src: src, Args: args})
}

func (c *Context) DrawImage(img platform.Image, dx, dy float64) error {
	c.record("DrawImage", img, dx, dy)
	return nil
}

func (c *Context) DrawImageRect(img platform.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) error {
	c.record("DrawImageRect", img, sx, sy, sw, sh, dx, dy, dw, dh)
	return nil
}

func (c *Context) ClearRect(x, y, w, h float64) error {
	c.record("ClearRect", nil, x, y, w, h)
	return nil
}

// Calls returns the draw calls recorded so far.
func (c *Context) Calls() []DrawCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]DrawCall(nil), c.calls...)
}

// Reset forgets the recorded draw calls.
func (c *Context) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = nil
}
