// Package platform describes the host environment the engine draws into:
// a window with a document holding the canvas, an animation frame facility,
// image decoding and resource fetching. The web package binds these to the
// browser through syscall/js and the headless package implements them natively.
package platform

import (
	"context"
)

// Host is the entry into the host environment.
type Host interface {
	// Window returns the global window, if the host has one.
	Window() (Window, bool)
}

type Window interface {
	FrameRequester

	// Document returns the window's document, if it has one.
	Document() (Document, bool)
	// NewImage creates a fresh, unloaded image handle.
	NewImage() (Image, error)
	// Fetch requests the resource at path, resolved relative to the hosting page.
	Fetch(ctx context.Context, path string) (*Response, error)
}

// FrameCallback receives the host timestamp of the frame in milliseconds.
type FrameCallback func(timestampMs float64)

// FrameRequester is the host animation frame facility. A request fires its
// callback once; it does not repeat.
type FrameRequester interface {
	RequestAnimationFrame(cb FrameCallback) (int, error)
}

type Document interface {
	ElementByID(id string) (Element, bool)
}

type Element interface {
	// Context returns the drawing context of the given kind, if the element
	// supports one.
	Context(kind string) (Context2D, bool)
}

// Context2D is the subset of a 2D canvas context the engine draws with.
type Context2D interface {
	// DrawImage draws the whole image with its top-left corner at (dx, dy).
	DrawImage(img Image, dx, dy float64) error
	// DrawImageRect draws the source rectangle (sx, sy, sw, sh) of img into
	// the destination rectangle (dx, dy, dw, dh).
	DrawImageRect(img Image, sx, sy, sw, sh, dx, dy, dw, dh float64) error
	ClearRect(x, y, w, h float64) error
}

// Image is a host image handle. Exactly one of the load or error handlers is
// expected to fire after the source is set, though hosts do not guarantee
// it. Handlers must be set before the source.
type Image interface {
	SetOnLoad(func())
	SetOnError(func(error))
	SetSrc(src string)
	Src() string
	Size() (width, height int)
}

// Response is a completed fetch.
type Response struct {
	Path   string
	Status int
	OK     bool
	Body   []byte
}
