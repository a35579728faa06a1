package systems

import (
	"context"
	"fmt"

	"github.com/spaghettifunk/walkthedog/engine/core"
	"github.com/spaghettifunk/walkthedog/engine/platform"
	"github.com/spaghettifunk/walkthedog/engine/signal"
)

// LoadError reports an image the host failed to decode.
type LoadError struct {
	Src string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load image %q: %v", e.Src, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool {
	return target == core.ErrLoad
}

// ImageSystem produces host images that are decoded and ready to draw.
type ImageSystem struct {
	window platform.Window
}

func NewImageSystem(w platform.Window) *ImageSystem {
	return &ImageSystem{window: w}
}

// Load creates an image handle for src and suspends until the host reports
// it decoded or failed. Calls are independent; callers needing an order
// between loads must wait for one before starting the next.
func (is *ImageSystem) Load(ctx context.Context, src string) (platform.Image, error) {
	trace := core.NewTraceID()
	img, err := is.window.NewImage()
	if err != nil {
		return nil, &LoadError{Src: src, Err: err}
	}

	sig := signal.New[struct{}]()
	img.SetOnLoad(func() { sig.Succeed(struct{}{}) })
	img.SetOnError(func(err error) { sig.Fail(err) })

	// Both handlers are in place before the source is set: a cached image
	// may report from within SetSrc.
	core.LogDebug("loading image %q (trace %s)", src, trace)
	img.SetSrc(src)

	if _, err := sig.Wait(ctx); err != nil {
		if ctx.Err() != nil && err == ctx.Err() {
			return nil, err
		}
		core.LogError("image %q failed to load (trace %s): %v", src, trace, err)
		return nil, &LoadError{Src: src, Err: err}
	}
	w, h := img.Size()
	core.LogDebug("image %q loaded %dx%d (trace %s)", src, w, h, trace)
	return img, nil
}
