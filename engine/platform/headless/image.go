package headless

import (
	"fmt"
	"image"
	"sync"

	"github.com/spaghettifunk/walkthedog/engine/core"
	"github.com/spaghettifunk/walkthedog/engine/renderer/metadata"
)

// Image implements platform.Image over the window's asset manager. An image
// already decoded reports from within SetSrc; otherwise it is decoded on a
// worker and reported from the event loop.
type Image struct {
	window *Window

	mu      sync.Mutex
	onLoad  func()
	onError func(error)
	src     string
	data    image.Image
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
	i.mu.Lock()
	i.src = src
	i.data = nil
	i.mu.Unlock()

	if r, ok := i.window.assets.Cached(src, metadata.ResourceTypeImage); ok {
		core.LogDebug("image %q served from cache", src)
		i.loaded(src, r.Data.(image.Image))
		return
	}

	var decoded image.Image
	i.window.jobs.submit(job{
		Run: func() error {
			r, err := i.window.assets.LoadAsset(src, metadata.ResourceTypeImage)
			if err != nil {
				return err
			}
			decoded = r.Data.(image.Image)
			return nil
		},
		OnSuccess: func() {
			i.window.post(func() { i.loaded(src, decoded) })
		},
		OnFailure: func(err error) {
			i.window.post(func() { i.failed(src, err) })
		},
	})
}

func (i *Image) loaded(src string, img image.Image) {
	i.mu.Lock()
	if i.src != src {
		// The source changed while decoding; the newer load reports.
		i.mu.Unlock()
		return
	}
	i.data = img
	cb := i.onLoad
	i.mu.Unlock()
	if cb != nil {
		cb()
	}
}

func (i *Image) failed(src string, err error) {
	i.mu.Lock()
	if i.src != src {
		i.mu.Unlock()
		return
	}
	cb := i.onError
	i.mu.Unlock()
	if cb != nil {
		cb(fmt.Errorf("%s: %w", src, err))
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
	if i.data == nil {
		return 0, 0
	}
	b := i.data.Bounds()
	return b.Dx(), b.Dy()
}

// pixels returns the decoded image, or nil while it is not loaded.
func (i *Image) pixels() image.Image {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.data
}
