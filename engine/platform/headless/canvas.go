package headless

import (
	"errors"
	"image"
	"image/png"
	"io"
	stdmath "math"
	"sync"

	"golang.org/x/image/draw"

	"github.com/spaghettifunk/walkthedog/engine/math"
	"github.com/spaghettifunk/walkthedog/engine/platform"
)

// ErrNotLoaded is returned when drawing an image that has not finished
// loading.
var ErrNotLoaded = errors.New("image not loaded")

// ErrForeignImage is returned when drawing an image created by another host.
var ErrForeignImage = errors.New("image does not belong to the headless host")

// Canvas is the canvas element and its 2D context.
type Canvas struct {
	mu  sync.Mutex
	dst *image.RGBA
}

func newCanvas(width, height int) *Canvas {
	return &Canvas{dst: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (c *Canvas) Context(kind string) (platform.Context2D, bool) {
	if kind != "2d" {
		return nil, false
	}
	return c, true
}

func source(img platform.Image) (image.Image, error) {
	hi, ok := img.(*Image)
	if !ok {
		return nil, ErrForeignImage
	}
	src := hi.pixels()
	if src == nil {
		return nil, ErrNotLoaded
	}
	return src, nil
}

func (c *Canvas) DrawImage(img platform.Image, dx, dy float64) error {
	src, err := source(img)
	if err != nil {
		return err
	}
	b := src.Bounds()
	dr := image.Rect(0, 0, b.Dx(), b.Dy()).Add(pt(dx, dy))

	c.mu.Lock()
	defer c.mu.Unlock()
	draw.Draw(c.dst, dr, src, b.Min, draw.Over)
	return nil
}

func (c *Canvas) DrawImageRect(img platform.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) error {
	src, err := source(img)
	if err != nil {
		return err
	}
	b := src.Bounds()
	sr := image.Rect(
		math.Clamp(round(sx), 0, b.Dx()),
		math.Clamp(round(sy), 0, b.Dy()),
		math.Clamp(round(sx+sw), 0, b.Dx()),
		math.Clamp(round(sy+sh), 0, b.Dy()),
	).Add(b.Min)
	dst := math.NewRect(dx, dy, dw, dh)
	if sr.Empty() || dst.Empty() {
		return nil
	}
	dr := pixelRect(dst)
	if dr.Empty() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if sr.Dx() == dr.Dx() && sr.Dy() == dr.Dy() {
		draw.Draw(c.dst, dr, src, sr.Min, draw.Over)
		return nil
	}
	draw.NearestNeighbor.Scale(c.dst, dr, src, sr, draw.Over, nil)
	return nil
}

func (c *Canvas) ClearRect(x, y, w, h float64) error {
	r := pixelRect(math.NewRect(x, y, w, h))
	c.mu.Lock()
	defer c.mu.Unlock()
	draw.Draw(c.dst, r, image.Transparent, image.Point{}, draw.Src)
	return nil
}

// Snapshot returns a copy of the canvas pixels.
func (c *Canvas) Snapshot() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := image.NewRGBA(c.dst.Bounds())
	copy(cp.Pix, c.dst.Pix)
	return cp
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.Snapshot())
}

func round(f float64) int {
	return int(stdmath.Round(f))
}

// pixelRect snaps r to whole pixels. Negative sizes are normalized.
func pixelRect(r math.Rect) image.Rectangle {
	lo, hi := r.Min(), r.Max()
	return image.Rect(round(lo.X), round(lo.Y), round(hi.X), round(hi.Y))
}

func pt(x, y float64) image.Point {
	return image.Pt(round(x), round(y))
}
