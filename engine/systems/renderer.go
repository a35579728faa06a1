package systems

import (
	"github.com/spaghettifunk/walkthedog/engine/math"
	"github.com/spaghettifunk/walkthedog/engine/platform"
	"github.com/spaghettifunk/walkthedog/engine/renderer/metadata"
)

// RendererSystem issues draw calls against the canvas context. It holds the
// one context of the process; it is handed in, never looked up.
type RendererSystem struct {
	context platform.Context2D
}

func NewRendererSystem(ctx platform.Context2D) *RendererSystem {
	return &RendererSystem{context: ctx}
}

// DrawImage draws the whole image with its top-left corner at (x, y).
func (rs *RendererSystem) DrawImage(img platform.Image, x, y float64) error {
	return rs.context.DrawImage(img, x, y)
}

// DrawFrame draws the named cell of sheet from img at dest, keeping the
// cell's extent. Nothing is drawn when the cell does not exist.
func (rs *RendererSystem) DrawFrame(img platform.Image, sheet *metadata.Sheet, name string, dest math.Point) error {
	cell, err := sheet.Cell(name)
	if err != nil {
		return err
	}
	r := cell.Frame
	return rs.DrawFrameScaled(img, sheet, name, math.Rect{X: dest.X, Y: dest.Y, W: float64(r.W), H: float64(r.H)})
}

// DrawFrameScaled draws the named cell of sheet from img into dest,
// scaling it to dest's extent.
func (rs *RendererSystem) DrawFrameScaled(img platform.Image, sheet *metadata.Sheet, name string, dest math.Rect) error {
	cell, err := sheet.Cell(name)
	if err != nil {
		return err
	}
	r := cell.Frame
	return rs.context.DrawImageRect(img,
		float64(r.X), float64(r.Y), float64(r.W), float64(r.H),
		dest.X, dest.Y, dest.W, dest.H,
	)
}

// Clear clears the given area of the canvas.
func (rs *RendererSystem) Clear(area math.Rect) error {
	return rs.context.ClearRect(area.X, area.Y, area.W, area.H)
}
