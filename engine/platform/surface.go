package platform

import (
	"fmt"

	"github.com/spaghettifunk/walkthedog/engine/core"
)

const (
	DefaultCanvasID = "canvas"
	contextKind2D   = "2d"
)

// Context finds the canvas element with the given id and returns its 2D
// drawing context. The result is meant to be obtained once and passed to
// whatever draws.
func Context(host Host, canvasID string) (Context2D, error) {
	if host == nil {
		return nil, fmt.Errorf("no host: %w", core.ErrNotFound)
	}
	w, ok := host.Window()
	if !ok {
		return nil, fmt.Errorf("no window found: %w", core.ErrNotFound)
	}
	doc, ok := w.Document()
	if !ok {
		return nil, fmt.Errorf("no document found: %w", core.ErrNotFound)
	}
	el, ok := doc.ElementByID(canvasID)
	if !ok {
		return nil, fmt.Errorf("no canvas element found with id %q: %w", canvasID, core.ErrNotFound)
	}
	ctx, ok := el.Context(contextKind2D)
	if !ok {
		return nil, fmt.Errorf("element %q has no %s context: %w", canvasID, contextKind2D, core.ErrNotFound)
	}
	return ctx, nil
}
