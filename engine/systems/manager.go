package systems

import (
	"github.com/spaghettifunk/walkthedog/engine/assets"
	"github.com/spaghettifunk/walkthedog/engine/platform"
)

// SystemManager bundles the systems a game uses once the canvas context
// has been obtained.
type SystemManager struct {
	Window         platform.Window
	Fetcher        *assets.Fetcher
	ImageSystem    *ImageSystem
	RendererSystem *RendererSystem
}

func NewSystemManager(w platform.Window, ctx platform.Context2D) *SystemManager {
	return &SystemManager{
		Window:         w,
		Fetcher:        assets.NewFetcher(w),
		ImageSystem:    NewImageSystem(w),
		RendererSystem: NewRendererSystem(ctx),
	}
}
