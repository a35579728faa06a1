package core

import (
	"errors"
)

var (
	// ErrNotFound reports a missing window, document, canvas element or
	// 2D context. There is no recovery from it.
	ErrNotFound = errors.New("not found")
	// ErrFetch is the kind shared by every resource fetch failure.
	ErrFetch = errors.New("fetch failed")
	// ErrLoad reports an image the host failed to decode.
	ErrLoad = errors.New("image load failed")
	// ErrLookup reports a frame name absent from a sprite sheet.
	ErrLookup = errors.New("frame not found")
)
