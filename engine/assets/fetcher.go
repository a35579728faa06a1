package assets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spaghettifunk/walkthedog/engine/core"
	"github.com/spaghettifunk/walkthedog/engine/platform"
	"github.com/spaghettifunk/walkthedog/engine/renderer/metadata"
)

// FetchErrorKind tells apart the two stages a fetch can fail at.
type FetchErrorKind int

const (
	// NetworkError is a failed request or a non-OK response.
	NetworkError FetchErrorKind = iota + 1
	// DecodeError is a response body that could not be decoded.
	DecodeError
)

func (k FetchErrorKind) String() string {
	switch k {
	case NetworkError:
		return "network"
	case DecodeError:
		return "decode"
	default:
		return "unknown"
	}
}

type FetchError struct {
	Kind FetchErrorKind
	Path string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s error: %v", e.Path, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool {
	return target == core.ErrFetch
}

// Fetcher retrieves named resources through the host window. It does not
// retry and imposes no timeout beyond the host's own.
type Fetcher struct {
	window platform.Window
}

func NewFetcher(w platform.Window) *Fetcher {
	return &Fetcher{window: w}
}

// FetchBytes suspends until the host responds with the resource at path.
func (f *Fetcher) FetchBytes(ctx context.Context, path string) (*platform.Response, error) {
	trace := core.NewTraceID()
	core.LogDebug("fetching %q (trace %s)", path, trace)

	resp, err := f.window.Fetch(ctx, path)
	if err != nil {
		return nil, &FetchError{Kind: NetworkError, Path: path, Err: err}
	}
	if !resp.OK {
		return nil, &FetchError{Kind: NetworkError, Path: path, Err: fmt.Errorf("status %d", resp.Status)}
	}
	core.LogDebug("fetched %q: %d bytes (trace %s)", path, len(resp.Body), trace)
	return resp, nil
}

// FetchJSON fetches path and decodes its body into v.
func (f *Fetcher) FetchJSON(ctx context.Context, path string, v any) error {
	resp, err := f.FetchBytes(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return &FetchError{Kind: DecodeError, Path: path, Err: err}
	}
	return nil
}

// FetchSheet fetches and decodes the sprite sheet index at path.
func (f *Fetcher) FetchSheet(ctx context.Context, path string) (*metadata.Sheet, error) {
	var s metadata.Sheet
	if err := f.FetchJSON(ctx, path, &s); err != nil {
		return nil, err
	}
	core.LogInfo("sprite sheet %q loaded with %d frames", path, len(s.Frames))
	return &s, nil
}
