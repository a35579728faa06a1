package systems

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spaghettifunk/walkthedog/engine/core"
	"github.com/spaghettifunk/walkthedog/engine/math"
	"github.com/spaghettifunk/walkthedog/engine/platform"
	"github.com/spaghettifunk/walkthedog/engine/renderer/metadata"
	"github.com/spaghettifunk/walkthedog/internal/testutil"
)

func newRecordingRenderer(t *testing.T) (*RendererSystem, *testutil.Context, *testutil.Window) {
	t.Helper()
	host := testutil.NewHost(platform.DefaultCanvasID)
	ctx, err := platform.Context(host, platform.DefaultCanvasID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewRendererSystem(ctx), host.Win.Canvas(platform.DefaultCanvasID), host.Win
}

func loadedImage(t *testing.T, w *testutil.Window, src string) platform.Image {
	t.Helper()
	img, err := w.NewImage()
	if err != nil {
		t.Fatal(err)
	}
	img.SetSrc(src)
	return img
}

var runSheet = &metadata.Sheet{Frames: map[string]metadata.Cell{
	"Run (1).png": {Frame: metadata.Rect{X: 0, Y: 0, W: 64, H: 64}},
	"Run (2).png": {Frame: metadata.Rect{X: 64, Y: 0, W: 64, H: 64}},
}}

func TestDrawImage(t *testing.T) {
	rs, canvas, w := newRecordingRenderer(t)
	img := loadedImage(t, w, "Idle (1).png")

	if err := rs.DrawImage(img, 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []testutil.DrawCall{{Op: "DrawImage", Src: "Idle (1).png", Args: []float64{0, 0}}}
	if got := canvas.Calls(); !cmp.Equal(want, got) {
		t.Errorf("unexpected draw calls:\n--- want:\n+++ got:\n%s", cmp.Diff(want, got))
	}
}

func TestDrawFrame(t *testing.T) {
	rs, canvas, w := newRecordingRenderer(t)
	img := loadedImage(t, w, "rhb.png")

	if err := rs.DrawFrame(img, runSheet, "Run (1).png", math.Point{X: 300, Y: 300}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := rs.DrawFrame(img, runSheet, "Run (2).png", math.Point{X: 10, Y: 20}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []testutil.DrawCall{
		{Op: "DrawImageRect", Src: "rhb.png", Args: []float64{0, 0, 64, 64, 300, 300, 64, 64}},
		{Op: "DrawImageRect", Src: "rhb.png", Args: []float64{64, 0, 64, 64, 10, 20, 64, 64}},
	}
	if got := canvas.Calls(); !cmp.Equal(want, got) {
		t.Errorf("unexpected draw calls:\n--- want:\n+++ got:\n%s", cmp.Diff(want, got))
	}
}

func TestDrawFrameScaled(t *testing.T) {
	rs, canvas, w := newRecordingRenderer(t)
	img := loadedImage(t, w, "rhb.png")

	if err := rs.DrawFrameScaled(img, runSheet, "Run (2).png", math.NewRect(0, 0, 128, 32)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []testutil.DrawCall{
		{Op: "DrawImageRect", Src: "rhb.png", Args: []float64{64, 0, 64, 64, 0, 0, 128, 32}},
	}
	if got := canvas.Calls(); !cmp.Equal(want, got) {
		t.Errorf("unexpected draw calls:\n--- want:\n+++ got:\n%s", cmp.Diff(want, got))
	}
}

func TestDrawMissingFrame(t *testing.T) {
	rs, canvas, w := newRecordingRenderer(t)
	img := loadedImage(t, w, "rhb.png")

	err := rs.DrawFrame(img, runSheet, "Does Not Exist.png", math.Point{X: 300, Y: 300})
	if !errors.Is(err, core.ErrLookup) {
		t.Errorf("unexpected error: got:%v want:%v", err, core.ErrLookup)
	}
	err = rs.DrawFrameScaled(img, runSheet, "Does Not Exist.png", math.NewRect(0, 0, 1, 1))
	if !errors.Is(err, core.ErrLookup) {
		t.Errorf("unexpected error: got:%v want:%v", err, core.ErrLookup)
	}
	if got := canvas.Calls(); len(got) != 0 {
		t.Errorf("draw issued for a missing frame: %v", got)
	}
}

func TestClear(t *testing.T) {
	rs, canvas, _ := newRecordingRenderer(t)
	if err := rs.Clear(math.NewRect(0, 0, 600, 600)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []testutil.DrawCall{{Op: "ClearRect", Args: []float64{0, 0, 600, 600}}}
	if got := canvas.Calls(); !cmp.Equal(want, got) {
		t.Errorf("unexpected draw calls:\n--- want:\n+++ got:\n%s", cmp.Diff(want, got))
	}
}
