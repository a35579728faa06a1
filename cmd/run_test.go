package cmd

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/walkthedog/engine"
	"github.com/spaghettifunk/walkthedog/engine/core"
)

var (
	green = color.RGBA{G: 0xff, A: 0xff}
	red   = color.RGBA{R: 0xff, A: 0xff}
	blue  = color.RGBA{B: 0xff, A: 0xff}
)

func writePNG(t *testing.T, path string, w, h int, fill func(x, y int) color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, fill(x, y))
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

// writeAssets lays out the idle image, a two cel run sheet with a red
// first cel and a blue second cel, and its index.
func writeAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "Idle (1).png"), 8, 8, func(int, int) color.RGBA { return green })
	writePNG(t, filepath.Join(dir, "rhb.png"), 128, 64, func(x, _ int) color.RGBA {
		if x < 64 {
			return red
		}
		return blue
	})
	sheet := `{"frames": {
		"Run (1).png": {"frame": {"x": 0, "y": 0, "w": 64, "h": 64}},
		"Run (2).png": {"frame": {"x": 64, "y": 0, "w": 64, "h": 64}}
	}}`
	if err := os.WriteFile(filepath.Join(dir, "rhb.json"), []byte(sheet), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func testConfig(dir string) *engine.ApplicationConfig {
	config := engine.DefaultApplicationConfig()
	config.AssetsDir = dir
	config.FrameRate = 240
	config.Sprites.Frames = 2
	return config
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestRunHeadless(t *testing.T) {
	tests := []struct {
		name   string
		frames uint64
		// want is the colour at the run sprite's position.
		want color.RGBA
	}{
		{name: "first_cel", frames: 1, want: red},
		{name: "second_cel", frames: 3, want: blue},
		{name: "wrapped", frames: 6, want: red},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dir := writeAssets(t)
			out := filepath.Join(t.TempDir(), "canvas.png")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := runHeadless(ctx, testConfig(dir), runOptions{frames: test.frames, out: out, workers: 2})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			img := readPNG(t, out)
			if got := color.RGBAModel.Convert(img.At(310, 310)).(color.RGBA); got != test.want {
				t.Errorf("unexpected sprite colour: got %v want %v", got, test.want)
			}
			// Every frame clears the play area, idle image included.
			if got := color.RGBAModel.Convert(img.At(2, 2)).(color.RGBA); got.A != 0 {
				t.Errorf("idle image not cleared: %v", got)
			}
		})
	}
}

func TestRunHeadlessMissingSheet(t *testing.T) {
	dir := writeAssets(t)
	if err := os.Remove(filepath.Join(dir, "rhb.json")); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "canvas.png")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := runHeadless(ctx, testConfig(dir), runOptions{frames: 1, out: out, workers: 2})
	if !errors.Is(err, core.ErrFetch) {
		t.Errorf("unexpected error: got %v want %v", err, core.ErrFetch)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("canvas written after a failed start: %v", err)
	}
}

func TestRunHeadlessMissingAssets(t *testing.T) {
	err := runHeadless(context.Background(), testConfig(filepath.Join(t.TempDir(), "nope")), runOptions{frames: 1})
	if err == nil {
		t.Error("expected error for a missing assets directory")
	}
}
