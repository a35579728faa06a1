package metadata

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spaghettifunk/walkthedog/engine/core"
)

const rhbSheet = `{
	"frames": {
		"Run (1).png": {"frame": {"x": 0, "y": 0, "w": 64, "h": 64}, "rotated": false},
		"Run (2).png": {"frame": {"x": 64, "y": 0, "w": 64, "h": 64}},
		"Idle (1).png": {"frame": {"x": 65535, "y": 12, "w": 1, "h": 2}}
	},
	"meta": {"app": "TexturePacker"}
}`

func TestParseSheet(t *testing.T) {
	s, err := ParseSheet([]byte(rhbSheet))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &Sheet{Frames: map[string]Cell{
		"Run (1).png":  {Frame: Rect{X: 0, Y: 0, W: 64, H: 64}},
		"Run (2).png":  {Frame: Rect{X: 64, Y: 0, W: 64, H: 64}},
		"Idle (1).png": {Frame: Rect{X: 65535, Y: 12, W: 1, H: 2}},
	}}
	if !cmp.Equal(want, s) {
		t.Errorf("unexpected sheet:\n--- want:\n+++ got:\n%s", cmp.Diff(want, s))
	}
}

func TestParseSheetErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		missing bool
	}{
		{name: "not_json", doc: `frames`},
		{name: "no_frames", doc: `{"meta": {}}`, missing: true},
		{name: "null_frames", doc: `{"frames": null}`, missing: true},
		{name: "no_frame", doc: `{"frames": {"a": {}}}`, missing: true},
		{name: "no_h", doc: `{"frames": {"a": {"frame": {"x": 0, "y": 0, "w": 1}}}}`, missing: true},
		{name: "negative", doc: `{"frames": {"a": {"frame": {"x": -1, "y": 0, "w": 1, "h": 1}}}}`},
		{name: "too_wide", doc: `{"frames": {"a": {"frame": {"x": 65536, "y": 0, "w": 1, "h": 1}}}}`},
		{name: "fractional", doc: `{"frames": {"a": {"frame": {"x": 1.5, "y": 0, "w": 1, "h": 1}}}}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, err := ParseSheet([]byte(test.doc))
			if err == nil {
				t.Fatalf("expected error, got sheet %+v", s)
			}
			if got := errors.Is(err, ErrMissingField); got != test.missing {
				t.Errorf("unexpected missing field classification for %v: got:%t want:%t", err, got, test.missing)
			}
		})
	}
}

func TestSheetCell(t *testing.T) {
	s, err := ParseSheet([]byte(rhbSheet))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for name, want := range s.Frames {
		got, err := s.Cell(name)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", name, err)
		}
		if got != want {
			t.Errorf("unexpected cell for %q: got:%+v want:%+v", name, got, want)
		}
	}

	for _, name := range []string{"Does Not Exist.png", "", "run (1).png"} {
		got, err := s.Cell(name)
		if !errors.Is(err, core.ErrLookup) {
			t.Errorf("unexpected error for %q: got:%v want:%v", name, err, core.ErrLookup)
		}
		var lerr *LookupError
		if !errors.As(err, &lerr) || lerr.Name != name {
			t.Errorf("unexpected lookup error for %q: %#v", name, err)
		}
		if got != (Cell{}) {
			t.Errorf("lookup of %q returned a cell: %+v", name, got)
		}
	}

	var nilSheet *Sheet
	if _, err := nilSheet.Cell("Run (1).png"); !errors.Is(err, core.ErrLookup) {
		t.Errorf("unexpected error from nil sheet: %v", err)
	}
}

func TestSheetNames(t *testing.T) {
	s, err := ParseSheet([]byte(rhbSheet))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Idle (1).png", "Run (1).png", "Run (2).png"}
	if got := s.Names(); !cmp.Equal(want, got) {
		t.Errorf("unexpected names:\n--- want:\n+++ got:\n%s", cmp.Diff(want, got))
	}
}
