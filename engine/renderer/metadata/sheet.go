package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spaghettifunk/walkthedog/engine/core"
)

/** @brief A sub-region of a sprite sheet image in source pixel space. */
type Rect struct {
	X uint16 `json:"x"`
	Y uint16 `json:"y"`
	W uint16 `json:"w"`
	H uint16 `json:"h"`
}

/** @brief A named entry of a sprite sheet. */
type Cell struct {
	Frame Rect `json:"frame"`
}

/**
 * @brief A sprite sheet index: frame names mapped to the cell they occupy.
 * Read only once decoded.
 */
type Sheet struct {
	Frames map[string]Cell `json:"frames"`
}

// LookupError is returned for a frame name absent from a sheet.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("cell %q not found in sprite sheet", e.Name)
}

func (e *LookupError) Is(target error) bool {
	return target == core.ErrLookup
}

// Cell returns the cell stored under name.
func (s *Sheet) Cell(name string) (Cell, error) {
	if s != nil {
		if c, ok := s.Frames[name]; ok {
			return c, nil
		}
	}
	return Cell{}, &LookupError{Name: name}
}

// Names returns the frame names in lexical order.
func (s *Sheet) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Frames))
	for n := range s.Frames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// wire forms with pointer fields so absent members can be told apart
// from zero values.
type (
	wireSheet struct {
		Frames *map[string]wireCell `json:"frames"`
	}
	wireCell struct {
		Frame *wireRect `json:"frame"`
	}
	wireRect struct {
		X *uint16 `json:"x"`
		Y *uint16 `json:"y"`
		W *uint16 `json:"w"`
		H *uint16 `json:"h"`
	}
)

// ErrMissingField is wrapped by decode errors for absent required members.
var ErrMissingField = errors.New("missing required field")

// UnmarshalJSON decodes a sheet, rejecting documents that lack frames,
// a frame rectangle or any of its coordinates. Unknown members are ignored.
func (s *Sheet) UnmarshalJSON(data []byte) error {
	var w wireSheet
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Frames == nil {
		return fmt.Errorf("sprite sheet: frames: %w", ErrMissingField)
	}
	frames := make(map[string]Cell, len(*w.Frames))
	for name, c := range *w.Frames {
		if c.Frame == nil {
			return fmt.Errorf("sprite sheet: %q: frame: %w", name, ErrMissingField)
		}
		r := c.Frame
		for _, f := range []struct {
			name string
			v    *uint16
		}{{"x", r.X}, {"y", r.Y}, {"w", r.W}, {"h", r.H}} {
			if f.v == nil {
				return fmt.Errorf("sprite sheet: %q: frame.%s: %w", name, f.name, ErrMissingField)
			}
		}
		frames[name] = Cell{Frame: Rect{X: *r.X, Y: *r.Y, W: *r.W, H: *r.H}}
	}
	s.Frames = frames
	return nil
}

// ParseSheet decodes a sprite sheet JSON document.
func ParseSheet(data []byte) (*Sheet, error) {
	var s Sheet
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
