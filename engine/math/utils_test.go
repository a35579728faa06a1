package math

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("unexpected clamp high: got:%d want:3", got)
	}
	if got := Clamp(-1.5, 0, 3); got != 0 {
		t.Errorf("unexpected clamp low: got:%v want:0", got)
	}
	if got := Clamp(uint16(7), 1, 9); got != 7 {
		t.Errorf("unexpected clamp inside: got:%d want:7", got)
	}
}

func TestRect(t *testing.T) {
	r := NewRect(300, 300, 64, 64)
	if r.Empty() {
		t.Error("non-empty rect reported empty")
	}
	if got := r.Max(); got != (Point{X: 364, Y: 364}) {
		t.Errorf("unexpected max: %+v", got)
	}
	if !NewRect(0, 0, 0, 10).Empty() {
		t.Error("zero width rect not reported empty")
	}
}
