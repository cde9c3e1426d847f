package renderer

import (
	"image/color"
	"testing"

	"github.com/pthm-cable/reef/drawing"
)

var red = color.RGBA{R: 0xe0, G: 0x40, B: 0x20, A: 0xff}

func TestDrawStrokesSegmentsAndDots(t *testing.T) {
	strokes := []drawing.Stroke{
		{Points: nil, Size: 3},
		{Points: []drawing.Point{{X: 10, Y: 10}}, Size: 4},
		{Points: []drawing.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, Size: 2, Color: "#00ff00"},
	}
	rec := NewRecorder(100, 100)
	DrawStrokes(rec, strokes, Identity, red)

	if got := rec.Count(OpLine); got != 2 {
		t.Errorf("lines = %d, want 2", got)
	}
	dots := rec.Filter(OpFillCircle)
	if len(dots) != 1 {
		t.Fatalf("dots = %d, want 1", len(dots))
	}
	if dots[0].Radius != 2 {
		t.Errorf("dot radius = %v, want half the stroke size", dots[0].Radius)
	}
	for _, c := range rec.Calls {
		if c.Color != red {
			t.Errorf("%s drawn in %v, want override color", c.Op, c.Color)
		}
	}
}

func TestDrawStrokesAppliesTransform(t *testing.T) {
	tr := Transform{ScaleX: 2, ScaleY: 2, OffsetX: 5, OffsetY: 7}
	rec := NewRecorder(100, 100)
	DrawStrokes(rec, []drawing.Stroke{
		{Points: []drawing.Point{{X: 1, Y: 1}, {X: 3, Y: 1}}, Size: 1.5},
	}, tr, red)

	lines := rec.Filter(OpLine)
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	l := lines[0]
	if l.Points[0] != (Vec2{X: 7, Y: 9}) || l.Points[1] != (Vec2{X: 11, Y: 9}) {
		t.Errorf("segment = %v, want (7,9)-(11,9)", l.Points)
	}
	if l.Width != 3 {
		t.Errorf("width = %v, want 3", l.Width)
	}
}

func TestTransformTranslate(t *testing.T) {
	tr := Transform{ScaleX: 0.5, ScaleY: 0.5}.Translate(10, -4)
	if got := tr.Apply(20, 20); got != (Vec2{X: 20, Y: 6}) {
		t.Errorf("Apply = %v, want (20, 6)", got)
	}
}

func TestHSLA(t *testing.T) {
	tests := []struct {
		h, s, l float64
		want    color.RGBA
	}{
		{0, 1, 0.5, color.RGBA{R: 255, A: 255}},
		{120, 1, 0.5, color.RGBA{G: 255, A: 255}},
		{240, 1, 0.5, color.RGBA{B: 255, A: 255}},
		{0, 0, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{-240, 1, 0.5, color.RGBA{G: 255, A: 255}},
	}
	for _, tt := range tests {
		if got := HSLA(tt.h, tt.s, tt.l, 1); got != tt.want {
			t.Errorf("HSLA(%v,%v,%v) = %v, want %v", tt.h, tt.s, tt.l, got, tt.want)
		}
	}
	if got := RGBA(0, 0, 0, 0.15).A; got != 38 {
		t.Errorf("alpha byte = %d, want 38", got)
	}
}
