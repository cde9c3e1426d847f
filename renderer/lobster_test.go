package renderer

import (
	"math"
	"testing"

	"github.com/pthm-cable/reef/drawing"
	"github.com/pthm-cable/reef/systems"
)

func testLobster() systems.Lobster {
	return systems.Lobster{
		Drawing: drawing.Drawing{
			ID: "a",
			Layers: drawing.Layers{
				Tail:      []drawing.Stroke{{Points: []drawing.Point{{X: 150, Y: 240}, {X: 150, Y: 0}}, Size: 3}},
				LeftClaw:  []drawing.Stroke{{Points: []drawing.Point{{X: 0, Y: 120}, {X: 10, Y: 120}}, Size: 3}},
				RightClaw: []drawing.Stroke{{Points: []drawing.Point{{X: 290, Y: 120}, {X: 300, Y: 120}}, Size: 3}},
			},
		},
		X:     400,
		Speed: 40,
	}
}

func TestLobsterTransformPlantsFeet(t *testing.T) {
	p := systems.DefaultParams()
	l := testLobster()
	tr := LobsterTransform(l, 600, p)

	feet := tr.Apply(drawing.Width/2, drawing.Height)
	if math.Abs(feet.X-400) > 1e-9 || math.Abs(feet.Y-600) > 1e-9 {
		t.Errorf("bottom-center maps to %v, want (400, 600)", feet)
	}
	top := tr.Apply(0, 0)
	if math.Abs(top.X-360) > 1e-9 || math.Abs(top.Y-536) > 1e-9 {
		t.Errorf("top-left maps to %v, want (360, 536)", top)
	}

	l.JumpHeight = 30
	lifted := LobsterTransform(l, 600, p).Apply(drawing.Width/2, drawing.Height)
	if math.Abs(lifted.Y-570) > 1e-9 {
		t.Errorf("airborne feet y = %v, want 570", lifted.Y)
	}
}

func TestDrawLobsterShadowOnlyWhenHigh(t *testing.T) {
	p := systems.DefaultParams()
	l := testLobster()

	for _, h := range []float64{0, 5} {
		l.JumpHeight = h
		rec := NewRecorder(800, 800)
		DrawLobster(rec, l, 600, p, red)
		if n := rec.Count(OpFillEllipse); n != 0 {
			t.Errorf("height %v: shadows = %d, want 0", h, n)
		}
	}

	l.JumpHeight = 40
	rec := NewRecorder(800, 800)
	DrawLobster(rec, l, 600, p, red)
	shadows := rec.Filter(OpFillEllipse)
	if len(shadows) != 1 {
		t.Fatalf("shadows = %d, want 1", len(shadows))
	}
	s := shadows[0]
	if s.Points[0] != (Vec2{X: 400, Y: 600}) {
		t.Errorf("shadow center = %v, want on the floor below the lobster", s.Points[0])
	}
	if want := 80 * 0.35 * 0.8; math.Abs(s.Width-want) > 1e-9 {
		t.Errorf("shadow rx = %v, want %v", s.Width, want)
	}
	if rec.Calls[0].Op != OpFillEllipse {
		t.Error("shadow must be drawn beneath the strokes")
	}
}

func TestShadowScaleFloor(t *testing.T) {
	tests := []struct {
		h, want float64
	}{
		{10, 0.95},
		{100, 0.5},
		{140, 0.3},
		{1000, 0.3},
	}
	for _, tt := range tests {
		if got := ShadowScale(tt.h); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ShadowScale(%v) = %v, want %v", tt.h, got, tt.want)
		}
	}
}

func TestDrawLobsterClawsPaddleOpposite(t *testing.T) {
	p := systems.DefaultParams()
	l := testLobster()
	l.LegPhase = 0.25 // sin peaks: offset +4 in drawing space

	rec := NewRecorder(800, 800)
	DrawLobster(rec, l, 600, p, red)

	lines := rec.Filter(OpLine)
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	sy := p.Height / drawing.Height
	base := LobsterTransform(l, 600, p).Apply(0, 120).Y

	left, tail, right := lines[0], lines[1], lines[2]
	if d := left.Points[0].Y - base; math.Abs(d-4*sy) > 1e-9 {
		t.Errorf("left claw offset = %v, want %v", d, 4*sy)
	}
	if d := right.Points[0].Y - base; math.Abs(d+4*sy) > 1e-9 {
		t.Errorf("right claw offset = %v, want %v", d, -4*sy)
	}
	if math.Abs(tail.Points[0].Y-600) > 1e-9 {
		t.Errorf("tail base y = %v, want unshifted 600", tail.Points[0].Y)
	}
}
