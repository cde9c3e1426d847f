package renderer

import "image/color"

// Op names recorded by Recorder.
const (
	OpFillRect      = "fill_rect"
	OpFillGradientV = "fill_gradient_v"
	OpFillTriangle  = "fill_triangle"
	OpFillCircle    = "fill_circle"
	OpStrokeCircle  = "stroke_circle"
	OpLine          = "line"
	OpFillEllipse   = "fill_ellipse"
)

// DrawCall is one recorded canvas call.
type DrawCall struct {
	Op     string
	Points []Vec2
	Width  float64 // Line width, rect width or ellipse x radius
	Height float64 // Rect height or ellipse y radius
	Radius float64
	Color  color.RGBA
}

// Recorder is an in-memory canvas that records every call.
// It backs headless runs and render tests.
type Recorder struct {
	W, H  float64
	Calls []DrawCall
}

// NewRecorder creates a recorder with the given surface size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

// Reset drops recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Filter returns the calls of op in order.
func (r *Recorder) Filter(op string) []DrawCall {
	var out []DrawCall
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) FillRect(x, y, w, h float64, c color.RGBA) {
	r.Calls = append(r.Calls, DrawCall{Op: OpFillRect, Points: []Vec2{{X: x, Y: y}}, Width: w, Height: h, Color: c})
}

func (r *Recorder) FillGradientV(x, y, w, h float64, stops []GradientStop) {
	var c color.RGBA
	if len(stops) > 0 {
		c = stops[0].Color
	}
	r.Calls = append(r.Calls, DrawCall{Op: OpFillGradientV, Points: []Vec2{{X: x, Y: y}}, Width: w, Height: h, Color: c})
}

func (r *Recorder) FillTriangle(a, b, c Vec2, col color.RGBA) {
	r.Calls = append(r.Calls, DrawCall{Op: OpFillTriangle, Points: []Vec2{a, b, c}, Color: col})
}

func (r *Recorder) FillCircle(center Vec2, radius float64, c color.RGBA) {
	r.Calls = append(r.Calls, DrawCall{Op: OpFillCircle, Points: []Vec2{center}, Radius: radius, Color: c})
}

func (r *Recorder) StrokeCircle(center Vec2, radius, width float64, c color.RGBA) {
	r.Calls = append(r.Calls, DrawCall{Op: OpStrokeCircle, Points: []Vec2{center}, Radius: radius, Width: width, Color: c})
}

func (r *Recorder) Line(from, to Vec2, width float64, c color.RGBA) {
	r.Calls = append(r.Calls, DrawCall{Op: OpLine, Points: []Vec2{from, to}, Width: width, Color: c})
}

func (r *Recorder) FillEllipse(center Vec2, rx, ry float64, c color.RGBA) {
	r.Calls = append(r.Calls, DrawCall{Op: OpFillEllipse, Points: []Vec2{center}, Width: rx, Height: ry, Color: c})
}
