package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaylibCanvas draws onto the current raylib render target.
// Calls must happen between rl.BeginDrawing and rl.EndDrawing.
type RaylibCanvas struct{}

// NewRaylibCanvas creates a canvas over the raylib window.
func NewRaylibCanvas() *RaylibCanvas {
	return &RaylibCanvas{}
}

func toRL(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func vec(v Vec2) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}

// Size returns the window size in pixels.
func (r *RaylibCanvas) Size() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

// FillRect fills an axis-aligned rectangle.
func (r *RaylibCanvas) FillRect(x, y, w, h float64, c color.RGBA) {
	rl.DrawRectangleRec(rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(h)}, toRL(c))
}

// FillGradientV draws one vertical gradient band per pair of stops.
func (r *RaylibCanvas) FillGradientV(x, y, w, h float64, stops []GradientStop) {
	if len(stops) == 0 || h <= 0 {
		return
	}
	if len(stops) == 1 {
		r.FillRect(x, y, w, h, stops[0].Color)
		return
	}
	for i := 0; i+1 < len(stops); i++ {
		top := y + h*stops[i].Offset
		bottom := y + h*stops[i+1].Offset
		if bottom <= top {
			continue
		}
		// Round outward so adjacent bands leave no seams
		y0 := int32(math.Floor(top))
		y1 := int32(math.Ceil(bottom))
		rl.DrawRectangleGradientV(int32(x), y0, int32(math.Ceil(w)), y1-y0, toRL(stops[i].Color), toRL(stops[i+1].Color))
	}
}

// FillTriangle fills a triangle in any winding.
func (r *RaylibCanvas) FillTriangle(a, b, c Vec2, col color.RGBA) {
	// DrawTriangle requires counter-clockwise winding on screen
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if cross > 0 {
		b, c = c, b
	}
	rl.DrawTriangle(vec(a), vec(b), vec(c), toRL(col))
}

// FillCircle fills a circle.
func (r *RaylibCanvas) FillCircle(center Vec2, radius float64, c color.RGBA) {
	rl.DrawCircleV(vec(center), float32(radius), toRL(c))
}

// StrokeCircle draws a circle outline of the given width.
func (r *RaylibCanvas) StrokeCircle(center Vec2, radius, width float64, c color.RGBA) {
	inner := radius - width/2
	if inner < 0 {
		inner = 0
	}
	rl.DrawRing(vec(center), float32(inner), float32(radius+width/2), 0, 360, 24, toRL(c))
}

// Line draws a round-capped segment.
func (r *RaylibCanvas) Line(from, to Vec2, width float64, c color.RGBA) {
	col := toRL(c)
	rl.DrawLineEx(vec(from), vec(to), float32(width), col)
	if width > 1.5 {
		rl.DrawCircleV(vec(from), float32(width/2), col)
		rl.DrawCircleV(vec(to), float32(width/2), col)
	}
}

// FillEllipse fills an axis-aligned ellipse.
func (r *RaylibCanvas) FillEllipse(center Vec2, rx, ry float64, c color.RGBA) {
	rl.DrawEllipse(int32(center.X), int32(center.Y), float32(rx), float32(ry), toRL(c))
}
