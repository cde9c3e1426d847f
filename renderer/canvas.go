// Package renderer draws the reef onto a 2D canvas.
package renderer

import (
	"image/color"
	"math"
)

// Canvas is a 2D drawing surface in pixel coordinates, y pointing down.
type Canvas interface {
	// Size returns the backing surface size in pixels.
	Size() (width, height float64)
	FillRect(x, y, w, h float64, c color.RGBA)
	// FillGradientV fills a rectangle with a vertical gradient through the stops.
	FillGradientV(x, y, w, h float64, stops []GradientStop)
	FillTriangle(a, b, c Vec2, col color.RGBA)
	FillCircle(center Vec2, radius float64, c color.RGBA)
	StrokeCircle(center Vec2, radius, width float64, c color.RGBA)
	// Line draws a round-capped segment.
	Line(from, to Vec2, width float64, c color.RGBA)
	FillEllipse(center Vec2, rx, ry float64, c color.RGBA)
}

// Vec2 is a canvas position.
type Vec2 struct {
	X, Y float64
}

// GradientStop is a color at an offset in [0, 1].
type GradientStop struct {
	Offset float64
	Color  color.RGBA
}

// Transform is a scale followed by a translation.
type Transform struct {
	ScaleX, ScaleY float64
	OffsetX        float64
	OffsetY        float64
}

// Identity is the no-op transform.
var Identity = Transform{ScaleX: 1, ScaleY: 1}

// Apply maps a point through the transform.
func (t Transform) Apply(x, y float64) Vec2 {
	return Vec2{X: x*t.ScaleX + t.OffsetX, Y: y*t.ScaleY + t.OffsetY}
}

// Translate returns t followed by a translation in output space.
func (t Transform) Translate(dx, dy float64) Transform {
	t.OffsetX += dx
	t.OffsetY += dy
	return t
}

// LineScale returns the factor applied to line widths.
func (t Transform) LineScale() float64 {
	return math.Sqrt(math.Abs(t.ScaleX * t.ScaleY))
}

// RGBA builds a color from 0-255 channels and a 0-1 alpha.
func RGBA(r, g, b uint8, alpha float64) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: alphaByte(alpha)}
}

// Hex builds an opaque color from 0xRRGGBB.
func Hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// HSLA builds a color from hue in degrees, saturation/lightness in [0,1] and alpha.
func HSLA(h, s, l, alpha float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.RGBA{
		R: channel(r + m),
		G: channel(g + m),
		B: channel(b + m),
		A: alphaByte(alpha),
	}
}

// WithAlpha returns c with its alpha replaced.
func WithAlpha(c color.RGBA, alpha float64) color.RGBA {
	c.A = alphaByte(alpha)
	return c
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func alphaByte(a float64) uint8 {
	return uint8(math.Round(clamp01(a) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
