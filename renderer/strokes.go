package renderer

import (
	"image/color"

	"github.com/pthm-cable/reef/drawing"
)

// DrawStrokes draws polylines through t in a single override color.
// Widths scale with the transform. Empty strokes draw nothing and
// single-point strokes draw a dot.
func DrawStrokes(c Canvas, strokes []drawing.Stroke, t Transform, col color.RGBA) {
	ls := t.LineScale()
	for i := range strokes {
		s := &strokes[i]
		width := s.Size * ls
		switch len(s.Points) {
		case 0:
			continue
		case 1:
			c.FillCircle(t.Apply(s.Points[0].X, s.Points[0].Y), width/2, col)
			continue
		}
		prev := t.Apply(s.Points[0].X, s.Points[0].Y)
		for _, p := range s.Points[1:] {
			next := t.Apply(p.X, p.Y)
			c.Line(prev, next, width, col)
			prev = next
		}
	}
}
