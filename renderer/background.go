package renderer

import (
	"image/color"

	"github.com/pthm-cable/reef/systems"
)

// Palette
var (
	waterStops = []GradientStop{
		{Offset: 0, Color: Hex(0x0a3d5c)},
		{Offset: 0.3, Color: Hex(0x0c4a6e)},
		{Offset: 0.6, Color: Hex(0x0e3558)},
		{Offset: 1, Color: Hex(0x071e3d)},
	}
	sandStops = []GradientStop{
		{Offset: 0, Color: Hex(0x3a6070)},
		{Offset: 0.03, Color: Hex(0x8a7b60)},
		{Offset: 0.28, Color: Hex(0x7a6b50)},
		{Offset: 1, Color: Hex(0x5a4b3a)},
	}
	rayColor     = Hex(0x7ec8e3)
	speckleColor = RGBA(180, 160, 120, 0.15)
	bubbleFill   = RGBA(150, 210, 255, 0.15)
	bubbleRim    = RGBA(180, 220, 255, 0.2)
)

// seaweedSteps is the number of line segments approximating each curve.
const seaweedSteps = 6

// BackgroundRenderer draws the water, light, flora, sand and bubbles of a scene.
type BackgroundRenderer struct {
	scene *systems.Scene
}

// NewBackgroundRenderer creates a renderer over the given scene state.
func NewBackgroundRenderer(scene *systems.Scene) *BackgroundRenderer {
	return &BackgroundRenderer{scene: scene}
}

// Scene returns the scene this renderer draws.
func (b *BackgroundRenderer) Scene() *systems.Scene {
	return b.scene
}

// Draw renders the full background for simulated time t (seconds).
// Decorations regenerate first if the canvas size changed, and bubbles
// advance one tick per call. Returns true if the scene regenerated.
func (b *BackgroundRenderer) Draw(c Canvas, width, height, t, floorY float64) bool {
	regenerated := b.scene.Sync(width, height, floorY)

	c.FillGradientV(0, 0, width, height, waterStops)

	for _, ray := range systems.LightRays(width, t, b.scene.Params().LightRays) {
		col := WithAlpha(rayColor, ray.Alpha)
		tl := Vec2{X: ray.TopLeft, Y: 0}
		tr := Vec2{X: ray.TopRight, Y: 0}
		br := Vec2{X: ray.BottomRight, Y: ray.Depth}
		bl := Vec2{X: ray.BottomLeft, Y: ray.Depth}
		c.FillTriangle(tl, tr, br, col)
		c.FillTriangle(tl, br, bl, col)
	}

	// Seaweed sits behind the lobsters and the sand edge
	for _, sw := range b.scene.Seaweeds {
		for _, seg := range systems.SeaweedSegments(sw, floorY, t) {
			drawQuadratic(c, seg, HSLA(sw.Hue, 0.5, seg.Lightness, seg.Alpha))
		}
	}

	c.FillGradientV(0, floorY, width, height-floorY, sandStops)

	for _, p := range b.scene.SandSpeckles(width, height, floorY) {
		c.FillCircle(Vec2{X: p[0], Y: p[1]}, 1, speckleColor)
	}

	b.scene.AdvanceBubbles(width, floorY)
	for _, bub := range b.scene.Bubbles {
		center := Vec2{X: bub.X + systems.BubbleWobble(bub, t), Y: bub.Y}
		c.FillCircle(center, bub.Size, bubbleFill)
		c.StrokeCircle(center, bub.Size, 0.5, bubbleRim)
	}

	return regenerated
}

// drawQuadratic approximates a quadratic Bezier seaweed segment with lines.
func drawQuadratic(c Canvas, seg systems.SeaweedSegment, col color.RGBA) {
	prev := Vec2{X: seg.BaseX, Y: seg.BaseY}
	for i := 1; i <= seaweedSteps; i++ {
		t := float64(i) / seaweedSteps
		u := 1 - t
		next := Vec2{
			X: u*u*seg.BaseX + 2*u*t*seg.CtrlX + t*t*seg.TipX,
			Y: u*u*seg.BaseY + 2*u*t*seg.CtrlY + t*t*seg.TipY,
		}
		c.Line(prev, next, seg.Width, col)
		prev = next
	}
}
