package renderer

import (
	"image/color"
	"math"

	"github.com/pthm-cable/reef/drawing"
	"github.com/pthm-cable/reef/systems"
)

const (
	// shadowMinHeight is the jump height above which a shadow is drawn.
	shadowMinHeight = 5
	// clawSwing is the claw paddle amplitude in drawing-space pixels.
	clawSwing = 4
)

var shadowColor = RGBA(0, 0, 0, 0.15)

// ShadowScale returns the shadow size factor for a jump height.
func ShadowScale(jumpHeight float64) float64 {
	return math.Max(0.3, 1-jumpHeight/200)
}

// ClawOffset returns the vertical claw offset in drawing space for a leg phase.
// The left claw moves by the offset and the right claw by its negation.
func ClawOffset(legPhase float64) float64 {
	return math.Sin(legPhase*2*math.Pi) * clawSwing
}

// LobsterTransform maps drawing space onto the lobster's on-screen box,
// with the bottom-center of the drawing at the lobster's feet.
func LobsterTransform(l systems.Lobster, floorY float64, p systems.Params) Transform {
	sx := p.Width / drawing.Width
	sy := p.Height / drawing.Height
	feetY := floorY - l.JumpHeight
	return Transform{
		ScaleX:  sx,
		ScaleY:  sy,
		OffsetX: l.X - drawing.Width/2*sx,
		OffsetY: feetY - drawing.Height*sy,
	}
}

// DrawLobster draws one lobster: a ground shadow while airborne, then
// tail and claws in the single override color.
func DrawLobster(c Canvas, l systems.Lobster, floorY float64, p systems.Params, col color.RGBA) {
	if l.JumpHeight > shadowMinHeight {
		scale := ShadowScale(l.JumpHeight)
		c.FillEllipse(Vec2{X: l.X, Y: floorY}, p.Width*0.35*scale, 4*scale, shadowColor)
	}

	t := LobsterTransform(l, floorY, p)
	claw := ClawOffset(l.LegPhase) * t.ScaleY

	DrawStrokes(c, l.Drawing.LeftClaw, t.Translate(0, claw), col)
	DrawStrokes(c, l.Drawing.Tail, t, col)
	DrawStrokes(c, l.Drawing.RightClaw, t.Translate(0, -claw), col)
}
