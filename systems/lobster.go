package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/reef/drawing"
)

// Params holds walker kinematics. All distances are canvas pixels.
type Params struct {
	Width         float64 // On-screen lobster width
	Height        float64 // On-screen lobster height
	BaseSpeed     float64 // Pixels per second
	SpeedVariance float64 // Uniform +/- around BaseSpeed
	Gravity       float64 // Pixels per second squared
	JumpVelocity  float64 // Initial upward velocity of a jump
	JumpEpsilon   float64 // Height set on takeoff so the lobster reads as airborne
	GaitRate      float64 // Leg cycles per second
	MaxDT         float64 // Callers clamp frame deltas to this
	FloorRatio    float64 // Floor line as a fraction of canvas height
}

// DefaultParams returns the stock walker parameters.
func DefaultParams() Params {
	return Params{
		Width:         80,
		Height:        64,
		BaseSpeed:     40,
		SpeedVariance: 15,
		Gravity:       400,
		JumpVelocity:  180,
		JumpEpsilon:   0.1,
		GaitRate:      3,
		MaxDT:         0.1,
		FloorRatio:    0.82,
	}
}

// Lobster is the simulated state of one walking drawing.
// Values are immutable by convention: Step and Jump return a new Lobster.
type Lobster struct {
	Drawing      drawing.Drawing
	X            float64 // Horizontal position of the body center
	Speed        float64 // Pixels per second, fixed for the lobster's lifetime
	LegPhase     float64 // Gait phase in [0, 1)
	JumpVelocity float64 // Pixels per second, positive is up
	JumpHeight   float64 // Pixels above the floor, never negative
}

// ID returns the drawing id the lobster is keyed by.
func (l Lobster) ID() string {
	return l.Drawing.ID
}

// Airborne reports whether a jump is in progress.
func (l Lobster) Airborne() bool {
	return l.JumpVelocity != 0 || l.JumpHeight > 0
}

// Grounded reports whether the lobster is standing on the floor.
func (l Lobster) Grounded() bool {
	return !l.Airborne()
}

// Spawn creates a lobster at a random x inside the canvas.
func Spawn(d drawing.Drawing, canvasWidth, canvasHeight float64, rng *rand.Rand, p Params) Lobster {
	speed := p.BaseSpeed + (rng.Float64()-0.5)*p.SpeedVariance*2
	return Lobster{
		Drawing:  d,
		X:        rng.Float64() * canvasWidth,
		Speed:    speed,
		LegPhase: rng.Float64(),
	}
}

// Step advances a lobster by dt seconds. dt is not clamped here;
// callers pass ClampDT(dt, p.MaxDT).
func Step(l Lobster, dt, canvasWidth float64, p Params) Lobster {
	l.X += l.Speed * dt

	// Fully past the right edge: re-enter fully off the left edge
	if l.X > canvasWidth+p.Width {
		l.X = -p.Width
	}

	l.LegPhase = wrapUnit(l.LegPhase + dt*p.GaitRate)

	if l.Airborne() {
		l.JumpHeight += l.JumpVelocity * dt
		l.JumpVelocity -= p.Gravity * dt
		if l.JumpHeight <= 0 {
			l.JumpHeight = 0
			l.JumpVelocity = 0
		}
	}

	return l
}

// Jump starts a jump. Lobsters already in the air are returned unchanged.
func Jump(l Lobster, p Params) Lobster {
	if l.JumpHeight > 0 {
		return l
	}
	l.JumpVelocity = p.JumpVelocity
	l.JumpHeight = p.JumpEpsilon
	return l
}

// ClampDT bounds a frame delta to [0, max].
func ClampDT(dt, max float64) float64 {
	if dt < 0 || math.IsNaN(dt) {
		return 0
	}
	if dt > max {
		return max
	}
	return dt
}

// wrapUnit maps v into [0, 1).
func wrapUnit(v float64) float64 {
	v = math.Mod(v, 1)
	if v < 0 {
		v += 1
	}
	// Mod can round up to exactly 1 for tiny negatives
	if v >= 1 {
		v = 0
	}
	return v
}
