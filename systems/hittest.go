package systems

import "math"

// hitRadiusFactor scales the larger lobster dimension into a click radius.
const hitRadiusFactor = 0.55

// Center returns the visual center of a lobster on a canvas of the given height.
func Center(l Lobster, canvasHeight float64, p Params) (x, y float64) {
	return l.X, p.FloorY(canvasHeight) - l.JumpHeight - p.Height/2
}

// HitRadius returns the radius of the circular click bound.
func HitRadius(p Params) float64 {
	return math.Max(p.Width, p.Height) * hitRadiusFactor
}

// HitTest reports whether a canvas point falls on a lobster.
// The bound is a single circle around the jump-adjusted center.
func HitTest(px, py float64, l Lobster, canvasHeight float64, p Params) bool {
	cx, cy := Center(l, canvasHeight, p)
	dx := px - cx
	dy := py - cy
	r := HitRadius(p)
	return dx*dx+dy*dy <= r*r
}
