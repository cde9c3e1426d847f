package renderer

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/reef/systems"
)

func TestBackgroundDrawOrderAndRegeneration(t *testing.T) {
	scene := systems.NewScene(systems.DefaultSceneParams(), rand.New(rand.NewSource(1)))
	bg := NewBackgroundRenderer(scene)
	rec := NewRecorder(1200, 800)
	floor := systems.DefaultParams().FloorY(800)

	if !bg.Draw(rec, 1200, 800, 0, floor) {
		t.Fatal("first draw should regenerate the scene")
	}

	grads := rec.Filter(OpFillGradientV)
	if len(grads) != 2 {
		t.Fatalf("gradients = %d, want water and sand", len(grads))
	}
	if rec.Calls[0].Op != OpFillGradientV || grads[0].Height != 800 {
		t.Error("water gradient must be drawn first across the whole canvas")
	}
	if grads[1].Points[0].Y != floor {
		t.Errorf("sand band starts at %v, want floor %v", grads[1].Points[0].Y, floor)
	}
	if got := rec.Count(OpFillTriangle); got != 10 {
		t.Errorf("light ray triangles = %d, want 10", got)
	}
	if got := rec.Count(OpStrokeCircle); got != 25 {
		t.Errorf("bubble rims = %d, want 25", got)
	}
	// 60 speckles plus 25 bubble fills
	if got := rec.Count(OpFillCircle); got != 85 {
		t.Errorf("filled circles = %d, want 85", got)
	}

	rec.Reset()
	if bg.Draw(rec, 1200, 800, 1.0/60, floor) {
		t.Error("second draw at the same size regenerated")
	}
}

func TestBackgroundAdvancesBubbles(t *testing.T) {
	scene := systems.NewScene(systems.DefaultSceneParams(), rand.New(rand.NewSource(1)))
	bg := NewBackgroundRenderer(scene)
	rec := NewRecorder(1200, 800)
	floor := systems.DefaultParams().FloorY(800)

	bg.Draw(rec, 1200, 800, 0, floor)
	before := scene.Bubbles[0]
	bg.Draw(rec, 1200, 800, 0, floor)
	after := scene.Bubbles[0]

	if want := before.Y - before.Speed/60; after.Y != want {
		t.Errorf("bubble y = %v, want %v", after.Y, want)
	}
}
