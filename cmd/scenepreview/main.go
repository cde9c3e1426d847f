// Scene preview tool - interactive ocean floor tuning with sliders.
//
// Usage: go run ./cmd/scenepreview
package main

import (
	"fmt"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/reef/drawing"
	"github.com/pthm-cable/reef/renderer"
	"github.com/pthm-cable/reef/systems"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	panelWidth   = 340
	previewWidth = windowWidth - panelWidth
)

// previewState is everything the sliders control.
type previewState struct {
	Scene      systems.SceneParams
	FloorRatio float64
	TimeScale  float64
	Seed       int64
}

func defaultState() previewState {
	return previewState{
		Scene:      systems.DefaultSceneParams(),
		FloorRatio: systems.DefaultParams().FloorRatio,
		TimeScale:  1,
		Seed:       42,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Scene Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	state := defaultState()
	scene := systems.NewScene(state.Scene, rand.New(rand.NewSource(state.Seed)))
	bg := renderer.NewBackgroundRenderer(scene)
	canvas := renderer.NewRaylibCanvas()

	// A sample lobster for scale reference
	params := systems.DefaultParams()
	sample := drawing.Drawing{ID: "preview", Layers: drawing.Samples()[0].Layers}
	lobster := systems.Spawn(sample, previewWidth, windowHeight, rand.New(rand.NewSource(1)), params)
	lobster.X = previewWidth / 2
	lobsterColor := renderer.Hex(0xe04020)

	var t float64
	paused := false

	for !rl.WindowShouldClose() {
		dt := systems.ClampDT(float64(rl.GetFrameTime())*state.TimeScale, params.MaxDT)
		if !paused {
			t += dt
			lobster = systems.Step(lobster, dt, previewWidth, params)
		}

		params.FloorRatio = state.FloorRatio
		floorY := params.FloorY(windowHeight)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		bg.Draw(canvas, previewWidth, windowHeight, t, floorY)
		renderer.DrawLobster(canvas, lobster, floorY, params, lobsterColor)

		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			m := rl.GetMousePosition()
			if systems.HitTest(float64(m.X), float64(m.Y), lobster, windowHeight, params) {
				lobster = systems.Jump(lobster, params)
			}
		}

		// Control panel
		rl.DrawRectangle(previewWidth, 0, panelWidth, windowHeight, rl.RayWhite)
		panelX := float32(previewWidth + 15)
		panelY := float32(10)
		sliderW := float32(panelWidth - 90)

		rl.DrawText("Scene Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		next := state
		slider := func(label, minText, maxText string, value, lo, hi float32) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(rl.Rectangle{X: panelX, Y: panelY, Width: sliderW, Height: 20}, minText, maxText, value, lo, hi)
			panelY += 32
			return v
		}

		next.Scene.BubbleCount = int(slider(fmt.Sprintf("Bubbles: %d", state.Scene.BubbleCount), "0", "100",
			float32(state.Scene.BubbleCount), 0, 100))
		next.Scene.SeaweedSpacing = float64(slider(fmt.Sprintf("Seaweed spacing: %.0f px", state.Scene.SeaweedSpacing), "40", "400",
			float32(state.Scene.SeaweedSpacing), 40, 400))
		next.Scene.SeaweedExtra = int(slider(fmt.Sprintf("Seaweed extra: %d", state.Scene.SeaweedExtra), "0", "10",
			float32(state.Scene.SeaweedExtra), 0, 10))
		next.Scene.SandSpeckles = int(slider(fmt.Sprintf("Sand speckles: %d", state.Scene.SandSpeckles), "0", "300",
			float32(state.Scene.SandSpeckles), 0, 300))
		next.Scene.LightRays = int(slider(fmt.Sprintf("Light rays: %d", state.Scene.LightRays), "0", "12",
			float32(state.Scene.LightRays), 0, 12))
		next.FloorRatio = float64(slider(fmt.Sprintf("Floor ratio: %.2f", state.FloorRatio), "0.5", "0.95",
			float32(state.FloorRatio), 0.5, 0.95))
		next.TimeScale = float64(slider(fmt.Sprintf("Time scale: %.2fx", state.TimeScale), "0", "4",
			float32(state.TimeScale), 0, 4))

		// Counts and layout need a fresh scene; time scale does not
		if next.Scene != state.Scene || next.FloorRatio != state.FloorRatio {
			scene.SetParams(next.Scene)
		}
		state = next

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(paused, "Resume", "Pause")) {
			paused = !paused
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			t = 0
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reseed") {
			state.Seed = int64(rl.GetRandomValue(0, 99999))
			scene = systems.NewScene(state.Scene, rand.New(rand.NewSource(state.Seed)))
			bg = renderer.NewBackgroundRenderer(scene)
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			state = defaultState()
			scene = systems.NewScene(state.Scene, rand.New(rand.NewSource(state.Seed)))
			bg = renderer.NewBackgroundRenderer(scene)
			t = 0
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yaml := sceneYAML(state)
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText(fmt.Sprintf("t=%.1fs  bubbles=%d  seaweed=%d", t, len(scene.Bubbles), len(scene.Seaweeds)),
			10, windowHeight-25, 14, rl.LightGray)
		rl.DrawText("Click the lobster to jump. Press C to copy YAML", int32(panelX), windowHeight-30, 12, rl.Gray)

		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// sceneYAML renders the tuned values as a config.yaml scene section.
func sceneYAML(s previewState) string {
	return fmt.Sprintf(`scene:
  floor_ratio: %.2f
  bubble_count: %d
  seaweed_spacing: %.0f
  seaweed_extra: %d
  sand_speckles: %d
  light_rays: %d
  seed: %d`,
		s.FloorRatio, s.Scene.BubbleCount, s.Scene.SeaweedSpacing, s.Scene.SeaweedExtra,
		s.Scene.SandSpeckles, s.Scene.LightRays, s.Seed)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
