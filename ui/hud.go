package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Controls is the legend shown along the bottom edge.
const Controls = "Click: jump | Double-click: remove | N: new lobster | A: amnesty | Esc: quit"

// toastDuration is how long a toast stays fully visible before fading.
const toastDuration = 2500 * time.Millisecond

// toastFade is the fade-out tail after toastDuration.
const toastFade = 500 * time.Millisecond

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Lobsters     int
	Airborne     int
	FPS          int32
	SimTime      float64
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	now      func() time.Time

	toast     string
	toastTime time.Time
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		now:      time.Now,
	}
}

// Toast shows a short message centered near the top of the screen.
func (h *HUD) Toast(format string, args ...any) {
	h.toast = fmt.Sprintf(format, args...)
	h.toastTime = h.now()
}

// toastAlpha returns the toast opacity, 0 once it has faded.
func (h *HUD) toastAlpha() float64 {
	if h.toast == "" {
		return 0
	}
	age := h.now().Sub(h.toastTime)
	switch {
	case age < toastDuration:
		return 1
	case age < toastDuration+toastFade:
		return 1 - float64(age-toastDuration)/float64(toastFade)
	default:
		return 0
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	th := r.Theme
	x := th.Padding
	y := th.Padding

	r.DrawPanel(x-4, y-4, 200, th.TitleFontSize+3*th.LineHeight+12)
	rl.DrawText(data.Title, x, y, th.TitleFontSize, th.TitleColor)
	y += th.TitleFontSize + 6

	y = r.DrawLabelValue(x, y, "Lobsters", fmt.Sprintf("%d (%d airborne)", data.Lobsters, data.Airborne))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	r.DrawLabelValue(x, y, "Time", fmt.Sprintf("%.0fs", data.SimTime))

	if a := h.toastAlpha(); a > 0 {
		c := rl.Fade(th.ToastColor, float32(a))
		r.DrawCentered(h.toast, data.ScreenWidth/2, th.Padding+8, th.TitleFontSize, c)
	} else {
		h.toast = ""
	}

	h.DrawControls(data.ScreenWidth, data.ScreenHeight, Controls)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, h.renderer.Theme.Padding, screenHeight-25, h.renderer.Theme.FontSize, h.renderer.Theme.HintColor)
}
