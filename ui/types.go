// Package ui draws the raylib heads-up display over the reef.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	TitleColor    rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	HintColor     rl.Color
	ToastColor    rl.Color
	Padding       int32
	LineHeight    int32
	LabelWidth    int32
	FontSize      int32
	TitleFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 8, G: 24, B: 40, A: 200},
		PanelBorder:   rl.Color{R: 60, G: 100, B: 120, A: 255},
		TitleColor:    rl.White,
		LabelColor:    rl.Color{R: 150, G: 190, B: 210, A: 255},
		ValueColor:    rl.RayWhite,
		HintColor:     rl.Color{R: 150, G: 190, B: 210, A: 200},
		ToastColor:    rl.Color{R: 255, G: 220, B: 120, A: 255},
		Padding:       10,
		LineHeight:    18,
		LabelWidth:    80,
		FontSize:      14,
		TitleFontSize: 20,
	}
}
