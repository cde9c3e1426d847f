package systems

// FloorY returns the floor line for a canvas height. Rendering and hit
// testing both read it so lobsters stay planted on the sand.
func (p Params) FloorY(canvasHeight float64) float64 {
	return canvasHeight * p.FloorRatio
}
