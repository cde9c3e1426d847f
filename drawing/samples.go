package drawing

import "math"

// Sample colors per layer.
const (
	bodyColor  = "#ff6633"
	leftColor  = "#ff9999"
	rightColor = "#99bbff"
)

// Sample is a named built-in drawing.
type Sample struct {
	Name string
	Layers
}

// Oval returns a closed elliptical path of steps+1 points.
func Oval(cx, cy, rx, ry float64, steps int) []Point {
	if steps < 1 {
		steps = 1
	}
	points := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		angle := float64(i) / float64(steps) * math.Pi * 2
		points = append(points, Point{
			X: cx + math.Cos(angle)*rx,
			Y: cy + math.Sin(angle)*ry,
		})
	}
	return points
}

func line(size float64, color string, xy ...float64) Stroke {
	pts := make([]Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		pts = append(pts, Point{X: xy[i], Y: xy[i+1]})
	}
	return Stroke{Points: pts, Color: color, Size: size}
}

func oval(size float64, color string, cx, cy, rx, ry float64) Stroke {
	return Stroke{Points: Oval(cx, cy, rx, ry, 20), Color: color, Size: size}
}

// Samples returns the built-in sample lobsters used to seed an empty store.
func Samples() []Sample {
	return []Sample{
		{
			Name: "big",
			Layers: Layers{
				Tail: []Stroke{
					oval(4, bodyColor, 140, 130, 55, 30),
					line(3, bodyColor, 85, 130, 65, 125, 50, 135, 40, 120),
					oval(2, bodyColor, 35, 115, 15, 8),
					line(5, bodyColor, 195, 118, 196, 118), // eye
					line(1.5, bodyColor, 195, 110, 220, 85, 240, 80),
					line(1.5, bodyColor, 195, 115, 225, 95, 250, 92),
					line(2, bodyColor, 120, 155, 115, 190),
					line(2, bodyColor, 140, 157, 138, 192),
					line(2, bodyColor, 160, 155, 162, 190),
				},
				LeftClaw: []Stroke{
					line(3, leftColor, 185, 125, 210, 140),
					oval(3, leftColor, 220, 145, 18, 10),
					line(2, leftColor, 230, 138, 245, 130),
					line(2, leftColor, 230, 152, 245, 158),
				},
				RightClaw: []Stroke{
					line(3, rightColor, 185, 135, 210, 155),
					oval(3, rightColor, 220, 160, 18, 10),
					line(2, rightColor, 230, 153, 245, 148),
					line(2, rightColor, 230, 167, 245, 172),
				},
			},
		},
		{
			Name: "slim",
			Layers: Layers{
				Tail: []Stroke{
					oval(3, bodyColor, 140, 130, 45, 22),
					line(2, bodyColor, 95, 130, 75, 128, 60, 135),
					line(4, bodyColor, 186, 120, 187, 120),
					line(1, bodyColor, 186, 112, 205, 90),
					line(1, bodyColor, 186, 115, 210, 100),
					line(1.5, bodyColor, 125, 150, 122, 190),
					line(1.5, bodyColor, 145, 150, 148, 190),
				},
				LeftClaw: []Stroke{
					line(2, leftColor, 175, 122, 200, 132),
					oval(2, leftColor, 210, 135, 12, 7),
				},
				RightClaw: []Stroke{
					line(2, rightColor, 175, 135, 200, 148),
					oval(2, rightColor, 210, 152, 12, 7),
				},
			},
		},
		{
			Name: "baby",
			Layers: Layers{
				Tail: []Stroke{
					oval(4, bodyColor, 150, 140, 30, 20),
					line(3, bodyColor, 120, 140, 105, 138),
					line(6, bodyColor, 180, 132, 181, 132),
					line(1.5, bodyColor, 178, 125, 190, 110),
					line(2, bodyColor, 140, 158, 138, 185),
					line(2, bodyColor, 155, 158, 157, 185),
				},
				LeftClaw: []Stroke{
					line(3, leftColor, 172, 133, 192, 140),
					oval(2, leftColor, 198, 142, 10, 7),
				},
				RightClaw: []Stroke{
					line(3, rightColor, 172, 145, 192, 155),
					oval(2, rightColor, 198, 158, 10, 7),
				},
			},
		},
	}
}
