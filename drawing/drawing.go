// Package drawing defines the hand-drawn lobster artwork consumed by the simulation.
//
// A drawing is three layers of strokes in a fixed 300x240 front-facing
// drawing space. Drawings are owned by the external store; the simulation
// only ever reads them.
package drawing

// Drawing space dimensions. Every stroke point lives in this space.
const (
	Width  = 300
	Height = 240
)

// Point is a position in drawing space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is a colored, sized polyline.
type Stroke struct {
	Points []Point `json:"points"`
	Color  string  `json:"color"`
	Size   float64 `json:"size"`
}

// Layers holds the three named stroke layers of a drawing.
type Layers struct {
	Tail      []Stroke `json:"tail"`      // Body
	LeftClaw  []Stroke `json:"leftClaw"`  // Left appendage
	RightClaw []Stroke `json:"rightClaw"` // Right appendage
}

// Drawing is a submitted lobster.
type Drawing struct {
	ID string `json:"id"`
	Layers
	CreatedAt int64 `json:"createdAt"` // Unix milliseconds
	Removed   bool  `json:"removed"`   // Soft-delete marker
}

// Active returns the drawings that are not removed, preserving order.
func Active(list []Drawing) []Drawing {
	out := make([]Drawing, 0, len(list))
	for _, d := range list {
		if !d.Removed {
			out = append(out, d)
		}
	}
	return out
}

// IDs returns the ids of the given drawings in order.
func IDs(list []Drawing) []string {
	ids := make([]string, len(list))
	for i, d := range list {
		ids[i] = d.ID
	}
	return ids
}

// ParseColor parses a #rgb or #rrggbb color.
func ParseColor(s string) (r, g, b uint8, ok bool) {
	if len(s) == 0 || s[0] != '#' {
		return 0, 0, 0, false
	}
	digits := s[1:]
	if len(digits) != 3 && len(digits) != 6 {
		return 0, 0, 0, false
	}
	var vals [6]uint8
	for i := 0; i < len(digits); i++ {
		v, ok := hexDigit(digits[i])
		if !ok {
			return 0, 0, 0, false
		}
		vals[i] = v
	}
	if len(digits) == 3 {
		return vals[0] * 17, vals[1] * 17, vals[2] * 17, true
	}
	return vals[0]<<4 | vals[1], vals[2]<<4 | vals[3], vals[4]<<4 | vals[5], true
}

func hexDigit(ch byte) (uint8, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, true
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}
