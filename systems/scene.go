package systems

import (
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"
)

// speckleSeed fixes the sand pattern so it is identical across frames and runs.
const speckleSeed = 0x5a4d

// SceneParams controls decoration counts and layout.
type SceneParams struct {
	BubbleCount    int
	SeaweedSpacing float64 // One seaweed patch per this many pixels of width
	SeaweedExtra   int
	SandSpeckles   int
	LightRays      int
}

// DefaultSceneParams returns the stock decoration parameters.
func DefaultSceneParams() SceneParams {
	return SceneParams{
		BubbleCount:    25,
		SeaweedSpacing: 120,
		SeaweedExtra:   2,
		SandSpeckles:   60,
		LightRays:      5,
	}
}

// SeaweedCount returns the number of seaweed patches for a canvas width.
func (sp SceneParams) SeaweedCount(width float64) int {
	if sp.SeaweedSpacing <= 0 || width <= 0 {
		return sp.SeaweedExtra
	}
	return int(math.Floor(width/sp.SeaweedSpacing)) + sp.SeaweedExtra
}

// Bubble is an ambient particle rising through the water.
type Bubble struct {
	X, Y        float64
	Size        float64
	Speed       float64 // Pixels per second of rise
	WobblePhase float64
}

// Seaweed is a swaying flora patch rooted on the floor.
type Seaweed struct {
	X        float64
	Height   float64
	Segments int
	Hue      float64 // Degrees, green to teal
}

// Scene holds persistent background decorations keyed to canvas size.
// Decorations are regenerated whenever the observed size changes and
// advanced in place otherwise.
type Scene struct {
	Bubbles  []Bubble
	Seaweeds []Seaweed

	params SceneParams
	rng    *rand.Rand
	noise  opensimplex.Noise

	// Last observed size, valid only while observed is set
	lastW, lastH float64
	observed     bool
}

// NewScene creates an empty scene. Decorations are generated on the first Sync.
func NewScene(params SceneParams, rng *rand.Rand) *Scene {
	return &Scene{
		params: params,
		rng:    rng,
		noise:  opensimplex.New(speckleSeed),
	}
}

// Params returns the decoration parameters.
func (s *Scene) Params() SceneParams {
	return s.params
}

// SetParams replaces the decoration parameters and forces regeneration.
func (s *Scene) SetParams(params SceneParams) {
	s.params = params
	s.Reset()
}

// Sync regenerates decorations if the canvas size differs from the last
// observed size, including the first call. Returns true if it regenerated.
func (s *Scene) Sync(width, height, floorY float64) bool {
	if s.observed && s.lastW == width && s.lastH == height {
		return false
	}
	s.Regenerate(width, height, floorY)
	return true
}

// Regenerate replaces all decorations for the given canvas.
func (s *Scene) Regenerate(width, height, floorY float64) {
	s.Bubbles = make([]Bubble, 0, s.params.BubbleCount)
	for i := 0; i < s.params.BubbleCount; i++ {
		s.Bubbles = append(s.Bubbles, Bubble{
			X:           s.rng.Float64() * width,
			Y:           floorY - s.rng.Float64()*(floorY-40),
			Size:        s.rng.Float64()*4 + 1.5,
			Speed:       s.rng.Float64()*20 + 10,
			WobblePhase: s.rng.Float64() * math.Pi * 2,
		})
	}

	count := s.params.SeaweedCount(width)
	if count < 0 {
		count = 0
	}
	s.Seaweeds = make([]Seaweed, 0, count)
	for i := 0; i < count; i++ {
		s.Seaweeds = append(s.Seaweeds, Seaweed{
			X:        s.rng.Float64() * width,
			Height:   40 + s.rng.Float64()*60,
			Segments: 4 + s.rng.Intn(3),
			Hue:      120 + s.rng.Float64()*40,
		})
	}

	s.lastW = width
	s.lastH = height
	s.observed = true
}

// Reset forgets the observed size so the next Sync regenerates.
func (s *Scene) Reset() {
	s.observed = false
	s.lastW = 0
	s.lastH = 0
	s.Bubbles = nil
	s.Seaweeds = nil
}

// AdvanceBubbles moves every bubble up by one tick and recycles bubbles
// that left the top of the canvas to just above the floor.
func (s *Scene) AdvanceBubbles(width, floorY float64) {
	for i := range s.Bubbles {
		b := &s.Bubbles[i]
		b.Y -= b.Speed / 60
		if b.Y < -10 {
			b.Y = floorY - 5
			b.X = s.rng.Float64() * width
		}
	}
}

// BubbleWobble returns the lateral offset of a bubble at time t.
func BubbleWobble(b Bubble, t float64) float64 {
	return math.Sin(t*2+b.WobblePhase) * 3
}

// SeaweedSegment is one drawable curve of a seaweed patch.
type SeaweedSegment struct {
	BaseX, BaseY     float64
	CtrlX, CtrlY     float64
	TipX, TipY       float64
	Width            float64
	Lightness, Alpha float64
}

// SeaweedSegments returns the swaying segment curves of a patch at time t.
// Higher segments sway further.
func SeaweedSegments(sw Seaweed, floorY, t float64) []SeaweedSegment {
	if sw.Segments <= 0 {
		return nil
	}
	segH := sw.Height / float64(sw.Segments)
	out := make([]SeaweedSegment, 0, sw.Segments)
	for s := 0; s < sw.Segments; s++ {
		fs := float64(s)
		baseY := floorY - fs*segH
		topY := baseY - segH
		sway := math.Sin(t*0.8+fs*0.5+sw.X*0.01) * (4 + fs*2)
		out = append(out, SeaweedSegment{
			BaseX:     sw.X,
			BaseY:     baseY,
			CtrlX:     sw.X + sway,
			CtrlY:     (baseY + topY) / 2,
			TipX:      sw.X + sway*0.7,
			TipY:      topY,
			Width:     math.Max(4-fs*0.5, 0.5),
			Lightness: 0.30 + fs*0.05,
			Alpha:     0.6,
		})
	}
	return out
}

// LightRay is a faint trapezoid shaft from the surface.
type LightRay struct {
	TopLeft, TopRight       float64 // x at y=0
	BottomLeft, BottomRight float64 // x at y=Depth
	Depth                   float64
	Alpha                   float64
}

// LightRays returns the light shafts for a canvas width at time t.
// They depend on time only; nothing is persisted.
func LightRays(width, t float64, count int) []LightRay {
	if count <= 0 {
		return nil
	}
	rays := make([]LightRay, 0, count)
	for i := 0; i < count; i++ {
		fi := float64(i)
		baseX := width / float64(count+1) * (fi + 1)
		sway := math.Sin(t*0.3+fi*1.2) * 30
		cx := baseX + sway
		rays = append(rays, LightRay{
			TopLeft:     cx - 20,
			TopRight:    cx + 20,
			BottomLeft:  cx - 60,
			BottomRight: cx + 60,
			Depth:       500,
			Alpha:       0.03 + math.Sin(t*0.5+fi)*0.01,
		})
	}
	return rays
}

// SandSpeckles returns fixed speckle positions in the sand band below the
// floor. The pattern is a deterministic function of index and canvas size.
func (s *Scene) SandSpeckles(width, height, floorY float64) [][2]float64 {
	band := height - floorY - 8
	if band <= 0 || width <= 0 {
		return nil
	}
	out := make([][2]float64, 0, s.params.SandSpeckles)
	for i := 0; i < s.params.SandSpeckles; i++ {
		fi := float64(i)
		jx := s.noise.Eval2(fi*0.37, 0) * 6
		jy := s.noise.Eval2(0, fi*0.37) * 3
		x := positiveMod(fi*31.7+17+jx, width)
		y := floorY + 4 + positiveMod(fi*23.3+7+jy, band)
		out = append(out, [2]float64{x, y})
	}
	return out
}

func positiveMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}
