// Package game composes the reef: it owns the lobster roster and the
// scene, advances them once per frame and renders them onto a canvas.
package game

import (
	"image/color"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/pthm-cable/reef/drawing"
	"github.com/pthm-cable/reef/renderer"
	"github.com/pthm-cable/reef/systems"
	"github.com/pthm-cable/reef/telemetry"
)

// firstFrameDT is the delta used before a previous frame time exists.
const firstFrameDT = 1.0 / 60.0

// ReconcileResult lists roster changes made by one reconciliation.
type ReconcileResult struct {
	Added   []string
	Removed []string
}

// Changed reports whether the roster changed.
func (r ReconcileResult) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// reconcileRequest is a drawing list waiting to be applied between frames.
type reconcileRequest struct {
	drawings []drawing.Drawing
	newID    string
}

// Game holds the complete reef state.
// Methods other than Post must be called from the frame goroutine.
type Game struct {
	params systems.Params
	color  color.RGBA
	rng    *rand.Rand

	// Rendering
	scene      *systems.Scene
	background *renderer.BackgroundRenderer
	canvas     renderer.Canvas

	// Roster keyed by drawing id, with insertion order kept separately.
	// Both are replaced wholesale on reconciliation.
	roster map[string]systems.Lobster
	order  []string

	// Clock
	lastTime time.Duration
	started  bool
	simTime  float64
	frame    int64

	// Window dimensions
	width, height float64

	// Mailbox for reconciliation requests from other goroutines
	mu      sync.Mutex
	pending []reconcileRequest

	// OnPlaced fires once when a just-submitted drawing joins the roster.
	OnPlaced func(id string)

	// Telemetry
	perf          *telemetry.PerfCollector
	collector     *telemetry.Collector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.FrameStats)
}

// NewGame creates a game with an empty roster.
func NewGame(opts Options) *Game {
	rng := rand.New(rand.NewSource(opts.Seed))
	scene := systems.NewScene(opts.Scene, rand.New(rand.NewSource(opts.Seed+1)))

	g := &Game{
		params:     opts.Params,
		color:      opts.Color,
		rng:        rng,
		scene:      scene,
		background: renderer.NewBackgroundRenderer(scene),
		canvas:     opts.Canvas,
		roster:     make(map[string]systems.Lobster),
		width:      opts.Width,
		height:     opts.Height,
		perf:       telemetry.NewPerfCollector(opts.PerfWindow),
		collector:  telemetry.NewCollector(opts.StatsWindow),
		output:     opts.Output,
		logStats:   opts.LogStats,

		statsCallback: opts.OnStats,
	}
	return g
}

// Params returns the walker parameters.
func (g *Game) Params() systems.Params {
	return g.params
}

// Scene returns the background scene state.
func (g *Game) Scene() *systems.Scene {
	return g.scene
}

// Size returns the canvas size the simulation runs at.
func (g *Game) Size() (width, height float64) {
	return g.width, g.height
}

// FloorY returns the floor line for the current canvas.
func (g *Game) FloorY() float64 {
	return g.params.FloorY(g.height)
}

// SimTime returns simulated seconds, taken from the last frame timestamp.
func (g *Game) SimTime() float64 {
	return g.simTime
}

// FrameCount returns the number of frames run.
func (g *Game) FrameCount() int64 {
	return g.frame
}

// SetCanvas attaches a render surface. A nil canvas runs frames without drawing.
func (g *Game) SetCanvas(c renderer.Canvas) {
	g.canvas = c
}

// Perf returns the frame timing collector.
func (g *Game) Perf() *telemetry.PerfCollector {
	return g.perf
}

// Resize updates the canvas size and forces the scene to regenerate.
func (g *Game) Resize(width, height float64) {
	if width == g.width && height == g.height {
		return
	}
	g.width = width
	g.height = height
	g.scene.Reset()
	slog.Info("canvas_resized", "width", width, "height", height)
}

// Post queues a reconciliation to be applied at the start of the next
// frame. Safe to call from any goroutine. Requests carrying a new-id hint
// are applied in order so every hint reaches Reconcile; a request without
// one replaces an unapplied hintless request before it.
func (g *Game) Post(drawings []drawing.Drawing, newID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	req := reconcileRequest{drawings: drawings, newID: newID}
	if n := len(g.pending); n > 0 && g.pending[n-1].newID == "" {
		g.pending[n-1] = req
		return
	}
	g.pending = append(g.pending, req)
}

// drainMailbox applies pending reconciliations in order.
func (g *Game) drainMailbox() {
	g.mu.Lock()
	reqs := g.pending
	g.pending = nil
	g.mu.Unlock()

	for _, req := range reqs {
		g.Reconcile(req.drawings, req.newID)
	}
}

// Reconcile syncs the roster to a drawing list. Removed drawings are
// filtered out, lobsters for missing ids are dropped, new ids are spawned
// and existing lobsters keep their state. A lobster spawned for newID
// walks in from the left edge and OnPlaced fires for it.
func (g *Game) Reconcile(drawings []drawing.Drawing, newID string) ReconcileResult {
	active := drawing.Active(drawings)
	activeIDs := make(map[string]struct{}, len(active))
	for _, d := range active {
		activeIDs[d.ID] = struct{}{}
	}

	// Build the next roster off to the side, then swap
	next := make(map[string]systems.Lobster, len(active))
	order := make([]string, 0, len(active))
	var res ReconcileResult
	placed := false

	for _, id := range g.order {
		if _, keep := activeIDs[id]; keep {
			next[id] = g.roster[id]
			order = append(order, id)
		}
	}
	for _, d := range active {
		if _, ok := next[d.ID]; ok {
			continue
		}
		l := systems.Spawn(d, g.width, g.height, g.rng, g.params)
		if d.ID == newID {
			l.X = g.params.Width
			placed = true
		}
		next[d.ID] = l
		order = append(order, d.ID)
		res.Added = append(res.Added, d.ID)
	}
	for _, id := range g.order {
		if _, ok := next[id]; !ok {
			res.Removed = append(res.Removed, id)
		}
	}

	g.roster = next
	g.order = order

	if res.Changed() {
		g.collector.RecordSpawn(len(res.Added))
		g.collector.RecordDrop(len(res.Removed))
		slog.Info("roster_reconciled",
			"added", len(res.Added),
			"removed", len(res.Removed),
			"count", len(order),
		)
	}
	if placed && g.OnPlaced != nil {
		g.OnPlaced(newID)
	}
	return res
}

// Jump starts a jump for the lobster with the given id.
// Returns false if no such lobster is tracked.
func (g *Game) Jump(id string) bool {
	l, ok := g.roster[id]
	if !ok {
		return false
	}
	// Jumps while airborne are ignored and not counted
	if l.Grounded() {
		g.roster[id] = systems.Jump(l, g.params)
		g.collector.RecordJump()
	}
	return true
}

// Frame runs one frame at monotonic timestamp now: applies any pending
// reconciliation, draws the background, advances every lobster and
// draws them back to front.
func (g *Game) Frame(now time.Duration) {
	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseReconcile)
	g.drainMailbox()

	dt := firstFrameDT
	if g.started {
		dt = systems.ClampDT((now - g.lastTime).Seconds(), g.params.MaxDT)
	}
	g.lastTime = now
	g.started = true
	g.simTime = now.Seconds()

	floorY := g.FloorY()

	g.perf.StartPhase(telemetry.PhaseBackground)
	var regenerated bool
	if g.canvas != nil {
		regenerated = g.background.Draw(g.canvas, g.width, g.height, g.simTime, floorY)
	} else {
		// No surface: keep the scene lifecycle and bubbles moving
		regenerated = g.scene.Sync(g.width, g.height, floorY)
		g.scene.AdvanceBubbles(g.width, floorY)
	}
	if regenerated {
		g.onRegenerated()
	}

	g.perf.StartPhase(telemetry.PhaseUpdate)
	for _, id := range g.order {
		g.roster[id] = systems.Step(g.roster[id], dt, g.width, g.params)
	}

	g.perf.StartPhase(telemetry.PhaseSort)
	sorted := g.Lobsters()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	g.perf.StartPhase(telemetry.PhaseDraw)
	if g.canvas != nil {
		for _, l := range sorted {
			renderer.DrawLobster(g.canvas, l, floorY, g.params, g.color)
		}
	}

	g.perf.EndFrame()
	g.frame++
	g.flushTelemetry()
}

func (g *Game) onRegenerated() {
	g.collector.RecordRegeneration()
	slog.Debug("scene_regenerated",
		"width", g.width,
		"height", g.height,
		"bubbles", len(g.scene.Bubbles),
		"seaweeds", len(g.scene.Seaweeds),
	)
}

// Lobsters returns a copy of the roster in insertion order.
func (g *Game) Lobsters() []systems.Lobster {
	out := make([]systems.Lobster, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.roster[id])
	}
	return out
}

// Lobster returns the lobster with the given id.
func (g *Game) Lobster(id string) (systems.Lobster, bool) {
	l, ok := g.roster[id]
	return l, ok
}

// Count returns the number of tracked lobsters.
func (g *Game) Count() int {
	return len(g.order)
}

// HitTest returns the most recently added lobster under a canvas point.
func (g *Game) HitTest(x, y float64) (string, bool) {
	for i := len(g.order) - 1; i >= 0; i-- {
		id := g.order[i]
		if systems.HitTest(x, y, g.roster[id], g.height, g.params) {
			return id, true
		}
	}
	return "", false
}
