package game

import (
	"log/slog"
	"time"
)

// DefaultDoubleClickWindow is the longest gap between two clicks on the
// same lobster that still counts as a double click.
const DefaultDoubleClickWindow = 400 * time.Millisecond

// ClickKind classifies the outcome of a click.
type ClickKind int

const (
	ClickNone   ClickKind = iota // Missed every lobster
	ClickJump                    // Single click: the lobster jumps
	ClickRemove                  // Double click: removal was requested
)

func (k ClickKind) String() string {
	switch k {
	case ClickJump:
		return "jump"
	case ClickRemove:
		return "remove"
	default:
		return "none"
	}
}

// ClickResult is what a click did and to which lobster.
type ClickResult struct {
	Kind ClickKind
	ID   string
}

// RemovalSink receives requests to remove a drawing. The authoritative
// removal happens outside the simulation; the roster changes only when
// the next drawing list is reconciled.
type RemovalSink interface {
	Remove(id string)
}

// RemovalFunc adapts a function to RemovalSink.
type RemovalFunc func(id string)

// Remove calls f(id).
func (f RemovalFunc) Remove(id string) { f(id) }

// Clock returns the current time.
type Clock func() time.Time

// Router turns pointer clicks into jumps and removal requests.
type Router struct {
	game   *Game
	sink   RemovalSink
	now    Clock
	window time.Duration

	// Last single click, cleared after a double click
	lastTime time.Time
	lastID   string
}

// NewRouter creates a router over a game. A nil clock uses time.Now.
func NewRouter(g *Game, sink RemovalSink, now Clock, window time.Duration) *Router {
	if now == nil {
		now = time.Now
	}
	return &Router{game: g, sink: sink, now: now, window: window}
}

// Click handles a click at client coordinates. scaleX and scaleY map
// client pixels onto canvas pixels.
func (r *Router) Click(clientX, clientY, scaleX, scaleY float64) ClickResult {
	x := clientX * scaleX
	y := clientY * scaleY

	id, ok := r.game.HitTest(x, y)
	if !ok {
		return ClickResult{Kind: ClickNone}
	}

	now := r.now()
	if r.lastID == id && now.Sub(r.lastTime) < r.window {
		r.lastID = ""
		r.lastTime = time.Time{}
		if r.sink != nil {
			r.sink.Remove(id)
		}
		r.game.recordRemoval()
		slog.Info("lobster_removed", "id", id)
		return ClickResult{Kind: ClickRemove, ID: id}
	}

	r.game.Jump(id)
	r.lastID = id
	r.lastTime = now
	slog.Debug("lobster_jumped", "id", id)
	return ClickResult{Kind: ClickJump, ID: id}
}
