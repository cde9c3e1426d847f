package game

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pthm-cable/reef/drawing"
)

// ErrNoCreator is returned by Submit when the source cannot store drawings.
var ErrNoCreator = errors.New("game: drawing source cannot create drawings")

// submitQueue bounds submissions waiting for the sync goroutine.
const submitQueue = 8

// DrawingSource supplies the current drawing list.
type DrawingSource interface {
	List(ctx context.Context) ([]drawing.Drawing, error)
}

// DrawingCreator stores new artwork and returns the stored drawing.
type DrawingCreator interface {
	Create(ctx context.Context, layers drawing.Layers) (drawing.Drawing, error)
}

// Syncer fetches drawing lists off the frame goroutine and posts them to
// a game for reconciliation. It polls on an interval and on demand.
//
// Submissions run on the same goroutine as polls, so the list that first
// contains a new drawing is always posted with that drawing as the
// just-submitted hint.
type Syncer struct {
	source   DrawingSource
	creator  DrawingCreator
	game     *Game
	interval time.Duration
	kick     chan string
	submits  chan drawing.Layers
}

// NewSyncer creates a syncer. A non-positive interval disables polling;
// only Refresh and Submit then trigger fetches. Submit works when source
// also implements DrawingCreator.
func NewSyncer(source DrawingSource, g *Game, interval time.Duration) *Syncer {
	creator, _ := source.(DrawingCreator)
	return &Syncer{
		source:   source,
		creator:  creator,
		game:     g,
		interval: interval,
		kick:     make(chan string, 1),
		submits:  make(chan drawing.Layers, submitQueue),
	}
}

// Refresh requests an immediate fetch. newID, if set, is forwarded as
// the just-submitted hint. Never blocks; a request carrying a hint
// replaces any request still queued.
func (s *Syncer) Refresh(newID string) {
	select {
	case s.kick <- newID:
		return
	default:
	}
	if newID == "" {
		return
	}
	select {
	case <-s.kick:
	default:
	}
	select {
	case s.kick <- newID:
	default:
	}
}

// Submit queues new artwork to be stored and placed by the sync
// goroutine. Never blocks; returns false if the queue is full or the
// source cannot create drawings.
func (s *Syncer) Submit(layers drawing.Layers) bool {
	if s.creator == nil {
		return false
	}
	select {
	case s.submits <- layers:
		return true
	default:
		slog.Warn("submission queue full, dropping drawing")
		return false
	}
}

// Sync fetches once and posts the result.
func (s *Syncer) Sync(ctx context.Context, newID string) error {
	list, err := s.source.List(ctx)
	if err != nil {
		return err
	}
	s.game.Post(list, newID)
	return nil
}

// submit stores artwork and posts the list that contains it with its id
// as the hint.
func (s *Syncer) submit(ctx context.Context, layers drawing.Layers) (drawing.Drawing, error) {
	if s.creator == nil {
		return drawing.Drawing{}, ErrNoCreator
	}
	d, err := s.creator.Create(ctx, layers)
	if err != nil {
		return drawing.Drawing{}, err
	}
	slog.Info("drawing_submitted", "id", d.ID)
	// The id is returned even if posting fails so the caller can retry the hint
	return d, s.Sync(ctx, d.ID)
}

// Run fetches immediately, then on every tick, refresh or submission
// until ctx is done. Errors are logged and the next attempt proceeds as
// usual. A submission whose list could not be posted keeps its id as the
// hint for the next successful fetch.
func (s *Syncer) Run(ctx context.Context) {
	var tick <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	newID := ""
	hint := ""
	fetch := true
	for {
		if fetch {
			id := newID
			if id == "" {
				id = hint
			}
			if err := s.Sync(ctx, id); err != nil {
				if ctx.Err() == nil {
					slog.Error("failed to fetch drawings", "error", err)
				}
			} else if id == hint {
				hint = ""
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-tick:
			newID, fetch = "", true
		case newID = <-s.kick:
			fetch = true
		case layers := <-s.submits:
			// A successful submission has already posted the fresh list
			fetch = false
			d, err := s.submit(ctx, layers)
			switch {
			case err == nil || ctx.Err() != nil:
			case d.ID != "":
				// Stored but not posted
				hint = d.ID
				slog.Error("failed to fetch drawings", "error", err)
			default:
				slog.Error("failed to submit drawing", "error", err)
			}
		}
	}
}
