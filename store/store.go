// Package store keeps submitted lobster drawings.
//
// Removal is a soft delete: removed drawings stay in the store with
// their Removed flag set and can be restored individually or all at
// once through Amnesty.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/reef/drawing"
)

// ErrNotFound is returned when no drawing has the requested id.
var ErrNotFound = errors.New("store: drawing not found")

// Store is a drawing record store.
type Store interface {
	// Create stores new artwork under a fresh id and the current time.
	Create(ctx context.Context, layers drawing.Layers) (drawing.Drawing, error)
	// Put inserts or replaces a drawing as given.
	Put(ctx context.Context, d drawing.Drawing) error
	// List returns every drawing, oldest first.
	List(ctx context.Context) ([]drawing.Drawing, error)
	// Active returns the drawings that are not removed, oldest first.
	Active(ctx context.Context) ([]drawing.Drawing, error)
	// Remove marks a drawing removed.
	Remove(ctx context.Context, id string) error
	// Restore clears the removed mark of one drawing.
	Restore(ctx context.Context, id string) error
	// Amnesty clears the removed mark of every drawing.
	Amnesty(ctx context.Context) (int, error)
	Close() error
}

// SeedIfEmpty stores the samples when the store holds no drawings at all.
// Returns true if it seeded.
func SeedIfEmpty(ctx context.Context, s Store, samples []drawing.Sample) (bool, error) {
	all, err := s.List(ctx)
	if err != nil {
		return false, fmt.Errorf("listing drawings: %w", err)
	}
	if len(all) > 0 {
		return false, nil
	}
	for _, sample := range samples {
		d, err := s.Create(ctx, sample.Layers)
		if err != nil {
			return false, fmt.Errorf("seeding %s: %w", sample.Name, err)
		}
		slog.Info("drawing_seeded", "name", sample.Name, "id", d.ID)
	}
	return true, nil
}

// Import stores validated drawings. Drawings without an id are created
// fresh; drawings with one are stored as given, replacing any existing
// drawing with that id. Returns the stored drawings.
func Import(ctx context.Context, s Store, drawings []drawing.Drawing) ([]drawing.Drawing, error) {
	out := make([]drawing.Drawing, 0, len(drawings))
	for i, d := range drawings {
		if d.ID == "" {
			created, err := s.Create(ctx, d.Layers)
			if err != nil {
				return out, fmt.Errorf("importing drawing %d: %w", i, err)
			}
			out = append(out, created)
			continue
		}
		if err := s.Put(ctx, d); err != nil {
			return out, fmt.Errorf("importing drawing %s: %w", d.ID, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// Remover forwards removal requests to a store without blocking the
// caller. OnRemoved runs after a successful removal, on the removal
// goroutine.
type Remover struct {
	Store     Store
	OnRemoved func(id string)
}

// Remove soft-deletes the drawing in the background.
func (r *Remover) Remove(id string) {
	go func() {
		if err := r.Store.Remove(context.Background(), id); err != nil {
			slog.Error("failed to remove drawing", "id", id, "error", err)
			return
		}
		if r.OnRemoved != nil {
			r.OnRemoved(id)
		}
	}()
}

// emptyIfNil keeps stored layers as JSON arrays rather than null.
func emptyIfNil(s []drawing.Stroke) []drawing.Stroke {
	if s == nil {
		return []drawing.Stroke{}
	}
	return s
}
