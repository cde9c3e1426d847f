package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pthm-cable/reef/drawing"
)

// MemoryStore is an in-process Store. Contents are lost on exit.
type MemoryStore struct {
	mu       sync.Mutex
	drawings map[string]drawing.Drawing
	seq      map[string]int64 // Insertion order, breaks created_at ties
	next     int64
	now      func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		drawings: make(map[string]drawing.Drawing),
		seq:      make(map[string]int64),
		now:      time.Now,
	}
}

// Create stores new artwork under a fresh id.
func (m *MemoryStore) Create(ctx context.Context, layers drawing.Layers) (drawing.Drawing, error) {
	d := drawing.Drawing{
		ID:        uuid.NewString(),
		Layers:    layers,
		CreatedAt: m.now().UnixMilli(),
	}
	return d, m.Put(ctx, d)
}

// Put inserts or replaces a drawing.
func (m *MemoryStore) Put(_ context.Context, d drawing.Drawing) error {
	if d.ID == "" {
		return fmt.Errorf("storing drawing: empty id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.seq[d.ID]; !ok {
		m.seq[d.ID] = m.next
		m.next++
	}
	m.drawings[d.ID] = d
	return nil
}

// List returns every drawing, oldest first.
func (m *MemoryStore) List(_ context.Context) ([]drawing.Drawing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(false), nil
}

// Active returns the drawings that are not removed, oldest first.
func (m *MemoryStore) Active(_ context.Context) ([]drawing.Drawing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(true), nil
}

func (m *MemoryStore) sorted(activeOnly bool) []drawing.Drawing {
	out := make([]drawing.Drawing, 0, len(m.drawings))
	for _, d := range m.drawings {
		if activeOnly && d.Removed {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return m.seq[out[i].ID] < m.seq[out[j].ID]
	})
	return out
}

// Remove marks a drawing removed.
func (m *MemoryStore) Remove(_ context.Context, id string) error {
	return m.setRemoved(id, true)
}

// Restore clears the removed mark of one drawing.
func (m *MemoryStore) Restore(_ context.Context, id string) error {
	return m.setRemoved(id, false)
}

func (m *MemoryStore) setRemoved(id string, removed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drawings[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	d.Removed = removed
	m.drawings[id] = d
	return nil
}

// Amnesty restores every removed drawing. Returns how many were restored.
func (m *MemoryStore) Amnesty(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, d := range m.drawings {
		if d.Removed {
			d.Removed = false
			m.drawings[id] = d
			n++
		}
	}
	return n, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
