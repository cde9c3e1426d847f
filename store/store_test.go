package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pthm-cable/reef/drawing"
)

// stores returns a fresh instance of every Store implementation.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "reef.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { sq.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sq,
	}
}

func testLayers() drawing.Layers {
	return drawing.Layers{
		Tail: []drawing.Stroke{{
			Points: []drawing.Point{{X: 150, Y: 200}, {X: 150, Y: 80}},
			Color:  "#e04020",
			Size:   6,
		}},
		LeftClaw:  []drawing.Stroke{{Points: []drawing.Point{{X: 60, Y: 100}}, Color: "#aa3311", Size: 4}},
		RightClaw: nil,
	}
}

func ids(list []drawing.Drawing) []string {
	return drawing.IDs(list)
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPutListOrder(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			puts := []drawing.Drawing{
				{ID: "c", CreatedAt: 300},
				{ID: "a", CreatedAt: 100},
				{ID: "b2", CreatedAt: 200},
				{ID: "b1", CreatedAt: 200},
			}
			for _, d := range puts {
				if err := s.Put(ctx, d); err != nil {
					t.Fatalf("Put %s: %v", d.ID, err)
				}
			}
			list, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			// Equal timestamps keep insertion order
			if got, want := ids(list), []string{"a", "b2", "b1", "c"}; !sameIDs(got, want) {
				t.Errorf("order = %v, want %v", got, want)
			}
		})
	}
}

func TestLayersRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			created, err := s.Create(ctx, testLayers())
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if created.ID == "" || created.CreatedAt == 0 {
				t.Fatalf("Create returned %+v", created)
			}

			list, err := s.List(ctx)
			if err != nil || len(list) != 1 {
				t.Fatalf("List = %d drawings, err %v", len(list), err)
			}
			got := list[0]
			if got.ID != created.ID {
				t.Errorf("id = %q, want %q", got.ID, created.ID)
			}
			if len(got.Tail) != 1 || len(got.Tail[0].Points) != 2 {
				t.Fatalf("tail = %+v", got.Tail)
			}
			if got.Tail[0].Points[1] != (drawing.Point{X: 150, Y: 80}) {
				t.Errorf("tail point = %+v", got.Tail[0].Points[1])
			}
			if got.Tail[0].Color != "#e04020" || got.Tail[0].Size != 6 {
				t.Errorf("tail style = %q %v", got.Tail[0].Color, got.Tail[0].Size)
			}
			if len(got.LeftClaw) != 1 || len(got.RightClaw) != 0 {
				t.Errorf("claws = %d/%d strokes, want 1/0", len(got.LeftClaw), len(got.RightClaw))
			}
		})
	}
}

func TestRemoveRestoreAmnesty(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for i, id := range []string{"a", "b", "c"} {
				if err := s.Put(ctx, drawing.Drawing{ID: id, CreatedAt: int64(i)}); err != nil {
					t.Fatal(err)
				}
			}

			if err := s.Remove(ctx, "a"); err != nil {
				t.Fatalf("Remove: %v", err)
			}
			if err := s.Remove(ctx, "c"); err != nil {
				t.Fatalf("Remove: %v", err)
			}

			active, _ := s.Active(ctx)
			if got := ids(active); !sameIDs(got, []string{"b"}) {
				t.Errorf("active = %v, want [b]", got)
			}
			all, _ := s.List(ctx)
			if len(all) != 3 || !all[0].Removed || all[1].Removed {
				t.Errorf("List must keep removed drawings flagged: %+v", all)
			}

			if err := s.Restore(ctx, "a"); err != nil {
				t.Fatalf("Restore: %v", err)
			}
			active, _ = s.Active(ctx)
			if got := ids(active); !sameIDs(got, []string{"a", "b"}) {
				t.Errorf("after restore = %v, want [a b]", got)
			}

			n, err := s.Amnesty(ctx)
			if err != nil {
				t.Fatalf("Amnesty: %v", err)
			}
			if n != 1 {
				t.Errorf("amnesty restored %d, want 1", n)
			}
			active, _ = s.Active(ctx)
			if len(active) != 3 {
				t.Errorf("after amnesty %d active, want 3", len(active))
			}
		})
	}
}

func TestRemoveUnknown(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Remove(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Remove = %v, want ErrNotFound", err)
			}
			if err := s.Restore(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Restore = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestPutReplaces(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s.Put(ctx, drawing.Drawing{ID: "a", CreatedAt: 1})
			s.Put(ctx, drawing.Drawing{ID: "a", CreatedAt: 1, Removed: true, Layers: testLayers()})

			all, _ := s.List(ctx)
			if len(all) != 1 {
				t.Fatalf("%d drawings, want 1", len(all))
			}
			if !all[0].Removed || len(all[0].Tail) != 1 {
				t.Errorf("replacement not stored: %+v", all[0])
			}
		})
	}
}

func TestSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	samples := drawing.Samples()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			seeded, err := SeedIfEmpty(ctx, s, samples)
			if err != nil || !seeded {
				t.Fatalf("first seed = %v, %v", seeded, err)
			}
			seeded, err = SeedIfEmpty(ctx, s, samples)
			if err != nil || seeded {
				t.Errorf("second seed = %v, %v, want false", seeded, err)
			}
			all, _ := s.List(ctx)
			if len(all) != len(samples) {
				t.Errorf("%d drawings, want %d", len(all), len(samples))
			}
		})
	}
}

func TestSeedSkipsWhenOnlyRemoved(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Put(ctx, drawing.Drawing{ID: "a", Removed: true})

	seeded, err := SeedIfEmpty(ctx, s, drawing.Samples())
	if err != nil || seeded {
		t.Errorf("seed = %v, %v, want false", seeded, err)
	}
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	in := []drawing.Drawing{
		{Layers: testLayers()},
		{ID: "kept", CreatedAt: 5, Layers: testLayers()},
	}

	out, err := Import(ctx, s, in)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(out) != 2 || out[0].ID == "" || out[1].ID != "kept" {
		t.Errorf("imported %+v", ids(out))
	}
	all, _ := s.List(ctx)
	if len(all) != 2 {
		t.Errorf("%d stored, want 2", len(all))
	}
}

func TestMemoryPutRejectsEmptyID(t *testing.T) {
	if err := NewMemoryStore().Put(context.Background(), drawing.Drawing{}); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reef.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return time.UnixMilli(1234) }
	d, err := s.Create(ctx, testLayers())
	if err != nil {
		t.Fatal(err)
	}
	s.Remove(ctx, d.ID)
	s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	all, _ := s.List(ctx)
	if len(all) != 1 || all[0].ID != d.ID || all[0].CreatedAt != 1234 || !all[0].Removed {
		t.Errorf("reopened = %+v", all)
	}
}

func TestOpenSQLiteEmptyPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestRemoverCallsBack(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Put(ctx, drawing.Drawing{ID: "a"})

	var wg sync.WaitGroup
	wg.Add(1)
	var got string
	r := &Remover{Store: s, OnRemoved: func(id string) {
		got = id
		wg.Done()
	}}
	r.Remove("a")
	wg.Wait()

	if got != "a" {
		t.Errorf("callback id = %q", got)
	}
	active, _ := s.Active(ctx)
	if len(active) != 0 {
		t.Error("drawing still active after removal")
	}
}
