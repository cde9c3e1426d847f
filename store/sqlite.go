package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/pthm-cable/reef/drawing"
)

// SQLiteStore keeps drawings in a SQLite database, one row per drawing
// with each layer stored as a JSON array.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens or creates a drawing database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setting pragmas: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lobsters (
			id TEXT PRIMARY KEY,
			tail TEXT NOT NULL,
			left_claw TEXT NOT NULL,
			right_claw TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			removed INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS lobsters_created_at ON lobsters(created_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Create stores new artwork under a fresh id.
func (s *SQLiteStore) Create(ctx context.Context, layers drawing.Layers) (drawing.Drawing, error) {
	d := drawing.Drawing{
		ID:        uuid.NewString(),
		Layers:    layers,
		CreatedAt: s.now().UnixMilli(),
	}
	if err := s.Put(ctx, d); err != nil {
		return drawing.Drawing{}, err
	}
	return d, nil
}

// Put inserts or replaces a drawing.
func (s *SQLiteStore) Put(ctx context.Context, d drawing.Drawing) error {
	tail, left, right, err := encodeLayers(d.Layers)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO lobsters (id, tail, left_claw, right_claw, created_at, removed)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			tail=excluded.tail,
			left_claw=excluded.left_claw,
			right_claw=excluded.right_claw,
			created_at=excluded.created_at,
			removed=excluded.removed`,
		d.ID, tail, left, right, d.CreatedAt, boolInt(d.Removed),
	)
	if err != nil {
		return fmt.Errorf("storing drawing %s: %w", d.ID, err)
	}
	return nil
}

// List returns every drawing, oldest first.
func (s *SQLiteStore) List(ctx context.Context) ([]drawing.Drawing, error) {
	return s.query(ctx, `SELECT id, tail, left_claw, right_claw, created_at, removed FROM lobsters ORDER BY created_at ASC, rowid ASC`)
}

// Active returns the drawings that are not removed, oldest first.
func (s *SQLiteStore) Active(ctx context.Context) ([]drawing.Drawing, error) {
	return s.query(ctx, `SELECT id, tail, left_claw, right_claw, created_at, removed FROM lobsters WHERE removed = 0 ORDER BY created_at ASC, rowid ASC`)
}

func (s *SQLiteStore) query(ctx context.Context, q string) ([]drawing.Drawing, error) {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying drawings: %w", err)
	}
	defer rows.Close()

	var out []drawing.Drawing
	for rows.Next() {
		var (
			d                 drawing.Drawing
			tail, left, right string
			removed           int
		)
		if err := rows.Scan(&d.ID, &tail, &left, &right, &d.CreatedAt, &removed); err != nil {
			return nil, fmt.Errorf("scanning drawing: %w", err)
		}
		if err := decodeLayers(&d.Layers, tail, left, right); err != nil {
			return nil, fmt.Errorf("decoding drawing %s: %w", d.ID, err)
		}
		d.Removed = removed != 0
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading drawings: %w", err)
	}
	return out, nil
}

// Remove marks a drawing removed.
func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	return s.setRemoved(ctx, id, true)
}

// Restore clears the removed mark of one drawing.
func (s *SQLiteStore) Restore(ctx context.Context, id string) error {
	return s.setRemoved(ctx, id, false)
}

func (s *SQLiteStore) setRemoved(ctx context.Context, id string, removed bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE lobsters SET removed = ? WHERE id = ?`, boolInt(removed), id)
	if err != nil {
		return fmt.Errorf("updating drawing %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating drawing %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Amnesty restores every removed drawing. Returns how many were restored.
func (s *SQLiteStore) Amnesty(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE lobsters SET removed = 0 WHERE removed != 0`)
	if err != nil {
		return 0, fmt.Errorf("restoring drawings: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("restoring drawings: %w", err)
	}
	return int(n), nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func encodeLayers(l drawing.Layers) (tail, left, right string, err error) {
	enc := func(name string, strokes []drawing.Stroke) string {
		if err != nil {
			return ""
		}
		var b []byte
		b, err = json.Marshal(emptyIfNil(strokes))
		if err != nil {
			err = fmt.Errorf("encoding %s: %w", name, err)
		}
		return string(b)
	}
	tail = enc("tail", l.Tail)
	left = enc("left_claw", l.LeftClaw)
	right = enc("right_claw", l.RightClaw)
	return tail, left, right, err
}

func decodeLayers(l *drawing.Layers, tail, left, right string) error {
	if err := json.Unmarshal([]byte(tail), &l.Tail); err != nil {
		return fmt.Errorf("tail: %w", err)
	}
	if err := json.Unmarshal([]byte(left), &l.LeftClaw); err != nil {
		return fmt.Errorf("left_claw: %w", err)
	}
	if err := json.Unmarshal([]byte(right), &l.RightClaw); err != nil {
		return fmt.Errorf("right_claw: %w", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
