package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS points (
	id   TEXT PRIMARY KEY,
	dims INTEGER NOT NULL,
	vec  BLOB NOT NULL
);`

// SQLitePointStore is a PointStore backed by a single SQLite file.
// Coordinates are stored as a little-endian float32 blob alongside
// their count, so a row is self-checking on read.
type SQLitePointStore struct {
	db *sql.DB
}

// NewSQLitePointStore opens (creating if needed) the catalog database
// at path and ensures the schema exists.
func NewSQLitePointStore(path string) (*SQLitePointStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing catalog schema: %w", err)
	}
	return &SQLitePointStore{db: db}, nil
}

// Put inserts or replaces the point with the given ID.
func (s *SQLitePointStore) Put(ctx context.Context, p Point) error {
	if p.ID == "" {
		return errors.New("store: point has no id")
	}
	if len(p.Vec) == 0 {
		return fmt.Errorf("store: point %q has no coordinates", p.ID)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO points (id, dims, vec) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET dims = excluded.dims, vec = excluded.vec`,
		p.ID, len(p.Vec), encodeVec(p.Vec))
	if err != nil {
		return fmt.Errorf("storing point %q: %w", p.ID, err)
	}
	return nil
}

// Get returns the point with the given ID, or nil if absent.
func (s *SQLitePointStore) Get(ctx context.Context, id string) (*Point, error) {
	var dims int
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT dims, vec FROM points WHERE id = ?`, id).Scan(&dims, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading point %q: %w", id, err)
	}
	vec, err := decodeVec(blob, dims)
	if err != nil {
		return nil, fmt.Errorf("point %q: %w", id, err)
	}
	return &Point{ID: id, Vec: vec}, nil
}

// All returns every cataloged point, in no particular order.
func (s *SQLitePointStore) All(ctx context.Context) ([]Point, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, dims, vec FROM points`)
	if err != nil {
		return nil, fmt.Errorf("listing points: %w", err)
	}
	defer rows.Close()

	var points []Point
	for rows.Next() {
		var id string
		var dims int
		var blob []byte
		if err := rows.Scan(&id, &dims, &blob); err != nil {
			return nil, fmt.Errorf("scanning point row: %w", err)
		}
		vec, err := decodeVec(blob, dims)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", id, err)
		}
		points = append(points, Point{ID: id, Vec: vec})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing points: %w", err)
	}
	return points, nil
}

// Count returns the number of cataloged points.
func (s *SQLitePointStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM points`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting points: %w", err)
	}
	return n, nil
}

// Close closes the database handle.
func (s *SQLitePointStore) Close() error {
	return s.db.Close()
}

func encodeVec(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVec(blob []byte, dims int) ([]float32, error) {
	if dims <= 0 || len(blob) != 4*dims {
		return nil, fmt.Errorf("vector blob is %d bytes, want %d for %d dims", len(blob), 4*dims, dims)
	}
	vec := make([]float32, dims)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vec, nil
}
