// Package sqlitestore keeps named geometry datasets in a SQLite file so a
// layout can be imported once and rendered many times.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/sprinkler-layout/internal/geometry"
)

// ErrDatasetNotFound is returned by Load for an unknown dataset name.
var ErrDatasetNotFound = errors.New("dataset not found")

// Store is a SQLite-backed collection of geometry datasets.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and migrates it to the
// latest schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open geometry database: %w", err)
	}
	// A single connection keeps in-memory databases consistent across calls.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores src under its name, replacing any dataset of the same name.
func (s *Store) Save(ctx context.Context, src geometry.Source) error {
	name := src.Name()
	if name == "" {
		return errors.New("cannot save a dataset without a name")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"connectors", "sprinklers", "pipes", "room_points", "datasets"} {
		col := "dataset"
		if table == "datasets" {
			col = "name"
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, col), name); err != nil {
			return fmt.Errorf("failed to clear %s for %q: %w", table, name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO datasets (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("failed to insert dataset %q: %w", name, err)
	}
	for i, p := range src.Room() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO room_points (dataset, seq, x, y, z) VALUES (?, ?, ?, ?, ?)`,
			name, i, p.X, p.Y, p.Z); err != nil {
			return fmt.Errorf("failed to insert room point %d: %w", i, err)
		}
	}
	for i, p := range src.Pipes() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO pipes (dataset, seq, pipe_id, start_x, start_y, start_z, end_x, end_y, end_z)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			name, i, p.ID, p.Start.X, p.Start.Y, p.Start.Z, p.End.X, p.End.Y, p.End.Z); err != nil {
			return fmt.Errorf("failed to insert pipe %d: %w", i, err)
		}
	}
	for i, sp := range src.Sprinklers() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sprinklers (dataset, seq, label, x, y, z, group_id) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			name, i, sp.Label, sp.Position.X, sp.Position.Y, sp.Position.Z, sp.GroupID); err != nil {
			return fmt.Errorf("failed to insert sprinkler %d: %w", i, err)
		}
	}
	for i, c := range src.Connectors() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO connectors (dataset, seq, start_x, start_y, start_z, end_x, end_y, end_z, group_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			name, i, c.Start.X, c.Start.Y, c.Start.Z, c.End.X, c.End.Y, c.End.Z, c.GroupID); err != nil {
			return fmt.Errorf("failed to insert connector %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset %q: %w", name, err)
	}
	return nil
}

// List returns the stored dataset names in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM datasets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Load reads the named dataset. Collections come back in the order they were
// saved.
func (s *Store) Load(ctx context.Context, name string) (*geometry.Dataset, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM datasets WHERE name = ?`, name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to look up dataset %q: %w", name, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %q", ErrDatasetNotFound, name)
	}

	room, err := queryAll(ctx, s.db,
		`SELECT x, y, z FROM room_points WHERE dataset = ? ORDER BY seq`, name,
		func(rows *sql.Rows) (geometry.Point3D, error) {
			var p geometry.Point3D
			err := rows.Scan(&p.X, &p.Y, &p.Z)
			return p, err
		})
	if err != nil {
		return nil, fmt.Errorf("failed to load room for %q: %w", name, err)
	}

	pipes, err := queryAll(ctx, s.db,
		`SELECT pipe_id, start_x, start_y, start_z, end_x, end_y, end_z FROM pipes WHERE dataset = ? ORDER BY seq`, name,
		func(rows *sql.Rows) (geometry.Pipe, error) {
			var p geometry.Pipe
			err := rows.Scan(&p.ID, &p.Start.X, &p.Start.Y, &p.Start.Z, &p.End.X, &p.End.Y, &p.End.Z)
			return p, err
		})
	if err != nil {
		return nil, fmt.Errorf("failed to load pipes for %q: %w", name, err)
	}

	sprinklers, err := queryAll(ctx, s.db,
		`SELECT label, x, y, z, group_id FROM sprinklers WHERE dataset = ? ORDER BY seq`, name,
		func(rows *sql.Rows) (geometry.Sprinkler, error) {
			var sp geometry.Sprinkler
			err := rows.Scan(&sp.Label, &sp.Position.X, &sp.Position.Y, &sp.Position.Z, &sp.GroupID)
			return sp, err
		})
	if err != nil {
		return nil, fmt.Errorf("failed to load sprinklers for %q: %w", name, err)
	}

	connectors, err := queryAll(ctx, s.db,
		`SELECT start_x, start_y, start_z, end_x, end_y, end_z, group_id FROM connectors WHERE dataset = ? ORDER BY seq`, name,
		func(rows *sql.Rows) (geometry.Connector, error) {
			var c geometry.Connector
			err := rows.Scan(&c.Start.X, &c.Start.Y, &c.Start.Z, &c.End.X, &c.End.Y, &c.End.Z, &c.GroupID)
			return c, err
		})
	if err != nil {
		return nil, fmt.Errorf("failed to load connectors for %q: %w", name, err)
	}

	return geometry.NewDataset(name, room, pipes, sprinklers, connectors), nil
}

func queryAll[T any](ctx context.Context, db *sql.DB, query, name string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
