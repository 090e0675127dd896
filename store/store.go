// Package store persists spline chains in a SQLite database.
//
// A chain is stored as its two parallel sequences, control points and
// joint modes, keyed by a chain name. Loading re-checks the chain invariants,
// so a damaged database yields an error rather than a broken chain.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/spline3d"
	"github.com/npillmayer/spline3d/chain"
	_ "modernc.org/sqlite"
)

// tracer writes to trace with key 'store'
func tracer() tracing.Trace {
	return tracing.Select("store")
}

// ErrNotFound is returned when loading or deleting an unknown chain.
var ErrNotFound = errors.New("chain not found")

var schema = []string{
	`CREATE TABLE IF NOT EXISTS chains (
		name     TEXT PRIMARY KEY,
		segments INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS points (
		chain TEXT NOT NULL,
		idx   INTEGER NOT NULL,
		x     REAL NOT NULL,
		y     REAL NOT NULL,
		z     REAL NOT NULL,
		PRIMARY KEY (chain, idx)
	)`,
	`CREATE TABLE IF NOT EXISTS modes (
		chain TEXT NOT NULL,
		idx   INTEGER NOT NULL,
		mode  TEXT NOT NULL,
		PRIMARY KEY (chain, idx)
	)`,
}

// Store is a chain database.
type Store struct {
	db *sql.DB
}

// Open opens (and, if necessary, creates) a chain database. dsn is a file
// name or any data source name understood by the sqlite driver.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	for _, stmt := range schema {
		if _, err = db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}
	tracer().Infof("chain database %s opened", dsn)
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores c under name, replacing any chain of the same name.
func (s *Store) Save(ctx context.Context, name string, c *chain.Chain) error {
	st := c.State()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err = deleteRows(ctx, tx, name); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO chains (name, segments) VALUES (?, ?)`,
		name, c.SegmentCount()); err != nil {
		return fmt.Errorf("failed to insert chain %q: %w", name, err)
	}
	for i, p := range st.Points {
		if _, err = tx.ExecContext(ctx, `INSERT INTO points (chain, idx, x, y, z) VALUES (?, ?, ?, ?, ?)`,
			name, i, p.X, p.Y, p.Z); err != nil {
			return fmt.Errorf("failed to insert point %d of %q: %w", i, name, err)
		}
	}
	for j, m := range st.Modes {
		if _, err = tx.ExecContext(ctx, `INSERT INTO modes (chain, idx, mode) VALUES (?, ?, ?)`,
			name, j, m.String()); err != nil {
			return fmt.Errorf("failed to insert mode %d of %q: %w", j, name, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	tracer().Debugf("saved chain %q with %d segments", name, c.SegmentCount())
	return nil
}

// Load reads the chain stored under name.
func (s *Store) Load(ctx context.Context, name string) (*chain.Chain, error) {
	var segments int
	err := s.db.QueryRowContext(ctx, `SELECT segments FROM chains WHERE name = ?`, name).Scan(&segments)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	} else if err != nil {
		return nil, err
	}
	st := chain.State{}
	if st.Points, err = s.loadPoints(ctx, name); err != nil {
		return nil, err
	}
	if st.Modes, err = s.loadModes(ctx, name); err != nil {
		return nil, err
	}
	c, err := chain.FromState(st)
	if err != nil {
		return nil, fmt.Errorf("chain %q: %w", name, err)
	}
	if c.SegmentCount() != segments {
		tracer().Errorf("chain %q: %d segments recorded, %d stored", name, segments, c.SegmentCount())
		return nil, fmt.Errorf("%w: chain %q records %d segments, but has %d", chain.ErrInvariantViolation,
			name, segments, c.SegmentCount())
	}
	return c, nil
}

func (s *Store) loadPoints(ctx context.Context, name string) ([]spline3d.V3, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT idx, x, y, z FROM points WHERE chain = ? ORDER BY idx`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var points []spline3d.V3
	for rows.Next() {
		var idx int
		var p spline3d.V3
		if err := rows.Scan(&idx, &p.X, &p.Y, &p.Z); err != nil {
			return nil, err
		}
		if idx != len(points) {
			return nil, fmt.Errorf("%w: chain %q is missing control point %d", chain.ErrInvariantViolation,
				name, len(points))
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (s *Store) loadModes(ctx context.Context, name string) ([]chain.Mode, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT idx, mode FROM modes WHERE chain = ? ORDER BY idx`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var modes []chain.Mode
	for rows.Next() {
		var idx int
		var text string
		if err := rows.Scan(&idx, &text); err != nil {
			return nil, err
		}
		if idx != len(modes) {
			return nil, fmt.Errorf("%w: chain %q is missing mode %d", chain.ErrInvariantViolation,
				name, len(modes))
		}
		m, err := chain.ParseMode(text)
		if err != nil {
			return nil, fmt.Errorf("%w: chain %q: %v", chain.ErrInvariantViolation, name, err)
		}
		modes = append(modes, m)
	}
	return modes, rows.Err()
}

// List returns the names of all stored chains, in alphabetical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM chains ORDER BY name`)
	if err != nil {
		return nil, err
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

// Delete removes the chain stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	res, err := tx.ExecContext(ctx, `DELETE FROM chains WHERE name = ?`, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err = deleteRows(ctx, tx, name); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteRows(ctx context.Context, tx *sql.Tx, name string) error {
	for _, table := range []string{"chains", "points", "modes"} {
		col := "chain"
		if table == "chains" {
			col = "name"
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE `+col+` = ?`, name); err != nil {
			return fmt.Errorf("failed to delete %s of %q: %w", table, name, err)
		}
	}
	return nil
}
