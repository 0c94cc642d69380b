// Package sqlitestore keeps the materials list in a SQLite file, for users
// who want to query it with other tools.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration

	"github.com/idilsaglam/tapecalc/internal/model"
)

const DataFileName = "materials.db"

const schema = `
CREATE TABLE IF NOT EXISTS materials (
	position   INTEGER PRIMARY KEY,
	id         TEXT NOT NULL,
	name       TEXT NOT NULL,
	quantity   REAL NOT NULL,
	unit       TEXT NOT NULL,
	note       TEXT NOT NULL DEFAULT '',
	done       INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
)`

type Store struct {
	db   *sql.DB
	path string
}

// Open creates the database and table if needed. A directory path gets
// DataFileName inside it.
func Open(path string) (*Store, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, DataFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Load(ctx context.Context) ([]model.Material, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, quantity, unit, note, done, created_at FROM materials ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	items := []model.Material{}
	for rows.Next() {
		var (
			m       model.Material
			created string
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Quantity, &m.Unit, &m.Note, &m.Done, &created); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		if m.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("material %s created_at: %w", m.ID, err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}
	return items, nil
}

// Save replaces every row in one transaction so list order is kept.
func (s *Store) Save(ctx context.Context, items []model.Material) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM materials`); err != nil {
		return fmt.Errorf("clear materials: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO materials (position, id, name, quantity, unit, note, done, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range items {
		if _, err := stmt.ExecContext(ctx, i, m.ID, m.Name, m.Quantity, m.Unit, m.Note, m.Done,
			m.CreatedAt.UTC().Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("insert %q: %w", m.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }
