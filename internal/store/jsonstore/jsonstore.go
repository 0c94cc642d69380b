package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/tapecalc/internal/model"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking; fine for a local single-user CLI.

const DataFileName = "materials.json"

type Store struct {
	path string
}

// New stores the list at path. A directory path gets DataFileName inside it.
func New(path string) *Store {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, DataFileName)
	}
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

func (s *Store) Load(ctx context.Context) ([]model.Material, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Material{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var items []model.Material
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = []model.Material{}
	}
	return items, nil
}

func (s *Store) Save(ctx context.Context, items []model.Material) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if items == nil {
		items = []model.Material{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
