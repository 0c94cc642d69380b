// Package store persists the materials list. Best-effort only: there is no
// schema versioning and no locking; it is a local single-user list.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/idilsaglam/tapecalc/internal/model"
	"github.com/idilsaglam/tapecalc/internal/store/jsonstore"
	"github.com/idilsaglam/tapecalc/internal/store/sqlitestore"
)

// Store loads and saves the whole list at once.
type Store interface {
	Load(ctx context.Context) ([]model.Material, error)
	Save(ctx context.Context, items []model.Material) error
	Close() error
}

const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Open returns the backend named by driver, rooted at path.
func Open(driver, path string) (Store, error) {
	switch strings.ToLower(driver) {
	case "", DriverJSON:
		return jsonstore.New(path), nil
	case DriverSQLite:
		s, err := sqlitestore.Open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", driver)
}
