package jsonstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tapecalc/internal/model"
	"github.com/idilsaglam/tapecalc/internal/store/jsonstore"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s := jsonstore.New(filepath.Join(t.TempDir(), "materials.json"))
	items, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := jsonstore.New(filepath.Join(t.TempDir(), "nested", "materials.json"))

	in := []model.Material{
		model.NewMaterial("2x4x8 studs", 10, "pcs", "wall A"),
		model.NewMaterial("4x8 OSB", 11, "sheets", ""),
	}
	in[1].Done = true
	require.NoError(t, s.Save(ctx, in))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range in {
		assert.Equal(t, in[i].ID, got[i].ID)
		assert.Equal(t, in[i].Name, got[i].Name)
		assert.Equal(t, in[i].Quantity, got[i].Quantity)
		assert.Equal(t, in[i].Done, got[i].Done)
		assert.True(t, in[i].CreatedAt.Equal(got[i].CreatedAt))
	}
}

func TestNew_DirectoryGetsDefaultFile(t *testing.T) {
	dir := t.TempDir()
	s := jsonstore.New(dir)
	assert.Equal(t, filepath.Join(dir, jsonstore.DataFileName), s.Path())
}

func TestLoad_CorruptFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "materials.json")
	require.NoError(t, os.WriteFile(p, []byte("{not json"), 0o644))
	_, err := jsonstore.New(p).Load(context.Background())
	assert.Error(t, err)
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := jsonstore.New(filepath.Join(t.TempDir(), "m.json")).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
