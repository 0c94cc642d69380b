package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Denominator)
	assert.Equal(t, "json", cfg.Store.Driver)
	assert.Equal(t, 3, cfg.Estimate.BundlesPerSquare)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("denominator: 32\nstore:\n  driver: sqlite\n  path: /tmp/m.db\nestimate:\n  waste_pct: 15\n"), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Denominator)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "/tmp/m.db", cfg.Store.Path)
	assert.Equal(t, 15.0, cfg.Estimate.WastePct)
	// Untouched keys keep their defaults.
	assert.Equal(t, 16.0, cfg.Estimate.SpacingIn)
}

func TestLoad_BadYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("denominator: [\n"), 0o644))
	_, err := Load(p)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("TAPECALC_DENOM", func(t *testing.T) {
		t.Setenv("TAPECALC_DENOM", "8")
		cfg := Default()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, 8, cfg.Denominator)
	})

	t.Run("TAPECALC_DENOM not a number", func(t *testing.T) {
		t.Setenv("TAPECALC_DENOM", "sixteen")
		cfg := Default()
		assert.Error(t, cfg.applyEnvOverrides())
	})

	t.Run("store and log", func(t *testing.T) {
		t.Setenv("TAPECALC_STORE_DRIVER", "sqlite")
		t.Setenv("TAPECALC_STORE_PATH", "/data/m.db")
		t.Setenv("TAPECALC_LOG_LEVEL", "debug")
		t.Setenv("TAPECALC_THEME", "mono")
		cfg := Default()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, "sqlite", cfg.Store.Driver)
		assert.Equal(t, "/data/m.db", cfg.Store.Path)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "mono", cfg.Theme)
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Denominator = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Store.Driver = "mongo"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Estimate.WastePct = -1
	assert.Error(t, cfg.Validate())

	assert.NoError(t, Default().Validate())
}

func TestSaveLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.Denominator = 8
	cfg.Theme = "neon"
	require.NoError(t, cfg.Save(p))

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Denominator)
	assert.Equal(t, "neon", got.Theme)
}

func TestLoad_StorePathFollowsDriver(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	t.Run("json", func(t *testing.T) {
		cfg, err := Load(filepath.Join(dir, "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "materials.json", filepath.Base(cfg.Store.Path))
	})

	t.Run("sqlite without a path", func(t *testing.T) {
		t.Setenv("TAPECALC_STORE_DRIVER", "sqlite")
		cfg, err := Load(filepath.Join(dir, "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "materials.db", filepath.Base(cfg.Store.Path))
		assert.Equal(t, filepath.Join(Home(), "materials.db"), cfg.Store.Path)
	})

	t.Run("explicit path wins", func(t *testing.T) {
		t.Setenv("TAPECALC_STORE_DRIVER", "sqlite")
		t.Setenv("TAPECALC_STORE_PATH", filepath.Join(dir, "list.db"))
		cfg, err := Load(filepath.Join(dir, "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "list.db"), cfg.Store.Path)
	})
}
