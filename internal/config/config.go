// Package config holds user settings for tapecalc, read from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/tapecalc/internal/store/jsonstore"
	"github.com/idilsaglam/tapecalc/internal/store/sqlitestore"
)

// Config is the full settings file.
type Config struct {
	// Denominator is the rounding granularity for tape output (16 = 1/16").
	Denominator int            `yaml:"denominator"`
	Theme       string         `yaml:"theme"` // classic, neon, mono
	Store       StoreConfig    `yaml:"store"`
	Log         LogConfig      `yaml:"log"`
	Estimate    EstimateConfig `yaml:"estimate"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"` // json, sqlite
	Path   string `yaml:"path"`   // empty: the driver's data file under Home
}

// DefaultStorePath is where a driver keeps its data when no path is set.
func DefaultStorePath(driver string) string {
	if strings.EqualFold(driver, "sqlite") {
		return filepath.Join(Home(), sqlitestore.DataFileName)
	}
	return filepath.Join(Home(), jsonstore.DataFileName)
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// EstimateConfig holds defaults for the estimate commands.
type EstimateConfig struct {
	WastePct         float64 `yaml:"waste_pct"`
	SpacingIn        float64 `yaml:"spacing_in"`
	SheetWidthFt     float64 `yaml:"sheet_width_ft"`
	SheetHeightFt    float64 `yaml:"sheet_height_ft"`
	ScrewsPerSheet   int     `yaml:"screws_per_sheet"`
	ScrewsPerBox     int     `yaml:"screws_per_box"`
	BundlesPerSquare int     `yaml:"bundles_per_square"`
	BagYieldCuFt     float64 `yaml:"bag_yield_cu_ft"`
}

// Home is ~/.tapecalc, or ./.tapecalc when there is no home directory.
func Home() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tapecalc"
	}
	return filepath.Join(home, ".tapecalc")
}

// DefaultPath is the config file location.
func DefaultPath() string {
	return filepath.Join(Home(), "config.yaml")
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Denominator: 16,
		Theme:       "classic",
		Store: StoreConfig{
			Driver: "json",
		},
		Log: LogConfig{
			Level: "warn",
		},
		Estimate: EstimateConfig{
			WastePct:         10,
			SpacingIn:        16,
			SheetWidthFt:     4,
			SheetHeightFt:    8,
			ScrewsPerSheet:   32,
			ScrewsPerBox:     100,
			BundlesPerSquare: 3,
			BagYieldCuFt:     0.6,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = DefaultStorePath(cfg.Store.Driver)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies TAPECALC_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if v := strings.TrimSpace(os.Getenv("TAPECALC_DENOM")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TAPECALC_DENOM: %w", err)
		}
		c.Denominator = n
	}
	if v := os.Getenv("TAPECALC_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("TAPECALC_STORE_DRIVER"); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv("TAPECALC_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("TAPECALC_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate rejects settings the calculator cannot work with.
func (c *Config) Validate() error {
	if c.Denominator <= 0 {
		return fmt.Errorf("denominator must be positive, got %d", c.Denominator)
	}
	switch strings.ToLower(c.Store.Driver) {
	case "json", "sqlite":
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Estimate.WastePct < 0 {
		return fmt.Errorf("waste_pct must not be negative")
	}
	return nil
}
