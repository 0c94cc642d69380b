// Package cli is the tapecalc command tree.
package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/tapecalc/internal/config"
	"github.com/idilsaglam/tapecalc/internal/logging"
	"github.com/idilsaglam/tapecalc/internal/store"
	"github.com/idilsaglam/tapecalc/internal/ui"
)

// app is the state shared by one command invocation.
type app struct {
	cfgPath string
	denom   int
	verbose bool

	cfg *config.Config
	log *zap.Logger
}

// NewRootCmd builds the tapecalc command tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "tapecalc",
		Short: "Construction tape calculator",
		Long: `tapecalc reads tape-measure notation like 7' 10 7/8", does exact fraction
arithmetic on it, rounds to the nearest 1/16" and estimates building materials.

Measurements with spaces need quotes; put -- before a negative value.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (default ~/.tapecalc/config.yaml)")
	root.PersistentFlags().IntVar(&a.denom, "denom", 0, "round tape output to 1/denom of an inch (default from config, 16)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(
		a.parseCmd(),
		a.formatCmd(),
		a.roundCmd(),
		a.calcCmd(),
		a.triangleCmd(),
		a.pitchCmd(),
		a.estimateCmd(),
		a.materialsCmd(),
		a.tuiCmd(),
		a.refCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	// Load .env file if present (ignore errors)
	_ = godotenv.Load()

	path := a.cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("denom") {
		if a.denom <= 0 {
			return fmt.Errorf("--denom must be positive, got %d", a.denom)
		}
		cfg.Denominator = a.denom
	}
	a.cfg = cfg
	ui.SetTheme(cfg.Theme)

	level := cfg.Log.Level
	if a.verbose {
		level = "debug"
	}
	logger, err := logging.New(level)
	if err != nil {
		return err
	}
	a.log = logger
	a.log.Debug("command start",
		zap.String("command", cmd.CommandPath()),
		zap.Strings("args", args),
		zap.String("config", path),
		zap.Int("denominator", cfg.Denominator),
	)
	return nil
}

// run wraps a RunE so failures are logged before cobra reports them.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err != nil {
			a.log.Debug("command failed", zap.String("command", cmd.CommandPath()), zap.Error(err))
		}
		return err
	}
}

func (a *app) openStore() (store.Store, error) {
	st, err := store.Open(a.cfg.Store.Driver, a.cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.log.Debug("store opened", zap.String("driver", a.cfg.Store.Driver), zap.String("path", a.cfg.Store.Path))
	return st, nil
}
