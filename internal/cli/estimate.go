package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tapecalc/internal/estimate"
	"github.com/idilsaglam/tapecalc/internal/measure"
	"github.com/idilsaglam/tapecalc/internal/model"
	"github.com/idilsaglam/tapecalc/internal/ui"
)

func (a *app) estimateCmd() *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Material take-offs from dimensions",
		Long: `Estimate studs, sheet goods, screws, shingles and concrete.
Dimensions are tape measurements; quote the ones with spaces.
Defaults for waste, spacing and sheet size come from the config file.`,
	}
	cmd.PersistentFlags().BoolVar(&save, "save", false, "append the result to the materials list")

	cmd.AddCommand(
		a.studsCmd(&save),
		a.sheetsCmd(&save),
		a.screwsCmd(&save),
		a.roofCmd(&save),
		a.concreteCmd(&save),
	)
	return cmd
}

// report prints estimates and, with --save, appends them to the list.
func (a *app) report(cmd *cobra.Command, save bool, es []estimate.Estimate) error {
	w := cmd.OutOrStdout()
	for _, e := range es {
		fmt.Fprintln(w, e.String())
	}
	if !save {
		return nil
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	items, err := st.Load(ctx)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	for _, e := range es {
		items = append(items, model.NewMaterial(e.Name, e.Quantity, e.Unit, e.Detail))
	}
	if err := st.Save(ctx, items); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	ui.OK(w, fmt.Sprintf("saved %d to materials", len(es)))
	return nil
}

func inches(args []string, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := measure.ParseInches(args[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[i] = v
	}
	return out, nil
}

func (a *app) studsCmd(save *bool) *cobra.Command {
	var spacing string
	var opts estimate.WallOptions
	cmd := &cobra.Command{
		Use:     "studs <wall-length>",
		Short:   "Studs and plate stock for a wall",
		Example: `  tapecalc estimate studs "12' 6\"" --corners 2 --openings 1`,
		Args:    cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			l, err := inches(args, "wall length")
			if err != nil {
				return err
			}
			oc := a.cfg.Estimate.SpacingIn
			if spacing != "" {
				if oc, err = measure.ParseInches(spacing); err != nil {
					return fmt.Errorf("spacing: %w", err)
				}
			}
			wall, err := estimate.FrameWall(l[0], oc, opts)
			if err != nil {
				return err
			}
			return a.report(cmd, *save, wall.Estimates())
		}),
	}
	cmd.Flags().StringVar(&spacing, "spacing", "", "stud spacing on center (default from config, 16)")
	cmd.Flags().IntVar(&opts.Corners, "corners", 0, "corners in the wall")
	cmd.Flags().IntVar(&opts.Openings, "openings", 0, "doors and windows")
	return cmd
}

func (a *app) sheetsCmd(save *bool) *cobra.Command {
	var waste, sheetW, sheetH float64
	cmd := &cobra.Command{
		Use:     "sheets <length> <width>",
		Short:   "Plywood, OSB or drywall sheets to cover an area",
		Example: `  tapecalc estimate sheets "20'" "8'"`,
		Args:    cobra.ExactArgs(2),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			d, err := inches(args, "length", "width")
			if err != nil {
				return err
			}
			area, err := estimate.AreaSqFt(d[0], d[1])
			if err != nil {
				return err
			}
			s, err := estimate.SheetCount(area, flagOr(cmd, "sheet-width", sheetW, a.cfg.Estimate.SheetWidthFt),
				flagOr(cmd, "sheet-height", sheetH, a.cfg.Estimate.SheetHeightFt),
				flagOr(cmd, "waste", waste, a.cfg.Estimate.WastePct))
			if err != nil {
				return err
			}
			return a.report(cmd, *save, []estimate.Estimate{s.Estimate()})
		}),
	}
	cmd.Flags().Float64Var(&waste, "waste", 0, "waste percent (default from config)")
	cmd.Flags().Float64Var(&sheetW, "sheet-width", 0, "sheet width in feet (default 4)")
	cmd.Flags().Float64Var(&sheetH, "sheet-height", 0, "sheet height in feet (default 8)")
	return cmd
}

func (a *app) screwsCmd(save *bool) *cobra.Command {
	var perSheet, perBox int
	cmd := &cobra.Command{
		Use:   "screws <sheets>",
		Short: "Screws and boxes for a number of sheets",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("sheets: not a number: %s", args[0])
			}
			ps, pb := a.cfg.Estimate.ScrewsPerSheet, a.cfg.Estimate.ScrewsPerBox
			if cmd.Flags().Changed("per-sheet") {
				ps = perSheet
			}
			if cmd.Flags().Changed("per-box") {
				pb = perBox
			}
			f, err := estimate.ScrewCount(n, ps, pb)
			if err != nil {
				return err
			}
			return a.report(cmd, *save, f.Estimates())
		}),
	}
	cmd.Flags().IntVar(&perSheet, "per-sheet", 0, "screws per sheet (default from config, 32)")
	cmd.Flags().IntVar(&perBox, "per-box", 0, "screws per box (default from config, 100)")
	return cmd
}

func (a *app) roofCmd(save *bool) *cobra.Command {
	var pitch string
	var waste float64
	var bundles int
	cmd := &cobra.Command{
		Use:     "roof <length> <width>",
		Short:   "Shingle squares and bundles for a gable roof footprint",
		Example: `  tapecalc estimate roof "30'" "24'" --pitch 6/12`,
		Args:    cobra.ExactArgs(2),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			d, err := inches(args, "length", "width")
			if err != nil {
				return err
			}
			area, err := estimate.AreaSqFt(d[0], d[1])
			if err != nil {
				return err
			}
			if pitch != "" {
				rise, run, err := measure.ParsePitch(pitch)
				if err != nil {
					return err
				}
				if area, err = estimate.RoofArea(area, rise*12/run); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("bundles") {
				bundles = a.cfg.Estimate.BundlesPerSquare
			}
			r, err := estimate.Roofing(area, flagOr(cmd, "waste", waste, a.cfg.Estimate.WastePct), bundles)
			if err != nil {
				return err
			}
			return a.report(cmd, *save, []estimate.Estimate{r.Estimate()})
		}),
	}
	cmd.Flags().StringVar(&pitch, "pitch", "", "roof pitch such as 6/12; flat when empty")
	cmd.Flags().Float64Var(&waste, "waste", 0, "waste percent (default from config)")
	cmd.Flags().IntVar(&bundles, "bundles", 0, "bundles per square (default from config, 3)")
	return cmd
}

func (a *app) concreteCmd(save *bool) *cobra.Command {
	var waste, bagYield float64
	cmd := &cobra.Command{
		Use:     "concrete <length> <width> <depth>",
		Short:   "Cubic yards and premix bags for a slab",
		Example: `  tapecalc estimate concrete "10'" "10'" 4`,
		Args:    cobra.ExactArgs(3),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			d, err := inches(args, "length", "width", "depth")
			if err != nil {
				return err
			}
			s, err := estimate.Concrete(d[0], d[1], d[2],
				flagOr(cmd, "waste", waste, a.cfg.Estimate.WastePct),
				flagOr(cmd, "bag-yield", bagYield, a.cfg.Estimate.BagYieldCuFt))
			if err != nil {
				return err
			}
			return a.report(cmd, *save, s.Estimates())
		}),
	}
	cmd.Flags().Float64Var(&waste, "waste", 0, "waste percent (default from config)")
	cmd.Flags().Float64Var(&bagYield, "bag-yield", 0, "cubic feet per bag (default 0.6, 80 lb)")
	return cmd
}

// flagOr returns v when the flag was given, otherwise the config default.
func flagOr(cmd *cobra.Command, name string, v, def float64) float64 {
	if cmd.Flags().Changed(name) {
		return v
	}
	return def
}
