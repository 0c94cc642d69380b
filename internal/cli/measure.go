package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tapecalc/internal/measure"
	"github.com/idilsaglam/tapecalc/internal/ui"
)

func rows(w io.Writer, kv ...string) {
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintln(w, ui.Row(kv[i], kv[i+1]))
	}
}

func (a *app) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "parse <measurement...>",
		Short:   "Read a tape measurement and show it as decimal, fraction and tape",
		Example: `  tapecalc parse 7\' 10 7/8\"` + "\n" + `  tapecalc parse -- -2' 3/8"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			m, err := measure.Parse(strings.Join(args, " "))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			rows(w, "decimal", measure.FormatDecimal(m.Inches))
			if m.IsExact {
				rows(w, "exact", fmt.Sprintf("%s  (%s)", m.Exact.String(), m.Exact.Mixed()))
			}
			rows(w, "tape", measure.Format(m.Inches, a.cfg.Denominator))
			return nil
		}),
	}
}

func (a *app) formatCmd() *cobra.Command {
	var fraction bool
	cmd := &cobra.Command{
		Use:   "format <inches>",
		Short: "Format decimal inches as tape notation",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			in, err := measure.ParseInches(strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := measure.Format(in, a.cfg.Denominator)
			if fraction {
				out = measure.FormatFraction(in, a.cfg.Denominator)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&fraction, "fraction", false, `print "N D/D" inches without feet or markers`)
	return cmd
}

func (a *app) roundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "round <decimal>",
		Short: "Round a decimal to the nearest fraction of an inch",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			in, err := measure.ParseInches(args[0])
			if err != nil {
				return err
			}
			d, err := measure.RoundInches(in, a.cfg.Denominator)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			rows(w,
				"fraction", d.Fraction(),
				"error", measure.FormatDecimal(d.TotalInches()-in),
			)
			return nil
		}),
	}
}

var calcOps = map[string]bool{
	"+": true, "-": true, "−": true,
	"x": true, "X": true, "*": true, "×": true,
	"/": true, "÷": true,
}

// splitCalc finds the operator argument: `7' 10" + 1 3/8` as separate args.
func splitCalc(args []string) (a, op, b string, err error) {
	for i, arg := range args {
		if calcOps[arg] && i > 0 && i < len(args)-1 {
			return strings.Join(args[:i], " "), arg, strings.Join(args[i+1:], " "), nil
		}
	}
	return "", "", "", fmt.Errorf("expected <a> <op> <b> with op one of + - x * /")
}

func (a *app) calcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calc <a> <op> <b>",
		Short: "Exact fraction arithmetic on two measurements",
		Long: `Adds, subtracts, multiplies or divides two measurements exactly.
Division of two lengths is a plain ratio and is printed without a unit.`,
		Example: `  tapecalc calc "7' 10 7/8\"" + "1 3/8"` + "\n" + `  tapecalc calc 3/4 x 3`,
		Args:    cobra.MinimumNArgs(3),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			as, op, bs, err := splitCalc(args)
			if err != nil {
				return err
			}
			x, err := measure.ParseRational(as)
			if err != nil {
				return err
			}
			y, err := measure.ParseRational(bs)
			if err != nil {
				return err
			}
			r, err := x.Op(op, y)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			rows(w, "exact", fmt.Sprintf("%s  (%s)", r.String(), r.Mixed()))
			rows(w, "decimal", measure.FormatDecimal(r.Float64()))
			if op != "/" && op != "÷" {
				rows(w, "tape", measure.FormatRational(r, a.cfg.Denominator))
			}
			return nil
		}),
	}
}

func printTriangle(w io.Writer, tr measure.Triangle, denom int) {
	rows(w,
		"rise", measure.Format(tr.Rise, denom),
		"run", measure.Format(tr.Run, denom),
		"diagonal", fmt.Sprintf("%s  (%s in)", measure.Format(tr.Diagonal, denom), measure.FormatDecimal(tr.Diagonal)),
		"angle", measure.FormatDecimal(round2(tr.Degrees))+"°",
	)
}

func round2(d float64) float64 { return math.Round(d*100) / 100 }

func (a *app) triangleCmd() *cobra.Command {
	var rise, run string
	cmd := &cobra.Command{
		Use:   "triangle --rise <measurement> --run <measurement>",
		Short: "Diagonal and angle of a right triangle",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			r, err := measure.ParseInches(rise)
			if err != nil {
				return fmt.Errorf("rise: %w", err)
			}
			n, err := measure.ParseInches(run)
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}
			tr, err := measure.Solve(r, n)
			if err != nil {
				return err
			}
			printTriangle(cmd.OutOrStdout(), tr, a.cfg.Denominator)
			return nil
		}),
	}
	cmd.Flags().StringVar(&rise, "rise", "", "vertical leg")
	cmd.Flags().StringVar(&run, "run", "", "horizontal leg")
	_ = cmd.MarkFlagRequired("rise")
	_ = cmd.MarkFlagRequired("run")
	return cmd
}

func (a *app) pitchCmd() *cobra.Command {
	var run string
	cmd := &cobra.Command{
		Use:     "pitch <rise/run> --run <measurement>",
		Short:   "Rise, rafter diagonal and angle for a roof pitch over a run",
		Example: `  tapecalc pitch 6/12 --run "11' 6\""`,
		Args:    cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			pr, pn, err := measure.ParsePitch(args[0])
			if err != nil {
				return err
			}
			n, err := measure.ParseInches(run)
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}
			tr, err := measure.Solve(n*pr/pn, n)
			if err != nil {
				return err
			}
			printTriangle(cmd.OutOrStdout(), tr, a.cfg.Denominator)
			return nil
		}),
	}
	cmd.Flags().StringVar(&run, "run", "", "horizontal run")
	_ = cmd.MarkFlagRequired("run")
	return cmd
}
