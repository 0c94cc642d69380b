package cli

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tapecalc/internal/measure"
	"github.com/idilsaglam/tapecalc/internal/ui"
)

const mmPerInch = 25.4

// refCard is a markdown table of every 1/denom step of an inch.
func refCard(denom int) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# Fractions of an inch (1/%d)\n\n", denom)
	b.WriteString("| Fraction | Decimal | mm |\n|---:|---:|---:|\n")
	for n := 1; n < denom; n++ {
		r, err := measure.New(int64(n), int64(denom))
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n",
			r.String(), measure.FormatDecimal(r.Float64()), measure.FormatDecimal(round2(r.Float64()*mmPerInch)))
	}
	return b.String(), nil
}

func (a *app) refCmd() *cobra.Command {
	var width int
	var raw bool
	cmd := &cobra.Command{
		Use:   "ref",
		Short: "Fraction to decimal reference card",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			if a.cfg.Denominator > 64 {
				return fmt.Errorf("ref: denominator %d is too fine for a card (max 64)", a.cfg.Denominator)
			}
			md, err := refCard(a.cfg.Denominator)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if raw {
				_, err := fmt.Fprint(w, md)
				return err
			}
			plain := termenv.NewOutput(w).EnvColorProfile() == termenv.Ascii
			out, err := ui.RenderMarkdown(md, width, plain)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(w, out)
			return err
		}),
	}
	cmd.Flags().IntVar(&width, "width", 80, "wrap width")
	cmd.Flags().BoolVar(&raw, "markdown", false, "print the markdown source")
	return cmd
}
