package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/tapecalc/internal/model"
	"github.com/idilsaglam/tapecalc/internal/tui"
	"github.com/idilsaglam/tapecalc/internal/ui"
)

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive tape calculator (ctrl+s saves A+B to the materials list)",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			queued, err := tui.RunCalculator(cmd.Context(), a.cfg.Denominator)
			if err != nil {
				return err
			}
			if len(queued) == 0 {
				return nil
			}
			err = a.withItems(cmd, func(items []model.Material) ([]model.Material, bool, error) {
				return append(items, queued...), true, nil
			})
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("saved %d to materials", len(queued)))
			return nil
		}),
	}
}

func (a *app) materialsTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive list: space toggles, a adds, e edits, d deletes, u undoes",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			saved, err := tui.RunMaterials(cmd.Context(), st)
			if err != nil {
				return err
			}
			a.log.Debug("materials tui closed", zap.Bool("saved", saved))
			if saved {
				ui.OK(cmd.OutOrStdout(), "saved")
			}
			return nil
		}),
	}
}
