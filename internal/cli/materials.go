package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tapecalc/internal/measure"
	"github.com/idilsaglam/tapecalc/internal/model"
	"github.com/idilsaglam/tapecalc/internal/store"
	"github.com/idilsaglam/tapecalc/internal/ui"
)

func (a *app) materialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "materials",
		Aliases: []string{"mat", "m"},
		Short:   "The saved materials list",
	}
	cmd.AddCommand(
		a.materialsLsCmd(),
		a.materialsAddCmd(),
		a.materialsIndexCmd("done", "Toggle done for the entry at a 1-based index", "toggled", toggle),
		a.materialsIndexCmd("rm", "Remove the entry at a 1-based index", "removed", remove),
		a.materialsExportCmd(),
		a.materialsImportCmd(),
		a.materialsTUICmd(),
	)
	return cmd
}

// withItems loads the list, lets fn change it and saves when fn says so.
func (a *app) withItems(cmd *cobra.Command, fn func(items []model.Material) ([]model.Material, bool, error)) error {
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
	items, changed, err := fn(items)
	if err != nil || !changed {
		return err
	}
	if err := st.Save(ctx, items); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

func (a *app) materialsLsCmd() *cobra.Command {
	var group bool
	var format string
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List entries",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			return a.withItems(cmd, func(items []model.Material) ([]model.Material, bool, error) {
				w := cmd.OutOrStdout()
				if format != "text" {
					return items, false, store.Export(w, format, items)
				}
				ui.Panel(w, listLines(items, group))
				return items, false, nil
			})
		}),
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	cmd.Flags().StringVar(&format, "format", "text", "text, json, yaml or csv")
	return cmd
}

func listLines(items []model.Material, group bool) []string {
	t := ui.Current()
	d, p := model.Stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Materials"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(items),
	)

	lines := []string{header, t.Muted.Render(ui.ProgressBar(d, d+p, 28)), ""}
	if group {
		pend, done := model.Split(items)
		lines = append(lines, t.Accent.Render("Pending"))
		lines = append(lines, flatLines(pend)...)
		lines = append(lines, "", t.Accent.Render("Done"))
		lines = append(lines, flatLines(done)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: save a take-off with `tapecalc estimate studs \"12'\" --save`"))
	return lines
}

func flatLines(items []model.Material) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("(none)")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		box, style := t.BoxUnchecked, t.Muted
		if it.Done {
			box, style = t.BoxChecked, t.Success
		}
		name := ansi.Truncate(it.Name, 60, "...")
		line := fmt.Sprintf("%s %s %s %s",
			t.Muted.Render(fmt.Sprintf("%2d.", i+1)),
			style.Render(box),
			t.Accent.Render(fmt.Sprintf("%8s %-7s", measure.FormatDecimal(it.Quantity), it.Unit)),
			name)
		if it.Note != "" {
			line += "  " + t.Muted.Render(it.Note)
		}
		out = append(out, line)
	}
	return out
}

func (a *app) materialsAddCmd() *cobra.Command {
	var note string
	cmd := &cobra.Command{
		Use:     "add <qty> <unit> <name...>",
		Short:   "Add an entry",
		Example: `  tapecalc materials add 14 pcs 2x4 studs`,
		Args:    cobra.MinimumNArgs(3),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.ParseFloat(args[0], 64)
			if err != nil || !(qty >= 0) {
				return fmt.Errorf("add: quantity must be a number, got %q", args[0])
			}
			name := strings.TrimSpace(strings.Join(args[2:], " "))
			if name == "" {
				return fmt.Errorf("add: empty name")
			}
			err = a.withItems(cmd, func(items []model.Material) ([]model.Material, bool, error) {
				return append(items, model.NewMaterial(name, qty, args[1], note)), true, nil
			})
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "added")
			return nil
		}),
	}
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	return cmd
}

func toggle(items []model.Material, i int) []model.Material {
	items[i].Done = !items[i].Done
	return items
}

func remove(items []model.Material, i int) []model.Material {
	return append(items[:i], items[i+1:]...)
}

func (a *app) materialsIndexCmd(use, short, done string, fn func([]model.Material, int) []model.Material) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <index>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%s: not a number: %s", use, args[0])
			}
			err = a.withItems(cmd, func(items []model.Material) ([]model.Material, bool, error) {
				if n < 1 || n > len(items) {
					return nil, false, fmt.Errorf("index out of range: have %d, got %d (run `tapecalc materials ls` to see valid indexes)", len(items), n)
				}
				return fn(items, n-1), true, nil
			})
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), done)
			return nil
		}),
	}
}

func (a *app) materialsExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.parquet>",
		Short: "Write the list to a parquet file",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			var n int
			err := a.withItems(cmd, func(items []model.Material) ([]model.Material, bool, error) {
				n = len(items)
				return items, false, store.ExportParquet(args[0], items)
			})
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("exported %d to %s", n, args[0]))
			return nil
		}),
	}
}

func (a *app) materialsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.parquet>",
		Short: "Append entries from a parquet file, skipping IDs already on the list",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			in, err := store.ImportParquet(args[0])
			if err != nil {
				return err
			}
			var added int
			err = a.withItems(cmd, func(items []model.Material) ([]model.Material, bool, error) {
				seen := make(map[string]bool, len(items))
				for _, it := range items {
					seen[it.ID] = true
				}
				for _, it := range in {
					if it.ID != "" && seen[it.ID] {
						continue
					}
					seen[it.ID] = true
					items = append(items, it)
					added++
				}
				return items, added > 0, nil
			})
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("imported %d", added))
			return nil
		}),
	}
}
