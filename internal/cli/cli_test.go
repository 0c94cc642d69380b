package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tapecalc/internal/measure"
	"github.com/idilsaglam/tapecalc/internal/model"
	"github.com/idilsaglam/tapecalc/internal/ui"
)

type harness struct {
	t   *testing.T
	dir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TAPECALC_THEME", "mono")
	t.Setenv("TAPECALC_STORE_DRIVER", "json")
	t.Setenv("TAPECALC_STORE_PATH", filepath.Join(dir, "materials.json"))
	t.Setenv("TAPECALC_LOG_LEVEL", "error")
	t.Setenv("TAPECALC_DENOM", "")
	return &harness{t: t, dir: dir}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", filepath.Join(h.dir, "config.yaml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

func (h *harness) items() []model.Material {
	h.t.Helper()
	var items []model.Material
	require.NoError(h.t, json.Unmarshal([]byte(h.mustRun("materials", "ls", "--format", "json")), &items))
	return items
}

func TestParse(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("parse", "7'", "10", `7/8"`)
	assert.Contains(t, out, "94.875")
	assert.Contains(t, out, "759/8  (94 7/8)")
	assert.Contains(t, out, `7' 10 7/8"`)

	out = h.mustRun("parse", "--", "-24.375")
	assert.Contains(t, out, "-24.375")
	assert.Contains(t, out, `-2' 0 3/8"`)

	_, err := h.run("parse", "1/0")
	assert.True(t, errors.Is(err, measure.ErrInvalidFraction))
	var pe *measure.ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestFormatAndRound(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "7' 10 7/8\"\n", h.mustRun("format", "94.875"))
	assert.Equal(t, "94 7/8\n", h.mustRun("format", "--fraction", "94.875"))
	assert.Equal(t, "1' 0\"\n", h.mustRun("format", "11.96875"))
	assert.Equal(t, "1/4\"\n", h.mustRun("--denom", "8", "format", "0.3"))

	out := h.mustRun("round", "0.3")
	assert.Contains(t, out, "5/16")
	assert.Contains(t, out, "0.0125")
}

func TestDenomFlagRejectsZero(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("--denom", "0", "format", "1")
	assert.Error(t, err)
}

func TestCalc(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("calc", "3/4", "+", "1/4")
	assert.Contains(t, out, "1  (1)")
	assert.Contains(t, out, `1"`)

	out = h.mustRun("calc", `7' 10 7/8"`, "/", "1 3/8")
	assert.Contains(t, out, "69  (69)")
	assert.NotContains(t, out, "tape")

	out = h.mustRun("calc", "1", "3/8", "x", "2")
	assert.Contains(t, out, "11/4  (2 3/4)")

	_, err := h.run("calc", "5", "/", "0")
	assert.True(t, errors.Is(err, measure.ErrDivisionByZero))

	_, err = h.run("calc", "5", "%", "2")
	assert.Error(t, err)
}

func TestTriangleAndPitch(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("triangle", "--rise", "3", "--run", "4")
	assert.Contains(t, out, `5"  (5 in)`)
	assert.Contains(t, out, "36.87°")

	out = h.mustRun("pitch", "6/12", "--run", "12'")
	assert.Contains(t, out, `6' 0"`)
	assert.Contains(t, out, `13' 5"`)
	assert.Contains(t, out, "26.57°")

	_, err := h.run("triangle", "--rise", "3", "--run", "0")
	assert.True(t, errors.Is(err, measure.ErrInvalidInput))
}

func TestEstimateSave(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("estimate", "studs", "12'")
	assert.Contains(t, out, "Studs: 10 pcs")
	assert.Contains(t, out, "Plate stock: 3 pcs")
	assert.Empty(t, h.items())

	out = h.mustRun("estimate", "studs", "12'", "--save")
	assert.Contains(t, out, "ok saved 2 to materials")
	items := h.items()
	require.Len(t, items, 2)
	assert.Equal(t, "Studs", items[0].Name)
	assert.Equal(t, 10.0, items[0].Quantity)

	out = h.mustRun("estimate", "sheets", "20'", "8'", "--waste", "0")
	assert.Contains(t, out, "4x8 sheets: 5 sheets")

	out = h.mustRun("estimate", "screws", "5")
	assert.Contains(t, out, "Screws: 160 pcs")
	assert.Contains(t, out, "Screw boxes: 2 boxes")

	out = h.mustRun("estimate", "roof", "10'", "10'", "--waste", "0")
	assert.Contains(t, out, "Shingle bundles: 3 bundles")

	out = h.mustRun("estimate", "concrete", "9'", "9'", "4", "--waste", "0")
	assert.Contains(t, out, "Concrete: 1 cu yd")
	assert.Contains(t, out, "Premix bags: 45 bags")

	_, err := h.run("estimate", "studs", "0")
	assert.True(t, errors.Is(err, measure.ErrInvalidInput))
}

func TestMaterialsLifecycle(t *testing.T) {
	h := newHarness(t)

	assert.Contains(t, h.mustRun("materials", "ls"), "(none)")
	assert.Contains(t, h.mustRun("materials", "add", "14", "pcs", "2x4", "studs"), "ok added")
	h.mustRun("materials", "add", "--note", "OSB", "6", "sheets", "4x8 sheathing")

	out := h.mustRun("materials", "ls")
	assert.Contains(t, out, "2x4 studs")
	assert.Contains(t, out, "4x8 sheathing")
	assert.Contains(t, out, "OSB")

	assert.Contains(t, h.mustRun("materials", "done", "1"), "ok toggled")
	out = h.mustRun("materials", "ls", "--group")
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "Done")
	assert.True(t, h.items()[0].Done)

	_, err := h.run("materials", "rm", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index out of range: have 2, got 3")

	_, err = h.run("materials", "done", "x")
	assert.Error(t, err)

	_, err = h.run("materials", "add", "lots", "pcs", "nails")
	assert.Error(t, err)

	assert.Contains(t, h.mustRun("materials", "rm", "1"), "ok removed")
	items := h.items()
	require.Len(t, items, 1)
	assert.Equal(t, "4x8 sheathing", items[0].Name)

	out = h.mustRun("materials", "ls", "--format", "csv")
	assert.Contains(t, out, "id,name,quantity,unit,note,done,created_at")
	assert.Contains(t, out, "4x8 sheathing,6,sheets,OSB,false")
}

func TestMaterialsParquetRoundTrip(t *testing.T) {
	h := newHarness(t)
	file := filepath.Join(h.dir, "list.parquet")

	h.mustRun("materials", "add", "14", "pcs", "studs")
	h.mustRun("materials", "add", "2", "boxes", "screws")
	assert.Contains(t, h.mustRun("materials", "export", file), "exported 2")

	h.mustRun("materials", "rm", "1")
	assert.Contains(t, h.mustRun("materials", "import", file), "imported 1")
	assert.Contains(t, h.mustRun("materials", "import", file), "imported 0")

	items := h.items()
	require.Len(t, items, 2)
	assert.Equal(t, "screws", items[0].Name)
	assert.Equal(t, "studs", items[1].Name)
}

func TestMaterialsSQLite(t *testing.T) {
	h := newHarness(t)
	t.Setenv("TAPECALC_STORE_DRIVER", "sqlite")
	t.Setenv("TAPECALC_STORE_PATH", filepath.Join(h.dir, "materials.db"))

	h.mustRun("materials", "add", "3", "bags", "premix")
	h.mustRun("materials", "done", "1")
	items := h.items()
	require.Len(t, items, 1)
	assert.Equal(t, "premix", items[0].Name)
	assert.True(t, items[0].Done)
}

func TestRefCard(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("--denom", "4", "ref", "--markdown")
	assert.Contains(t, out, "| 1/4 | 0.25 | 6.35 |")
	assert.Contains(t, out, "| 1/2 | 0.5 | 12.7 |")
	assert.Contains(t, out, "| 3/4 | 0.75 | 19.05 |")

	out = h.mustRun("--denom", "4", "ref")
	assert.Contains(t, out, "0.75")

	_, err := h.run("--denom", "128", "ref")
	assert.Error(t, err)
}

func TestFlatLines_TruncatesLongNamesByRune(t *testing.T) {
	ui.SetTheme("mono")
	t.Cleanup(func() { ui.SetTheme("classic") })

	long := strings.Repeat("é", 70)
	lines := flatLines([]model.Material{{Name: long, Quantity: 1, Unit: "pcs"}})
	require.Len(t, lines, 1)
	assert.True(t, utf8.ValidString(lines[0]), lines[0])
	assert.Contains(t, lines[0], strings.Repeat("é", 57)+"...")
	assert.NotContains(t, lines[0], strings.Repeat("é", 58))

	short := flatLines([]model.Material{{Name: "2x4 studs", Quantity: 14, Unit: "pcs"}})
	assert.Contains(t, short[0], "2x4 studs")
	assert.NotContains(t, short[0], "...")
}
