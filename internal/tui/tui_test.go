package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/idilsaglam/tapecalc/internal/measure"
	"github.com/idilsaglam/tapecalc/internal/model"
	"github.com/idilsaglam/tapecalc/internal/ui"
)

func TestMain(m *testing.M) {
	ui.SetTheme("mono")
	goleak.VerifyTestMain(m)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m tea.Model, keys ...string) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(keyMsg(k))
	}
	return m, cmd
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestEvaluate(t *testing.T) {
	a := measure.MustNew(3, 4)
	b := measure.MustNew(1, 4)
	got := Evaluate(a, b)
	require.Len(t, got, 4)

	want := []string{"1", "1/2", "3/16", "3"}
	for i, r := range got {
		require.NoError(t, r.Err, r.Label)
		assert.Equal(t, want[i], r.Value.String(), r.Label)
	}
	assert.True(t, got[3].Ratio)
	assert.False(t, got[0].Ratio)
}

func TestEvaluate_DivideByZero(t *testing.T) {
	got := Evaluate(measure.Int(5), measure.Int(0))
	require.NoError(t, got[0].Err)
	assert.True(t, errors.Is(got[3].Err, measure.ErrDivisionByZero))
}

func TestCalculator_LiveResults(t *testing.T) {
	var m tea.Model = NewCalculator(16)
	m, _ = press(m, `7' 10 7/8"`, "tab", `1 3/8`)

	view := m.View()
	assert.Contains(t, view, `7' 10 7/8"  (94.875 in)`)
	assert.Contains(t, view, `8' 0 1/4"`)
	assert.Contains(t, view, `7' 9 1/2"`)
	assert.Contains(t, view, "69  (69)")
}

func TestCalculator_ShowsParseError(t *testing.T) {
	var m tea.Model = NewCalculator(16)
	m, _ = press(m, "1/0")
	assert.Contains(t, m.View(), "invalid fraction")
	assert.Contains(t, m.View(), "enter A and B")
}

func TestCalculator_SaveQueuesSum(t *testing.T) {
	var m tea.Model = NewCalculator(16)
	m, _ = press(m, "ctrl+s")
	assert.Empty(t, m.(Calculator).Queued())
	assert.Contains(t, m.View(), "need two valid measurements")

	m, _ = press(m, "3/4", "tab", "1/4", "ctrl+s")
	q := m.(Calculator).Queued()
	require.Len(t, q, 1)
	assert.Equal(t, 1.0, q[0].Quantity)
	assert.Equal(t, "in", q[0].Unit)
	assert.Equal(t, `3/4" + 1/4"`, q[0].Name)
	assert.Equal(t, `1"`, q[0].Note)
}

func TestCalculator_Quit(t *testing.T) {
	_, cmd := press(NewCalculator(16), "esc")
	assert.True(t, isQuit(t, cmd))
}

func TestParseEntry(t *testing.T) {
	qty, unit, name, err := ParseEntry(" 14 pcs  2x4 studs ")
	require.NoError(t, err)
	assert.Equal(t, 14.0, qty)
	assert.Equal(t, "pcs", unit)
	assert.Equal(t, "2x4 studs", name)

	for _, bad := range []string{"", "14 pcs", "many pcs studs", "-1 pcs studs", "NaN pcs studs"} {
		_, _, _, err := ParseEntry(bad)
		assert.Error(t, err, bad)
	}
}

func sampleItems() []model.Material {
	return []model.Material{
		model.NewMaterial("2x4 studs", 14, "pcs", ""),
		model.NewMaterial("4x8 sheets", 6, "sheets", "OSB"),
	}
}

func newMaterials(items []model.Material) tea.Model {
	m, _ := NewMaterials(items).Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func TestMaterials_ToggleDeleteUndo(t *testing.T) {
	m := newMaterials(sampleItems())

	m, _ = press(m, " ")
	items := m.(Materials).Items()
	assert.True(t, items[0].Done)
	assert.True(t, m.(Materials).Changed())

	m, _ = press(m, "d")
	items = m.(Materials).Items()
	require.Len(t, items, 1)
	assert.Equal(t, "4x8 sheets", items[0].Name)

	m, _ = press(m, "u")
	items = m.(Materials).Items()
	require.Len(t, items, 2)
	assert.Equal(t, "2x4 studs", items[0].Name)
	assert.True(t, items[0].Done)

	// only one level
	m, _ = press(m, "u")
	assert.Len(t, m.(Materials).Items(), 2)
}

func TestMaterials_AddAndEdit(t *testing.T) {
	m := newMaterials(sampleItems())

	m, _ = press(m, "a", "3 boxes screws", "enter")
	items := m.(Materials).Items()
	require.Len(t, items, 3)
	assert.Equal(t, "screws", items[1].Name)
	assert.Equal(t, 3.0, items[1].Quantity)
	assert.NotEmpty(t, items[1].ID)

	m, _ = press(m, "e")
	assert.Contains(t, m.View(), "Edit entry")
	m, _ = press(m, " precut", "enter")
	items = m.(Materials).Items()
	assert.Equal(t, 14.0, items[0].Quantity)
	assert.Equal(t, "pcs", items[0].Unit)
	assert.Equal(t, "2x4 studs precut", items[0].Name)
}

func TestMaterials_AddRejectsBadEntry(t *testing.T) {
	m := newMaterials(nil)
	m, _ = press(m, "a", "studs", "enter")
	assert.Contains(t, m.View(), "expected: qty unit name")
	assert.Empty(t, m.(Materials).Items())

	m, _ = press(m, "esc")
	assert.False(t, m.(Materials).Changed())
	assert.NotContains(t, m.View(), "Add entry")
}

func TestMaterials_Quit(t *testing.T) {
	_, cmd := press(newMaterials(sampleItems()), "q")
	assert.True(t, isQuit(t, cmd))
}

func TestMaterials_FilteredSelectionActsOnHighlightedEntry(t *testing.T) {
	items := []model.Material{
		model.NewMaterial("studs", 14, "pcs", ""),
		model.NewMaterial("sheets", 6, "sheets", ""),
		model.NewMaterial("screws", 2, "boxes", ""),
	}
	mm := newMaterials(items).(Materials)
	mm.list.SetFilterText("screws")
	var m tea.Model = mm

	m, _ = press(m, " ")
	got := m.(Materials).Items()
	assert.False(t, got[0].Done, "studs")
	assert.True(t, got[2].Done, "screws")

	m, _ = press(m, "e", " pan head", "enter")
	got = m.(Materials).Items()
	assert.Equal(t, "screws pan head", got[2].Name)
	assert.True(t, got[2].Done)
	assert.Equal(t, "studs", got[0].Name)

	m, _ = press(m, "d")
	got = m.(Materials).Items()
	require.Len(t, got, 2)
	assert.Equal(t, "studs", got[0].Name)
	assert.Equal(t, "sheets", got[1].Name)

	m, _ = press(m, "u")
	got = m.(Materials).Items()
	require.Len(t, got, 3)
	assert.Equal(t, "screws pan head", got[2].Name)
}
