package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tapecalc/internal/measure"
	"github.com/idilsaglam/tapecalc/internal/model"
	"github.com/idilsaglam/tapecalc/internal/ui"
)

// Result is one row of the calculator panel.
type Result struct {
	Label string
	Value measure.Rational
	Ratio bool // A ÷ B has no unit
	Err   error
}

// Evaluate runs the four operations on a and b.
func Evaluate(a, b measure.Rational) []Result {
	ops := []struct {
		label, op string
	}{
		{"A + B", "+"},
		{"A − B", "-"},
		{"A × B", "×"},
		{"A ÷ B", "÷"},
	}
	out := make([]Result, 0, len(ops))
	for _, o := range ops {
		v, err := a.Op(o.op, b)
		out = append(out, Result{Label: o.label, Value: v, Ratio: o.op == "÷", Err: err})
	}
	return out
}

// Calculator is the two-field tape calculator.
type Calculator struct {
	inputs [2]textinput.Model
	focus  int
	denom  int

	queued []model.Material
	status string
}

// NewCalculator builds the calculator rounding tape output to 1/denom.
func NewCalculator(denom int) Calculator {
	c := Calculator{denom: denom}
	for i, name := range []string{"A", "B"} {
		ti := textinput.New()
		ti.Prompt = name + " > "
		ti.Placeholder = `7' 10 7/8"`
		ti.CharLimit = 64
		c.inputs[i] = ti
	}
	c.inputs[0].Focus()
	return c
}

// Queued lists the entries saved with ctrl+s, oldest first.
func (c Calculator) Queued() []model.Material { return c.queued }

func (c Calculator) Init() tea.Cmd { return textinput.Blink }

func (c Calculator) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		for i := range c.inputs {
			c.inputs[i].Width = max(msg.Width-12, 10)
		}
		return c, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return c, tea.Quit
		case "tab", "shift+tab", "up", "down", "enter":
			c.inputs[c.focus].Blur()
			c.focus = 1 - c.focus
			return c, c.inputs[c.focus].Focus()
		case "ctrl+s":
			c.save()
			return c, nil
		}
		c.status = ""
	}
	var cmd tea.Cmd
	c.inputs[c.focus], cmd = c.inputs[c.focus].Update(msg)
	return c, cmd
}

func (c *Calculator) save() {
	a, errA := measure.ParseRational(c.inputs[0].Value())
	b, errB := measure.ParseRational(c.inputs[1].Value())
	if errA != nil || errB != nil {
		c.status = ui.Current().Error.Render("need two valid measurements to save")
		return
	}
	sum, err := a.Add(b)
	if err != nil {
		c.status = ui.Current().Error.Render(err.Error())
		return
	}
	name := fmt.Sprintf("%s + %s", measure.FormatRational(a, c.denom), measure.FormatRational(b, c.denom))
	c.queued = append(c.queued, model.NewMaterial(name, sum.Float64(), "in", measure.FormatRational(sum, c.denom)))
	c.status = ui.Current().Success.Render(fmt.Sprintf("%s saved A + B (%d queued)", ui.Current().SymOK, len(c.queued)))
}

// field renders the live parse of one input.
func (c Calculator) field(i int) string {
	raw := c.inputs[i].Value()
	line := c.inputs[i].View()
	if strings.TrimSpace(raw) == "" {
		return line
	}
	m, err := measure.Parse(raw)
	if err != nil {
		return line + "\n    " + ui.Current().Error.Render(err.Error())
	}
	return line + "\n    " + ui.Current().Muted.Render(fmt.Sprintf("%s  (%s in)",
		measure.Format(m.Inches, c.denom), measure.FormatDecimal(m.Inches)))
}

func (c Calculator) results() []string {
	a, errA := measure.ParseRational(c.inputs[0].Value())
	b, errB := measure.ParseRational(c.inputs[1].Value())
	if errA != nil || errB != nil {
		return []string{ui.Current().Muted.Render("enter A and B to see results")}
	}
	var lines []string
	for _, r := range Evaluate(a, b) {
		switch {
		case r.Err != nil:
			lines = append(lines, ui.Row(r.Label, ui.Current().Error.Render(r.Err.Error())))
		case r.Ratio:
			lines = append(lines, ui.Row(r.Label, fmt.Sprintf("%s  (%s)",
				r.Value.Mixed(), measure.FormatDecimal(r.Value.Float64()))))
		default:
			lines = append(lines, ui.Row(r.Label, fmt.Sprintf("%s  %s",
				ui.Current().Accent.Render(measure.FormatRational(r.Value, c.denom)), r.Value.Mixed())))
		}
	}
	return lines
}

func (c Calculator) View() string {
	t := ui.Current()
	lines := []string{
		t.Title.Render("Tape calculator") + "  " + t.Muted.Render(fmt.Sprintf("1/%d\"", c.denom)),
		"",
		c.field(0),
		c.field(1),
		"",
	}
	lines = append(lines, c.results()...)
	lines = append(lines, "")
	if c.status != "" {
		lines = append(lines, c.status)
	}
	lines = append(lines, t.Muted.Render("tab switch • ctrl+s save A+B • esc quit"))
	return ui.PanelString(strings.Join(lines, "\n"))
}

// RunCalculator runs the calculator until the user quits and returns the
// entries saved with ctrl+s.
func RunCalculator(ctx context.Context, denom int) ([]model.Material, error) {
	p := tea.NewProgram(NewCalculator(denom), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	c, ok := final.(Calculator)
	if !ok {
		return nil, nil
	}
	return c.Queued(), nil
}
