package tui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tapecalc/internal/measure"
	"github.com/idilsaglam/tapecalc/internal/model"
	"github.com/idilsaglam/tapecalc/internal/store"
	"github.com/idilsaglam/tapecalc/internal/ui"
)

// listItem adapts a material to bubbles/list.Item.
type listItem struct {
	m model.Material
}

func (i listItem) Title() string       { return i.m.Name }
func (i listItem) Description() string { return i.m.Note }
func (i listItem) FilterValue() string { return i.m.Name }

// qty renders "14 pcs".
func (i listItem) qty() string {
	return strings.TrimSpace(measure.FormatDecimal(i.m.Quantity) + " " + i.m.Unit)
}

// entryText is the editable "qty unit name" form of an entry.
func (i listItem) entryText() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", measure.FormatDecimal(i.m.Quantity), i.m.Unit, i.m.Name))
}

// ParseEntry reads "qty unit name..." as typed in the add/edit bar.
func ParseEntry(s string) (qty float64, unit, name string, err error) {
	f := strings.Fields(s)
	if len(f) < 3 {
		return 0, "", "", fmt.Errorf("expected: qty unit name")
	}
	qty, err = strconv.ParseFloat(f[0], 64)
	if err != nil || !(qty >= 0) {
		return 0, "", "", fmt.Errorf("quantity must be a number, got %q", f[0])
	}
	return qty, f[1], strings.Join(f[2:], " "), nil
}

type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	t := ui.Current()

	box := t.Muted.Render(t.BoxUnchecked)
	name := it.m.Name
	if it.m.Done {
		box = t.Success.Render(t.BoxChecked)
		name = t.Done.Render(name)
	}
	line := fmt.Sprintf("%s %s %s", box, t.Accent.Render(fmt.Sprintf("%-10s", it.qty())), name)
	if it.m.Note != "" {
		line += " " + t.Muted.Render(it.m.Note)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
	}
	fmt.Fprintln(w, prefix+line)
}

// Materials is the interactive materials list.
type Materials struct {
	list    list.Model
	changed bool

	ti      textinput.Model
	adding  bool
	editing bool
	editIdx int
	inErr   string

	// single-level undo for delete
	undo    *listItem
	undoIdx int
}

var (
	addKey  = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editKey = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	undoKey = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
)

// NewMaterials builds the list program over items.
func NewMaterials(items []model.Material) Materials {
	li := make([]list.Item, 0, len(items))
	for _, it := range items {
		li = append(li, listItem{m: it})
	}
	t := ui.Current()

	l := list.New(li, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = t.Title
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("entry", "entries")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addKey, editKey, undoKey} }
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Materials{list: l, ti: ti}
	m.refreshTitle()
	return m
}

// Items returns the list in display order.
func (m Materials) Items() []model.Material {
	out := make([]model.Material, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if li, ok := it.(listItem); ok {
			out = append(out, li.m)
		}
	}
	return out
}

// Changed reports whether anything was added, edited, toggled or removed.
func (m Materials) Changed() bool { return m.changed }

func (m *Materials) refreshTitle() {
	t := ui.Current()
	items := m.Items()
	done, pending := model.Stats(items)
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render("Materials"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), len(items),
	)
}

// selected returns the highlighted entry and its position in the full list.
// Under a filter, list.Index counts rows of the filtered view.
func (m *Materials) selected() (int, listItem, bool) {
	if m.list.SelectedItem() == nil {
		return -1, listItem{}, false
	}
	i := m.list.GlobalIndex()
	if i < 0 || i >= len(m.list.Items()) {
		return i, listItem{}, false
	}
	li, ok := m.list.Items()[i].(listItem)
	return i, li, ok
}

// refilter rebuilds the filtered view after entries were inserted or removed.
func (m *Materials) refilter() {
	if m.list.FilterState() == list.FilterApplied {
		m.list.SetFilterText(m.list.FilterValue())
	}
}

func (m *Materials) openInput(value, placeholder string) tea.Cmd {
	m.inErr = ""
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	return m.ti.Focus()
}

func (m *Materials) closeInput() {
	m.adding, m.editing = false, false
	m.inErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m Materials) Init() tea.Cmd { return nil }

func (m Materials) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.adding || m.editing {
		return m.updateInput(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-4)
		return m, nil
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ", "space":
			if i, li, ok := m.selected(); ok {
				li.m.Done = !li.m.Done
				cmd := m.list.SetItem(i, li)
				m.changed = true
				m.refreshTitle()
				return m, cmd
			}
			return m, nil
		case "d":
			if i, li, ok := m.selected(); ok {
				m.undo, m.undoIdx = &li, i
				m.list.RemoveItem(i)
				m.refilter()
				m.changed = true
				m.refreshTitle()
			}
			return m, nil
		case "a":
			m.adding = true
			return m, m.openInput("", "12 pcs 2x4 studs")
		case "e":
			if i, li, ok := m.selected(); ok {
				m.editing, m.editIdx = true, i
				return m, m.openInput(li.entryText(), "qty unit name")
			}
			return m, nil
		case "u":
			if m.undo == nil {
				return m, nil
			}
			idx := min(max(m.undoIdx, 0), len(m.list.Items()))
			cmd := m.list.InsertItem(idx, *m.undo)
			m.refilter()
			m.undo = nil
			m.changed = true
			m.refreshTitle()
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Materials) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.closeInput()
			return m, nil
		case "enter":
			qty, unit, name, err := ParseEntry(m.ti.Value())
			if err != nil {
				m.inErr = err.Error()
				return m, nil
			}
			var cmd tea.Cmd
			if m.adding {
				at := len(m.list.Items())
				if i, _, ok := m.selected(); ok {
					at = i + 1
				}
				cmd = m.list.InsertItem(at, listItem{m: model.NewMaterial(name, qty, unit, "")})
				m.refilter()
			} else if m.editIdx >= 0 && m.editIdx < len(m.list.Items()) {
				if li, ok := m.list.Items()[m.editIdx].(listItem); ok {
					li.m.Quantity, li.m.Unit, li.m.Name = qty, unit, name
					cmd = m.list.SetItem(m.editIdx, li)
				}
			}
			m.changed = true
			m.closeInput()
			m.refreshTitle()
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Materials) View() string {
	content := m.list.View()
	if m.adding || m.editing {
		t := ui.Current()
		bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		title := "Add entry"
		if m.editing {
			title = "Edit entry"
		}
		if m.inErr != "" {
			title += ": " + t.Error.Render(m.inErr)
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return ui.PanelString(content)
}

// RunMaterials shows the list from st and saves it back on quit if it changed.
func RunMaterials(ctx context.Context, st store.Store) (saved bool, err error) {
	items, err := st.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load: %w", err)
	}
	p := tea.NewProgram(NewMaterials(items), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(Materials)
	if !ok || !fm.Changed() {
		return false, nil
	}
	if err := st.Save(ctx, fm.Items()); err != nil {
		return false, fmt.Errorf("save: %w", err)
	}
	return true, nil
}
