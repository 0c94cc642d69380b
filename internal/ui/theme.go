package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                          string
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done                                lipgloss.Style
	BoxUnchecked, BoxChecked                      string
	SymDone, SymPending, SymOK, SymFail           string
	Border                                        lipgloss.Border
	BorderColor                                   lipgloss.TerminalColor
}

var current = classic()

func classic() Theme {
	return Theme{
		Name:         "classic",
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Faint(true),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
		BoxUnchecked: "☐",
		BoxChecked:   "☑",
		SymDone:      "✔",
		SymPending:   "•",
		SymOK:        "✔",
		SymFail:      "✖",
		Border:       lipgloss.RoundedBorder(),
		BorderColor:  lipgloss.Color("8"),
	}
}

// SetTheme switches the palette: classic (default), neon or mono.
func SetTheme(name string) {
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
	switch strings.ToLower(name) {
	case "neon":
		t := classic()
		t.Name = "neon"
		t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("201"))
		t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
		t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
		t.BoxUnchecked, t.BoxChecked = "◻", "◼"
		t.BorderColor = lipgloss.Color("201")
		current = t
	case "mono":
		lipgloss.SetColorProfile(termenv.Ascii)
		plain := lipgloss.NewStyle()
		current = Theme{
			Name:         "mono",
			Title:        plain,
			Muted:        plain,
			Accent:       plain,
			Success:      plain,
			Error:        plain,
			Pending:      plain,
			Selected:     plain.Reverse(true),
			Done:         plain,
			BoxUnchecked: "[ ]",
			BoxChecked:   "[x]",
			SymDone:      "x",
			SymPending:   "-",
			SymOK:        "ok",
			SymFail:      "error:",
			Border:       lipgloss.ASCIIBorder(),
			BorderColor:  lipgloss.NoColor{},
		}
	default:
		current = classic()
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }
