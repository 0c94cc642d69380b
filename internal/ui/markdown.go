package ui

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders md for the terminal. Plain output (no TTY, mono
// theme) uses the notty style so pipes get readable text.
func RenderMarkdown(md string, width int, plain bool) (string, error) {
	style := "dark"
	if plain || Current().Name == "mono" {
		style = "notty"
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
