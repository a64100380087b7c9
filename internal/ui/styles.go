package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	ColorCyan     = lipgloss.Color("#00FFFF")
	ColorGreen    = lipgloss.Color("#00FF00")
	ColorYellow   = lipgloss.Color("#FFFF00")
	ColorRed      = lipgloss.Color("#FF0000")
	ColorDarkGray = lipgloss.Color("8")
)

// NewRenderer returns a renderer for w. Colors are dropped when NO_COLOR is
// set or w is not a terminal, which is the normal case inside git.
func NewRenderer(w io.Writer) *lipgloss.Renderer {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return lipgloss.NewRenderer(w, termenv.WithProfile(termenv.Ascii))
	}
	return lipgloss.NewRenderer(w)
}

// PlainRenderer never emits escape sequences
func PlainRenderer(w io.Writer) *lipgloss.Renderer {
	return lipgloss.NewRenderer(w, termenv.WithProfile(termenv.Ascii))
}
