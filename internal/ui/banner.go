package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/roneystein/git-jira-hook/internal/i18n"
)

// Printer writes styled user-facing lines
type Printer struct {
	w        io.Writer
	banner   lipgloss.Style
	version  lipgloss.Style
	warning  lipgloss.Style
	errStyle lipgloss.Style
	hint     lipgloss.Style
}

// NewPrinter creates a Printer writing to w with styles from r
func NewPrinter(w io.Writer, r *lipgloss.Renderer) *Printer {
	return &Printer{
		w:        w,
		banner:   r.NewStyle().Foreground(ColorCyan).Bold(true),
		version:  r.NewStyle().Foreground(ColorDarkGray),
		warning:  r.NewStyle().Foreground(ColorYellow).Bold(true),
		errStyle: r.NewStyle().Foreground(ColorRed).Bold(true),
		hint:     r.NewStyle().Foreground(ColorGreen),
	}
}

// Banner prints the startup line
func (p *Printer) Banner(msgs i18n.Messages, version string) {
	fmt.Fprintln(p.w, p.banner.Render(msgs.Get("startup.information"))+" "+p.version.Render(version))
}

// Warning prints a message the commit goes through with
func (p *Printer) Warning(msg string) {
	fmt.Fprintln(p.w, p.warning.Render("⚠ "+msg))
}

// Error prints the reason a commit was rejected
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, p.errStyle.Render("✗ "+msg))
}

// Hint prints how to get past a rejection
func (p *Printer) Hint(msg string) {
	fmt.Fprintln(p.w, p.hint.Render("  "+msg))
}
