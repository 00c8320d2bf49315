// Package ui renders short styled messages for the terminal. Output to
// anything that is not a terminal, or with NO_COLOR set, stays plain text.
package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Styler renders messages for one output stream.
type Styler struct {
	errStyle    lipgloss.Style
	warnStyle   lipgloss.Style
	accentStyle lipgloss.Style
	mutedStyle  lipgloss.Style
}

// NewStyler creates a Styler for w.
func NewStyler(w io.Writer) *Styler {
	var r *lipgloss.Renderer
	if IsTerminal(w) && !termenv.EnvNoColor() {
		r = lipgloss.NewRenderer(w)
	} else {
		r = lipgloss.NewRenderer(w, termenv.WithProfile(termenv.Ascii))
	}

	return &Styler{
		errStyle:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		warnStyle:   r.NewStyle().Foreground(lipgloss.Color("11")),
		accentStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		mutedStyle:  r.NewStyle().Faint(true),
	}
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// Error renders s as an error label.
func (s *Styler) Error(text string) string { return s.errStyle.Render(text) }

// Warn renders s as a warning.
func (s *Styler) Warn(text string) string { return s.warnStyle.Render(text) }

// Accent renders s highlighted.
func (s *Styler) Accent(text string) string { return s.accentStyle.Render(text) }

// Muted renders s de-emphasized.
func (s *Styler) Muted(text string) string { return s.mutedStyle.Render(text) }
