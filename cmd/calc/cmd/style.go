package cmd

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zephyrtronium/calc"
)

var (
	colorError = lipgloss.Color("#EF4444")
	colorMuted = lipgloss.Color("#6B7280")

	errorStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	caretStyle = lipgloss.NewStyle().Foreground(colorError)
	echoStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

func (a *app) render(s lipgloss.Style, text string) string {
	if !a.cfg.ColorEnabled() {
		return text
	}
	return s.Render(text)
}

// describe formats an evaluation error. Errors with a position within a
// single-line source get the source and a caret under the offending column.
func (a *app) describe(name, src string, err error) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(a.render(errorStyle, err.Error()))
	var ierr calc.InputError
	if !errors.As(err, &ierr) || ierr.Pos() <= 0 || strings.ContainsAny(src, "\r\n") {
		return b.String()
	}
	runes := []rune(src)
	if ierr.Pos() > len(runes) {
		return b.String()
	}
	b.WriteString("\n    ")
	b.WriteString(src)
	b.WriteString("\n    ")
	for _, r := range runes[:ierr.Pos()-1] {
		// Keep tabs so the caret lines up with the source.
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString(a.render(caretStyle, "^"))
	return b.String()
}
