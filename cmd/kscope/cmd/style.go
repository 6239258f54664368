package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/woozymasta/kscope"
)

// styler renders diagnostics, optionally with color.
type styler struct {
	color bool
	err   lipgloss.Style
	ok    lipgloss.Style
	dim   lipgloss.Style
	warn  lipgloss.Style
}

// newStyler creates a styler; with color disabled every style renders plain text.
func newStyler(color bool) styler {
	return styler{
		color: color,
		err:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		ok:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		dim:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

func (s styler) render(st lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return st.Render(text)
}

// diagnostic formats err as "name:line:col: error: msg (near tok)".
func (s styler) diagnostic(name string, err error) string {
	var synErr *kscope.SyntaxError
	if !errors.As(err, &synErr) {
		return fmt.Sprintf("%s: %s %v", name, s.render(s.err, "error:"), err)
	}

	pos := fmt.Sprintf("%s:%d:%d:", name, synErr.Tok.Line, synErr.Tok.Col)
	return fmt.Sprintf("%s %s %s %s",
		s.render(s.dim, pos),
		s.render(s.err, "error:"),
		synErr.Msg,
		s.render(s.dim, "(near "+synErr.Tok.String()+")"),
	)
}

// issue formats a validation issue.
func (s styler) issue(i kscope.Issue) string {
	st := s.warn
	if i.Level == kscope.IssueError {
		st = s.err
	}
	return s.render(st, string(i.Level)+":") + " " + i.Path + " " + i.Message
}
