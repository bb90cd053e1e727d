package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var statusStyles = map[domain.SuggestionStatus]lipgloss.Style{
	domain.StatusPending:    warnStyle,
	domain.StatusApproved:   successStyle,
	domain.StatusCorrected:  successStyle,
	domain.StatusRejected:   mutedStyle,
	domain.StatusRolledBack: mutedStyle,
}

func renderStatus(s domain.SuggestionStatus) string {
	if st, ok := statusStyles[s]; ok {
		return st.Render(string(s))
	}
	return string(s)
}

func deref(s *string, empty string) string {
	if s == nil || *s == "" {
		return empty
	}
	return *s
}

// printOutcome writes a decision or rollback outcome.
func printOutcome(w io.Writer, o *domain.Outcome) {
	mark := successStyle.Render("✓")
	if !o.Success {
		mark = errorStyle.Render("✗")
	}
	fmt.Fprintf(w, "%s %s  %s  %s\n", mark, o.SuggestionID, renderStatus(o.Status), o.Message)
	for _, e := range o.Errors {
		fmt.Fprintf(w, "    %s %s\n", errorStyle.Render("-"), e)
	}
	for _, c := range o.Changes {
		fmt.Fprintf(w, "    %s %s.%s: %s → %s\n",
			mutedStyle.Render(string(c.ChangeKind)),
			c.EntityKind, c.FieldName,
			deref(c.OldValue, "∅"), deref(c.NewValue, "∅"))
	}
}

func printPreview(w io.Writer, action domain.PreviewAction, table, summary string, changes []domain.FieldChange, errs []string) {
	fmt.Fprintln(w, titleStyle.Render(summary))
	if table != "" {
		fmt.Fprintf(w, "%s %s on %s\n", headerStyle.Render("action:"), action, table)
	}
	for _, c := range changes {
		fmt.Fprintf(w, "  %-20s %s → %s\n", c.Field, deref(c.Old, "∅"), deref(c.New, "∅"))
	}
	if len(errs) > 0 {
		fmt.Fprintln(w, errorStyle.Render("validation:"), strings.Join(errs, "; "))
	}
}
