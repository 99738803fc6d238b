// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"agenda/internal/agenda"
)

const (
	// Separator is the separator line around an agenda header.
	Separator = "------------"
)

// FormatTask formats a numbered task line.
// Format: "{N:>4}  [x] {TEXT}\n" (4-wide right-aligned number, two spaces, checkbox, text)
func FormatTask(w io.Writer, num int, task agenda.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, checkbox(task.Completed), normalizeText(task.Text))
}

// FormatAgendaHeader formats the header printed above an agenda's tasks.
func FormatAgendaHeader(w io.Writer, a agenda.Agenda) {
	completed, total := a.Summary()
	fmt.Fprintln(w, Separator)
	fmt.Fprintf(w, "%s (%d/%d)\n", normalizeText(a.Name), completed, total)
	fmt.Fprintln(w, Separator)
}

// FormatAgendaLine formats one entry of the agendas command.
// The active agenda is marked with "*"; letter is 0 past the 26th agenda.
func FormatAgendaLine(w io.Writer, letter rune, a agenda.Agenda, active bool) {
	marker := " "
	if active {
		marker = "*"
	}
	label := " "
	if letter != 0 {
		label = string(letter)
	}
	completed, total := a.Summary()
	fmt.Fprintf(w, "%s %s  %s (%d/%d)\n", marker, label, normalizeText(a.Name), completed, total)
}

// FormatSummary formats a completion summary.
func FormatSummary(w io.Writer, completed, total int) {
	fmt.Fprintf(w, "%d/%d completed\n", completed, total)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// normalizeText replaces newlines with spaces for single-line display.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
