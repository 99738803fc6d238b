package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"agenda/internal/agenda"
)

// Format is an export format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat parses an export format name. "md" and "yml" are accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md", "":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown export format: %s", s)
	}
}

// Export writes agendas to w in the given format.
func Export(w io.Writer, format Format, agendas []agenda.Agenda) error {
	switch format {
	case FormatMarkdown:
		return exportMarkdown(w, agendas)
	case FormatJSON:
		return exportJSON(w, agendas)
	case FormatYAML:
		return exportYAML(w, agendas)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
}

// exportMarkdown writes each agenda as a heading followed by a checklist.
func exportMarkdown(w io.Writer, agendas []agenda.Agenda) error {
	for i, a := range agendas {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "## %s\n\n", normalizeText(a.Name)); err != nil {
			return err
		}
		if len(a.Tasks) == 0 {
			if _, err := fmt.Fprintln(w, "_No tasks._"); err != nil {
				return err
			}
			continue
		}
		for _, t := range a.Tasks {
			mark := " "
			if t.Completed {
				mark = "x"
			}
			if _, err := fmt.Fprintf(w, "- [%s] %s\n", mark, normalizeText(t.Text)); err != nil {
				return err
			}
		}
	}
	return nil
}

func exportJSON(w io.Writer, agendas []agenda.Agenda) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if agendas == nil {
		agendas = []agenda.Agenda{}
	}
	return enc.Encode(agendas)
}

func exportYAML(w io.Writer, agendas []agenda.Agenda) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(agendas); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
