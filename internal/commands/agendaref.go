package commands

import (
	"errors"
	"fmt"
	"strings"

	"agenda/internal/agenda"
)

// ErrAgendaRefRequired indicates no agenda reference was provided.
var ErrAgendaRefRequired = errors.New("agenda name required")

// resolveAgenda finds the agenda named by args joined with spaces.
// An id or name match wins; a single letter falls back to the agenda with
// that letter in the agendas listing.
func resolveAgenda(st *agenda.Store, args []string) (agenda.Agenda, error) {
	ref := strings.TrimSpace(strings.Join(args, " "))
	if ref == "" {
		return agenda.Agenda{}, ErrAgendaRefRequired
	}

	a, err := st.FindAgenda(ref)
	if err == nil {
		return a, nil
	}
	if errors.Is(err, agenda.ErrAgendaNotFound) && len(ref) == 1 && isLetter(rune(ref[0])) {
		if byLetter, lerr := st.AgendaByLetter(rune(ref[0])); lerr == nil {
			return byLetter, nil
		}
	}
	return agenda.Agenda{}, err
}

// agendaError prints the user-facing message for an agenda lookup failure.
func agendaError(err error, args []string) string {
	ref := strings.TrimSpace(strings.Join(args, " "))
	switch {
	case errors.Is(err, ErrAgendaRefRequired):
		return "error: agenda name required"
	case errors.Is(err, agenda.ErrAgendaNotFound):
		return fmt.Sprintf("error: agenda not found: %s", ref)
	case errors.Is(err, agenda.ErrAmbiguous):
		return fmt.Sprintf("error: ambiguous agenda name: %s", ref)
	default:
		return fmt.Sprintf("error: %v", err)
	}
}
