package agenda

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAgendaNotFound is returned when no agenda matches a reference.
	ErrAgendaNotFound = errors.New("agenda not found")

	// ErrAmbiguous is returned when a name matches more than one agenda.
	ErrAmbiguous = errors.New("ambiguous agenda name")

	// ErrTaskNotFound is returned when a task position is out of range.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNoActiveAgenda is returned when an operation needs an active agenda.
	ErrNoActiveAgenda = errors.New("no active agenda")
)

// MaxLetters is the number of agendas addressable by letter (a-z).
const MaxLetters = 26

// FindAgenda resolves ref to an agenda. An exact id match wins; otherwise
// ref is compared to agenda names case-insensitively after trimming.
func (s *Store) FindAgenda(ref string) (Agenda, error) {
	if i := s.agendaIndex(ref); i >= 0 {
		return s.agendas[i].clone(), nil
	}

	want := strings.ToLower(strings.TrimSpace(ref))
	var matches []int
	for i, a := range s.agendas {
		if strings.ToLower(strings.TrimSpace(a.Name)) == want {
			matches = append(matches, i)
		}
	}
	switch len(matches) {
	case 0:
		return Agenda{}, fmt.Errorf("%w: %s", ErrAgendaNotFound, ref)
	case 1:
		return s.agendas[matches[0]].clone(), nil
	default:
		return Agenda{}, fmt.Errorf("%w: %s", ErrAmbiguous, ref)
	}
}

// AgendaByLetter returns the agenda at letter position ('a' is the first).
func (s *Store) AgendaByLetter(letter rune) (Agenda, error) {
	i := int(letter - 'a')
	if i < 0 || i >= MaxLetters || i >= len(s.agendas) {
		return Agenda{}, fmt.Errorf("%w: %c", ErrAgendaNotFound, letter)
	}
	return s.agendas[i].clone(), nil
}

// Letter returns the letter addressing the agenda at index i, or 0 when
// the index is beyond z.
func Letter(i int) rune {
	if i < 0 || i >= MaxLetters {
		return 0
	}
	return rune('a' + i)
}

// TaskAt returns the task at 1-based position num in the active agenda.
func (s *Store) TaskAt(num int) (Task, error) {
	a := s.active()
	if a == nil {
		return Task{}, ErrNoActiveAgenda
	}
	if num < 1 || num > len(a.Tasks) {
		return Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, num)
	}
	return a.Tasks[num-1], nil
}
