package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"agenda/internal/agenda"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Letter    rune // 0 if no letter, 'a'-'z' otherwise
	TaskNum   int  // 1-based task number
	HasLetter bool // true if an agenda letter was provided
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a single task reference token.
//
//   - "N" (all digits) refers to task N of the active agenda.
//   - "<letter>N" (e.g. b2) refers to task N of the agenda with that
//     letter in the agendas listing.
func ParseTaskRef(arg string) (TaskRef, error) {
	if arg == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	if isAllDigits(arg) {
		num, err := strconv.Atoi(arg)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{TaskNum: num}, nil
	}

	if len(arg) > 1 && isLetter(rune(arg[0])) && isAllDigits(arg[1:]) {
		num, err := strconv.Atoi(arg[1:])
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{Letter: rune(arg[0]), TaskNum: num, HasLetter: true}, nil
	}

	return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isLetter returns true if r is a lowercase letter a-z.
func isLetter(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// resolveTask returns the task ref points at. A letter ref that resolves
// makes its agenda active, as picking it in the sidebar would; a ref that
// does not resolve leaves the selection alone.
func resolveTask(ctx context.Context, st *agenda.Store, ref TaskRef) (agenda.Task, error) {
	if !ref.HasLetter {
		return st.TaskAt(ref.TaskNum)
	}
	a, err := st.AgendaByLetter(ref.Letter)
	if err != nil {
		return agenda.Task{}, err
	}
	if ref.TaskNum < 1 || ref.TaskNum > len(a.Tasks) {
		return agenda.Task{}, fmt.Errorf("%w: %d", agenda.ErrTaskNotFound, ref.TaskNum)
	}
	st.SetActive(ctx, a.ID)
	return a.Tasks[ref.TaskNum-1], nil
}

// taskError prints the user-facing message for a task lookup failure.
func taskError(err error, ref TaskRef) string {
	switch {
	case errors.Is(err, agenda.ErrTaskNotFound):
		return fmt.Sprintf("error: task number out of range: %d", ref.TaskNum)
	case errors.Is(err, agenda.ErrAgendaNotFound):
		return fmt.Sprintf("error: agenda letter not found: %c", ref.Letter)
	case errors.Is(err, agenda.ErrNoActiveAgenda):
		return "error: no active agenda"
	default:
		return fmt.Sprintf("error: %v", err)
	}
}
