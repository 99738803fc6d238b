// Package agenda owns the in-memory agenda collection, the active-agenda
// selection and the write-through snapshot persisted to a storage.Storage.
package agenda

// DefaultAgendaName is the name of the agenda seeded when nothing usable
// was restored.
const DefaultAgendaName = "My First Agenda"

// Task is a single checkable agenda item.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Agenda is a named, ordered list of tasks.
type Agenda struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Tasks []Task `json:"tasks" yaml:"tasks"`
}

// Summary returns the number of completed tasks and the total task count.
func (a Agenda) Summary() (completed, total int) {
	for _, t := range a.Tasks {
		if t.Completed {
			completed++
		}
	}
	return completed, len(a.Tasks)
}

// clone returns a deep copy of a. Tasks is never nil in the copy.
func (a Agenda) clone() Agenda {
	tasks := make([]Task, len(a.Tasks))
	copy(tasks, a.Tasks)
	a.Tasks = tasks
	return a
}

func cloneAll(agendas []Agenda) []Agenda {
	out := make([]Agenda, len(agendas))
	for i, a := range agendas {
		out[i] = a.clone()
	}
	return out
}
