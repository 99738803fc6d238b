package agenda_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agenda/internal/agenda"
	"agenda/internal/storage"
)

func lookupStore(t *testing.T) *agenda.Store {
	t.Helper()
	mem := storage.NewMemory()
	seed(mem, `[
		{"id":"g","name":"Groceries","tasks":[{"id":"t1","text":"Milk","completed":false},{"id":"t2","text":"Eggs","completed":true}]},
		{"id":"s1","name":"Standup","tasks":[]},
		{"id":"s2","name":" standup ","tasks":[]}
	]`, `"g"`)
	return newStore(t, mem)
}

func TestFindAgenda(t *testing.T) {
	s := lookupStore(t)

	a, err := s.FindAgenda("g")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", a.Name)

	a, err = s.FindAgenda("  GROCERIES ")
	require.NoError(t, err)
	assert.Equal(t, "g", a.ID)

	_, err = s.FindAgenda("standup")
	assert.ErrorIs(t, err, agenda.ErrAmbiguous)

	// An id match wins over an ambiguous name.
	a, err = s.FindAgenda("s2")
	require.NoError(t, err)
	assert.Equal(t, "standup", a.Name)

	_, err = s.FindAgenda("Work")
	assert.ErrorIs(t, err, agenda.ErrAgendaNotFound)
}

func TestFindAgenda_ReturnsCopy(t *testing.T) {
	s := lookupStore(t)

	a, err := s.FindAgenda("g")
	require.NoError(t, err)
	a.Tasks[0].Text = "changed"

	active, _ := s.Active()
	assert.Equal(t, "Milk", active.Tasks[0].Text)
}

func TestAgendaByLetter(t *testing.T) {
	s := lookupStore(t)

	a, err := s.AgendaByLetter('b')
	require.NoError(t, err)
	assert.Equal(t, "s1", a.ID)

	for _, l := range []rune{'d', 'z', 'A', '1'} {
		_, err := s.AgendaByLetter(l)
		assert.ErrorIs(t, err, agenda.ErrAgendaNotFound, "letter %c", l)
	}
}

func TestLetter(t *testing.T) {
	assert.Equal(t, 'a', agenda.Letter(0))
	assert.Equal(t, 'z', agenda.Letter(agenda.MaxLetters-1))
	assert.Equal(t, rune(0), agenda.Letter(agenda.MaxLetters))
	assert.Equal(t, rune(0), agenda.Letter(-1))
}

func TestTaskAt(t *testing.T) {
	s := lookupStore(t)

	task, err := s.TaskAt(2)
	require.NoError(t, err)
	assert.Equal(t, "t2", task.ID)

	for _, n := range []int{0, 3, -1} {
		_, err := s.TaskAt(n)
		assert.ErrorIs(t, err, agenda.ErrTaskNotFound, "position %d", n)
	}
}

func TestTaskAt_NoActiveAgenda(t *testing.T) {
	mem := storage.NewMemory()
	seed(mem, `[{"id":"only","name":"Only","tasks":[]}]`, "")
	s := newStore(t, mem)
	require.True(t, s.DeleteAgenda(context.Background(), "only"))

	_, err := s.TaskAt(1)
	assert.ErrorIs(t, err, agenda.ErrNoActiveAgenda)
}
