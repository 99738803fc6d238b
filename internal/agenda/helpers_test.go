package agenda_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"agenda/internal/agenda"
	"agenda/internal/storage"
)

// seqIDs returns a deterministic IDFunc producing prefix-1, prefix-2, ...
func seqIDs(prefix string) agenda.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// newStore builds and initializes a Store over mem.
func newStore(t *testing.T, mem *storage.Memory, opts ...agenda.Option) *agenda.Store {
	t.Helper()
	opts = append([]agenda.Option{agenda.WithIDFunc(seqIDs("id"))}, opts...)
	s := agenda.New(mem, opts...)
	s.Initialize(context.Background())
	return s
}

// checkInvariants asserts every model invariant on the store's current state.
func checkInvariants(t *testing.T, s *agenda.Store) {
	t.Helper()
	agendas := s.Agendas()

	seenAgendas := make(map[string]bool)
	seenTasks := make(map[string]bool)
	for _, a := range agendas {
		require.NotEmpty(t, a.ID)
		require.False(t, seenAgendas[a.ID], "duplicate agenda id %s", a.ID)
		seenAgendas[a.ID] = true
		require.NotEmpty(t, strings.TrimSpace(a.Name), "blank agenda name")
		for _, task := range a.Tasks {
			require.NotEmpty(t, task.ID)
			require.False(t, seenTasks[task.ID], "duplicate task id %s", task.ID)
			seenTasks[task.ID] = true
			require.NotEmpty(t, strings.TrimSpace(task.Text), "blank task text")
			require.Equal(t, strings.TrimSpace(task.Text), task.Text, "untrimmed task text")
		}
	}

	active := s.ActiveID()
	if len(agendas) == 0 {
		require.Empty(t, active, "active id set with no agendas")
		return
	}
	require.True(t, seenAgendas[active], "active id %q does not reference an agenda", active)
}

// seed stores a raw collection and active id in mem.
func seed(mem *storage.Memory, collection, active string) {
	if collection != "" {
		mem.Put(agenda.CollectionKey, []byte(collection))
	}
	if active != "" {
		mem.Put(agenda.ActiveKey, []byte(active))
	}
}
