// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"agenda/internal/agenda"
	"agenda/internal/config"
	"agenda/internal/storage"
)

// SeqIDs returns a deterministic id generator producing prefix-1, prefix-2, ...
func SeqIDs(prefix string) agenda.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// Seed writes agendas and the active id into mem as a stored snapshot.
func Seed(t *testing.T, mem *storage.Memory, agendas []agenda.Agenda, activeID string) {
	t.Helper()
	data, err := agenda.EncodeCollection(agendas)
	if err != nil {
		t.Fatalf("failed to encode agendas: %v", err)
	}
	mem.Put(agenda.CollectionKey, data)
	mem.Put(agenda.ActiveKey, agenda.EncodeActive(activeID))
}

// NewStore returns an initialized Store over mem with deterministic ids.
func NewStore(t *testing.T, mem *storage.Memory) *agenda.Store {
	t.Helper()
	st := agenda.New(mem, agenda.WithIDFunc(SeqIDs("id")))
	st.Initialize(context.Background())
	return st
}

// Reload simulates a restart and returns the state persisted in mem.
func Reload(t *testing.T, mem *storage.Memory) *agenda.Store {
	t.Helper()
	return NewStore(t, mem)
}

// MemoryFactory returns a store factory that always builds a Store over mem.
// Each call starts a fresh Store, like a new process would. Ids keep counting
// across calls so separate runs never mint the same id.
func MemoryFactory(mem *storage.Memory) func(ctx context.Context, cfg *config.Config, log *zap.Logger) (*agenda.Store, error) {
	ids := SeqIDs("new")
	return func(ctx context.Context, cfg *config.Config, log *zap.Logger) (*agenda.Store, error) {
		return agenda.New(mem, agenda.WithLogger(log), agenda.WithIDFunc(ids)), nil
	}
}
