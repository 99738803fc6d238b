// Package storagetest runs the same behavioral checks against every
// storage.Storage backend.
package storagetest

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"agenda/internal/storage"
)

// Run exercises the Storage contract. newStorage must return an empty backend.
func Run(t *testing.T, newStorage func(t *testing.T) storage.Storage) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		s := newStorage(t)
		_, err := s.Load(context.Background(), "nope")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("save then load", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()
		want := []byte(`[{"id":"a"}]`)
		if err := s.Save(ctx, "agendas", want); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := s.Load(ctx, "agendas")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()
		if err := s.Save(ctx, "k", []byte("first")); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := s.Save(ctx, "k", []byte("second")); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := s.Load(ctx, "k")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if string(got) != "second" {
			t.Errorf("expected %q, got %q", "second", got)
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()
		if err := s.Save(ctx, "agendas", []byte("[]")); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := s.Save(ctx, "active_agenda", []byte(`"x"`)); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := s.Load(ctx, "agendas")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if string(got) != "[]" {
			t.Errorf("expected %q, got %q", "[]", got)
		}
	})

	t.Run("returned bytes are a copy", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()
		if err := s.Save(ctx, "k", []byte("abc")); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := s.Load(ctx, "k")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		got[0] = 'z'
		again, err := s.Load(ctx, "k")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if string(again) != "abc" {
			t.Errorf("stored value changed through returned slice: %q", again)
		}
	})

	t.Run("odd key names", func(t *testing.T) {
		s := newStorage(t)
		ctx := context.Background()
		key := "../weird key/with:chars"
		if err := s.Save(ctx, key, []byte("v")); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := s.Load(ctx, key)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if string(got) != "v" {
			t.Errorf("expected %q, got %q", "v", got)
		}
	})
}
