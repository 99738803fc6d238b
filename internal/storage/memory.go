package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Storage. It is used by tests and by the
// "memory" backend, which keeps nothing across runs.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte

	// Quota caps the total number of stored bytes. Zero means unlimited.
	Quota int

	// Error injection for testing
	LoadErr map[string]error // key -> error
	SaveErr map[string]error // key -> error
}

// NewMemory creates an empty Memory storage.
func NewMemory() *Memory {
	return &Memory{
		data:    make(map[string][]byte),
		LoadErr: make(map[string]error),
		SaveErr: make(map[string]error),
	}
}

// Load implements Storage.
func (m *Memory) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.LoadErr[key]; err != nil {
		return nil, err
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Save implements Storage.
func (m *Memory) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.SaveErr[key]; err != nil {
		return err
	}
	if m.Quota > 0 {
		used := len(data)
		for k, v := range m.data {
			if k != key {
				used += len(v)
			}
		}
		if used > m.Quota {
			return ErrQuotaExceeded
		}
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

// Put stores a raw value, bypassing quota and error injection.
func (m *Memory) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
}

// Get returns the raw value stored under key.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

// SetSaveErr makes every Save of key fail with err. A nil err clears it.
func (m *Memory) SetSaveErr(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.SaveErr, key)
		return
	}
	m.SaveErr[key] = err
}
