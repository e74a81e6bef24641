package store

import (
	"context"
	"sync"

	"github.com/couchcryptid/ocean-data-dashboard/internal/domain"
)

// Memory is a CoordinateStore held in process memory. Entries are kept in
// their JSON form, matching what the SQLite store writes.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, visitor string) (domain.Coordinate, bool, error) {
	m.mu.RLock()
	raw, ok := m.entries[visitor]
	m.mu.RUnlock()
	if !ok {
		return domain.Coordinate{}, false, nil
	}
	c, err := decode(raw)
	if err != nil {
		return domain.Coordinate{}, false, err
	}
	return c, true, nil
}

func (m *Memory) Set(_ context.Context, visitor string, c domain.Coordinate) error {
	raw, err := encode(c)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[visitor] = raw
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear(_ context.Context, visitor string) error {
	m.mu.Lock()
	delete(m.entries, visitor)
	m.mu.Unlock()
	return nil
}

// CheckReadiness always succeeds.
func (m *Memory) CheckReadiness(context.Context) error { return nil }
