package cache

import (
	"context"
	"sync"
	"time"

	"github.com/fr4nk3nst1ner/salarysim/internal/models"
)

type memoryEntry struct {
	result    *models.SimulationResult
	expiresAt time.Time
}

// MemoryStore is a process-local cache with a per-entry TTL.
// A zero TTL keeps entries for the life of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) (*models.SimulationResult, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false, nil
	}
	return entry.result, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, result *models.SimulationResult) error {
	entry := memoryEntry{result: result}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Name() string {
	return DriverMemory
}

// Len reports the number of entries, expired ones included
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
