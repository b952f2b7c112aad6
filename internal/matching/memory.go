package matching

import (
	"context"
	"strings"
	"sync"
)

type mapping struct {
	pattern  string
	category string
}

// MemoryStore matches case-insensitively, like the Postgres ILIKE query.
// Among patterns of equal length the newest wins.
type MemoryStore struct {
	mu       sync.RWMutex
	mappings []mapping
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) FindMatch(_ context.Context, detail string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	detail = strings.ToLower(detail)

	var best *mapping

	for i := range m.mappings {
		mp := &m.mappings[i]
		if !strings.Contains(detail, strings.ToLower(mp.pattern)) {
			continue
		}

		if best == nil || len(mp.pattern) >= len(best.pattern) {
			best = mp
		}
	}

	if best == nil {
		return "", nil
	}

	return best.category, nil
}

func (m *MemoryStore) CreateMapping(_ context.Context, pattern, category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mappings = append(m.mappings, mapping{pattern: pattern, category: category})

	return nil
}
