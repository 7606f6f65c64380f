package lock

import (
	"context"
	"sync"
)

// MemoryManager implements Manager inside a single process. It offers no
// cross-instance exclusion and exists for single-instance deployments and
// tests.
type MemoryManager struct {
	mu   sync.Mutex
	held map[int64]bool
}

func NewMemoryManager() *MemoryManager {
	return &MemoryManager{held: make(map[int64]bool)}
}

func (m *MemoryManager) TryAcquire(_ context.Context, key int64) (*Lock, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.held[key] {
		return nil, false, nil
	}
	m.held[key] = true

	release := func(context.Context) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.held, key)
		return nil
	}

	return NewLock(key, release), true, nil
}
