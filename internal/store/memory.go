// ABOUTME: In-memory Store implementation for tests and throwaway servers
// ABOUTME: Allows the service and handler to run without a database on disk

package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store implementation.
type MemoryStore struct {
	mu     sync.RWMutex
	people map[int64]*Person // keyed by person ID
	lastID int64
}

// NewMemoryStore creates a new MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		people: make(map[int64]*Person),
	}
}

// Save stores a copy of the person, assigning the next ID when it has none.
func (m *MemoryStore) Save(ctx context.Context, p *Person) (*Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Make a copy to avoid external modification
	saved := *p
	if saved.ID == 0 {
		saved.ID = m.lastID + 1
	}
	if saved.ID > m.lastID {
		m.lastID = saved.ID
	}
	m.people[saved.ID] = &saved

	result := saved
	return &result, nil
}

// FindAll returns copies of all people ordered by ID.
func (m *MemoryStore) FindAll(ctx context.Context) ([]*Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	people := make([]*Person, 0, len(m.people))
	for _, p := range m.people {
		personCopy := *p
		people = append(people, &personCopy)
	}

	sort.Slice(people, func(i, j int) bool {
		return people[i].ID < people[j].ID
	})

	return people, nil
}

// FindByID retrieves a person by ID.
func (m *MemoryStore) FindByID(ctx context.Context, id int64) (*Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.people[id]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy
	result := *p
	return &result, nil
}

// Delete removes a person by ID.
func (m *MemoryStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.people[id]; !ok {
		return ErrNotFound
	}
	delete(m.people, id)
	return nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
