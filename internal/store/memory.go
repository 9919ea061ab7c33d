// Package store is a concurrency-safe in-memory table keyed by uint64 IDs.
package store

import (
	"slices"
	"sync"
)

// Memory keeps entities in insertion order. IDs are assigned on Create and
// never reused.
type Memory[T any] struct {
	mu     sync.RWMutex
	items  []T
	nextID uint64
	id     func(*T) *uint64
}

// NewMemory creates a store. id returns a pointer to an entity's ID field.
// Seed entities keep their IDs.
//
//	users := store.NewMemory(func(u *User) *uint64 { return &u.ID }, seed...)
func NewMemory[T any](id func(*T) *uint64, seed ...T) *Memory[T] {
	m := &Memory[T]{id: id, nextID: 1}
	for _, e := range seed {
		if n := *id(&e); n >= m.nextID {
			m.nextID = n + 1
		}
		m.items = append(m.items, e)
	}
	return m
}

// All returns a copy of every entity.
func (m *Memory[T]) All() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.items)
}

// Count returns the number of entities.
func (m *Memory[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Get returns the entity with id.
func (m *Memory[T]) Get(id uint64) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.index(id); i >= 0 {
		return m.items[i], true
	}
	var zero T
	return zero, false
}

// Exists reports whether id is stored.
func (m *Memory[T]) Exists(id uint64) bool {
	_, ok := m.Get(id)
	return ok
}

// Create assigns the next ID to e and stores it.
func (m *Memory[T]) Create(e T) T {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.id(&e) = m.nextID
	m.nextID++
	m.items = append(m.items, e)
	return e
}

// Update applies fn to the stored entity. The ID cannot be changed.
func (m *Memory[T]) Update(id uint64, fn func(*T)) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	fn(&m.items[i])
	*m.id(&m.items[i]) = id
	return m.items[i], true
}

// Replace swaps the stored entity for e, keeping id.
func (m *Memory[T]) Replace(id uint64, e T) (T, bool) {
	return m.Update(id, func(cur *T) { *cur = e })
}

// Delete removes and returns the entity with id.
func (m *Memory[T]) Delete(id uint64) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	e := m.items[i]
	m.items = slices.Delete(m.items, i, i+1)
	return e, true
}

func (m *Memory[T]) index(id uint64) int {
	return slices.IndexFunc(m.items, func(e T) bool { return *m.id(&e) == id })
}
