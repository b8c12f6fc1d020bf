package testutil

import (
	"context"
	"sync"
)

// InMemoryStore is a generic mutex-guarded map used as the base for the
// per-domain in-memory repositories. Iteration order follows insertion order
// so list assertions stay deterministic.
type InMemoryStore[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

// NewInMemoryStore creates a new in-memory store
func NewInMemoryStore[T any]() *InMemoryStore[T] {
	return &InMemoryStore[T]{
		items: make(map[string]T),
	}
}

// Get returns the item for the given id and whether it was present.
func (s *InMemoryStore[T]) Get(_ context.Context, id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

// Set creates or replaces the item for the given id.
func (s *InMemoryStore[T]) Set(_ context.Context, id string, item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[id]; !exists {
		s.order = append(s.order, id)
	}
	s.items[id] = item
}

// Delete removes the item for the given id and reports whether it existed.
func (s *InMemoryStore[T]) Delete(_ context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[id]; !exists {
		return false
	}
	delete(s.items, id)
	for i, key := range s.order {
		if key == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns all items in insertion order.
func (s *InMemoryStore[T]) All(_ context.Context) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]T, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.items[id])
	}
	return items
}

// Clear removes all items.
func (s *InMemoryStore[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]T)
	s.order = nil
}
