// Package memory provides in-memory implementations of outbound ports.
package memory

import (
	"sync"

	"github.com/tickd-io/tickd/internal/domain/todo"
)

// TodoStore implements todo.Store with an ordered in-memory slice.
// Items keep insertion order; Replace preserves the positional index and
// Remove deletes exactly one slot. Thread-safe for concurrent access:
// mutations are serialized behind a single writer lock since items carry
// no version field for optimistic concurrency.
type TodoStore struct {
	items []todo.Item
	mu    sync.RWMutex
}

// NewTodoStore creates an empty in-memory todo store.
func NewTodoStore() *TodoStore {
	return &TodoStore{}
}

// List returns a copy of all items in insertion order.
func (s *TodoStore) List() []todo.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]todo.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Filter returns the items whose completed flag matches, in insertion order.
func (s *TodoStore) Filter(completed bool) []todo.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]todo.Item, 0)
	for _, item := range s.items {
		if item.Completed == completed {
			out = append(out, item)
		}
	}
	return out
}

// Get returns the item with the given ID.
// Returns todo.ErrNotFound if no such item exists.
func (s *TodoStore) Get(id int) (todo.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return todo.Item{}, todo.ErrNotFound
}

// Append adds a new item at the end of the collection.
// Returns todo.ErrDuplicateID if an item with the same ID already exists.
func (s *TodoStore) Append(item todo.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.ID == item.ID {
			return todo.ErrDuplicateID
		}
	}
	s.items = append(s.items, item)
	return nil
}

// Replace swaps the item with the given ID, keeping its position.
// Returns todo.ErrNotFound if no such item exists.
func (s *TodoStore) Replace(id int, item todo.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.items {
		if existing.ID == id {
			s.items[i] = item
			return nil
		}
	}
	return todo.ErrNotFound
}

// Remove deletes the item with the given ID and returns it.
// Returns todo.ErrNotFound if no such item exists.
func (s *TodoStore) Remove(id int) (todo.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.items {
		if existing.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return existing, nil
		}
	}
	return todo.Item{}, todo.ErrNotFound
}

// Len returns the number of items in the collection.
func (s *TodoStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Compile-time interface verification.
var _ todo.Store = (*TodoStore)(nil)
