// Package service provides the orchestration layer between the HTTP
// adapters and the todo domain.
package service

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tickd-io/tickd/internal/domain/todo"
)

// ValidationError carries the structured field errors produced by the
// validation pipeline. Messages are joined only when the error is
// serialized for the client.
type ValidationError struct {
	Fields []todo.FieldError
}

// Error joins all field messages with "; ".
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// First returns the first field message. Partial updates respond with a
// single message instead of the joined form.
func (e *ValidationError) First() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0].Message
}

// TodoService implements the todo-item operations: listing with completion
// filtering, lookup, create, full replace, partial update, and delete.
// Not-found failures are recorded to the error sink for operational
// visibility before being surfaced to the caller.
type TodoService struct {
	store  todo.Store
	sink   todo.Sink
	logger *slog.Logger
}

// NewTodoService creates a new TodoService.
func NewTodoService(store todo.Store, sink todo.Sink, logger *slog.Logger) *TodoService {
	return &TodoService{
		store:  store,
		sink:   sink,
		logger: logger,
	}
}

// SeedItems returns the demo collection installed at startup.
func SeedItems() []todo.Item {
	return []todo.Item{
		{ID: 0, Name: "an item", Priority: 3, Completed: false},
		{ID: 1, Name: "another item", Priority: 2, Completed: false},
		{ID: 2, Name: "a done item", Priority: 1, Completed: true},
	}
}

// Seed appends the demo items to the store.
func (s *TodoService) Seed() error {
	for _, item := range SeedItems() {
		if err := s.store.Append(item); err != nil {
			return fmt.Errorf("seed item %d: %w", item.ID, err)
		}
	}
	s.logger.Debug("seeded todo items", "count", len(SeedItems()))
	return nil
}

// List returns all items, or only those matching the completed filter
// when one is given. Order is insertion order.
func (s *TodoService) List(completed *bool) []todo.Item {
	if completed != nil {
		return s.store.Filter(*completed)
	}
	return s.store.List()
}

// Get returns the item with the given ID.
// Returns todo.ErrNotFound (recorded to the sink) if no such item exists.
func (s *TodoService) Get(id int) (todo.Item, error) {
	item, err := s.store.Get(id)
	if err != nil {
		s.recordNotFound(id)
		return todo.Item{}, err
	}
	return item, nil
}

// Create validates and sanitizes a decoded request body and appends the
// resulting item. Returns *ValidationError on failed validation and
// todo.ErrDuplicateID when the client-assigned ID is already taken.
func (s *TodoService) Create(raw map[string]any) (todo.Item, error) {
	res := todo.ValidateItem(raw, true)
	if !res.Valid {
		return todo.Item{}, &ValidationError{Fields: res.Errors}
	}

	if err := s.store.Append(res.Item); err != nil {
		return todo.Item{}, err
	}

	s.logger.Info("todo item created", "id", res.Item.ID, "priority", res.Item.Priority)
	return res.Item, nil
}

// Replace validates a full-replace body and swaps the item with the given
// ID in place. The body's id field is ignored; the path ID wins. Existence
// is checked before the body is validated, matching the per-endpoint
// contract (unknown ID yields not-found even with an invalid body).
func (s *TodoService) Replace(id int, raw map[string]any) (todo.Item, error) {
	if _, err := s.store.Get(id); err != nil {
		s.recordNotFound(id)
		return todo.Item{}, err
	}

	res := todo.ValidateItem(raw, false)
	if !res.Valid {
		return todo.Item{}, &ValidationError{Fields: res.Errors}
	}

	res.Item.ID = id
	if err := s.store.Replace(id, res.Item); err != nil {
		return todo.Item{}, err
	}

	s.logger.Info("todo item replaced", "id", id)
	return res.Item, nil
}

// Patch validates a partial-update body and merges the present fields
// into the existing item.
func (s *TodoService) Patch(id int, raw map[string]any) (todo.Item, error) {
	existing, err := s.store.Get(id)
	if err != nil {
		s.recordNotFound(id)
		return todo.Item{}, err
	}

	patch, errs := todo.ValidatePatch(raw)
	if len(errs) > 0 {
		return todo.Item{}, &ValidationError{Fields: errs}
	}

	merged := patch.Apply(existing)
	if err := s.store.Replace(id, merged); err != nil {
		return todo.Item{}, err
	}

	s.logger.Info("todo item updated", "id", id)
	return merged, nil
}

// Delete removes the item with the given ID and returns it.
func (s *TodoService) Delete(id int) (todo.Item, error) {
	removed, err := s.store.Remove(id)
	if err != nil {
		s.recordNotFound(id)
		return todo.Item{}, err
	}

	s.logger.Info("todo item deleted", "id", id)
	return removed, nil
}

// recordNotFound appends one sink line for a missed lookup.
func (s *TodoService) recordNotFound(id int) {
	s.sink.Record(fmt.Sprintf("Todo item not found: id %d", id))
}
