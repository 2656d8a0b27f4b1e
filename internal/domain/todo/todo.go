// Package todo defines the todo-item entity and its validation rules.
package todo

import "errors"

// Error types for todo store operations.
var (
	// ErrNotFound indicates that no item with the requested ID exists.
	ErrNotFound = errors.New("todo item not found")

	// ErrDuplicateID indicates that an item with the same ID already exists.
	ErrDuplicateID = errors.New("todo item with this ID already exists")
)

// Item is a single todo item. IDs are client-assigned and unique within
// the collection. Name is always stored in HTML-entity-escaped form.
type Item struct {
	ID        int    `json:"todoItemId"`
	Name      string `json:"name"`
	Priority  int    `json:"priority"`
	Completed bool   `json:"completed"`
}

// Patch holds a partial update. Nil fields were absent from the input
// and leave the corresponding item field unchanged.
type Patch struct {
	Name      *string
	Priority  *int
	Completed *bool
}

// Apply merges the patch into a copy of the given item and returns it.
func (p Patch) Apply(item Item) Item {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Priority != nil {
		item.Priority = *p.Priority
	}
	if p.Completed != nil {
		item.Completed = *p.Completed
	}
	return item
}

// Store is the ordered mutable collection of todo items.
// Implementations must preserve insertion order, keep the positional index
// on Replace, and remove exactly one slot on Remove.
type Store interface {
	// List returns all items in insertion order.
	List() []Item
	// Filter returns the subsequence of items matching the completed flag.
	Filter(completed bool) []Item
	// Get returns the item with the given ID, or ErrNotFound.
	Get(id int) (Item, error)
	// Append adds a new item, or returns ErrDuplicateID.
	Append(item Item) error
	// Replace swaps the item with the given ID in place, or returns ErrNotFound.
	Replace(id int, item Item) error
	// Remove deletes the item with the given ID and returns it, or ErrNotFound.
	Remove(id int) (Item, error)
	// Len returns the number of items in the collection.
	Len() int
}

// Sink is the append-only destination for error records.
// Record is best-effort: implementations must never fail the caller.
type Sink interface {
	Record(message string)
}
