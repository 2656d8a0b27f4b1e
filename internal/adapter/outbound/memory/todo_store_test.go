package memory

import (
	"errors"
	"testing"

	"github.com/tickd-io/tickd/internal/domain/todo"
)

func seededStore(t *testing.T) *TodoStore {
	t.Helper()

	store := NewTodoStore()
	items := []todo.Item{
		{ID: 0, Name: "an item", Priority: 3, Completed: false},
		{ID: 1, Name: "another item", Priority: 2, Completed: false},
		{ID: 2, Name: "a done item", Priority: 1, Completed: true},
	}
	for _, item := range items {
		if err := store.Append(item); err != nil {
			t.Fatalf("Append(%d): %v", item.ID, err)
		}
	}
	return store
}

func TestTodoStore_ListOrder(t *testing.T) {
	t.Parallel()

	store := seededStore(t)
	items := store.List()

	if len(items) != 3 {
		t.Fatalf("List() returned %d items, want 3", len(items))
	}
	for i, item := range items {
		if item.ID != i {
			t.Errorf("List()[%d].ID = %d, want %d (insertion order)", i, item.ID, i)
		}
	}
}

func TestTodoStore_Filter(t *testing.T) {
	t.Parallel()

	store := seededStore(t)

	done := store.Filter(true)
	if len(done) != 1 || done[0].ID != 2 {
		t.Errorf("Filter(true) = %v, want the single completed item", done)
	}

	pending := store.Filter(false)
	if len(pending) != 2 {
		t.Errorf("Filter(false) returned %d items, want 2", len(pending))
	}
}

func TestTodoStore_Get(t *testing.T) {
	t.Parallel()

	store := seededStore(t)

	item, err := store.Get(2)
	if err != nil {
		t.Fatalf("Get(2): %v", err)
	}
	if item.Name != "a done item" {
		t.Errorf("Get(2).Name = %q, want %q", item.Name, "a done item")
	}

	if _, err := store.Get(99); !errors.Is(err, todo.ErrNotFound) {
		t.Errorf("Get(99) error = %v, want ErrNotFound", err)
	}
}

func TestTodoStore_Append_Duplicate(t *testing.T) {
	t.Parallel()

	store := seededStore(t)

	err := store.Append(todo.Item{ID: 1, Name: "dup"})
	if !errors.Is(err, todo.ErrDuplicateID) {
		t.Errorf("Append(duplicate) error = %v, want ErrDuplicateID", err)
	}
	if store.Len() != 3 {
		t.Errorf("Len() = %d after rejected append, want 3", store.Len())
	}
}

func TestTodoStore_Replace_KeepsPosition(t *testing.T) {
	t.Parallel()

	store := seededStore(t)

	replacement := todo.Item{ID: 1, Name: "swapped", Priority: 9, Completed: true}
	if err := store.Replace(1, replacement); err != nil {
		t.Fatalf("Replace(1): %v", err)
	}

	items := store.List()
	if items[1] != replacement {
		t.Errorf("List()[1] = %+v, want %+v at original position", items[1], replacement)
	}

	if err := store.Replace(99, replacement); !errors.Is(err, todo.ErrNotFound) {
		t.Errorf("Replace(99) error = %v, want ErrNotFound", err)
	}
}

func TestTodoStore_Remove(t *testing.T) {
	t.Parallel()

	store := seededStore(t)

	removed, err := store.Remove(1)
	if err != nil {
		t.Fatalf("Remove(1): %v", err)
	}
	if removed.Name != "another item" {
		t.Errorf("Remove(1).Name = %q, want %q", removed.Name, "another item")
	}
	if store.Len() != 2 {
		t.Errorf("Len() = %d after remove, want 2", store.Len())
	}

	// Second removal of the same ID is a clean not-found, not a crash.
	if _, err := store.Remove(1); !errors.Is(err, todo.ErrNotFound) {
		t.Errorf("Remove(1) again error = %v, want ErrNotFound", err)
	}

	// Remaining order is preserved.
	items := store.List()
	if items[0].ID != 0 || items[1].ID != 2 {
		t.Errorf("List() after remove = %v, want IDs [0 2]", items)
	}
}

func TestTodoStore_ListIsCopy(t *testing.T) {
	t.Parallel()

	store := seededStore(t)

	items := store.List()
	items[0].Name = "mutated"

	fresh, err := store.Get(0)
	if err != nil {
		t.Fatalf("Get(0): %v", err)
	}
	if fresh.Name != "an item" {
		t.Error("List() exposed internal storage to mutation")
	}
}
