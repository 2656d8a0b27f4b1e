package api

import (
	"errors"
	"net/http"

	"github.com/tickd-io/tickd/internal/domain/todo"
	"github.com/tickd-io/tickd/internal/service"
)

// Client-facing messages for non-validation failures.
const (
	msgInvalidQuery  = "Invalid query parameter"
	msgInvalidBody   = "Invalid request body"
	msgNotFound      = "Todo item not found"
	msgDuplicateItem = "Todo item with this ID already exists"
)

// handleListTodoItems returns the collection, optionally filtered by the
// completed query parameter.
// GET /api/TodoItems[?completed=true|false]
func (h *Handler) handleListTodoItems(w http.ResponseWriter, r *http.Request) {
	var filter *bool
	if r.URL.Query().Has("completed") {
		switch r.URL.Query().Get("completed") {
		case "true":
			v := true
			filter = &v
		case "false":
			v := false
			filter = &v
		default:
			h.respondError(w, http.StatusBadRequest, msgInvalidQuery)
			return
		}
	}

	h.respondJSON(w, http.StatusOK, h.todoService.List(filter))
}

// handleGetTodoItem returns a single item by ID.
// GET /api/TodoItems/{id}
func (h *Handler) handleGetTodoItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, todo.MsgInvalidID)
		return
	}

	item, err := h.todoService.Get(id)
	if err != nil {
		h.respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	h.respondJSON(w, http.StatusOK, item)
}

// handleCreateTodoItem validates the body and appends the sanitized item.
// POST /api/TodoItems
func (h *Handler) handleCreateTodoItem(w http.ResponseWriter, r *http.Request) {
	raw, err := h.readJSON(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	created, err := h.todoService.Create(raw)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			h.respondError(w, http.StatusBadRequest, verr.Error())
		case errors.Is(err, todo.ErrDuplicateID):
			h.respondError(w, http.StatusBadRequest, msgDuplicateItem)
		default:
			h.logger.Error("failed to create todo item", "error", err)
			h.respondError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, created)
}

// handleReplaceTodoItem validates the body as a full record (id taken from
// the path) and swaps the stored item in place.
// PUT /api/TodoItems/{id}
func (h *Handler) handleReplaceTodoItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, todo.MsgInvalidID)
		return
	}

	raw, err := h.readJSON(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	replaced, err := h.todoService.Replace(id, raw)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.Is(err, todo.ErrNotFound):
			h.respondError(w, http.StatusNotFound, msgNotFound)
		case errors.As(err, &verr):
			h.respondError(w, http.StatusBadRequest, verr.Error())
		default:
			h.logger.Error("failed to replace todo item", "error", err, "id", id)
			h.respondError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	h.respondJSON(w, http.StatusOK, replaced)
}

// handlePatchTodoItem merges the present body fields into the stored item.
// Validation failures respond with a single message, not the joined form.
// PATCH /api/TodoItems/{id}
func (h *Handler) handlePatchTodoItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, todo.MsgInvalidID)
		return
	}

	raw, err := h.readJSON(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	merged, err := h.todoService.Patch(id, raw)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.Is(err, todo.ErrNotFound):
			h.respondError(w, http.StatusNotFound, msgNotFound)
		case errors.As(err, &verr):
			h.respondError(w, http.StatusBadRequest, verr.First())
		default:
			h.logger.Error("failed to patch todo item", "error", err, "id", id)
			h.respondError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	h.respondJSON(w, http.StatusOK, merged)
}

// handleDeleteTodoItem removes an item by ID and returns it.
// DELETE /api/TodoItems/{id}
func (h *Handler) handleDeleteTodoItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, todo.MsgInvalidID)
		return
	}

	removed, err := h.todoService.Delete(id)
	if err != nil {
		h.respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	h.respondJSON(w, http.StatusOK, removed)
}
