// Package api provides the inbound HTTP adapter for the todo service.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tickd-io/tickd/internal/service"
)

// errorResponse is the JSON error envelope for all failure responses.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Handler serves the todo-item JSON API.
type Handler struct {
	todoService *service.TodoService
	logger      *slog.Logger
	startTime   time.Time
}

// Option configures a Handler dependency.
type Option func(*Handler)

// WithTodoService sets the todo CRUD service.
func WithTodoService(s *service.TodoService) Option {
	return func(h *Handler) { h.todoService = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) { h.logger = l }
}

// WithStartTime sets the process start time for uptime reporting.
func WithStartTime(t time.Time) Option {
	return func(h *Handler) { h.startTime = t }
}

// NewHandler creates a new Handler with the given options.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		logger:    slog.Default(),
		startTime: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns an http.Handler with all API routes registered.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.handleStatus)

	mux.HandleFunc("GET /api/TodoItems", h.handleListTodoItems)
	mux.HandleFunc("POST /api/TodoItems", h.handleCreateTodoItem)
	mux.HandleFunc("GET /api/TodoItems/{id}", h.handleGetTodoItem)
	mux.HandleFunc("PUT /api/TodoItems/{id}", h.handleReplaceTodoItem)
	mux.HandleFunc("PATCH /api/TodoItems/{id}", h.handlePatchTodoItem)
	mux.HandleFunc("DELETE /api/TodoItems/{id}", h.handleDeleteTodoItem)

	return mux
}

// --- JSON helper methods ---

// respondJSON writes a JSON response with the given status code and data.
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes the error envelope with the given status and message.
func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, errorResponse{Status: "error", Message: message})
}

// readJSON decodes the request body into a raw field map for the
// validation pipeline.
func (h *Handler) readJSON(r *http.Request) (map[string]any, error) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// pathID parses the {id} path segment as a base-10 integer.
// Parsing is strict: numeric-prefixed strings like "3abc" are rejected.
func (h *Handler) pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}
