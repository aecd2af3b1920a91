package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avelar/todovault/internal/database"
	"github.com/avelar/todovault/internal/models"
	"github.com/avelar/todovault/internal/validation"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// TodoHandler handles todo-related requests
type TodoHandler struct {
	todos  database.TodoStore
	logger *zap.Logger
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(todos database.TodoStore, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{todos: todos, logger: logger}
}

// RegisterRoutes registers todo routes on the given router.
// The router should already have the /todos prefix.
func (h *TodoHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListTodos).Methods("GET")
	r.HandleFunc("", h.CreateTodo).Methods("POST")
	r.HandleFunc("/{id}", h.GetTodo).Methods("GET")
	r.HandleFunc("/{id}", h.ReplaceTodo).Methods("PUT")
	r.HandleFunc("/{id}", h.PatchTodo).Methods("PATCH")
	r.HandleFunc("/{id}", h.DeleteTodo).Methods("DELETE")
}

// CreateTodoRequest represents a create todo request
type CreateTodoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Completed   bool    `json:"completed,omitempty"`
}

// ReplaceTodoRequest represents a full-update request
type ReplaceTodoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// PatchTodoRequest represents a partial-update request; only supplied
// fields are applied
type PatchTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// ListTodos lists all todos ordered by creation time descending
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todos.List(r.Context())
	if err != nil {
		h.logger.Error("failed_to_list_todos", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch todos")
		return
	}

	respondJSON(w, http.StatusOK, todos)
}

// CreateTodo creates a new todo
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Validation happens before any store mutation
	req.Title = validation.SanitizeText(req.Title)
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "Title is required")
		return
	}

	todo := &models.Todo{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}

	if err := h.todos.Create(r.Context(), todo); err != nil {
		h.logger.Error("failed_to_create_todo", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to create todo")
		return
	}

	respondJSON(w, http.StatusCreated, todo)
}

// GetTodo retrieves a todo by ID
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.todoID(w, r)
	if !ok {
		return
	}

	todo, err := h.todos.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Todo not found")
			return
		}
		h.logger.Error("failed_to_get_todo", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch todo")
		return
	}

	respondJSON(w, http.StatusOK, todo)
}

// ReplaceTodo applies the full field set onto an existing todo
func (h *TodoHandler) ReplaceTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.todoID(w, r)
	if !ok {
		return
	}

	var req ReplaceTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Same title rule as creation, checked before any store mutation
	title := validation.SanitizeText(req.Title)
	if title == "" {
		respondError(w, http.StatusBadRequest, "Title is required")
		return
	}

	todo := &models.Todo{
		ID:          id,
		Title:       title,
		Description: req.Description,
		Completed:   req.Completed,
	}

	if err := h.todos.Update(r.Context(), todo); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Todo not found")
			return
		}
		h.logger.Error("failed_to_replace_todo", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to update todo")
		return
	}

	// Re-read so the response carries the persisted timestamps
	updated, err := h.todos.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed_to_reload_todo", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to update todo")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// PatchTodo confirms existence first, then applies only the supplied fields
func (h *TodoHandler) PatchTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.todoID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	todo, err := h.todos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Todo not found")
			return
		}
		h.logger.Error("failed_to_get_todo", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to update todo")
		return
	}

	var req PatchTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title != nil {
		title := validation.SanitizeText(*req.Title)
		if title == "" {
			respondError(w, http.StatusBadRequest, "Title is required")
			return
		}
		todo.Title = title
	}
	if req.Description != nil {
		todo.Description = req.Description
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	if err := h.todos.Update(ctx, todo); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Todo not found")
			return
		}
		h.logger.Error("failed_to_patch_todo", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to update todo")
		return
	}

	respondJSON(w, http.StatusOK, todo)
}

// DeleteTodo permanently removes a todo
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.todoID(w, r)
	if !ok {
		return
	}

	if err := h.todos.Delete(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Todo not found")
			return
		}
		h.logger.Error("failed_to_delete_todo", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to delete todo")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Todo deleted successfully"})
}

func (h *TodoHandler) todoID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Todo not found")
		return uuid.Nil, false
	}
	return id, true
}
