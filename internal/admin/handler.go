// Package admin exposes the administrator-only todo surface. Routes are
// mounted behind RequireRole(admin); administrators bypass ownership
// filtering but keep the same not-found semantics.
package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskvault/taskvault/internal/platform/httpx"
	"github.com/taskvault/taskvault/internal/todos"
)

// ServicePort defines the admin business contract.
type ServicePort interface {
	ListAll(ctx context.Context) ([]todos.Todo, error)
	DeleteAny(ctx context.Context, id int64) error
}

// Handler wires the admin todo endpoints.
type Handler struct {
	logger  *slog.Logger
	service ServicePort
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service ServicePort) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers admin routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/todo", h.handleListAll)
	r.Delete("/todo/{id}", h.handleDelete)
}

type todoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
	OwnerID     int64  `json:"owner_id"`
}

func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error("list all todos", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]todoResponse, 0, len(items))
	for _, todo := range items {
		out = append(out, todoResponse{
			ID:          todo.ID,
			Title:       todo.Title,
			Description: todo.Description,
			Priority:    todo.Priority,
			Complete:    todo.Complete,
			OwnerID:     todo.OwnerID,
		})
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.RespondValidation(w, "todo id must be a positive integer")
		return
	}
	if err := h.service.DeleteAny(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
