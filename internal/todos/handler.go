package todos

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/taskvault/taskvault/internal/auth"
	"github.com/taskvault/taskvault/internal/platform/httpx"
	"github.com/taskvault/taskvault/internal/shared"
)

// ServicePort defines the business contract the handler depends on.
type ServicePort interface {
	List(ctx context.Context, ownerID int64) ([]Todo, error)
	Get(ctx context.Context, id, ownerID int64) (*Todo, error)
	Create(ctx context.Context, ownerID int64, params TodoParams) (*Todo, error)
	Update(ctx context.Context, id, ownerID int64, params TodoParams) error
	Delete(ctx context.Context, id, ownerID int64) error
}

// Handler wires HTTP endpoints for the caller's own todos.
type Handler struct {
	logger    *slog.Logger
	service   ServicePort
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service ServicePort) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers todo routes on the provided router. The router is
// expected to sit behind the authentication middleware.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/todo", h.handleCreate)
	r.Get("/todo/{id}", h.handleGet)
	r.Put("/todo/{id}", h.handleUpdate)
	r.Delete("/todo/{id}", h.handleDelete)
}

type todoRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description" validate:"required,max=200"`
	Priority    int    `json:"priority" validate:"required,gte=1,lte=5"`
	Complete    bool   `json:"complete"`
}

type todoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
	OwnerID     int64  `json:"owner_id"`
}

func toResponse(todo Todo) todoResponse {
	return todoResponse{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Priority:    todo.Priority,
		Complete:    todo.Complete,
		OwnerID:     todo.OwnerID,
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrAuthRequired)
		return
	}
	items, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		h.logger.Error("list todos", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]todoResponse, 0, len(items))
	for _, todo := range items {
		out = append(out, toResponse(todo))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrAuthRequired)
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpx.RespondValidation(w, "todo id must be a positive integer")
		return
	}
	todo, err := h.service.Get(r.Context(), id, identity.UserID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(*todo))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrAuthRequired)
		return
	}
	var req todoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondValidation(w, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondValidation(w, err.Error())
		return
	}
	todo, err := h.service.Create(r.Context(), identity.UserID, TodoParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
	})
	if err != nil {
		h.logger.Error("create todo", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(*todo))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrAuthRequired)
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpx.RespondValidation(w, "todo id must be a positive integer")
		return
	}
	var req todoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondValidation(w, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondValidation(w, err.Error())
		return
	}
	err = h.service.Update(r.Context(), id, identity.UserID, TodoParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrAuthRequired)
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpx.RespondValidation(w, "todo id must be a positive integer")
		return
	}
	if err := h.service.Delete(r.Context(), id, identity.UserID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}
