// Package users exposes the authenticated user's own profile endpoints.
package users

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/taskvault/taskvault/internal/auth"
	"github.com/taskvault/taskvault/internal/platform/httpx"
	"github.com/taskvault/taskvault/internal/shared"
)

// AccountService defines the account operations the handler depends on.
// *auth.Service satisfies it.
type AccountService interface {
	Profile(ctx context.Context, userID int64) (*auth.User, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	ChangePhoneNumber(ctx context.Context, userID int64, password, phoneNumber string) error
}

// Handler wires the current-user profile endpoints.
type Handler struct {
	logger    *slog.Logger
	service   AccountService
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service AccountService) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers user routes on the provided router. The router is
// expected to sit behind the authentication middleware.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleProfile)
	r.Put("/password", h.handleChangePassword)
	r.Put("/phone", h.handleChangePhone)
}

type userResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrAuthRequired)
		return
	}
	user, err := h.service.Profile(r.Context(), identity.UserID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, userResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        string(user.Role),
		IsActive:    user.IsActive,
		PhoneNumber: user.PhoneNumber,
	})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required,min=8"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrAuthRequired)
		return
	}
	var req changePasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondValidation(w, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondValidation(w, err.Error())
		return
	}
	if err := h.service.ChangePassword(r.Context(), identity.UserID, req.OldPassword, req.NewPassword); err != nil {
		h.logger.Warn("change password", slog.Int64("user_id", identity.UserID))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type changePhoneRequest struct {
	Password       string `json:"password" validate:"required,min=8"`
	NewPhoneNumber string `json:"new_phone_number" validate:"required,min=6"`
}

func (h *Handler) handleChangePhone(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrAuthRequired)
		return
	}
	var req changePhoneRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondValidation(w, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondValidation(w, err.Error())
		return
	}
	if err := h.service.ChangePhoneNumber(r.Context(), identity.UserID, req.Password, req.NewPhoneNumber); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
