package user

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/identity-service/internal"
	"github.com/frahmantamala/identity-service/internal/transport"
	"github.com/frahmantamala/identity-service/pkg/logger"
)

type ServiceAPI interface {
	CreateUser(ctx context.Context, dto CreateUserDTO) (*UserWithCompanies, error)
	GetUser(ctx context.Context, uid string) (*UserWithCompanies, error)
	ListUsers(ctx context.Context) ([]*UserWithCompanies, error)
	UpdateUser(ctx context.Context, uid string, patch UserPatch) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// ListUsers handles GET /users. The body is a bare array.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := internal.WithTimeout(r.Context(), 0)
	defer cancel()

	users, err := h.Service.ListUsers(ctx)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	resp := make([]UserWithCompaniesResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, u.ToResponse())
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

// GetUser handles GET /users/{uid}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.uidParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := internal.WithTimeout(r.Context(), 0)
	defer cancel()

	u, err := h.Service.GetUser(ctx, uid)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u.ToResponse())
}

// CreateUser handles POST /users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	ctx, cancel := internal.WithTimeout(r.Context(), 0)
	defer cancel()

	created, err := h.Service.CreateUser(ctx, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	caller, _ := internal.CallerFromContext(r.Context())
	logger.From(r.Context()).Info("user created via api",
		"uid", created.User.UID,
		"by", caller.Username)

	w.Header().Set("Location", "/api/v1/users/"+created.User.UID)
	h.WriteJSON(w, http.StatusCreated, created.ToResponse())
}

// UpdateUser handles PUT and PATCH /users/{uid}. Both merge the body onto the
// stored record.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.uidParam(w, r)
	if !ok {
		return
	}

	var patch UserPatch
	if appErr := h.DecodeJSON(r, &patch); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	ctx, cancel := internal.WithTimeout(r.Context(), 0)
	defer cancel()

	updated, err := h.Service.UpdateUser(ctx, uid, patch)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated.ToResponse())
}

func (h *Handler) uidParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, appErr := transport.PathParam(r, "uid")
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return "", false
	}
	uid = strings.TrimSpace(uid)
	if uid == "" {
		h.WriteAppError(w, internal.NewValidationFieldError("uid", "uid is required", internal.ErrCodeValidationFailed))
		return "", false
	}
	return uid, true
}
