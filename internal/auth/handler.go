package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/identity-service/internal"
	"github.com/frahmantamala/identity-service/internal/transport"
	"github.com/frahmantamala/identity-service/pkg/logger"
)

// Realm is announced in WWW-Authenticate on a rejected Basic auth request.
const Realm = "identity-service"

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

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	ctx, cancel := internal.WithTimeout(r.Context(), 0)
	defer cancel()

	if _, err := h.Service.Authenticate(ctx, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, LoginResponse{Message: LoginSuccessMessage})
}

// BasicAuthMiddleware only lets admin callers through. The principal is put on
// the request context and on the request logger.
func (h *Handler) BasicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			h.challenge(w, "missing basic credentials")
			return
		}

		principal, err := h.Service.Authenticate(r.Context(), LoginDTO{Username: username, Password: password})
		if err != nil {
			if appErr, isApp := internal.IsAppError(err); isApp && appErr.Type == internal.ErrorTypeUnauthorized {
				h.challenge(w, appErr.Message)
				return
			}
			h.HandleServiceError(w, err)
			return
		}

		ctx := internal.ContextWithCaller(r.Context(), internal.Caller{UID: principal.UID, Username: principal.Username})
		ctx = logger.With(ctx, "auth_uid", principal.UID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) challenge(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="`+Realm+`", charset="UTF-8"`)
	h.WriteAppError(w, internal.NewUnauthorizedError(message, internal.ErrCodeInvalidCredentials))
}
