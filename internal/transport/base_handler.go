package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/frahmantamala/identity-service/internal"
	"github.com/frahmantamala/identity-service/pkg/logger"
	"github.com/go-chi/chi"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteAppError renders err as {"error": {...}} with its status code.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, err *internal.AppError) {
	status, body := err.ToHTTPResponse()
	if status >= http.StatusInternalServerError {
		h.Logger.Error("http error", "status", status, "error", err.GetDetailedMessage())
	} else {
		h.Logger.Warn("http error", "status", status, "code", err.Code, "message", err.Message)
	}
	h.WriteJSON(w, status, body)
}

// HandleServiceError writes err, falling back to a 500 for errors that are not
// AppErrors.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteAppError(w, appErr)
		return
	}
	h.WriteAppError(w, internal.NewInternalError("internal server error", err))
}

// DecodeJSON reads the request body into dst. Unknown fields are ignored.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) *internal.AppError {
	if r.Body == nil || r.Body == http.NoBody {
		return internal.NewValidationError("request body is required", internal.ErrCodeInvalidRequest)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		var sizeErr *http.MaxBytesError
		switch {
		case errors.As(err, &sizeErr):
			return internal.NewBodyTooLargeError(sizeErr.Limit)
		case errors.As(err, &typeErr):
			return internal.NewValidationFieldError(typeErr.Field, "invalid type for field "+typeErr.Field, internal.ErrCodeInvalidRequest)
		case errors.As(err, &syntaxErr):
			return internal.NewValidationError("malformed JSON body", internal.ErrCodeInvalidRequest)
		default:
			return internal.NewValidationError("invalid request body: "+err.Error(), internal.ErrCodeInvalidRequest)
		}
	}
	return nil
}

// PathParam returns the decoded value of a chi URL parameter. chi matches on
// the escaped path whenever the request carries one, so the captured segment
// may still hold percent escapes such as %2F.
func PathParam(r *http.Request, key string) (string, *internal.AppError) {
	raw := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return raw, nil
	}
	value, err := url.PathUnescape(raw)
	if err != nil {
		return "", internal.NewValidationFieldError(key, "invalid escape in "+key, internal.ErrCodeInvalidRequest)
	}
	return value, nil
}
