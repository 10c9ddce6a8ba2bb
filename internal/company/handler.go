package company

import (
	"context"
	"net/http"

	"github.com/frahmantamala/identity-service/internal"
	"github.com/frahmantamala/identity-service/internal/transport"
)

type ServiceAPI interface {
	GetDirectory(ctx context.Context) ([]CompanyResponse, error)
	GetUsers(ctx context.Context, name string) (*CompanyUsersResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetCompanies(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := internal.WithTimeout(r.Context(), 0)
	defer cancel()

	companies, err := h.Service.GetDirectory(ctx)
	if err != nil {
		h.Logger.Error("GetCompanies: failed to get companies", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, CompaniesResponse{
		Companies: companies,
	})
}

func (h *Handler) GetCompanyUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := internal.WithTimeout(r.Context(), 0)
	defer cancel()

	name, appErr := transport.PathParam(r, "name")
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	resp, err := h.Service.GetUsers(ctx, name)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
