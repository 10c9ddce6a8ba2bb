package company

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/identity-service/internal"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetDirectory(ctx context.Context) ([]CompanyResponse, error) {
	companies, err := s.repo.Directory(ctx)
	if err != nil {
		s.logger.Error("failed to load company directory", "error", err)
		return nil, internal.NewInternalError("failed to load companies", err)
	}

	responses := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		responses[i] = c.ToResponse()
	}
	return responses, nil
}

// GetUsers lists the uids associated with name. An unknown name is a not
// found error rather than an empty list.
func (s *Service) GetUsers(ctx context.Context, name string) (*CompanyUsersResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, internal.NewValidationFieldError("name", "company name is required", internal.ErrCodeValidationFailed)
	}

	uids, err := s.repo.UsersOf(ctx, name)
	if err != nil {
		s.logger.Error("failed to load company users", "company", name, "error", err)
		return nil, internal.NewInternalError("failed to load company users", err)
	}
	if len(uids) == 0 {
		return nil, internal.NewNotFoundError("Company not found", internal.ErrCodeCompanyNotFound)
	}

	return &CompanyUsersResponse{Name: name, UIDs: uids}, nil
}
