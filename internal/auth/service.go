package auth

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/identity-service/internal"
	"github.com/frahmantamala/identity-service/internal/credential"
	"github.com/frahmantamala/identity-service/internal/user"
)

type Service struct {
	repo   RepositoryAPI
	hasher credential.Hasher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, hasher credential.Hasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

// Authenticate accepts the first record with a matching username whose digest
// verifies and whose user type is admin. Every other outcome is
// ErrInvalidCredentials, except a failing store.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*Principal, error) {
	if !dto.Validate() {
		return nil, internal.ErrInvalidCredentials
	}

	candidates, err := s.repo.FindCredentials(ctx, dto.Username)
	if err != nil {
		s.logger.Error("failed to load credentials", "username", dto.Username, "error", err)
		return nil, internal.NewInternalError("failed to load credentials", err)
	}

	for _, c := range candidates {
		if c.UserType != user.UserTypeAdmin {
			continue
		}
		if !s.hasher.Verify(c.PasswordDigest, dto.Password) {
			continue
		}
		s.logger.Info("login accepted", "uid", c.UID)
		return &Principal{UID: c.UID, Username: c.Username}, nil
	}

	s.logger.Warn("login rejected", "username", dto.Username, "candidates", len(candidates))
	return nil, internal.ErrInvalidCredentials
}
