package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/identity-service/internal"
	userDatamodel "github.com/frahmantamala/identity-service/internal/core/datamodel/user"
	"github.com/frahmantamala/identity-service/internal/core/events"
)

// UserRepository is the user record store. GetByID returns ErrNotFound when
// the uid does not exist.
type UserRepository interface {
	Create(ctx context.Context, u *userDatamodel.User) error
	GetByID(ctx context.Context, uid string) (*userDatamodel.User, error)
	List(ctx context.Context) ([]*userDatamodel.User, error)
	Update(ctx context.Context, u *userDatamodel.User) error
}

// CompanyRepository is the user to company association store.
type CompanyRepository interface {
	Associate(ctx context.Context, uid string, companyNames []string) error
	CompaniesForUser(ctx context.Context, uid string) ([]string, error)
	CompaniesForAllUsers(ctx context.Context) (map[string][]string, error)
}

// Store runs fn inside one transaction. The repositories handed to fn are bound
// to that transaction; returning an error rolls everything back.
type Store interface {
	RunInTx(ctx context.Context, fn func(users UserRepository, companies CompanyRepository) error) error
}

type Service struct {
	store     Store
	hasher    PasswordHasher
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires the service. publisher may be nil.
func NewService(store Store, hasher PasswordHasher, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		hasher:    hasher,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the time source used for defaulted timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateUser inserts the user and its company associations atomically.
func (s *Service) CreateUser(ctx context.Context, dto CreateUserDTO) (*UserWithCompanies, error) {
	u, companies, err := NewUser(dto, s.hasher, s.now())
	if err != nil {
		s.logger.Warn("create user rejected", "error", err)
		return nil, err
	}

	err = s.store.RunInTx(ctx, func(users UserRepository, assoc CompanyRepository) error {
		if err := users.Create(ctx, ToDataModel(u)); err != nil {
			return err
		}
		return assoc.Associate(ctx, u.UID, companies)
	})
	if err != nil {
		s.logger.Error("failed to create user", "error", err, "uid", u.UID)
		return nil, internal.NewWriteError("Failed to create user", err)
	}

	s.logger.Info("user created",
		"uid", u.UID,
		"user_type", u.UserType.String(),
		"companies", len(companies))

	s.publish(ctx, events.NewUserCreatedEvent(u.UID, u.Username, int(u.UserType), companies))

	return &UserWithCompanies{User: u, Companies: companies}, nil
}

// GetUser returns one user with its companies.
func (s *Service) GetUser(ctx context.Context, uid string) (*UserWithCompanies, error) {
	var result *UserWithCompanies

	err := s.store.RunInTx(ctx, func(users UserRepository, assoc CompanyRepository) error {
		row, err := users.GetByID(ctx, uid)
		if err != nil {
			return err
		}
		companies, err := assoc.CompaniesForUser(ctx, uid)
		if err != nil {
			return err
		}
		result = &UserWithCompanies{User: FromDataModel(row), Companies: nonNil(companies)}
		return nil
	})
	if err != nil {
		return nil, s.readError("get user", uid, err)
	}

	return result, nil
}

// ListUsers returns every user, each with its companies. Associations are
// fetched with a single query for all users.
func (s *Service) ListUsers(ctx context.Context) ([]*UserWithCompanies, error) {
	var result []*UserWithCompanies

	err := s.store.RunInTx(ctx, func(users UserRepository, assoc CompanyRepository) error {
		rows, err := users.List(ctx)
		if err != nil {
			return err
		}
		byUser, err := assoc.CompaniesForAllUsers(ctx)
		if err != nil {
			return err
		}

		result = make([]*UserWithCompanies, 0, len(rows))
		for _, u := range FromDataModelSlice(rows) {
			result = append(result, &UserWithCompanies{User: u, Companies: nonNil(byUser[u.UID])})
		}
		return nil
	})
	if err != nil {
		return nil, s.readError("list users", "", err)
	}

	s.logger.Debug("listed users", "count", len(result))
	return result, nil
}

// UpdateUser merges patch onto the stored record. A missing uid or an invalid
// merged record aborts before anything is written.
func (s *Service) UpdateUser(ctx context.Context, uid string, patch UserPatch) (*User, error) {
	var updated *User

	err := s.store.RunInTx(ctx, func(users UserRepository, _ CompanyRepository) error {
		row, err := users.GetByID(ctx, uid)
		if err != nil {
			return err
		}
		existing := FromDataModel(row)

		if patch.IsEmpty() {
			updated = existing
			return nil
		}

		merged, err := ApplyPatch(existing, patch, s.hasher)
		if err != nil {
			return err
		}

		if err := users.Update(ctx, ToDataModel(merged)); err != nil {
			return internal.NewWriteError("Failed to update user", err)
		}

		fresh, err := users.GetByID(ctx, uid)
		if err != nil {
			return internal.NewWriteError("Failed to reload user", err)
		}
		updated = FromDataModel(fresh)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Info("update of unknown user", "uid", uid)
			return nil, internal.ErrUserNotFound
		}
		if appErr, ok := internal.IsAppError(err); ok {
			s.logger.Warn("update user rejected", "uid", uid, "error", appErr)
			return nil, appErr
		}
		s.logger.Error("failed to update user", "uid", uid, "error", err)
		return nil, internal.NewWriteError("Failed to update user", err)
	}

	if fields := patch.FieldNames(); len(fields) > 0 {
		s.logger.Info("user updated", "uid", uid, "fields", fields)
		s.publish(ctx, events.NewUserUpdatedEvent(uid, fields))
	}

	return updated, nil
}

func (s *Service) readError(op, uid string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return internal.ErrUserNotFound
	}
	s.logger.Error("failed to "+op, "uid", uid, "error", err)
	return internal.NewInternalError("Failed to "+op, err)
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}

func nonNil(companies []string) []string {
	if companies == nil {
		return []string{}
	}
	return companies
}
