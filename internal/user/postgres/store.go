package postgres

import (
	"context"

	"github.com/frahmantamala/identity-service/internal/user"
	"gorm.io/gorm"
)

// Store hands out repositories bound to a single transaction.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// RunInTx commits when fn returns nil and rolls back on error or panic.
func (s *Store) RunInTx(ctx context.Context, fn func(users user.UserRepository, companies user.CompanyRepository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUserRepository(tx), NewCompanyRepository(tx))
	})
}
