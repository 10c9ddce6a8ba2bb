package postgres

import (
	"context"
	"errors"
	"fmt"

	userDatamodel "github.com/frahmantamala/identity-service/internal/core/datamodel/user"
	"github.com/frahmantamala/identity-service/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *userDatamodel.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("insert user %s: %w", u.UID, err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, uid string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("select user %s: %w", uid, err)
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.WithContext(ctx).Order("username ASC").Order("uid ASC").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	return users, nil
}

// Update writes every mutable column of u, zero values included.
func (r *UserRepository) Update(ctx context.Context, u *userDatamodel.User) error {
	err := r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("uid = ?", u.UID).
		Updates(map[string]interface{}{
			"user_type":       u.UserType,
			"created_at":      u.CreatedUnix,
			"last_entry_at":   u.LastEntryAt,
			"password_digest": u.PasswordDigest,
			"disabled":        u.Disabled,
			"first_name":      u.FirstName,
			"last_name":       u.LastName,
			"username":        u.Username,
		}).Error
	if err != nil {
		return fmt.Errorf("update user %s: %w", u.UID, err)
	}
	return nil
}
