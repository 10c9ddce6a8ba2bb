package postgres

import (
	"context"
	"fmt"

	"github.com/frahmantamala/identity-service/internal/auth"
	"github.com/frahmantamala/identity-service/internal/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

type credentialRow struct {
	UID            string `gorm:"column:uid"`
	Username       string `gorm:"column:username"`
	UserType       int    `gorm:"column:user_type"`
	PasswordDigest string `gorm:"column:password_digest"`
	Disabled       int    `gorm:"column:disabled"`
}

func (r *Repository) FindCredentials(ctx context.Context, username string) ([]auth.Credential, error) {
	query := `SELECT uid, username, user_type, password_digest, disabled
	          FROM users
	          WHERE username = ?
	          ORDER BY created_at, uid`

	var rows []credentialRow
	if err := r.db.WithContext(ctx).Raw(query, username).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("find credentials: %w", err)
	}

	creds := make([]auth.Credential, 0, len(rows))
	for _, row := range rows {
		creds = append(creds, auth.Credential{
			UID:            row.UID,
			Username:       row.Username,
			UserType:       user.UserType(row.UserType),
			PasswordDigest: row.PasswordDigest,
			Disabled:       row.Disabled != 0,
		})
	}
	return creds, nil
}
