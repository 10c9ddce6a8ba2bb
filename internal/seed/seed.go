// Package seed loads the demo data set used in development.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/identity-service/internal/user"
	"github.com/jmoiron/sqlx"
)

type Creator interface {
	CreateUser(ctx context.Context, dto user.CreateUserDTO) (*user.UserWithCompanies, error)
}

func demo(userType user.UserType, first, last, password, username string, companies ...string) user.CreateUserDTO {
	t := int(userType)
	return user.CreateUserDTO{
		UserType:  &t,
		Password:  password,
		FirstName: first,
		LastName:  last,
		Username:  username,
		Companies: companies,
	}
}

// DemoUsers is one admin (admin_demo / admin_demo), three institutes and a
// set of standard users spread over companies 001 and 002. user3 appears
// twice on purpose: usernames are not unique.
func DemoUsers() []user.CreateUserDTO {
	return []user.CreateUserDTO{
		demo(user.UserTypeAdmin, "admin", "demo", "admin_demo", "admin_demo", "001", "002"),
		demo(user.UserTypeInstitute, "", "", "user4", "001", "001", "002"),
		demo(user.UserTypeStandard, "John", "Doe", "user1", "user1", "001", "002"),
		demo(user.UserTypeStandard, "Jane", "Smith", "user2", "user2", "001"),
		demo(user.UserTypeStandard, "Mike", "Johnson", "user3", "user3", "001"),
		demo(user.UserTypeInstitute, "", "", "user4", "002", "001"),
		demo(user.UserTypeInstitute, "", "", "user4", "003", "001"),
		demo(user.UserTypeStandard, "Emily", "Davis", "user4", "user4", "001"),
		demo(user.UserTypeStandard, "Chris", "Miller", "user5", "user5", "001"),
		demo(user.UserTypeStandard, "Amanda", "White", "user6", "user6", "001"),
		demo(user.UserTypeStandard, "Tom", "Brown", "user7", "user7", "001"),
		demo(user.UserTypeStandard, "Sophie", "Wilson", "user8", "user8", "001"),
		demo(user.UserTypeStandard, "David", "Taylor", "user9", "user9", "001"),
		demo(user.UserTypeStandard, "Rachel", "Harris", "user10", "user10", "001"),
		demo(user.UserTypeStandard, "Mike", "Johnson", "user3", "user3", "001"),
	}
}

// Clear empties both tables in one transaction, associations first.
func Clear(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"user_company", "users"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// Run creates every user through creator and stops at the first failure.
func Run(ctx context.Context, creator Creator, users []user.CreateUserDTO, logger *slog.Logger) (int, error) {
	for i, dto := range users {
		created, err := creator.CreateUser(ctx, dto)
		if err != nil {
			return i, fmt.Errorf("seed user %q: %w", dto.Username, err)
		}
		logger.Info("seeded user",
			"uid", created.User.UID,
			"username", created.User.Username,
			"user_type", created.User.UserType.String(),
			"companies", created.Companies)
	}
	return len(users), nil
}
