package auth

import (
	"context"

	"github.com/frahmantamala/identity-service/internal/user"
)

// Credential is the part of a user record a login is checked against.
type Credential struct {
	UID            string
	Username       string
	UserType       user.UserType
	PasswordDigest string
	Disabled       bool
}

// Principal is the caller once a login succeeded.
type Principal struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
}

// RepositoryAPI returns every record carrying username, oldest first.
type RepositoryAPI interface {
	FindCredentials(ctx context.Context, username string) ([]Credential, error)
}

type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO) (*Principal, error)
}
