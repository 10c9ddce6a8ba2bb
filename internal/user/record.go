package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/frahmantamala/identity-service/internal"
	"github.com/google/uuid"
)

// PasswordHasher derives the stored digest from a plaintext password.
type PasswordHasher interface {
	Hash(secret string) (string, error)
}

// NewUser builds a validated record and its company list from a create
// request, filling in defaults for anything omitted.
func NewUser(dto CreateUserDTO, hasher PasswordHasher, now time.Time) (*User, []string, error) {
	if appErr := dto.Validate(); appErr != nil {
		return nil, nil, appErr
	}

	u := &User{
		UID:       strings.TrimSpace(dto.UID),
		UserType:  UserTypeAdmin,
		CreatedAt: now.Unix(),
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Username:  dto.Username,
	}
	if u.UID == "" {
		u.UID = uuid.NewString()
	}
	if dto.UserType != nil {
		u.UserType = UserType(*dto.UserType)
	}
	if dto.CreatedAt != nil {
		u.CreatedAt = *dto.CreatedAt
	}
	if dto.Disabled != nil {
		u.Disabled = *dto.Disabled == 1
	}

	u.LastEntryAt = now.UTC().Truncate(time.Second)
	if dto.LastEntryAt != nil && *dto.LastEntryAt != "" {
		ts, err := ParseTimestamp(*dto.LastEntryAt)
		if err != nil {
			return nil, nil, internal.NewValidationFieldError("lastEntryAt", "lastEntryAt is not a valid timestamp", internal.ErrCodeInvalidTimestamp)
		}
		u.LastEntryAt = ts
	}

	derived := u.Username == ""
	if derived {
		u.Username = DefaultUsername(u.FirstName, u.LastName)
	}

	digest, err := hasher.Hash(dto.Password)
	if err != nil {
		return nil, nil, internal.NewInternalError("failed to hash password", err)
	}
	u.PasswordDigest = digest

	if appErr := validateRecord(u, derived); appErr != nil {
		return nil, nil, appErr
	}

	companies := make([]string, len(dto.Companies))
	copy(companies, dto.Companies)

	return u, companies, nil
}

// ApplyPatch overlays the fields present in p onto a copy of u and returns the
// validated result. u itself is left untouched. lastEntryAt only changes when
// the patch says so.
func ApplyPatch(u *User, p UserPatch, hasher PasswordHasher) (*User, error) {
	if appErr := p.Validate(); appErr != nil {
		return nil, appErr
	}

	merged := u.Clone()
	if p.UserType != nil {
		merged.UserType = UserType(*p.UserType)
	}
	if p.CreatedAt != nil {
		merged.CreatedAt = *p.CreatedAt
	}
	if p.LastEntryAt != nil {
		ts, err := ParseTimestamp(*p.LastEntryAt)
		if err != nil {
			return nil, internal.NewValidationFieldError("lastEntryAt", "lastEntryAt is not a valid timestamp", internal.ErrCodeInvalidTimestamp)
		}
		merged.LastEntryAt = ts
	}
	if p.Disabled != nil {
		merged.Disabled = *p.Disabled == 1
	}
	if p.FirstName != nil {
		merged.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		merged.LastName = *p.LastName
	}
	if p.Username != nil {
		merged.Username = *p.Username
	}
	derived := merged.Username == ""
	if derived {
		merged.Username = DefaultUsername(merged.FirstName, merged.LastName)
	}

	if appErr := validateRecord(merged, derived); appErr != nil {
		return nil, appErr
	}

	if p.Password != nil {
		digest, err := hasher.Hash(*p.Password)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		merged.PasswordDigest = digest
	}

	return merged, nil
}

// validateRecord runs u.Validate. When the username was filled in from the
// names, a length failure on it is reported as such.
func validateRecord(u *User, derivedUsername bool) *internal.AppError {
	appErr := u.Validate()
	if appErr == nil || !derivedUsername {
		return appErr
	}
	details, ok := appErr.Details.(internal.ValidationErrors)
	if !ok {
		return appErr
	}
	for i, e := range details.Errors {
		if e.Field == "username" && e.Code == string(internal.ErrCodeFieldTooLong) {
			details.Errors[i].Message = fmt.Sprintf(
				"username derived from firstName and lastName exceeds %d characters; send a shorter username",
				MaxUsernameLength)
		}
	}
	return appErr
}
