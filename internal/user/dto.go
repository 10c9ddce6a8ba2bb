package user

import (
	"fmt"

	"github.com/frahmantamala/identity-service/internal"
	"github.com/frahmantamala/identity-service/internal/core/common/validation"
)

// CreateUserDTO is the body of POST /users. Omitted fields take their defaults.
type CreateUserDTO struct {
	UID         string   `json:"uid,omitempty"`
	UserType    *int     `json:"userType,omitempty"`
	CreatedAt   *int64   `json:"createdAt,omitempty"`
	LastEntryAt *string  `json:"lastEntryAt,omitempty"`
	Password    string   `json:"password"`
	Disabled    *int     `json:"disabled,omitempty"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Username    string   `json:"username,omitempty"`
	Companies   []string `json:"companies"`
}

// Validate checks the fields that have no room in the domain record: the
// plaintext password, the 0/1 encoding of disabled, the timestamp text and the
// company names.
func (d CreateUserDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("password", d.Password).Required().MaxLength(MaxPasswordLength)
	if d.Disabled != nil {
		v.Field("disabled", int64(*d.Disabled)).OneOfInt(internal.ErrCodeInvalidDisabled, 0, 1)
	}
	if d.LastEntryAt != nil && *d.LastEntryAt != "" {
		v.Field("lastEntryAt", *d.LastEntryAt).Layout(acceptedTimestampLayouts...)
	}
	for i, name := range d.Companies {
		field := fmt.Sprintf("companies[%d]", i)
		v.Field(field, name).Required().MaxLength(MaxCompanyNameLength)
	}
	return v.Validate()
}

// UserPatch is the body of PUT /users/{uid}. Only non-nil fields are applied;
// uid is never part of a patch.
type UserPatch struct {
	UserType    *int    `json:"userType,omitempty"`
	CreatedAt   *int64  `json:"createdAt,omitempty"`
	LastEntryAt *string `json:"lastEntryAt,omitempty"`
	Password    *string `json:"password,omitempty"`
	Disabled    *int    `json:"disabled,omitempty"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Username    *string `json:"username,omitempty"`
}

func (p UserPatch) Validate() *internal.AppError {
	v := validation.NewValidator()
	if p.Password != nil {
		v.Field("password", *p.Password).Required().MaxLength(MaxPasswordLength)
	}
	if p.Disabled != nil {
		v.Field("disabled", int64(*p.Disabled)).OneOfInt(internal.ErrCodeInvalidDisabled, 0, 1)
	}
	if p.LastEntryAt != nil {
		v.Field("lastEntryAt", *p.LastEntryAt).Layout(acceptedTimestampLayouts...)
	}
	return v.Validate()
}

// IsEmpty reports whether the patch carries no field at all.
func (p UserPatch) IsEmpty() bool {
	return len(p.FieldNames()) == 0
}

// FieldNames lists the wire names of the fields the patch sets.
func (p UserPatch) FieldNames() []string {
	var names []string
	if p.UserType != nil {
		names = append(names, "userType")
	}
	if p.CreatedAt != nil {
		names = append(names, "createdAt")
	}
	if p.LastEntryAt != nil {
		names = append(names, "lastEntryAt")
	}
	if p.Password != nil {
		names = append(names, "password")
	}
	if p.Disabled != nil {
		names = append(names, "disabled")
	}
	if p.FirstName != nil {
		names = append(names, "firstName")
	}
	if p.LastName != nil {
		names = append(names, "lastName")
	}
	if p.Username != nil {
		names = append(names, "username")
	}
	return names
}

// UserResponse is the wire shape of a user. The password digest is never sent.
type UserResponse struct {
	UID         string `json:"uid"`
	UserType    int    `json:"userType"`
	CreatedAt   int64  `json:"createdAt"`
	LastEntryAt string `json:"lastEntryAt"`
	Disabled    int    `json:"disabled"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Username    string `json:"username"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		UID:         u.UID,
		UserType:    int(u.UserType),
		CreatedAt:   u.CreatedAt,
		LastEntryAt: FormatTimestamp(u.LastEntryAt),
		Disabled:    boolToInt(u.Disabled),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Username:    u.Username,
	}
}

// ToResponse always renders companies as a list, even when empty.
func (uc *UserWithCompanies) ToResponse() UserWithCompaniesResponse {
	companies := uc.Companies
	if companies == nil {
		companies = []string{}
	}
	return UserWithCompaniesResponse{
		UserResponse: uc.User.ToResponse(),
		Companies:    companies,
	}
}

type UserWithCompaniesResponse struct {
	UserResponse
	Companies []string `json:"companies"`
}
