package user

import (
	"errors"
	"time"

	"github.com/frahmantamala/identity-service/internal"
	"github.com/frahmantamala/identity-service/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/identity-service/internal/core/datamodel/user"
)

type UserType int

const (
	UserTypeInstitute UserType = 1
	UserTypeAdmin     UserType = 2
	UserTypeStandard  UserType = 3
)

func (t UserType) String() string {
	switch t {
	case UserTypeInstitute:
		return "institute"
	case UserTypeAdmin:
		return "admin"
	case UserTypeStandard:
		return "standard"
	default:
		return "unknown"
	}
}

const (
	// TimestampLayout is the wire format of lastEntryAt.
	TimestampLayout = "2006-01-02 15:04:05"

	MaxUIDLength         = 36
	MaxNameLength        = 50
	MaxUsernameLength    = 50
	MaxPasswordLength    = 100
	MaxCompanyNameLength = 255
)

// acceptedTimestampLayouts lists what lastEntryAt may be sent as.
var acceptedTimestampLayouts = []string{TimestampLayout, time.RFC3339}

type User struct {
	UID            string
	UserType       UserType
	CreatedAt      int64
	LastEntryAt    time.Time
	PasswordDigest string
	Disabled       bool
	FirstName      string
	LastName       string
	Username       string
}

// UserWithCompanies is the read model returned to callers.
type UserWithCompanies struct {
	User      *User
	Companies []string
}

var ErrNotFound = errors.New("user not found")

// DefaultUsername is used whenever no username was given.
func DefaultUsername(firstName, lastName string) string {
	return firstName + " " + lastName
}

// Validate checks every constrained field of a complete record.
func (u *User) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("uid", u.UID).Required().MaxLength(MaxUIDLength)
	v.Field("userType", int64(u.UserType)).
		OneOfInt(internal.ErrCodeInvalidUserType, int64(UserTypeInstitute), int64(UserTypeAdmin), int64(UserTypeStandard))
	v.Field("createdAt", u.CreatedAt).MinInt(0, internal.ErrCodeInvalidTimestamp)
	v.Field("firstName", u.FirstName).MaxLength(MaxNameLength)
	v.Field("lastName", u.LastName).MaxLength(MaxNameLength)
	v.Field("username", u.Username).MaxLength(MaxUsernameLength)
	v.Field("passwordDigest", u.PasswordDigest).Required()
	return v.Validate()
}

// Clone returns a copy that can be changed without touching u.
func (u *User) Clone() *User {
	c := *u
	return &c
}

func ParseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range acceptedTimestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC().Truncate(time.Second), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimestampLayout)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		UID:            u.UID,
		UserType:       int(u.UserType),
		CreatedUnix:    u.CreatedAt,
		LastEntryAt:    u.LastEntryAt,
		PasswordDigest: u.PasswordDigest,
		Disabled:       boolToInt(u.Disabled),
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Username:       u.Username,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		UID:            u.UID,
		UserType:       UserType(u.UserType),
		CreatedAt:      u.CreatedUnix,
		LastEntryAt:    u.LastEntryAt.UTC(),
		PasswordDigest: u.PasswordDigest,
		Disabled:       u.Disabled != 0,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Username:       u.Username,
	}
}

func FromDataModelSlice(users []*userDatamodel.User) []*User {
	result := make([]*User, len(users))
	for i, u := range users {
		result[i] = FromDataModel(u)
	}
	return result
}
