package user

import "time"

// User maps a row of the users table.
type User struct {
	UID            string    `gorm:"column:uid;primaryKey;type:varchar(36)"`
	UserType       int       `gorm:"column:user_type;not null;default:2"`
	CreatedUnix    int64     `gorm:"column:created_at;not null"`
	LastEntryAt    time.Time `gorm:"column:last_entry_at"`
	PasswordDigest string    `gorm:"column:password_digest;type:varchar(100);not null"`
	Disabled       int       `gorm:"column:disabled;not null;default:0"`
	FirstName      string    `gorm:"column:first_name;type:varchar(50);not null"`
	LastName       string    `gorm:"column:last_name;type:varchar(50);not null"`
	Username       string    `gorm:"column:username;type:varchar(50);not null;index"`
}

func (User) TableName() string {
	return "users"
}

// UserCompany is one user to company association. The same pair may appear
// more than once.
type UserCompany struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	UserID      string `gorm:"column:user_id;type:varchar(36);not null;index"`
	CompanyName string `gorm:"column:company_name;type:varchar(255);not null"`
}

func (UserCompany) TableName() string {
	return "user_company"
}
