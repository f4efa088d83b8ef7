package model

import (
	"rental/shared/constant"
	"rental/shared/model"
	"strings"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldLevel        = "level"
	FieldFullName     = "full_name"
	FieldPhoneNumber  = "phone_number"
	FieldProfileImage = "profile_image"
	FieldIsVerified   = "is_verified"
	FieldLastLogin    = "last_login"
	FieldActive       = "active"
)

// ErrEmailTaken is the message for a second account on the same email.
const ErrEmailTaken = "email already registered"

// SortableFields are the columns a client may order listings by.
var SortableFields = []string{
	TableName + "." + FieldEmail,
	TableName + "." + FieldFullName,
	TableName + "." + FieldLevel,
	TableName + "." + FieldLastLogin,
	TableName + "." + constant.FieldCreatedAt,
}

type User struct {
	ID           string  `db:"id"`
	Email        string  `db:"email"`
	Password     string  `db:"password"`
	Level        string  `db:"level"`
	FullName     *string `db:"full_name"`
	PhoneNumber  *string `db:"phone_number"`
	ProfileImage *string `db:"profile_image"`
	IsVerified   bool    `db:"is_verified"`
	LastLogin    *string `db:"last_login"`
	Active       bool    `db:"active"`
	model.Metadata
}

// DisplayName is the full name when set, otherwise the local part of the email.
func (u User) DisplayName() string {
	if u.FullName != nil && strings.TrimSpace(*u.FullName) != "" {
		return strings.TrimSpace(*u.FullName)
	}

	local, _, _ := strings.Cut(u.Email, "@")

	return local
}
