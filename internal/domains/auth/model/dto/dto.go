package dto

import (
	"rental/infras/jwt"
	userModel "rental/internal/domains/user/model"
	userDto "rental/internal/domains/user/model/dto"
	"rental/shared/constant"
	gModel "rental/shared/model"
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email       string  `json:"email"                  validate:"required,email"`
	Password    string  `json:"password"               validate:"required,min=8"`
	FullName    *string `json:"full_name,omitempty"    validate:"omitempty,min=2,max=100"`
	PhoneNumber string  `json:"phone_number,omitempty"`
}

// ToUserModel opens an owner account. phoneNumber is already normalized, empty when none was given.
func (r *RegisterRequest) ToUserModel(createdBy, hashedPassword, phoneNumber string) userModel.User {
	user := userModel.User{
		ID:       uuid.NewString(),
		Email:    r.Email,
		Password: hashedPassword,
		Level:    constant.RoleUser,
		FullName: r.FullName,
		Active:   true,
		Metadata: gModel.NewMetadata(createdBy),
	}

	if phoneNumber != "" {
		user.PhoneNumber = &phoneNumber
	}

	return user
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

// Tokens is the token part shared by login and refresh responses.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (t *Tokens) FromTokenPair(pair *jwt.TokenPair) {
	*t = Tokens{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}
}

type LoginResponse struct {
	Tokens
	User userDto.UserResponse `json:"user"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	Tokens
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
