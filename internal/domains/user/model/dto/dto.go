package dto

import (
	"rental/internal/domains/user/model"
	"rental/shared"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	gModel "rental/shared/model"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email        string  `json:"email"                   validate:"required,email"`
	Password     string  `json:"password"                validate:"required,min=8"`
	Level        string  `json:"level"                   validate:"omitempty,oneof=superadmin admin user"`
	FullName     *string `json:"full_name,omitempty"     validate:"omitempty,min=2,max=100"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
	IsVerified   *bool   `json:"is_verified,omitempty"`
}

// ToModel builds an active account. Level falls back to an owner account when left empty.
func (r *CreateUserRequest) ToModel(createdBy string, hashedPassword string) model.User {
	user := model.User{
		ID:           uuid.NewString(),
		Email:        r.Email,
		Password:     hashedPassword,
		Level:        constant.RoleUser,
		FullName:     r.FullName,
		PhoneNumber:  r.PhoneNumber,
		ProfileImage: r.ProfileImage,
		Active:       true,
		Metadata:     gModel.NewMetadata(createdBy),
	}

	if r.Level != "" {
		user.Level = r.Level
	}

	if r.IsVerified != nil {
		user.IsVerified = *r.IsVerified
	}

	return user
}

type UserResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Level        string  `json:"level"`
	DisplayName  string  `json:"display_name"`
	FullName     *string `json:"full_name,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
	IsVerified   bool    `json:"is_verified"`
	LastLogin    *string `json:"last_login,omitempty"`
	Active       bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	*r = UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Level:        user.Level,
		DisplayName:  user.DisplayName(),
		FullName:     user.FullName,
		PhoneNumber:  user.PhoneNumber,
		ProfileImage: user.ProfileImage,
		IsVerified:   user.IsVerified,
		LastLogin:    user.LastLogin,
		Active:       user.Active,
	}

	r.Metadata.FromModel(user.Metadata)
}

type UpdateUserRequest struct {
	Level        *string `db:"level"         json:"level,omitempty"         validate:"omitempty,oneof=superadmin admin user"`
	FullName     *string `db:"full_name"     json:"full_name,omitempty"     validate:"omitempty,min=2,max=100"`
	PhoneNumber  *string `db:"phone_number"  json:"phone_number,omitempty"`
	ProfileImage *string `db:"profile_image" json:"profile_image,omitempty"`
	IsVerified   *bool   `db:"is_verified"   json:"is_verified,omitempty"`
	Active       *bool   `db:"active"        json:"active,omitempty"`
}

type UpdateProfileRequest struct {
	FullName     *string `db:"full_name"     json:"full_name,omitempty"     validate:"omitempty,min=2,max=100"`
	PhoneNumber  *string `db:"phone_number"  json:"phone_number,omitempty"`
	ProfileImage *string `db:"profile_image" json:"profile_image,omitempty"`
}

func (r UpdateProfileRequest) ToUpdateUserRequest() UpdateUserRequest {
	return UpdateUserRequest{
		FullName:     r.FullName,
		PhoneNumber:  r.PhoneNumber,
		ProfileImage: r.ProfileImage,
	}
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(users []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Users = make([]UserResponse, 0, len(users))

	for _, user := range users {
		var res UserResponse
		res.FromModel(user)

		r.Users = append(r.Users, res)
	}
}
