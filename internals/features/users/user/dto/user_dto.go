// file: internals/features/users/user/dto/user_dto.go
package dto

import (
	"strings"
	"time"

	userModel "sekolahku_backend/internals/features/users/user/model"
)

type CreateUserRequest struct {
	UserName string  `json:"user_name" validate:"required,min=3,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role" validate:"required,oneof=admin teacher student parent"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	Address  *string `json:"address" validate:"omitempty"`
}

type UpdateUserRequest struct {
	UserName *string `json:"user_name" validate:"omitempty,min=3,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin teacher student parent"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	Address  *string `json:"address" validate:"omitempty"`
	IsActive *bool   `json:"is_active" validate:"omitempty"`
}

// Apply copies the set fields onto the model.
func (r UpdateUserRequest) Apply(u *userModel.UserModel) {
	if r.UserName != nil {
		u.UserName = strings.TrimSpace(*r.UserName)
	}
	if r.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	if r.Role != nil {
		u.Role = *r.Role
	}
	if r.Phone != nil {
		u.Phone = r.Phone
	}
	if r.Address != nil {
		u.Address = r.Address
	}
	if r.IsActive != nil {
		u.IsActive = *r.IsActive
	}
}

type UserResponse struct {
	ID           string    `json:"id"`
	UserName     string    `json:"user_name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Phone        *string   `json:"phone,omitempty"`
	Address      *string   `json:"address,omitempty"`
	ProfileImage *string   `json:"profile_image,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromUserModel(u userModel.UserModel) UserResponse {
	return UserResponse{
		ID:           u.ID.String(),
		UserName:     u.UserName,
		Email:        u.Email,
		Role:         u.Role,
		Phone:        u.Phone,
		Address:      u.Address,
		ProfileImage: u.ProfileImage,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

func FromUserModels(us []userModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(us))
	for _, u := range us {
		out = append(out, FromUserModel(u))
	}
	return out
}
