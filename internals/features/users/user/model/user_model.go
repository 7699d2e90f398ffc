package model

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
)

// Validator instance
var validate = validator.New()

// UserModel maps the users table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName     string    `gorm:"size:100;not null" json:"user_name" validate:"required,min=3,max=100"`
	Email        string    `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password     string    `gorm:"not null" json:"-" validate:"required,min=8"`
	Role         string    `gorm:"type:varchar(20);not null;default:'student'" json:"role" validate:"required,oneof=admin teacher student parent"`
	Phone        *string   `gorm:"size:20" json:"phone,omitempty"`
	Address      *string   `gorm:"type:text" json:"address,omitempty"`
	ProfileImage *string   `gorm:"type:text" json:"profile_image,omitempty"`
	GoogleID     *string   `gorm:"size:255;unique" json:"google_id,omitempty"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string { return "users" }

// SetDefaultValues fills defaults before validation.
func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = constants.RoleStudent
	}
}

// Validate checks field constraints.
func (u *UserModel) Validate() error {
	u.SetDefaultValues()
	return validate.Struct(u)
}
