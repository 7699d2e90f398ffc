package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassModel maps the classes table. Unique on (name, grade, session).
type ClassModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string         `gorm:"size:100;not null;uniqueIndex:uq_class_name_grade_session" json:"name" validate:"required,min=1,max=100"`
	Grade          int            `gorm:"not null;uniqueIndex:uq_class_name_grade_session" json:"grade" validate:"required,min=1,max=12"`
	SessionID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_class_name_grade_session;index" json:"session_id" validate:"required"`
	Capacity       int            `gorm:"not null;default:40" json:"capacity" validate:"omitempty,min=1"`
	ClassTeacherID *uuid.UUID     `gorm:"type:uuid" json:"class_teacher_id,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }
