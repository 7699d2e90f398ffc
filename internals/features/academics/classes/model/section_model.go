package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SectionModel maps the sections table. Unique on (name, class).
type SectionModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string         `gorm:"size:50;not null;uniqueIndex:uq_section_name_class" json:"name" validate:"required,min=1,max=50"`
	ClassID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_section_name_class;index" json:"class_id" validate:"required"`
	Capacity  int            `gorm:"not null;default:40" json:"capacity" validate:"omitempty,min=1"`
	Room      *string        `gorm:"size:50" json:"room,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SectionModel) TableName() string { return "sections" }
