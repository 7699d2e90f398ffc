package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type SubjectType string

const (
	SubjectTypeCore     SubjectType = "Core"
	SubjectTypeElective SubjectType = "Elective"
	SubjectTypeOptional SubjectType = "Optional"
)

// SubjectModel maps the subjects table. Code is unique per session;
// passing marks must stay below total marks.
type SubjectModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string         `gorm:"size:100;not null" json:"name" validate:"required,min=1,max=100"`
	Code         string         `gorm:"size:20;not null;uniqueIndex:uq_subject_code_session" json:"code" validate:"required,min=1,max=20"`
	SessionID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_subject_code_session;index" json:"session_id" validate:"required"`
	Type         SubjectType    `gorm:"type:varchar(16);not null;default:'Core'" json:"type" validate:"omitempty,oneof=Core Elective Optional"`
	TotalMarks   int            `gorm:"not null;default:100" json:"total_marks" validate:"omitempty,min=1"`
	PassingMarks int            `gorm:"not null;default:35" json:"passing_marks" validate:"omitempty,min=0"`
	TeacherID    *uuid.UUID     `gorm:"type:uuid" json:"teacher_id,omitempty"`
	ClassIDs     pq.StringArray `gorm:"type:text[]" json:"class_ids"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SubjectModel) TableName() string { return "subjects" }
