package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudyMaterialModel maps the study_materials table: one uploaded file
// shared with a class for a subject.
type StudyMaterialModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description *string        `gorm:"size:500" json:"description,omitempty"`
	ClassID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"class_id"`
	SubjectID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"subject_id"`
	FileName    string         `gorm:"size:255;not null" json:"file_name"`
	FilePath    string         `gorm:"size:255;not null" json:"file_path"`
	MimeType    string         `gorm:"size:100;not null" json:"mime_type"`
	FileSize    int64          `gorm:"not null" json:"file_size"`
	UploadedBy  uuid.UUID      `gorm:"type:uuid;not null" json:"uploaded_by"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (StudyMaterialModel) TableName() string { return "study_materials" }
