package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StudentStatus string

const (
	StudentStatusActive      StudentStatus = "Active"
	StudentStatusInactive    StudentStatus = "Inactive"
	StudentStatusGraduated   StudentStatus = "Graduated"
	StudentStatusTransferred StudentStatus = "Transferred"
	StudentStatusDropped     StudentStatus = "Dropped"
)

// StudentModel maps the students table. One student row per user account;
// AdmissionNumber is generated once at admission and never reused.
// ClassID and SectionID are nullable because deleting a class detaches
// its students instead of removing them.
type StudentModel struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	AdmissionNumber string         `gorm:"size:20;not null;uniqueIndex" json:"admission_number"`
	AdmissionDate   time.Time      `gorm:"not null" json:"admission_date"`
	RollNumber      *int           `json:"roll_number,omitempty"`
	ClassID         *uuid.UUID     `gorm:"type:uuid;index" json:"class_id,omitempty"`
	SectionID       *uuid.UUID     `gorm:"type:uuid;index" json:"section_id,omitempty"`
	SessionID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"session_id"`
	ParentID        *uuid.UUID     `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	DateOfBirth     *time.Time     `json:"date_of_birth,omitempty"`
	Gender          *string        `gorm:"size:10" json:"gender,omitempty"`
	BloodGroup      *string        `gorm:"size:5" json:"blood_group,omitempty"`
	Phone           *string        `gorm:"size:20" json:"phone,omitempty"`
	Address         *string        `gorm:"size:255" json:"address,omitempty"`
	Documents       datatypes.JSON `gorm:"type:jsonb" json:"documents,omitempty"`
	Status          StudentStatus  `gorm:"type:varchar(16);not null;default:'Active'" json:"status"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

var studentStatuses = map[StudentStatus]struct{}{
	StudentStatusActive:      {},
	StudentStatusInactive:    {},
	StudentStatusGraduated:   {},
	StudentStatusTransferred: {},
	StudentStatusDropped:     {},
}

func IsValidStudentStatus(s StudentStatus) bool {
	_, ok := studentStatuses[s]
	return ok
}

// StudentDocument is one entry of the Documents JSON column.
type StudentDocument struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mime_type"`
	Size       int64     `json:"size"`
	Path       string    `json:"path"`
	UploadedAt time.Time `json:"uploaded_at"`
}
