package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TeacherStatus string

const (
	TeacherStatusActive   TeacherStatus = "Active"
	TeacherStatusInactive TeacherStatus = "Inactive"
	TeacherStatusResigned TeacherStatus = "Resigned"
)

// TeacherModel maps the teachers table. EmployeeID is generated once at
// hiring. AssignedClasses and AssignedSubjects carry the assignment
// JSON that drives the teacher's query scope.
type TeacherModel struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	EmployeeID       string         `gorm:"size:20;not null;uniqueIndex" json:"employee_id"`
	JoiningDate      time.Time      `gorm:"not null" json:"joining_date"`
	Qualification    *string        `gorm:"size:100" json:"qualification,omitempty"`
	ExperienceYears  *int           `json:"experience_years,omitempty"`
	Phone            *string        `gorm:"size:20" json:"phone,omitempty"`
	Address          *string        `gorm:"size:255" json:"address,omitempty"`
	AssignedClasses  datatypes.JSON `gorm:"type:jsonb" json:"assigned_classes,omitempty"`
	AssignedSubjects datatypes.JSON `gorm:"type:jsonb" json:"assigned_subjects,omitempty"`
	Status           TeacherStatus  `gorm:"type:varchar(16);not null;default:'Active'" json:"status"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (TeacherModel) TableName() string { return "teachers" }
