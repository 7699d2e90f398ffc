package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExamStatus string

const (
	ExamStatusScheduled ExamStatus = "Scheduled"
	ExamStatusOngoing   ExamStatus = "Ongoing"
	ExamStatusCompleted ExamStatus = "Completed"
	ExamStatusCancelled ExamStatus = "Cancelled"
)

// ExamTypeModel maps the exam_types table (Unit Test, Mid Term, Final...).
type ExamTypeModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string         `gorm:"size:50;not null;uniqueIndex" json:"name" validate:"required,min=1,max=50"`
	Description *string        `gorm:"size:255" json:"description,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ExamTypeModel) TableName() string { return "exam_types" }

// ExamModel maps the exams table. StartTime and EndTime are wall-clock
// strings in HH:MM; two exams of the same class on the same date must
// not overlap. Each exam carries its own total and passing marks, so
// an exam may be graded harder or softer than its subject's defaults.
type ExamModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string         `gorm:"size:100;not null" json:"name" validate:"required,min=1,max=100"`
	ExamTypeID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"exam_type_id"`
	ClassID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"class_id"`
	SectionID    *uuid.UUID     `gorm:"type:uuid;index" json:"section_id,omitempty"`
	SubjectID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"subject_id"`
	SessionID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"session_id"`
	Date         time.Time      `gorm:"type:date;not null;index" json:"date"`
	StartTime    string         `gorm:"size:5;not null" json:"start_time"`
	EndTime      string         `gorm:"size:5;not null" json:"end_time"`
	TotalMarks   int            `gorm:"not null;default:100" json:"total_marks"`
	PassingMarks int            `gorm:"not null;default:35" json:"passing_marks"`
	RoomNumber   *string        `gorm:"size:20" json:"room_number,omitempty"`
	Status       ExamStatus     `gorm:"type:varchar(16);not null;default:'Scheduled'" json:"status"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ExamModel) TableName() string { return "exams" }

// ExamMarkModel maps the exam_marks table. One row per student per exam;
// the derived columns (percentage, grade, is_passed) are recomputed on
// every write so they never drift from the raw marks.
type ExamMarkModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ExamID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_mark_exam_student" json:"exam_id"`
	StudentID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_mark_exam_student;index" json:"student_id"`
	MarksObtained float64        `gorm:"not null;default:0" json:"marks_obtained"`
	IsAbsent      bool           `gorm:"not null;default:false" json:"is_absent"`
	Percentage    int            `gorm:"not null;default:0" json:"percentage"`
	Grade         string         `gorm:"size:3;not null;default:'F'" json:"grade"`
	IsPassed      bool           `gorm:"not null;default:false" json:"is_passed"`
	Remarks       *string        `gorm:"size:255" json:"remarks,omitempty"`
	EnteredBy     uuid.UUID      `gorm:"type:uuid;not null" json:"entered_by"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ExamMarkModel) TableName() string { return "exam_marks" }
