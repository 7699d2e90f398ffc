package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLate    AttendanceStatus = "Late"
	AttendanceExcused AttendanceStatus = "Excused"
)

func IsValidAttendanceStatus(s AttendanceStatus) bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

// AttendanceModel maps the attendances table: one row per student per
// calendar date.
type AttendanceModel struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_student_date;index" json:"student_id"`
	ClassID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"class_id"`
	SectionID *uuid.UUID       `gorm:"type:uuid;index" json:"section_id,omitempty"`
	SessionID uuid.UUID        `gorm:"type:uuid;not null;index" json:"session_id"`
	Date      time.Time        `gorm:"type:date;not null;uniqueIndex:uq_attendance_student_date;index" json:"date"`
	Status    AttendanceStatus `gorm:"type:varchar(10);not null" json:"status"`
	Remarks   *string          `gorm:"size:255" json:"remarks,omitempty"`
	MarkedBy  uuid.UUID        `gorm:"type:uuid;not null" json:"marked_by"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"deleted_at,omitempty"`
}

func (AttendanceModel) TableName() string { return "attendances" }
