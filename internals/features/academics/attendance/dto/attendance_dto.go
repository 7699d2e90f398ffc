package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/academics/attendance/model"
)

/* =======================================================
   REQUESTS
======================================================= */

type AttendanceEntry struct {
	StudentID string  `json:"student_id" validate:"required,uuid"`
	Status    string  `json:"status" validate:"required,oneof=Present Absent Late Excused"`
	Remarks   *string `json:"remarks" validate:"omitempty,max=255"`
}

// MarkAttendanceRequest records a whole class register for one date.
type MarkAttendanceRequest struct {
	ClassID   string            `json:"class_id" validate:"required,uuid"`
	SectionID *string           `json:"section_id" validate:"omitempty,uuid"`
	SessionID string            `json:"session_id" validate:"required,uuid"`
	Date      string            `json:"date" validate:"required,datetime=2006-01-02"`
	Entries   []AttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

type UpdateAttendanceRequest struct {
	Status  string  `json:"status" validate:"required,oneof=Present Absent Late Excused"`
	Remarks *string `json:"remarks" validate:"omitempty,max=255"`
}

/* =======================================================
   RESPONSES
======================================================= */

type AttendanceResponse struct {
	ID          uuid.UUID  `json:"id"`
	StudentID   uuid.UUID  `json:"student_id"`
	StudentName string     `json:"student_name,omitempty"`
	ClassID     uuid.UUID  `json:"class_id"`
	SectionID   *uuid.UUID `json:"section_id,omitempty"`
	SessionID   uuid.UUID  `json:"session_id"`
	Date        string     `json:"date"`
	Status      string     `json:"status"`
	Remarks     *string    `json:"remarks,omitempty"`
	MarkedBy    uuid.UUID  `json:"marked_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

func FromAttendanceModel(m *model.AttendanceModel) AttendanceResponse {
	return AttendanceResponse{
		ID:        m.ID,
		StudentID: m.StudentID,
		ClassID:   m.ClassID,
		SectionID: m.SectionID,
		SessionID: m.SessionID,
		Date:      m.Date.Format("2006-01-02"),
		Status:    string(m.Status),
		Remarks:   m.Remarks,
		MarkedBy:  m.MarkedBy,
		CreatedAt: m.CreatedAt,
	}
}

// StudentPercentageResponse is the per-student figure (Present only).
type StudentPercentageResponse struct {
	StudentID  uuid.UUID `json:"student_id"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to,omitempty"`
	Present    int       `json:"present"`
	Absent     int       `json:"absent"`
	Late       int       `json:"late"`
	Excused    int       `json:"excused"`
	TotalDays  int       `json:"total_days"`
	Percentage float64   `json:"percentage"`
}

// ClassSummaryRow is one student's line of the class summary
// (Present, Late and Excused all count as attended).
type ClassSummaryRow struct {
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name,omitempty"`
	Present     int       `json:"present"`
	Absent      int       `json:"absent"`
	Late        int       `json:"late"`
	Excused     int       `json:"excused"`
	TotalDays   int       `json:"total_days"`
	Percentage  float64   `json:"percentage"`
}

type ClassSummaryResponse struct {
	ClassID      uuid.UUID         `json:"class_id"`
	From         string            `json:"from,omitempty"`
	To           string            `json:"to,omitempty"`
	Students     []ClassSummaryRow `json:"students"`
	ClassAverage float64           `json:"class_average"`
}
