package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/academics/exams/model"
)

/* =======================================================
   EXAM TYPES
======================================================= */

type CreateExamTypeRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

type ExamTypeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromExamTypeModel(m *model.ExamTypeModel) ExamTypeResponse {
	return ExamTypeResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

/* =======================================================
   EXAMS
======================================================= */

type CreateExamRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=100"`
	ExamTypeID string  `json:"exam_type_id" validate:"required,uuid"`
	ClassID    string  `json:"class_id" validate:"required,uuid"`
	SectionID  *string `json:"section_id" validate:"omitempty,uuid"`
	SubjectID  string  `json:"subject_id" validate:"required,uuid"`
	SessionID  string  `json:"session_id" validate:"required,uuid"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string  `json:"start_time" validate:"required"`
	EndTime    string  `json:"end_time" validate:"required"`
	// Zero values fall back to the subject's defaults.
	TotalMarks   int     `json:"total_marks" validate:"omitempty,min=1"`
	PassingMarks int     `json:"passing_marks" validate:"omitempty,min=0"`
	RoomNumber   *string `json:"room_number" validate:"omitempty,max=20"`
}

type UpdateExamRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	Date         *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	TotalMarks   *int    `json:"total_marks" validate:"omitempty,min=1"`
	PassingMarks *int    `json:"passing_marks" validate:"omitempty,min=0"`
	RoomNumber   *string `json:"room_number" validate:"omitempty,max=20"`
	Status       *string `json:"status" validate:"omitempty,oneof=Scheduled Ongoing Completed Cancelled"`
}

type ExamResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	ExamTypeID   uuid.UUID  `json:"exam_type_id"`
	ExamType     string     `json:"exam_type,omitempty"`
	ClassID      uuid.UUID  `json:"class_id"`
	ClassName    string     `json:"class_name,omitempty"`
	SectionID    *uuid.UUID `json:"section_id,omitempty"`
	SubjectID    uuid.UUID  `json:"subject_id"`
	SubjectName  string     `json:"subject_name,omitempty"`
	SessionID    uuid.UUID  `json:"session_id"`
	Date         string     `json:"date"`
	StartTime    string     `json:"start_time"`
	EndTime      string     `json:"end_time"`
	TotalMarks   int        `json:"total_marks"`
	PassingMarks int        `json:"passing_marks"`
	RoomNumber   *string    `json:"room_number,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

func FromExamModel(m *model.ExamModel) ExamResponse {
	return ExamResponse{
		ID:           m.ID,
		Name:         m.Name,
		ExamTypeID:   m.ExamTypeID,
		ClassID:      m.ClassID,
		SectionID:    m.SectionID,
		SubjectID:    m.SubjectID,
		SessionID:    m.SessionID,
		Date:         m.Date.Format("2006-01-02"),
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		TotalMarks:   m.TotalMarks,
		PassingMarks: m.PassingMarks,
		RoomNumber:   m.RoomNumber,
		Status:       string(m.Status),
		CreatedAt:    m.CreatedAt,
	}
}

/* =======================================================
   MARKS
======================================================= */

type MarkEntry struct {
	StudentID     string  `json:"student_id" validate:"required,uuid"`
	MarksObtained float64 `json:"marks_obtained" validate:"min=0"`
	IsAbsent      bool    `json:"is_absent"`
	Remarks       *string `json:"remarks" validate:"omitempty,max=255"`
}

// BulkMarksRequest enters or corrects marks for many students of one
// exam in a single call.
type BulkMarksRequest struct {
	Marks []MarkEntry `json:"marks" validate:"required,min=1,dive"`
}

type MarkResponse struct {
	ID            uuid.UUID `json:"id"`
	ExamID        uuid.UUID `json:"exam_id"`
	StudentID     uuid.UUID `json:"student_id"`
	StudentName   string    `json:"student_name,omitempty"`
	MarksObtained float64   `json:"marks_obtained"`
	IsAbsent      bool      `json:"is_absent"`
	Percentage    int       `json:"percentage"`
	Grade         string    `json:"grade"`
	IsPassed      bool      `json:"is_passed"`
	Remarks       *string   `json:"remarks,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromMarkModel(m *model.ExamMarkModel) MarkResponse {
	return MarkResponse{
		ID:            m.ID,
		ExamID:        m.ExamID,
		StudentID:     m.StudentID,
		MarksObtained: m.MarksObtained,
		IsAbsent:      m.IsAbsent,
		Percentage:    m.Percentage,
		Grade:         m.Grade,
		IsPassed:      m.IsPassed,
		Remarks:       m.Remarks,
		UpdatedAt:     m.UpdatedAt,
	}
}
