// file: internals/features/academics/classes/dto/class_dto.go
package dto

import (
	"github.com/google/uuid"

	classModel "sekolahku_backend/internals/features/academics/classes/model"
)

/* =========================================================
   Class
========================================================= */

type CreateClassRequest struct {
	Name           string     `json:"name" validate:"required,min=1,max=100"`
	Grade          int        `json:"grade" validate:"required,min=1,max=12"`
	SessionID      uuid.UUID  `json:"session_id" validate:"required"`
	Capacity       *int       `json:"capacity" validate:"omitempty,min=1"`
	ClassTeacherID *uuid.UUID `json:"class_teacher_id" validate:"omitempty"`
}

type UpdateClassRequest struct {
	Name           *string    `json:"name" validate:"omitempty,min=1,max=100"`
	Grade          *int       `json:"grade" validate:"omitempty,min=1,max=12"`
	Capacity       *int       `json:"capacity" validate:"omitempty,min=1"`
	ClassTeacherID *uuid.UUID `json:"class_teacher_id" validate:"omitempty"`
}

func (r UpdateClassRequest) Apply(m *classModel.ClassModel) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Grade != nil {
		m.Grade = *r.Grade
	}
	if r.Capacity != nil {
		m.Capacity = *r.Capacity
	}
	if r.ClassTeacherID != nil {
		m.ClassTeacherID = r.ClassTeacherID
	}
}

type ClassResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Grade          int     `json:"grade"`
	SessionID      string  `json:"session_id"`
	Capacity       int     `json:"capacity"`
	ClassTeacherID *string `json:"class_teacher_id,omitempty"`
	SectionCount   int64   `json:"section_count,omitempty"`
	StudentCount   int64   `json:"student_count,omitempty"`
}

func FromClassModel(m classModel.ClassModel) ClassResponse {
	resp := ClassResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		Grade:     m.Grade,
		SessionID: m.SessionID.String(),
		Capacity:  m.Capacity,
	}
	if m.ClassTeacherID != nil {
		s := m.ClassTeacherID.String()
		resp.ClassTeacherID = &s
	}
	return resp
}

func FromClassModels(ms []classModel.ClassModel) []ClassResponse {
	out := make([]ClassResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromClassModel(m))
	}
	return out
}

/* =========================================================
   Section
========================================================= */

type CreateSectionRequest struct {
	Name     string    `json:"name" validate:"required,min=1,max=50"`
	ClassID  uuid.UUID `json:"class_id" validate:"required"`
	Capacity *int      `json:"capacity" validate:"omitempty,min=1"`
	Room     *string   `json:"room" validate:"omitempty,max=50"`
}

type UpdateSectionRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=50"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=1"`
	Room     *string `json:"room" validate:"omitempty,max=50"`
}

func (r UpdateSectionRequest) Apply(m *classModel.SectionModel) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Capacity != nil {
		m.Capacity = *r.Capacity
	}
	if r.Room != nil {
		m.Room = r.Room
	}
}

type SectionResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ClassID  string  `json:"class_id"`
	Capacity int     `json:"capacity"`
	Room     *string `json:"room,omitempty"`
}

func FromSectionModel(m classModel.SectionModel) SectionResponse {
	return SectionResponse{
		ID:       m.ID.String(),
		Name:     m.Name,
		ClassID:  m.ClassID.String(),
		Capacity: m.Capacity,
		Room:     m.Room,
	}
}

func FromSectionModels(ms []classModel.SectionModel) []SectionResponse {
	out := make([]SectionResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromSectionModel(m))
	}
	return out
}
