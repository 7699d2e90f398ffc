package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"sekolahku_backend/internals/features/academics/subjects/model"
)

/* =======================================================
   REQUESTS
======================================================= */

type CreateSubjectRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=100"`
	Code         string   `json:"code" validate:"required,min=1,max=20"`
	SessionID    string   `json:"session_id" validate:"required,uuid"`
	Type         string   `json:"type" validate:"omitempty,oneof=Core Elective Optional"`
	TotalMarks   *int     `json:"total_marks" validate:"omitempty,min=1"`
	PassingMarks *int     `json:"passing_marks" validate:"omitempty,min=0"`
	TeacherID    *string  `json:"teacher_id" validate:"omitempty,uuid"`
	ClassIDs     []string `json:"class_ids" validate:"omitempty,dive,uuid"`
}

func (r *CreateSubjectRequest) ToModel() (*model.SubjectModel, error) {
	sessionID, err := uuid.Parse(r.SessionID)
	if err != nil {
		return nil, err
	}

	m := &model.SubjectModel{
		Name:         r.Name,
		Code:         r.Code,
		SessionID:    sessionID,
		Type:         model.SubjectTypeCore,
		TotalMarks:   100,
		PassingMarks: 35,
		ClassIDs:     pq.StringArray(r.ClassIDs),
	}
	if r.Type != "" {
		m.Type = model.SubjectType(r.Type)
	}
	if r.TotalMarks != nil {
		m.TotalMarks = *r.TotalMarks
	}
	if r.PassingMarks != nil {
		m.PassingMarks = *r.PassingMarks
	}
	if r.TeacherID != nil {
		teacherID, err := uuid.Parse(*r.TeacherID)
		if err != nil {
			return nil, err
		}
		m.TeacherID = &teacherID
	}
	return m, nil
}

type UpdateSubjectRequest struct {
	Name         *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Code         *string   `json:"code" validate:"omitempty,min=1,max=20"`
	Type         *string   `json:"type" validate:"omitempty,oneof=Core Elective Optional"`
	TotalMarks   *int      `json:"total_marks" validate:"omitempty,min=1"`
	PassingMarks *int      `json:"passing_marks" validate:"omitempty,min=0"`
	TeacherID    *string   `json:"teacher_id" validate:"omitempty,uuid"`
	ClassIDs     *[]string `json:"class_ids" validate:"omitempty,dive,uuid"`
}

func (r *UpdateSubjectRequest) Apply(m *model.SubjectModel) error {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Code != nil {
		m.Code = *r.Code
	}
	if r.Type != nil {
		m.Type = model.SubjectType(*r.Type)
	}
	if r.TotalMarks != nil {
		m.TotalMarks = *r.TotalMarks
	}
	if r.PassingMarks != nil {
		m.PassingMarks = *r.PassingMarks
	}
	if r.TeacherID != nil {
		teacherID, err := uuid.Parse(*r.TeacherID)
		if err != nil {
			return err
		}
		m.TeacherID = &teacherID
	}
	if r.ClassIDs != nil {
		m.ClassIDs = pq.StringArray(*r.ClassIDs)
	}
	return nil
}

/* =======================================================
   RESPONSES
======================================================= */

type SubjectResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Code         string     `json:"code"`
	SessionID    uuid.UUID  `json:"session_id"`
	Type         string     `json:"type"`
	TotalMarks   int        `json:"total_marks"`
	PassingMarks int        `json:"passing_marks"`
	TeacherID    *uuid.UUID `json:"teacher_id,omitempty"`
	TeacherName  string     `json:"teacher_name,omitempty"`
	ClassIDs     []string   `json:"class_ids"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func FromSubjectModel(m *model.SubjectModel) SubjectResponse {
	classIDs := []string(m.ClassIDs)
	if classIDs == nil {
		classIDs = []string{}
	}
	return SubjectResponse{
		ID:           m.ID,
		Name:         m.Name,
		Code:         m.Code,
		SessionID:    m.SessionID,
		Type:         string(m.Type),
		TotalMarks:   m.TotalMarks,
		PassingMarks: m.PassingMarks,
		TeacherID:    m.TeacherID,
		ClassIDs:     classIDs,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
