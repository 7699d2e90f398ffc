package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/students/model"
)

/* =======================================================
   REQUESTS
======================================================= */

// CreateStudentRequest admits a new student: the user account and the
// student profile are created together in one transaction.
type CreateStudentRequest struct {
	UserName      string  `json:"user_name" validate:"required,min=3,max=50"`
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8"`
	SessionID     string  `json:"session_id" validate:"required,uuid"`
	AdmissionDate string  `json:"admission_date" validate:"required,datetime=2006-01-02"`
	RollNumber    *int    `json:"roll_number" validate:"omitempty,min=1"`
	ClassID       *string `json:"class_id" validate:"omitempty,uuid"`
	SectionID     *string `json:"section_id" validate:"omitempty,uuid"`
	ParentID      *string `json:"parent_id" validate:"omitempty,uuid"`
	DateOfBirth   *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender        *string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	BloodGroup    *string `json:"blood_group" validate:"omitempty,max=5"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
	Address       *string `json:"address" validate:"omitempty,max=255"`
}

type UpdateStudentRequest struct {
	RollNumber  *int    `json:"roll_number" validate:"omitempty,min=1"`
	ClassID     *string `json:"class_id" validate:"omitempty,uuid"`
	SectionID   *string `json:"section_id" validate:"omitempty,uuid"`
	ParentID    *string `json:"parent_id" validate:"omitempty,uuid"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	BloodGroup  *string `json:"blood_group" validate:"omitempty,max=5"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	Status      *string `json:"status" validate:"omitempty,oneof=Active Inactive Graduated Transferred Dropped"`
}

func (r *UpdateStudentRequest) Apply(m *model.StudentModel) error {
	if r.RollNumber != nil {
		m.RollNumber = r.RollNumber
	}
	if r.ClassID != nil {
		id, err := uuid.Parse(*r.ClassID)
		if err != nil {
			return err
		}
		m.ClassID = &id
	}
	if r.SectionID != nil {
		id, err := uuid.Parse(*r.SectionID)
		if err != nil {
			return err
		}
		m.SectionID = &id
	}
	if r.ParentID != nil {
		id, err := uuid.Parse(*r.ParentID)
		if err != nil {
			return err
		}
		m.ParentID = &id
	}
	if r.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *r.DateOfBirth)
		if err != nil {
			return err
		}
		m.DateOfBirth = &dob
	}
	if r.Gender != nil {
		m.Gender = r.Gender
	}
	if r.BloodGroup != nil {
		m.BloodGroup = r.BloodGroup
	}
	if r.Phone != nil {
		m.Phone = r.Phone
	}
	if r.Address != nil {
		m.Address = r.Address
	}
	if r.Status != nil {
		m.Status = model.StudentStatus(*r.Status)
	}
	return nil
}

type UploadStudentDocumentRequest struct {
	Title string `form:"title" validate:"required,min=1,max=100"`
}

/* =======================================================
   RESPONSES
======================================================= */

type StudentResponse struct {
	ID              uuid.UUID               `json:"id"`
	UserID          uuid.UUID               `json:"user_id"`
	UserName        string                  `json:"user_name,omitempty"`
	Email           string                  `json:"email,omitempty"`
	AdmissionNumber string                  `json:"admission_number"`
	AdmissionDate   time.Time               `json:"admission_date"`
	RollNumber      *int                    `json:"roll_number,omitempty"`
	ClassID         *uuid.UUID              `json:"class_id,omitempty"`
	ClassName       string                  `json:"class_name,omitempty"`
	SectionID       *uuid.UUID              `json:"section_id,omitempty"`
	SectionName     string                  `json:"section_name,omitempty"`
	SessionID       uuid.UUID               `json:"session_id"`
	ParentID        *uuid.UUID              `json:"parent_id,omitempty"`
	DateOfBirth     *time.Time              `json:"date_of_birth,omitempty"`
	Gender          *string                 `json:"gender,omitempty"`
	BloodGroup      *string                 `json:"blood_group,omitempty"`
	Phone           *string                 `json:"phone,omitempty"`
	Address         *string                 `json:"address,omitempty"`
	Documents       []model.StudentDocument `json:"documents"`
	Status          string                  `json:"status"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

func FromStudentModel(m *model.StudentModel) StudentResponse {
	docs := []model.StudentDocument{}
	if len(m.Documents) > 0 {
		_ = json.Unmarshal(m.Documents, &docs)
	}
	return StudentResponse{
		ID:              m.ID,
		UserID:          m.UserID,
		AdmissionNumber: m.AdmissionNumber,
		AdmissionDate:   m.AdmissionDate,
		RollNumber:      m.RollNumber,
		ClassID:         m.ClassID,
		SectionID:       m.SectionID,
		SessionID:       m.SessionID,
		ParentID:        m.ParentID,
		DateOfBirth:     m.DateOfBirth,
		Gender:          m.Gender,
		BloodGroup:      m.BloodGroup,
		Phone:           m.Phone,
		Address:         m.Address,
		Documents:       docs,
		Status:          string(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
