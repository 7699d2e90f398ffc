package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/teachers/model"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

/* =======================================================
   REQUESTS
======================================================= */

type CreateTeacherRequest struct {
	UserName        string  `json:"user_name" validate:"required,min=3,max=50"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=8"`
	JoiningDate     string  `json:"joining_date" validate:"required,datetime=2006-01-02"`
	Qualification   *string `json:"qualification" validate:"omitempty,max=100"`
	ExperienceYears *int    `json:"experience_years" validate:"omitempty,min=0,max=60"`
	Phone           *string `json:"phone" validate:"omitempty,max=20"`
	Address         *string `json:"address" validate:"omitempty,max=255"`
}

type UpdateTeacherRequest struct {
	Qualification   *string `json:"qualification" validate:"omitempty,max=100"`
	ExperienceYears *int    `json:"experience_years" validate:"omitempty,min=0,max=60"`
	Phone           *string `json:"phone" validate:"omitempty,max=20"`
	Address         *string `json:"address" validate:"omitempty,max=255"`
	Status          *string `json:"status" validate:"omitempty,oneof=Active Inactive Resigned"`
}

func (r *UpdateTeacherRequest) Apply(m *model.TeacherModel) {
	if r.Qualification != nil {
		m.Qualification = r.Qualification
	}
	if r.ExperienceYears != nil {
		m.ExperienceYears = r.ExperienceYears
	}
	if r.Phone != nil {
		m.Phone = r.Phone
	}
	if r.Address != nil {
		m.Address = r.Address
	}
	if r.Status != nil {
		m.Status = model.TeacherStatus(*r.Status)
	}
}

// AssignRequest replaces both assignment lists at once so the
// teacher's scope is always consistent.
type AssignRequest struct {
	AssignedClasses  []helperAuth.ClassAssignment   `json:"assigned_classes" validate:"omitempty,dive"`
	AssignedSubjects []helperAuth.SubjectAssignment `json:"assigned_subjects" validate:"omitempty,dive"`
}

/* =======================================================
   RESPONSES
======================================================= */

type TeacherResponse struct {
	ID               uuid.UUID                      `json:"id"`
	UserID           uuid.UUID                      `json:"user_id"`
	UserName         string                         `json:"user_name,omitempty"`
	Email            string                         `json:"email,omitempty"`
	EmployeeID       string                         `json:"employee_id"`
	JoiningDate      time.Time                      `json:"joining_date"`
	Qualification    *string                        `json:"qualification,omitempty"`
	ExperienceYears  *int                           `json:"experience_years,omitempty"`
	Phone            *string                        `json:"phone,omitempty"`
	Address          *string                        `json:"address,omitempty"`
	AssignedClasses  []helperAuth.ClassAssignment   `json:"assigned_classes"`
	AssignedSubjects []helperAuth.SubjectAssignment `json:"assigned_subjects"`
	Status           string                         `json:"status"`
	CreatedAt        time.Time                      `json:"created_at"`
	UpdatedAt        time.Time                      `json:"updated_at"`
}

func FromTeacherModel(m *model.TeacherModel) TeacherResponse {
	classes := []helperAuth.ClassAssignment{}
	if len(m.AssignedClasses) > 0 {
		_ = json.Unmarshal(m.AssignedClasses, &classes)
	}
	subjects := []helperAuth.SubjectAssignment{}
	if len(m.AssignedSubjects) > 0 {
		_ = json.Unmarshal(m.AssignedSubjects, &subjects)
	}
	return TeacherResponse{
		ID:               m.ID,
		UserID:           m.UserID,
		EmployeeID:       m.EmployeeID,
		JoiningDate:      m.JoiningDate,
		Qualification:    m.Qualification,
		ExperienceYears:  m.ExperienceYears,
		Phone:            m.Phone,
		Address:          m.Address,
		AssignedClasses:  classes,
		AssignedSubjects: subjects,
		Status:           string(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
