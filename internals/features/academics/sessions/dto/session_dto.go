// file: internals/features/academics/sessions/dto/session_dto.go
package dto

import (
	"time"

	sessionModel "sekolahku_backend/internals/features/academics/sessions/model"
)

type CreateSessionRequest struct {
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Description *string `json:"description" validate:"omitempty"`
}

type UpdateSessionRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=3,max=100"`
	StartDate   *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Description *string `json:"description" validate:"omitempty"`
}

type SessionResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
}

func FromSessionModel(m sessionModel.SessionModel) SessionResponse {
	return SessionResponse{
		ID:          m.ID.String(),
		Name:        m.Name,
		StartDate:   m.StartDate.Format(time.DateOnly),
		EndDate:     m.EndDate.Format(time.DateOnly),
		Description: m.Description,
		IsActive:    m.IsActive,
	}
}

func FromSessionModels(ms []sessionModel.SessionModel) []SessionResponse {
	out := make([]SessionResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromSessionModel(m))
	}
	return out
}
