package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"sekolahku_backend/internals/features/notices/model"
)

type CreateNoticeRequest struct {
	Title          string   `json:"title" validate:"required,min=1,max=200"`
	Content        string   `json:"content" validate:"required,min=1"`
	TargetAudience []string `json:"target_audience" validate:"required,min=1,dive,oneof=All Teachers Students Parents"`
	TargetClassIDs []string `json:"target_class_ids" validate:"omitempty,dive,uuid"`
	IsPublished    *bool    `json:"is_published"`
	PublishDate    *string  `json:"publish_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate     *string  `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	IsPinned       *bool    `json:"is_pinned"`
}

type UpdateNoticeRequest struct {
	Title          *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Content        *string   `json:"content" validate:"omitempty,min=1"`
	TargetAudience *[]string `json:"target_audience" validate:"omitempty,min=1,dive,oneof=All Teachers Students Parents"`
	TargetClassIDs *[]string `json:"target_class_ids" validate:"omitempty,dive,uuid"`
	IsPublished    *bool     `json:"is_published"`
	PublishDate    *string   `json:"publish_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate     *string   `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	IsPinned       *bool     `json:"is_pinned"`
}

type NoticeResponse struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	TargetAudience []string  `json:"target_audience"`
	TargetClassIDs []string  `json:"target_class_ids"`
	IsPublished    bool      `json:"is_published"`
	PublishDate    *string   `json:"publish_date,omitempty"`
	ExpiryDate     *string   `json:"expiry_date,omitempty"`
	IsPinned       bool      `json:"is_pinned"`
	ViewCount      int       `json:"view_count"`
	CreatedBy      uuid.UUID `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromNoticeModel(m *model.NoticeModel) NoticeResponse {
	resp := NoticeResponse{
		ID:             m.ID,
		Title:          m.Title,
		Content:        m.Content,
		TargetAudience: []string(m.TargetAudience),
		TargetClassIDs: []string(m.TargetClassIDs),
		IsPublished:    m.IsPublished,
		IsPinned:       m.IsPinned,
		ViewCount:      len(m.ViewedBy),
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
	if resp.TargetClassIDs == nil {
		resp.TargetClassIDs = []string{}
	}
	if m.PublishDate != nil {
		s := m.PublishDate.Format("2006-01-02")
		resp.PublishDate = &s
	}
	if m.ExpiryDate != nil {
		s := m.ExpiryDate.Format("2006-01-02")
		resp.ExpiryDate = &s
	}
	return resp
}

func ToStringArray(in []string) pq.StringArray {
	if in == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(in)
}
