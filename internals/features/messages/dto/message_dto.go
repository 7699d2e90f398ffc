package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/messages/model"
)

type SendMessageRequest struct {
	RecipientID string  `json:"recipient_id" validate:"required,uuid"`
	Subject     string  `json:"subject" validate:"required,min=1,max=200"`
	Body        string  `json:"body" validate:"required,min=1"`
	ParentID    *string `json:"parent_id" validate:"omitempty,uuid"`
}

type MessageResponse struct {
	ID            uuid.UUID  `json:"id"`
	SenderID      uuid.UUID  `json:"sender_id"`
	SenderName    string     `json:"sender_name,omitempty"`
	RecipientID   uuid.UUID  `json:"recipient_id"`
	RecipientName string     `json:"recipient_name,omitempty"`
	Subject       string     `json:"subject"`
	Body          string     `json:"body"`
	ThreadID      uuid.UUID  `json:"thread_id"`
	ParentID      *uuid.UUID `json:"parent_id,omitempty"`
	IsRead        bool       `json:"is_read"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	Starred       bool       `json:"starred"`
	Archived      bool       `json:"archived"`
	CreatedAt     time.Time  `json:"created_at"`
}

// FromMessageModel shapes the row for the viewing user: the starred
// and archived flags shown are the viewer's own side.
func FromMessageModel(m *model.MessageModel, viewer uuid.UUID) MessageResponse {
	resp := MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Subject:     m.Subject,
		Body:        m.Body,
		ThreadID:    m.ThreadID,
		ParentID:    m.ParentID,
		IsRead:      m.IsRead,
		ReadAt:      m.ReadAt,
		CreatedAt:   m.CreatedAt,
	}
	if m.SenderID == viewer {
		resp.Starred = m.SenderStarred
		resp.Archived = m.SenderArchived
	} else {
		resp.Starred = m.RecipientStarred
		resp.Archived = m.RecipientArchived
	}
	return resp
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
