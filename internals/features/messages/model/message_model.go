package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageModel maps the messages table. ThreadID is the root message's
// id: a fresh message points at itself, a reply inherits its parent's
// thread. The star/archive/delete flags are kept per side so either
// participant can manage their own view without touching the other's.
type MessageModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SenderID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID uuid.UUID      `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Subject     string         `gorm:"size:200;not null" json:"subject"`
	Body        string         `gorm:"type:text;not null" json:"body"`
	ThreadID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"thread_id"`
	ParentID    *uuid.UUID     `gorm:"type:uuid" json:"parent_id,omitempty"`
	IsRead      bool           `gorm:"not null;default:false" json:"is_read"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`

	SenderStarred     bool `gorm:"not null;default:false" json:"sender_starred"`
	RecipientStarred  bool `gorm:"not null;default:false" json:"recipient_starred"`
	SenderArchived    bool `gorm:"not null;default:false" json:"sender_archived"`
	RecipientArchived bool `gorm:"not null;default:false" json:"recipient_archived"`
	SenderDeleted     bool `gorm:"not null;default:false" json:"-"`
	RecipientDeleted  bool `gorm:"not null;default:false" json:"-"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (MessageModel) TableName() string { return "messages" }

// SideOf tells which participant the user is on a message.
func (m *MessageModel) SideOf(userID uuid.UUID) (isSender, isRecipient bool) {
	return m.SenderID == userID, m.RecipientID == userID
}
