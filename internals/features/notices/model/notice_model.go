package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// NoticeModel maps the notices table. TargetAudience holds role names
// or "All"; TargetClassIDs optionally narrows a notice to particular
// classes. ViewedBy accumulates the user ids that have opened it.
type NoticeModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title          string         `gorm:"size:200;not null" json:"title"`
	Content        string         `gorm:"type:text;not null" json:"content"`
	TargetAudience pq.StringArray `gorm:"type:text[];not null" json:"target_audience"`
	TargetClassIDs pq.StringArray `gorm:"type:text[]" json:"target_class_ids"`
	IsPublished    bool           `gorm:"not null;default:false" json:"is_published"`
	PublishDate    *time.Time     `gorm:"type:date" json:"publish_date,omitempty"`
	ExpiryDate     *time.Time     `gorm:"type:date" json:"expiry_date,omitempty"`
	IsPinned       bool           `gorm:"not null;default:false" json:"is_pinned"`
	ViewedBy       pq.StringArray `gorm:"type:text[]" json:"viewed_by"`
	CreatedBy      uuid.UUID      `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (NoticeModel) TableName() string { return "notices" }
