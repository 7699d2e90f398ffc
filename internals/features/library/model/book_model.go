package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IssueStatus string

const (
	IssueStatusIssued   IssueStatus = "Issued"
	IssueStatusReturned IssueStatus = "Returned"
	IssueStatusOverdue  IssueStatus = "Overdue"
)

// BookModel maps the books table. AvailableCopies always stays inside
// [0, TotalCopies]; issue and return adjust it with guarded updates.
type BookModel struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title           string         `gorm:"size:200;not null" json:"title" validate:"required,min=1,max=200"`
	Author          string         `gorm:"size:100;not null" json:"author" validate:"required,min=1,max=100"`
	ISBN            string         `gorm:"size:20;not null;uniqueIndex" json:"isbn" validate:"required,min=10,max=20"`
	Category        *string        `gorm:"size:50" json:"category,omitempty"`
	Publisher       *string        `gorm:"size:100" json:"publisher,omitempty"`
	TotalCopies     int            `gorm:"not null;default:1" json:"total_copies" validate:"omitempty,min=1"`
	AvailableCopies int            `gorm:"not null;default:1" json:"available_copies"`
	ShelfLocation   *string        `gorm:"size:20" json:"shelf_location,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (BookModel) TableName() string { return "books" }

// BookIssueModel maps the book_issues table.
type BookIssueModel struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BookID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"book_id"`
	StudentID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"student_id"`
	IssueDate  time.Time      `gorm:"type:date;not null" json:"issue_date"`
	DueDate    time.Time      `gorm:"type:date;not null" json:"due_date"`
	ReturnDate *time.Time     `gorm:"type:date" json:"return_date,omitempty"`
	Status     IssueStatus    `gorm:"type:varchar(10);not null;default:'Issued'" json:"status"`
	Fine       float64        `gorm:"not null;default:0" json:"fine"`
	IssuedBy   uuid.UUID      `gorm:"type:uuid;not null" json:"issued_by"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (BookIssueModel) TableName() string { return "book_issues" }
