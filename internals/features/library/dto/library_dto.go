package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/library/model"
)

/* =======================================================
   BOOKS
======================================================= */

type CreateBookRequest struct {
	Title         string  `json:"title" validate:"required,min=1,max=200"`
	Author        string  `json:"author" validate:"required,min=1,max=100"`
	ISBN          string  `json:"isbn" validate:"required,min=10,max=20"`
	Category      *string `json:"category" validate:"omitempty,max=50"`
	Publisher     *string `json:"publisher" validate:"omitempty,max=100"`
	TotalCopies   *int    `json:"total_copies" validate:"omitempty,min=1"`
	ShelfLocation *string `json:"shelf_location" validate:"omitempty,max=20"`
}

type UpdateBookRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=1,max=200"`
	Author        *string `json:"author" validate:"omitempty,min=1,max=100"`
	Category      *string `json:"category" validate:"omitempty,max=50"`
	Publisher     *string `json:"publisher" validate:"omitempty,max=100"`
	TotalCopies   *int    `json:"total_copies" validate:"omitempty,min=1"`
	ShelfLocation *string `json:"shelf_location" validate:"omitempty,max=20"`
}

type BookResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn"`
	Category        *string   `json:"category,omitempty"`
	Publisher       *string   `json:"publisher,omitempty"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	ShelfLocation   *string   `json:"shelf_location,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func FromBookModel(m *model.BookModel) BookResponse {
	return BookResponse{
		ID:              m.ID,
		Title:           m.Title,
		Author:          m.Author,
		ISBN:            m.ISBN,
		Category:        m.Category,
		Publisher:       m.Publisher,
		TotalCopies:     m.TotalCopies,
		AvailableCopies: m.AvailableCopies,
		ShelfLocation:   m.ShelfLocation,
		CreatedAt:       m.CreatedAt,
	}
}

/* =======================================================
   ISSUES
======================================================= */

type IssueBookRequest struct {
	BookID    string `json:"book_id" validate:"required,uuid"`
	StudentID string `json:"student_id" validate:"required,uuid"`
	DueDate   string `json:"due_date" validate:"required,datetime=2006-01-02"`
}

type ReturnBookRequest struct {
	Fine *float64 `json:"fine" validate:"omitempty,min=0"`
}

type IssueResponse struct {
	ID          uuid.UUID  `json:"id"`
	BookID      uuid.UUID  `json:"book_id"`
	BookTitle   string     `json:"book_title,omitempty"`
	StudentID   uuid.UUID  `json:"student_id"`
	StudentName string     `json:"student_name,omitempty"`
	IssueDate   string     `json:"issue_date"`
	DueDate     string     `json:"due_date"`
	ReturnDate  *string    `json:"return_date,omitempty"`
	Status      string     `json:"status"`
	Fine        float64    `json:"fine"`
	IssuedBy    uuid.UUID  `json:"issued_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

func FromIssueModel(m *model.BookIssueModel) IssueResponse {
	resp := IssueResponse{
		ID:        m.ID,
		BookID:    m.BookID,
		StudentID: m.StudentID,
		IssueDate: m.IssueDate.Format("2006-01-02"),
		DueDate:   m.DueDate.Format("2006-01-02"),
		Status:    string(m.Status),
		Fine:      m.Fine,
		IssuedBy:  m.IssuedBy,
		CreatedAt: m.CreatedAt,
	}
	if m.ReturnDate != nil {
		s := m.ReturnDate.Format("2006-01-02")
		resp.ReturnDate = &s
	}
	return resp
}
