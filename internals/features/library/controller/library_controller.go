// file: internals/features/library/controller/library_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/library/dto"
	"sekolahku_backend/internals/features/library/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type LibraryController struct {
	DB *gorm.DB
}

func NewLibraryController(db *gorm.DB) *LibraryController {
	return &LibraryController{DB: db}
}

var validateLibrary = validator.New()

var bookSortColumns = map[string]string{
	"title":      "title",
	"author":     "author",
	"created_at": "created_at",
}

/* =======================================================
   BOOK CATALOGUE
======================================================= */

func (ctl *LibraryController) ListBooks(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)
	sort := helper.ResolveSort(c, bookSortColumns, "title ASC")

	q := ctl.DB.Model(&model.BookModel{})
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if c.Query("available") == "true" {
		q = q.Where("available_copies > 0")
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(publisher) LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count books")
	}

	var books []model.BookModel
	if err := q.Order(sort).
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&books).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list books")
	}

	resp := make([]dto.BookResponse, 0, len(books))
	for i := range books {
		resp = append(resp, dto.FromBookModel(&books[i]))
	}
	return helper.JsonList(c, "Books retrieved", resp, helper.BuildPagination(total, paging.Page, paging.Limit))
}

func (ctl *LibraryController) BookDetail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid book id")
	}

	var book model.BookModel
	if err := ctl.DB.First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Book not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch book")
	}
	return helper.JsonOK(c, "Book detail", dto.FromBookModel(&book))
}

func (ctl *LibraryController) CreateBook(c *fiber.Ctx) error {
	var req dto.CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateLibrary.Struct(req); err != nil {
		return err
	}

	book := &model.BookModel{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Category:      req.Category,
		Publisher:     req.Publisher,
		TotalCopies:   1,
		ShelfLocation: req.ShelfLocation,
	}
	if req.TotalCopies != nil {
		book.TotalCopies = *req.TotalCopies
	}
	book.AvailableCopies = book.TotalCopies

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.BookModel{}).Where("isbn = ?", req.ISBN).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "A book with this ISBN already exists")
		}
		return tx.Create(book).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "A book with this ISBN already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create book")
	}

	return helper.JsonCreated(c, "Book created", dto.FromBookModel(book))
}

// UpdateBook adjusts metadata and copy counts. Shrinking the stock
// never drops available below zero; it only caps it.
func (ctl *LibraryController) UpdateBook(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid book id")
	}

	var req dto.UpdateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateLibrary.Struct(req); err != nil {
		return err
	}

	var book model.BookModel
	if err := ctl.DB.First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Book not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch book")
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Category != nil {
		book.Category = req.Category
	}
	if req.Publisher != nil {
		book.Publisher = req.Publisher
	}
	if req.ShelfLocation != nil {
		book.ShelfLocation = req.ShelfLocation
	}
	if req.TotalCopies != nil {
		issued := book.TotalCopies - book.AvailableCopies
		if *req.TotalCopies < issued {
			return fiber.NewError(fiber.StatusBadRequest, "Total copies cannot drop below the number currently issued")
		}
		book.TotalCopies = *req.TotalCopies
		book.AvailableCopies = book.TotalCopies - issued
	}

	if err := ctl.DB.Save(&book).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update book")
	}
	return helper.JsonUpdated(c, "Book updated", dto.FromBookModel(&book))
}

func (ctl *LibraryController) DeleteBook(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid book id")
	}

	var open int64
	ctl.DB.Model(&model.BookIssueModel{}).
		Where("book_id = ? AND status = ?", id, model.IssueStatusIssued).
		Count(&open)
	if open > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Book has copies still issued and cannot be deleted")
	}

	res := ctl.DB.Delete(&model.BookModel{}, "id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete book")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Book not found")
	}
	return helper.JsonDeleted(c, "Book deleted", fiber.Map{"id": id})
}

/* =======================================================
   ISSUE / RETURN
======================================================= */

// IssueBook lends a copy. The stock decrement is a guarded UPDATE so
// two concurrent issues cannot take the last copy twice.
func (ctl *LibraryController) IssueBook(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return err
	}

	var req dto.IssueBookRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateLibrary.Struct(req); err != nil {
		return err
	}

	bookID := uuid.MustParse(req.BookID)
	studentID := uuid.MustParse(req.StudentID)
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid due date")
	}
	issueDate := time.Now()
	if dueDate.Before(issueDate) {
		return fiber.NewError(fiber.StatusBadRequest, "Due date must be in the future")
	}

	issue := &model.BookIssueModel{
		BookID:    bookID,
		StudentID: studentID,
		IssueDate: issueDate,
		DueDate:   dueDate,
		Status:    model.IssueStatusIssued,
		IssuedBy:  p.UserID,
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table("students").
			Where("id = ? AND deleted_at IS NULL", studentID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Student not found")
		}

		if err := tx.Model(&model.BookIssueModel{}).
			Where("book_id = ? AND student_id = ? AND status = ?", bookID, studentID, model.IssueStatusIssued).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Student already holds a copy of this book")
		}

		res := tx.Model(&model.BookModel{}).
			Where("id = ? AND available_copies > 0", bookID).
			UpdateColumn("available_copies", gorm.Expr("available_copies - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No copies of this book are available")
		}

		return tx.Create(issue).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to issue book")
	}

	return helper.JsonCreated(c, "Book issued", ctl.issueResp(issue))
}

// ReturnBook closes an issue. The stock increment is capped at the
// book's total so a double return cannot inflate availability.
func (ctl *LibraryController) ReturnBook(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid issue id")
	}

	// Body is optional: a plain return carries no fine.
	var req dto.ReturnBookRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
		}
		if err := validateLibrary.Struct(req); err != nil {
			return err
		}
	}

	var issue model.BookIssueModel
	if err := ctl.DB.First(&issue, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Issue record not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch issue record")
	}
	if issue.Status == model.IssueStatusReturned {
		return fiber.NewError(fiber.StatusBadRequest, "Book has already been returned")
	}

	now := time.Now()
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.BookModel{}).
			Where("id = ?", issue.BookID).
			UpdateColumn("available_copies", gorm.Expr("LEAST(available_copies + 1, total_copies)")).Error; err != nil {
			return err
		}

		issue.Status = model.IssueStatusReturned
		issue.ReturnDate = &now
		if req.Fine != nil {
			issue.Fine = *req.Fine
		}
		return tx.Save(&issue).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to return book")
	}

	return helper.JsonUpdated(c, "Book returned", ctl.issueResp(&issue))
}

/* =======================================================
   ISSUE LISTS
======================================================= */

func (ctl *LibraryController) ListIssues(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 10, 100)

	q := ctl.DB.Model(&model.BookIssueModel{})
	if !p.IsTeacher() {
		q = helperAuth.StudentRecordScope(p, links, "student_id").Apply(q)
	}

	if studentID := c.Query("student_id"); studentID != "" {
		q = q.Where("student_id = ?", studentID)
	}
	if bookID := c.Query("book_id"); bookID != "" {
		q = q.Where("book_id = ?", bookID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if c.Query("overdue") == "true" {
		q = q.Where("status = ? AND due_date < ?", model.IssueStatusIssued, time.Now())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count issues")
	}

	var issues []model.BookIssueModel
	if err := q.Order("issue_date DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&issues).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list issues")
	}

	resp := make([]dto.IssueResponse, 0, len(issues))
	for i := range issues {
		resp = append(resp, ctl.issueResp(&issues[i]))
	}
	return helper.JsonList(c, "Issues retrieved", resp, helper.BuildPagination(total, paging.Page, paging.Limit))
}

func (ctl *LibraryController) issueResp(issue *model.BookIssueModel) dto.IssueResponse {
	resp := dto.FromIssueModel(issue)
	ctl.DB.Table("books").Select("title").Where("id = ?", issue.BookID).Scan(&resp.BookTitle)
	ctl.DB.Table("students").
		Select("users.user_name").
		Joins("JOIN users ON users.id = students.user_id").
		Where("students.id = ?", issue.StudentID).
		Scan(&resp.StudentName)
	return resp
}
