// file: internals/features/academics/exams/controller/mark_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/features/academics/exams/dto"
	"sekolahku_backend/internals/features/academics/exams/model"
	"sekolahku_backend/internals/features/academics/exams/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type MarkController struct {
	DB *gorm.DB
}

func NewMarkController(db *gorm.DB) *MarkController {
	return &MarkController{DB: db}
}

/* =======================================================
   BULK ENTRY
======================================================= */

// BulkEnter writes marks for many students of one exam. Re-entering a
// student's marks overwrites the previous row; the derived values are
// recomputed from the exam's total and passing marks every time.
func (ctl *MarkController) BulkEnter(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	examID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid exam id")
	}

	var req dto.BulkMarksRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateExam.Struct(req); err != nil {
		return err
	}

	var exam model.ExamModel
	if err := ctl.DB.First(&exam, "id = ?", examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Exam not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch exam")
	}
	if p.IsTeacher() && !helperAuth.ClassRecordScope(p, links, "class_id").Allows(exam.ClassID) {
		return fiber.NewError(fiber.StatusNotFound, "Exam not found")
	}
	if exam.Status == model.ExamStatusCancelled {
		return fiber.NewError(fiber.StatusBadRequest, "Marks cannot be entered for a cancelled exam")
	}

	rows := make([]model.ExamMarkModel, 0, len(req.Marks))
	for _, entry := range req.Marks {
		studentID, err := uuid.Parse(entry.StudentID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid student id in marks")
		}
		if !entry.IsAbsent && entry.MarksObtained > float64(exam.TotalMarks) {
			return fiber.NewError(fiber.StatusBadRequest, "Marks obtained exceed the exam's total marks")
		}

		result := service.Compute(entry.MarksObtained, float64(exam.TotalMarks), float64(exam.PassingMarks), entry.IsAbsent)
		marks := entry.MarksObtained
		if entry.IsAbsent {
			marks = 0
		}
		rows = append(rows, model.ExamMarkModel{
			ExamID:        examID,
			StudentID:     studentID,
			MarksObtained: marks,
			IsAbsent:      entry.IsAbsent,
			Percentage:    result.Percentage,
			Grade:         result.Grade,
			IsPassed:      result.IsPassed,
			Remarks:       entry.Remarks,
			EnteredBy:     p.UserID,
		})
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		studentIDs := make([]uuid.UUID, 0, len(rows))
		for _, r := range rows {
			studentIDs = append(studentIDs, r.StudentID)
		}
		var count int64
		if err := tx.Table("students").
			Where("id IN ? AND class_id = ? AND deleted_at IS NULL", studentIDs, exam.ClassID).
			Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(studentIDs)) {
			return fiber.NewError(fiber.StatusBadRequest, "Marks include a student outside the exam's class")
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "exam_id"}, {Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"marks_obtained", "is_absent", "percentage", "grade", "is_passed", "remarks", "entered_by", "updated_at",
			}),
		}).Create(&rows).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save marks")
	}

	resp := make([]dto.MarkResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.FromMarkModel(&rows[i]))
	}
	return helper.JsonCreated(c, "Marks saved", resp)
}

/* =======================================================
   READS (role scoped)
======================================================= */

// ListByExam returns an exam's marks scoped by role: students see their
// own row, parents their children's, staff the full sheet.
func (ctl *MarkController) ListByExam(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	examID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid exam id")
	}

	var exam model.ExamModel
	if err := ctl.DB.First(&exam, "id = ?", examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Exam not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch exam")
	}
	if p.IsTeacher() && !helperAuth.ClassRecordScope(p, links, "class_id").Allows(exam.ClassID) {
		return fiber.NewError(fiber.StatusNotFound, "Exam not found")
	}

	q := ctl.DB.Model(&model.ExamMarkModel{}).Where("exam_id = ?", examID)
	q = helperAuth.StudentRecordScope(p, links, "student_id").Apply(q)

	var marks []model.ExamMarkModel
	if err := q.Find(&marks).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list marks")
	}

	return helper.JsonOK(c, "Marks retrieved", ctl.withStudentNames(marks))
}

// ListByStudent returns one student's marks across exams.
func (ctl *MarkController) ListByStudent(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	if !p.IsTeacher() && !helperAuth.StudentRecordScope(p, links, "student_id").Allows(studentID) {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	if p.IsTeacher() {
		var classID *uuid.UUID
		ctl.DB.Table("students").Select("class_id").Where("id = ?", studentID).Scan(&classID)
		if classID == nil || !helperAuth.ClassRecordScope(p, links, "class_id").Allows(*classID) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
	}

	q := ctl.DB.Model(&model.ExamMarkModel{}).Where("student_id = ?", studentID)
	if sessionID := c.Query("session_id"); sessionID != "" {
		q = q.Where("exam_id IN (SELECT id FROM exams WHERE session_id = ?)", sessionID)
	}

	var marks []model.ExamMarkModel
	if err := q.Order("created_at ASC").Find(&marks).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list marks")
	}

	return helper.JsonOK(c, "Marks retrieved", ctl.withStudentNames(marks))
}

func (ctl *MarkController) withStudentNames(marks []model.ExamMarkModel) []dto.MarkResponse {
	resp := make([]dto.MarkResponse, 0, len(marks))
	for i := range marks {
		r := dto.FromMarkModel(&marks[i])
		ctl.DB.Table("students").
			Select("users.user_name").
			Joins("JOIN users ON users.id = students.user_id").
			Where("students.id = ?", marks[i].StudentID).
			Scan(&r.StudentName)
		resp = append(resp, r)
	}
	return resp
}
