// file: internals/features/academics/subjects/controller/subject_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/academics/subjects/dto"
	"sekolahku_backend/internals/features/academics/subjects/model"
	helper "sekolahku_backend/internals/helpers"
)

type SubjectController struct {
	DB *gorm.DB
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{DB: db}
}

var validateSubject = validator.New()

var subjectSortColumns = map[string]string{
	"name":       "name",
	"code":       "code",
	"created_at": "created_at",
}

/* =======================================================
   LIST & DETAIL
======================================================= */

// List returns subjects filtered by session, type, class or teacher.
func (ctl *SubjectController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)
	sort := helper.ResolveSort(c, subjectSortColumns, "name ASC")

	q := ctl.DB.Model(&model.SubjectModel{})

	if sessionID := c.Query("session_id"); sessionID != "" {
		q = q.Where("session_id = ?", sessionID)
	}
	if subjectType := c.Query("type"); subjectType != "" {
		q = q.Where("type = ?", subjectType)
	}
	if classID := c.Query("class_id"); classID != "" {
		q = q.Where("? = ANY(class_ids)", classID)
	}
	if teacherID := c.Query("teacher_id"); teacherID != "" {
		q = q.Where("teacher_id = ?", teacherID)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count subjects")
	}

	var subjects []model.SubjectModel
	if err := q.Order(sort).
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&subjects).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list subjects")
	}

	resp := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		resp = append(resp, dto.FromSubjectModel(&subjects[i]))
	}

	return helper.JsonList(c, "Subjects retrieved", resp, helper.BuildPagination(total, paging.Page, paging.Limit))
}

func (ctl *SubjectController) Detail(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid subject id")
	}

	var subject model.SubjectModel
	if err := ctl.DB.First(&subject, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Subject not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch subject")
	}

	resp := dto.FromSubjectModel(&subject)
	if subject.TeacherID != nil {
		var teacherName string
		ctl.DB.Table("teachers").
			Select("users.user_name").
			Joins("JOIN users ON users.id = teachers.user_id").
			Where("teachers.id = ?", *subject.TeacherID).
			Scan(&teacherName)
		resp.TeacherName = teacherName
	}

	return helper.JsonOK(c, "Subject detail", resp)
}

/* =======================================================
   CREATE / UPDATE / DELETE
======================================================= */

func (ctl *SubjectController) Create(c *fiber.Ctx) error {
	var req dto.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateSubject.Struct(req); err != nil {
		return err
	}

	subject, err := req.ToModel()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id in payload")
	}
	if subject.PassingMarks >= subject.TotalMarks {
		return fiber.NewError(fiber.StatusBadRequest, "Passing marks must be lower than total marks")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.SubjectModel{}).
			Where("code = ? AND session_id = ?", subject.Code, subject.SessionID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Subject code already used in this session")
		}
		return tx.Create(subject).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "Subject code already used in this session")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create subject")
	}

	return helper.JsonCreated(c, "Subject created", dto.FromSubjectModel(subject))
}

func (ctl *SubjectController) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid subject id")
	}

	var req dto.UpdateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateSubject.Struct(req); err != nil {
		return err
	}

	var subject model.SubjectModel
	if err := ctl.DB.First(&subject, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Subject not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch subject")
	}

	if err := req.Apply(&subject); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id in payload")
	}
	if subject.PassingMarks >= subject.TotalMarks {
		return fiber.NewError(fiber.StatusBadRequest, "Passing marks must be lower than total marks")
	}

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if req.Code != nil {
			var count int64
			if err := tx.Model(&model.SubjectModel{}).
				Where("code = ? AND session_id = ? AND id <> ?", subject.Code, subject.SessionID, subject.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return fiber.NewError(fiber.StatusConflict, "Subject code already used in this session")
			}
		}
		return tx.Save(&subject).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update subject")
	}

	return helper.JsonUpdated(c, "Subject updated", dto.FromSubjectModel(&subject))
}

// Delete refuses to remove a subject that still has exams or marks so
// historical results stay intact.
func (ctl *SubjectController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid subject id")
	}

	var subject model.SubjectModel
	if err := ctl.DB.First(&subject, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Subject not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch subject")
	}

	var examCount, markCount int64
	ctl.DB.Table("exams").Where("subject_id = ? AND deleted_at IS NULL", id).Count(&examCount)
	ctl.DB.Table("exam_marks").
		Joins("JOIN exams ON exams.id = exam_marks.exam_id").
		Where("exams.subject_id = ?", id).
		Count(&markCount)
	if examCount > 0 || markCount > 0 {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf(
			"Subject cannot be deleted: referenced by %d exams and %d marks",
			examCount, markCount))
	}

	if err := ctl.DB.Delete(&subject).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete subject")
	}

	return helper.JsonDeleted(c, "Subject deleted", fiber.Map{"id": subject.ID})
}
