// file: internals/features/academics/classes/controller/class_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classDTO "sekolahku_backend/internals/features/academics/classes/dto"
	classModel "sekolahku_backend/internals/features/academics/classes/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type ClassController struct {
	DB *gorm.DB
}

var validate = validator.New()

/* =========================================================
   LIST  GET /api/classes
   Pre-scoped: teacher sees assigned classes, student own class.
========================================================= */
func (h *ClassController) List(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, h.DB)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 10, 100)

	q := h.DB.WithContext(c.Context()).Model(&classModel.ClassModel{})
	q = helperAuth.ClassRecordScope(p, links, "id").Apply(q)

	if sid := strings.TrimSpace(c.Query("session_id")); sid != "" {
		q = q.Where("session_id = ?", sid)
	}
	if grade := strings.TrimSpace(c.Query("grade")); grade != "" {
		q = q.Where("grade = ?", grade)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count classes")
	}

	var rows []classModel.ClassModel
	if err := q.Order("grade asc, name asc").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list classes")
	}
	return helper.JsonList(c, "", classDTO.FromClassModels(rows),
		helper.BuildPagination(total, paging.Page, paging.Limit))
}

/* =========================================================
   DETAIL  GET /api/classes/:id
========================================================= */
func (h *ClassController) Detail(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, h.DB)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid class id")
	}
	if !helperAuth.ClassRecordScope(p, links, "id").Allows(id) {
		return fiber.NewError(fiber.StatusNotFound, "Class not found")
	}

	db := h.DB.WithContext(c.Context())
	var m classModel.ClassModel
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
	}

	resp := classDTO.FromClassModel(m)
	_ = db.Table("sections").Where("class_id = ? AND deleted_at IS NULL", id).Count(&resp.SectionCount).Error
	_ = db.Table("students").Where("class_id = ? AND deleted_at IS NULL", id).Count(&resp.StudentCount).Error
	return helper.JsonOK(c, "", resp)
}

/* =========================================================
   CREATE  POST /api/classes
========================================================= */
func (h *ClassController) Create(c *fiber.Ctx) error {
	var req classDTO.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	m := classModel.ClassModel{
		Name:           strings.TrimSpace(req.Name),
		Grade:          req.Grade,
		SessionID:      req.SessionID,
		Capacity:       40,
		ClassTeacherID: req.ClassTeacherID,
	}
	if req.Capacity != nil {
		m.Capacity = *req.Capacity
	}

	if err := h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&classModel.ClassModel{}).
			Where("name = ? AND grade = ? AND session_id = ?", m.Name, m.Grade, m.SessionID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check duplicates")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "A class with this name and grade already exists in the session")
		}
		if err := tx.Create(&m).Error; err != nil {
			msg := strings.ToLower(err.Error())
			if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
				return fiber.NewError(fiber.StatusConflict, "A class with this name and grade already exists in the session")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to create class")
		}
		return nil
	}); err != nil {
		return err
	}
	return helper.JsonCreated(c, "Class created", classDTO.FromClassModel(m))
}

/* =========================================================
   UPDATE  PUT /api/classes/:id
========================================================= */
func (h *ClassController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid class id")
	}
	var req classDTO.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	db := h.DB.WithContext(c.Context())
	var m classModel.ClassModel
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch class")
	}

	req.Apply(&m)
	if err := db.Save(&m).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "A class with this name and grade already exists in the session")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update class")
	}
	return helper.JsonUpdated(c, "Class updated", classDTO.FromClassModel(m))
}

/* =========================================================
   DELETE  DELETE /api/classes/:id

   The one hard delete with a cascade: sections are removed and
   students detached, in one explicit transaction.
========================================================= */
func (h *ClassController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid class id")
	}

	if err := h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&classModel.ClassModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		if err := tx.Delete(&classModel.SectionModel{}, "class_id = ?", id).Error; err != nil {
			return err
		}
		// detach students from the removed class
		return tx.Table("students").
			Where("class_id = ?", id).
			Updates(map[string]any{"class_id": nil, "section_id": nil}).Error
	}); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete class")
	}
	return helper.JsonDeleted(c, "Class deleted (sections removed, students detached)", fiber.Map{"id": id})
}
