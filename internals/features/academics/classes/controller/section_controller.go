// file: internals/features/academics/classes/controller/section_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classDTO "sekolahku_backend/internals/features/academics/classes/dto"
	classModel "sekolahku_backend/internals/features/academics/classes/model"
	helper "sekolahku_backend/internals/helpers"
)

type SectionController struct {
	DB *gorm.DB
}

/* =========================================================
   LIST  GET /api/sections
========================================================= */
func (h *SectionController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)
	q := h.DB.WithContext(c.Context()).Model(&classModel.SectionModel{})

	if cid := strings.TrimSpace(c.Query("class_id")); cid != "" {
		q = q.Where("class_id = ?", cid)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count sections")
	}
	var rows []classModel.SectionModel
	if err := q.Order("name asc").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list sections")
	}
	return helper.JsonList(c, "", classDTO.FromSectionModels(rows),
		helper.BuildPagination(total, paging.Page, paging.Limit))
}

/* =========================================================
   CREATE  POST /api/sections
========================================================= */
func (h *SectionController) Create(c *fiber.Ctx) error {
	var req classDTO.CreateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	m := classModel.SectionModel{
		Name:     strings.TrimSpace(req.Name),
		ClassID:  req.ClassID,
		Capacity: 40,
		Room:     req.Room,
	}
	if req.Capacity != nil {
		m.Capacity = *req.Capacity
	}

	if err := h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var classCount int64
		if err := tx.Model(&classModel.ClassModel{}).
			Where("id = ?", req.ClassID).Count(&classCount).Error; err != nil {
			return err
		}
		if classCount == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		var cnt int64
		if err := tx.Model(&classModel.SectionModel{}).
			Where("name = ? AND class_id = ?", m.Name, m.ClassID).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "A section with this name already exists in the class")
		}
		return tx.Create(&m).Error
	}); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create section")
	}
	return helper.JsonCreated(c, "Section created", classDTO.FromSectionModel(m))
}

/* =========================================================
   UPDATE  PUT /api/sections/:id
========================================================= */
func (h *SectionController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid section id")
	}
	var req classDTO.UpdateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	db := h.DB.WithContext(c.Context())
	var m classModel.SectionModel
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Section not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch section")
	}
	req.Apply(&m)
	if err := db.Save(&m).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "A section with this name already exists in the class")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update section")
	}
	return helper.JsonUpdated(c, "Section updated", classDTO.FromSectionModel(m))
}

/* =========================================================
   DELETE  DELETE /api/sections/:id  (cascades: detach students)
========================================================= */
func (h *SectionController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid section id")
	}

	if err := h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&classModel.SectionModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Section not found")
		}
		return tx.Table("students").
			Where("section_id = ?", id).
			Update("section_id", nil).Error
	}); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete section")
	}
	return helper.JsonDeleted(c, "Section deleted (students detached)", fiber.Map{"id": id})
}
