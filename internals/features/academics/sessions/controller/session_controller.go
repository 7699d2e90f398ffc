// file: internals/features/academics/sessions/controller/session_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	sessionDTO "sekolahku_backend/internals/features/academics/sessions/dto"
	sessionModel "sekolahku_backend/internals/features/academics/sessions/model"
	helper "sekolahku_backend/internals/helpers"
)

type SessionController struct {
	DB *gorm.DB
}

var validate = validator.New()

func parseDate(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

/* =========================================================
   LIST  GET /api/sessions
========================================================= */
func (h *SessionController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)
	q := h.DB.WithContext(c.Context()).Model(&sessionModel.SessionModel{})

	if active := strings.TrimSpace(c.Query("is_active")); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count sessions")
	}

	var rows []sessionModel.SessionModel
	if err := q.Order("start_date desc").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list sessions")
	}
	return helper.JsonList(c, "", sessionDTO.FromSessionModels(rows),
		helper.BuildPagination(total, paging.Page, paging.Limit))
}

/* =========================================================
   DETAIL  GET /api/sessions/:id
========================================================= */
func (h *SessionController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}
	var m sessionModel.SessionModel
	if err := h.DB.WithContext(c.Context()).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch session")
	}
	return helper.JsonOK(c, "", sessionDTO.FromSessionModel(m))
}

/* =========================================================
   CREATE  POST /api/sessions
========================================================= */
func (h *SessionController) Create(c *fiber.Ctx) error {
	var req sessionDTO.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	start, end := parseDate(req.StartDate), parseDate(req.EndDate)
	if !end.After(start) {
		return fiber.NewError(fiber.StatusBadRequest, "End date must be after start date")
	}

	m := sessionModel.SessionModel{
		Name:        strings.TrimSpace(req.Name),
		StartDate:   start,
		EndDate:     end,
		Description: req.Description,
	}
	if err := h.DB.WithContext(c.Context()).Create(&m).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "A session with this name already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create session")
	}
	return helper.JsonCreated(c, "Session created", sessionDTO.FromSessionModel(m))
}

/* =========================================================
   UPDATE  PUT /api/sessions/:id
========================================================= */
func (h *SessionController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}
	var req sessionDTO.UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	db := h.DB.WithContext(c.Context())
	var m sessionModel.SessionModel
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch session")
	}

	if req.Name != nil {
		m.Name = strings.TrimSpace(*req.Name)
	}
	if req.StartDate != nil {
		m.StartDate = parseDate(*req.StartDate)
	}
	if req.EndDate != nil {
		m.EndDate = parseDate(*req.EndDate)
	}
	if req.Description != nil {
		m.Description = req.Description
	}
	if !m.EndDate.After(m.StartDate) {
		return fiber.NewError(fiber.StatusBadRequest, "End date must be after start date")
	}

	if err := db.Save(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update session")
	}
	return helper.JsonUpdated(c, "Session updated", sessionDTO.FromSessionModel(m))
}

/* =========================================================
   ACTIVATE  PUT /api/sessions/:id/activate

   Single-active invariant: one transaction deactivates every
   other session and activates the target.
========================================================= */
func (h *SessionController) Activate(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	if err := h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&sessionModel.SessionModel{}).
			Where("id = ?", id).
			Update("is_active", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return tx.Model(&sessionModel.SessionModel{}).
			Where("id <> ? AND is_active = TRUE", id).
			Update("is_active", false).Error
	}); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to activate session")
	}

	return helper.JsonUpdated(c, "Session activated", fiber.Map{"id": id})
}

/* =========================================================
   DELETE  DELETE /api/sessions/:id
========================================================= */
func (h *SessionController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	db := h.DB.WithContext(c.Context())
	var classCount, studentCount int64
	if err := db.Table("classes").
		Where("session_id = ? AND deleted_at IS NULL", id).
		Count(&classCount).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check dependents")
	}
	if err := db.Table("students").
		Where("session_id = ? AND deleted_at IS NULL", id).
		Count(&studentCount).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to check dependents")
	}
	if classCount > 0 || studentCount > 0 {
		return fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("Session is referenced by %d classes and %d students", classCount, studentCount))
	}

	res := db.Delete(&sessionModel.SessionModel{}, "id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete session")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	return helper.JsonDeleted(c, "Session deleted", fiber.Map{"id": id})
}
