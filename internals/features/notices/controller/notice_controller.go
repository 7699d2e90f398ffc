// file: internals/features/notices/controller/notice_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/notices/dto"
	"sekolahku_backend/internals/features/notices/model"
	"sekolahku_backend/internals/features/notices/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type NoticeController struct {
	DB *gorm.DB
}

func NewNoticeController(db *gorm.DB) *NoticeController {
	return &NoticeController{DB: db}
}

var validateNotice = validator.New()

// viewerFor builds the visibility viewer: students carry their own
// class, parents the class of any registered child.
func (ctl *NoticeController) viewerFor(p helperAuth.Principal, links helperAuth.Links) service.Viewer {
	v := service.Viewer{UserID: p.UserID, Role: p.Role}
	if p.IsStudent() {
		v.ClassID = links.StudentClassID
	}
	if p.IsParent() && len(links.ChildIDs) > 0 {
		var classID *uuid.UUID
		ctl.DB.Table("students").
			Select("class_id").
			Where("id = ? AND deleted_at IS NULL", links.ChildIDs[0]).
			Scan(&classID)
		v.ClassID = classID
	}
	return v
}

/* =======================================================
   LIST & DETAIL
======================================================= */

// List returns the notices visible to the caller, pinned ones first.
func (ctl *NoticeController) List(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}
	viewer := ctl.viewerFor(p, links)
	viewer.IncludeExpired = c.Query("include_expired") == "true"

	paging := helper.ResolvePaging(c, 10, 100)

	q := ctl.DB.Model(&model.NoticeModel{})
	if !p.IsAdmin() {
		q = q.Where("is_published = true")
	}
	if pinned := c.Query("pinned"); pinned == "true" {
		q = q.Where("is_pinned = true")
	}

	var notices []model.NoticeModel
	if err := q.Order("is_pinned DESC, publish_date DESC NULLS LAST, created_at DESC").Find(&notices).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list notices")
	}

	// Audience and class targeting are decided in code, after the
	// coarse SQL filter.
	now := time.Now()
	visible := make([]dto.NoticeResponse, 0, len(notices))
	for i := range notices {
		if service.VisibleTo(&notices[i], viewer, now) {
			visible = append(visible, dto.FromNoticeModel(&notices[i]))
		}
	}

	total := int64(len(visible))
	start := paging.Offset
	if start > len(visible) {
		start = len(visible)
	}
	end := start + paging.Limit
	if end > len(visible) {
		end = len(visible)
	}

	return helper.JsonList(c, "Notices retrieved", visible[start:end], helper.BuildPagination(total, paging.Page, paging.Limit))
}

// Detail conceals out-of-audience and unpublished notices as 404 and
// records the view.
func (ctl *NoticeController) Detail(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notice id")
	}

	var notice model.NoticeModel
	if err := ctl.DB.First(&notice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Notice not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch notice")
	}

	if !service.VisibleTo(&notice, ctl.viewerFor(p, links), time.Now()) {
		return fiber.NewError(fiber.StatusNotFound, "Notice not found")
	}

	// Record the view once per user.
	userID := p.UserID.String()
	seen := false
	for _, v := range notice.ViewedBy {
		if v == userID {
			seen = true
			break
		}
	}
	if !seen {
		notice.ViewedBy = append(notice.ViewedBy, userID)
		ctl.DB.Model(&notice).UpdateColumn("viewed_by", notice.ViewedBy)
	}

	return helper.JsonOK(c, "Notice detail", dto.FromNoticeModel(&notice))
}

/* =======================================================
   CREATE / UPDATE / DELETE
======================================================= */

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (ctl *NoticeController) Create(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	var req dto.CreateNoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateNotice.Struct(req); err != nil {
		return err
	}

	// Teachers may only address their own classes.
	if p.IsTeacher() {
		if len(req.TargetClassIDs) == 0 {
			return fiber.NewError(fiber.StatusForbidden, "Teachers must target the notice at their assigned classes")
		}
		classScope := helperAuth.ClassRecordScope(p, links, "class_id")
		for _, raw := range req.TargetClassIDs {
			classID, err := uuid.Parse(raw)
			if err != nil || !classScope.Allows(classID) {
				return fiber.NewError(fiber.StatusForbidden, "Notices may only target your assigned classes")
			}
		}
	}

	publishDate, err := parseDatePtr(req.PublishDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid publish date")
	}
	expiryDate, err := parseDatePtr(req.ExpiryDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid expiry date")
	}
	if publishDate != nil && expiryDate != nil && expiryDate.Before(*publishDate) {
		return fiber.NewError(fiber.StatusBadRequest, "Expiry date must not precede the publish date")
	}

	notice := &model.NoticeModel{
		Title:          req.Title,
		Content:        req.Content,
		TargetAudience: dto.ToStringArray(req.TargetAudience),
		TargetClassIDs: dto.ToStringArray(req.TargetClassIDs),
		PublishDate:    publishDate,
		ExpiryDate:     expiryDate,
		CreatedBy:      p.UserID,
	}
	if req.IsPublished != nil {
		notice.IsPublished = *req.IsPublished
	}
	if req.IsPinned != nil {
		notice.IsPinned = *req.IsPinned
	}

	if err := ctl.DB.Create(notice).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create notice")
	}
	return helper.JsonCreated(c, "Notice created", dto.FromNoticeModel(notice))
}

func (ctl *NoticeController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notice id")
	}

	var req dto.UpdateNoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateNotice.Struct(req); err != nil {
		return err
	}

	var notice model.NoticeModel
	if err := ctl.DB.First(&notice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Notice not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch notice")
	}

	if req.Title != nil {
		notice.Title = *req.Title
	}
	if req.Content != nil {
		notice.Content = *req.Content
	}
	if req.TargetAudience != nil {
		notice.TargetAudience = dto.ToStringArray(*req.TargetAudience)
	}
	if req.TargetClassIDs != nil {
		notice.TargetClassIDs = dto.ToStringArray(*req.TargetClassIDs)
	}
	if req.IsPublished != nil {
		notice.IsPublished = *req.IsPublished
	}
	if req.IsPinned != nil {
		notice.IsPinned = *req.IsPinned
	}
	if req.PublishDate != nil {
		publishDate, err := parseDatePtr(req.PublishDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid publish date")
		}
		notice.PublishDate = publishDate
	}
	if req.ExpiryDate != nil {
		expiryDate, err := parseDatePtr(req.ExpiryDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid expiry date")
		}
		notice.ExpiryDate = expiryDate
	}
	if notice.PublishDate != nil && notice.ExpiryDate != nil && notice.ExpiryDate.Before(*notice.PublishDate) {
		return fiber.NewError(fiber.StatusBadRequest, "Expiry date must not precede the publish date")
	}

	if err := ctl.DB.Save(&notice).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update notice")
	}
	return helper.JsonUpdated(c, "Notice updated", dto.FromNoticeModel(&notice))
}

func (ctl *NoticeController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notice id")
	}

	res := ctl.DB.Delete(&model.NoticeModel{}, "id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete notice")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Notice not found")
	}
	return helper.JsonDeleted(c, "Notice deleted", fiber.Map{"id": id})
}
