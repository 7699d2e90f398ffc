// file: internals/features/academics/materials/controller/material_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/academics/materials/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type MaterialController struct {
	DB *gorm.DB
}

func NewMaterialController(db *gorm.DB) *MaterialController {
	return &MaterialController{DB: db}
}

/* =======================================================
   LIST & DOWNLOAD
======================================================= */

// List shows the materials of classes inside the caller's scope.
func (ctl *MaterialController) List(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 10, 100)

	q := helperAuth.ClassRecordScope(p, links, "class_id").Apply(ctl.DB.Model(&model.StudyMaterialModel{}))
	if p.IsParent() {
		if len(links.ChildIDs) == 0 {
			q = ctl.DB.Model(&model.StudyMaterialModel{}).Where("1 = 0")
		} else {
			q = ctl.DB.Model(&model.StudyMaterialModel{}).
				Where("class_id IN (SELECT class_id FROM students WHERE id IN ? AND class_id IS NOT NULL)", links.ChildIDs)
		}
	}

	if classID := c.Query("class_id"); classID != "" {
		q = q.Where("class_id = ?", classID)
	}
	if subjectID := c.Query("subject_id"); subjectID != "" {
		q = q.Where("subject_id = ?", subjectID)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count materials")
	}

	var materials []model.StudyMaterialModel
	if err := q.Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&materials).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list materials")
	}

	return helper.JsonList(c, "Materials retrieved", materials, helper.BuildPagination(total, paging.Page, paging.Limit))
}

// Download streams the stored file.
func (ctl *MaterialController) Download(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid material id")
	}

	var material model.StudyMaterialModel
	if err := ctl.DB.First(&material, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Material not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch material")
	}

	if !p.IsAdmin() && !p.IsParent() {
		if !helperAuth.ClassRecordScope(p, links, "class_id").Allows(material.ClassID) {
			return fiber.NewError(fiber.StatusNotFound, "Material not found")
		}
	}

	return c.Download(material.FilePath, material.FileName)
}

/* =======================================================
   UPLOAD / DELETE
======================================================= */

// Upload stores a material for a class and subject. Teachers may only
// upload into classes they are assigned to.
func (ctl *MaterialController) Upload(c *fiber.Ctx) error {
	p, links, err := helperAuth.RequirePrincipalLinks(c, ctl.DB)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Material title is required")
	}
	classID, err := uuid.Parse(c.FormValue("class_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid class id")
	}
	subjectID, err := uuid.Parse(c.FormValue("subject_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid subject id")
	}

	if p.IsTeacher() && !helperAuth.ClassRecordScope(p, links, "class_id").Allows(classID) {
		return fiber.NewError(fiber.StatusForbidden, "You are not assigned to this class")
	}

	var count int64
	ctl.DB.Table("subjects").Where("id = ? AND deleted_at IS NULL", subjectID).Count(&count)
	if count == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Subject not found")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Material file is required")
	}

	uploaded, err := helper.SaveUpload(helper.UploadStudyMaterial, fh)
	if err != nil {
		return err
	}

	material := &model.StudyMaterialModel{
		Title:      title,
		ClassID:    classID,
		SubjectID:  subjectID,
		FileName:   uploaded.OriginalName,
		FilePath:   uploaded.Path,
		MimeType:   uploaded.MimeType,
		FileSize:   uploaded.Size,
		UploadedBy: p.UserID,
	}
	if desc := strings.TrimSpace(c.FormValue("description")); desc != "" {
		material.Description = &desc
	}

	if err := ctl.DB.Create(material).Error; err != nil {
		helper.RemoveUpload(uploaded.Path)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save material")
	}

	return helper.JsonCreated(c, "Material uploaded", material)
}

// Delete is allowed for admins and the original uploader.
func (ctl *MaterialController) Delete(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid material id")
	}

	var material model.StudyMaterialModel
	if err := ctl.DB.First(&material, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Material not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch material")
	}

	if !p.IsAdmin() && material.UploadedBy != p.UserID {
		return fiber.NewError(fiber.StatusForbidden, "Only the uploader or an admin may delete this material")
	}

	if err := ctl.DB.Delete(&material).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete material")
	}
	helper.RemoveUpload(material.FilePath)

	return helper.JsonDeleted(c, "Material deleted", fiber.Map{"id": material.ID})
}
