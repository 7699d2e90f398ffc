// file: internals/features/school/teachers/controller/teacher_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/school/teachers/dto"
	"sekolahku_backend/internals/features/school/teachers/model"
	authService "sekolahku_backend/internals/features/users/auth/service"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/internals/helpers/sequence"
)

type TeacherController struct {
	DB *gorm.DB
}

func NewTeacherController(db *gorm.DB) *TeacherController {
	return &TeacherController{DB: db}
}

var validateTeacher = validator.New()

var teacherSortColumns = map[string]string{
	"employee_id":  "employee_id",
	"joining_date": "joining_date",
	"created_at":   "created_at",
}

/* =======================================================
   LIST & DETAIL
======================================================= */

func (ctl *TeacherController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)
	sort := helper.ResolveSort(c, teacherSortColumns, "employee_id ASC")

	q := ctl.DB.Model(&model.TeacherModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(employee_id) LIKE ? OR user_id IN (SELECT id FROM users WHERE LOWER(user_name) LIKE ? OR LOWER(email) LIKE ?)",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count teachers")
	}

	var teachers []model.TeacherModel
	if err := q.Order(sort).
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&teachers).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list teachers")
	}

	resp := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		resp = append(resp, ctl.withNames(&teachers[i]))
	}

	return helper.JsonList(c, "Teachers retrieved", resp, helper.BuildPagination(total, paging.Page, paging.Limit))
}

func (ctl *TeacherController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid teacher id")
	}

	var teacher model.TeacherModel
	if err := ctl.DB.First(&teacher, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Teacher not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch teacher")
	}

	return helper.JsonOK(c, "Teacher detail", ctl.withNames(&teacher))
}

func (ctl *TeacherController) withNames(t *model.TeacherModel) dto.TeacherResponse {
	resp := dto.FromTeacherModel(t)
	var user struct {
		UserName string
		Email    string
	}
	if err := ctl.DB.Table("users").
		Select("user_name, email").
		Where("id = ?", t.UserID).
		Take(&user).Error; err == nil {
		resp.UserName = user.UserName
		resp.Email = user.Email
	}
	return resp
}

/* =======================================================
   CREATE (hiring)
======================================================= */

func (ctl *TeacherController) Create(c *fiber.Ctx) error {
	var req dto.CreateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateTeacher.Struct(req); err != nil {
		return err
	}

	joiningDate, err := time.Parse("2006-01-02", req.JoiningDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid joining date")
	}

	hashed, err := authService.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	teacher := &model.TeacherModel{
		JoiningDate:     joiningDate,
		Qualification:   req.Qualification,
		ExperienceYears: req.ExperienceYears,
		Phone:           req.Phone,
		Address:         req.Address,
		Status:          model.TeacherStatusActive,
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&userModel.UserModel{}).
			Where("LOWER(email) = ?", strings.ToLower(req.Email)).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Email already registered")
		}

		user := &userModel.UserModel{
			UserName: req.UserName,
			Email:    strings.ToLower(req.Email),
			Password: hashed,
			Role:     constants.RoleTeacher,
		}
		user.SetDefaultValues()
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		employeeID, err := sequence.NextEmployeeID(tx, joiningDate.Year())
		if err != nil {
			return err
		}
		teacher.UserID = user.ID
		teacher.EmployeeID = employeeID
		return tx.Create(teacher).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "Email already registered")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hire teacher")
	}

	return helper.JsonCreated(c, "Teacher hired", ctl.withNames(teacher))
}

/* =======================================================
   UPDATE / ASSIGN / DELETE
======================================================= */

func (ctl *TeacherController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid teacher id")
	}

	var req dto.UpdateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateTeacher.Struct(req); err != nil {
		return err
	}

	var teacher model.TeacherModel
	if err := ctl.DB.First(&teacher, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Teacher not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch teacher")
	}

	req.Apply(&teacher)
	if err := ctl.DB.Save(&teacher).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update teacher")
	}

	return helper.JsonUpdated(c, "Teacher updated", ctl.withNames(&teacher))
}

// Assign replaces the teacher's class and subject assignments. Every
// referenced class and subject must exist; the rewrite takes effect on
// the teacher's next request because scopes are resolved per request.
func (ctl *TeacherController) Assign(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid teacher id")
	}

	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}

	var teacher model.TeacherModel
	if err := ctl.DB.First(&teacher, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Teacher not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch teacher")
	}

	classSet := map[uuid.UUID]struct{}{}
	for _, ca := range req.AssignedClasses {
		classSet[ca.ClassID] = struct{}{}
	}
	subjectSet := map[uuid.UUID]struct{}{}
	for _, sa := range req.AssignedSubjects {
		subjectSet[sa.SubjectID] = struct{}{}
		for _, cid := range sa.ClassIDs {
			classSet[cid] = struct{}{}
		}
	}

	if len(classSet) > 0 {
		ids := make([]uuid.UUID, 0, len(classSet))
		for cid := range classSet {
			ids = append(ids, cid)
		}
		var count int64
		ctl.DB.Table("classes").Where("id IN ? AND deleted_at IS NULL", ids).Count(&count)
		if count != int64(len(ids)) {
			return fiber.NewError(fiber.StatusBadRequest, "Assignment references an unknown class")
		}
	}
	if len(subjectSet) > 0 {
		ids := make([]uuid.UUID, 0, len(subjectSet))
		for sid := range subjectSet {
			ids = append(ids, sid)
		}
		var count int64
		ctl.DB.Table("subjects").Where("id IN ? AND deleted_at IS NULL", ids).Count(&count)
		if count != int64(len(ids)) {
			return fiber.NewError(fiber.StatusBadRequest, "Assignment references an unknown subject")
		}
	}

	rawClasses, err := json.Marshal(req.AssignedClasses)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid assignment payload")
	}
	rawSubjects, err := json.Marshal(req.AssignedSubjects)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid assignment payload")
	}

	teacher.AssignedClasses = rawClasses
	teacher.AssignedSubjects = rawSubjects
	if err := ctl.DB.Model(&teacher).Updates(map[string]any{
		"assigned_classes":  rawClasses,
		"assigned_subjects": rawSubjects,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save assignments")
	}

	return helper.JsonUpdated(c, "Assignments saved", ctl.withNames(&teacher))
}

func (ctl *TeacherController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid teacher id")
	}

	var teacher model.TeacherModel
	if err := ctl.DB.First(&teacher, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Teacher not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch teacher")
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&teacher).Error; err != nil {
			return err
		}
		return tx.Model(&userModel.UserModel{}).
			Where("id = ?", teacher.UserID).
			Update("is_active", false).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete teacher")
	}

	return helper.JsonDeleted(c, "Teacher deleted", fiber.Map{"id": teacher.ID})
}
