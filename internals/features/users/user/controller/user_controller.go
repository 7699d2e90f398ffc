// file: internals/features/users/user/controller/user_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authService "sekolahku_backend/internals/features/users/auth/service"
	userDTO "sekolahku_backend/internals/features/users/user/dto"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

var validate = validator.New()

var userSortColumns = map[string]string{
	"name":       "user_name",
	"email":      "email",
	"role":       "role",
	"created_at": "created_at",
}

/* =========================================================
   LIST  GET /api/users
========================================================= */
func (h *UserController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)
	q := h.DB.WithContext(c.Context()).Model(&userModel.UserModel{})

	if role := strings.TrimSpace(c.Query("role")); role != "" {
		q = q.Where("role = ?", role)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("is_active = ?", status == "active")
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("user_name ILIKE ? OR email ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to count users")
	}

	var rows []userModel.UserModel
	if err := q.Order(helper.ResolveSort(c, userSortColumns, "created_at desc")).
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list users")
	}

	return helper.JsonList(c, "", userDTO.FromUserModels(rows),
		helper.BuildPagination(total, paging.Page, paging.Limit))
}

/* =========================================================
   DETAIL  GET /api/users/:id
========================================================= */
func (h *UserController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}
	var u userModel.UserModel
	if err := h.DB.WithContext(c.Context()).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch user")
	}
	return helper.JsonOK(c, "", userDTO.FromUserModel(u))
}

/* =========================================================
   CREATE  POST /api/users
========================================================= */
func (h *UserController) Create(c *fiber.Ctx) error {
	var req userDTO.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	hashed, err := authService.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	u := userModel.UserModel{
		UserName: strings.TrimSpace(req.UserName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hashed,
		Role:     req.Role,
		Phone:    req.Phone,
		Address:  req.Address,
		IsActive: true,
	}
	if err := h.DB.WithContext(c.Context()).Create(&u).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "Email is already registered")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
	}
	return helper.JsonCreated(c, "User created", userDTO.FromUserModel(u))
}

/* =========================================================
   UPDATE  PUT /api/users/:id
========================================================= */
func (h *UserController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	var req userDTO.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	var u userModel.UserModel
	db := h.DB.WithContext(c.Context())
	if err := db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch user")
	}

	req.Apply(&u)
	if err := db.Save(&u).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "Email is already registered")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update user")
	}
	return helper.JsonUpdated(c, "User updated", userDTO.FromUserModel(u))
}

/* =========================================================
   DELETE  DELETE /api/users/:id  (soft: deactivate)
========================================================= */
func (h *UserController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}
	res := h.DB.WithContext(c.Context()).
		Model(&userModel.UserModel{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to deactivate user")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	return helper.JsonDeleted(c, "User deactivated", fiber.Map{"id": id})
}

/* =========================================================
   PROFILE IMAGE  POST /api/users/:id/profile-image
========================================================= */
func (h *UserController) UploadProfileImage(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	fh, err := c.FormFile("profileImage")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing profileImage file")
	}
	uploaded, err := helper.SaveUpload(helper.UploadProfileImage, fh)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	db := h.DB.WithContext(c.Context())
	var u userModel.UserModel
	if err := db.First(&u, "id = ?", id).Error; err != nil {
		helper.RemoveUpload(uploaded.Path)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch user")
	}

	old := u.ProfileImage
	if err := db.Model(&u).Update("profile_image", uploaded.Path).Error; err != nil {
		helper.RemoveUpload(uploaded.Path)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to store profile image")
	}
	if old != nil {
		helper.RemoveUpload(*old)
	}
	return helper.JsonOK(c, "Profile image updated", uploaded)
}
