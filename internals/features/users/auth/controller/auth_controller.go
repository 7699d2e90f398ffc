// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authDTO "sekolahku_backend/internals/features/users/auth/dto"
	authModel "sekolahku_backend/internals/features/users/auth/model"
	authService "sekolahku_backend/internals/features/users/auth/service"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

type AuthController struct {
	DB *gorm.DB
}

var validate = validator.New()

/* =========================================================
   LOGIN  POST /api/auth/login
========================================================= */
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	var u userModel.UserModel
	if err := h.DB.WithContext(c.Context()).
		Where("LOWER(email) = LOWER(?)", strings.TrimSpace(req.Email)).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up user")
	}
	if !u.IsActive {
		return fiber.NewError(fiber.StatusUnauthorized, "Your account has been deactivated")
	}
	if !authService.CheckPassword(u.Password, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}

	access, refresh, err := authService.GenerateTokenPair(h.DB.WithContext(c.Context()), &u)
	if err != nil {
		log.Printf("[ERROR] token pair: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to issue tokens")
	}

	return helper.JsonOK(c, "Login successful", authDTO.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         authDTO.FromUserModel(u),
	})
}

/* =========================================================
   REGISTER  POST /api/auth/register  (admin only)
========================================================= */
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
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
		IsActive: true,
	}

	if err := h.DB.WithContext(c.Context()).Create(&u).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "Email is already registered")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.JsonCreated(c, "User registered", authDTO.FromUserModel(u))
}

/* =========================================================
   GOOGLE SIGN-IN  POST /api/auth/google
========================================================= */
func (h *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req authDTO.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	profile, err := authService.VerifyGoogleIDToken(req.IDToken)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid Google ID token")
	}

	db := h.DB.WithContext(c.Context())
	var u userModel.UserModel
	err = db.Where("google_id = ?", profile.Sub).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// fall back to email linking for accounts created by an admin
		err = db.Where("LOWER(email) = LOWER(?)", profile.Email).First(&u).Error
		if err == nil {
			_ = db.Model(&u).Update("google_id", profile.Sub).Error
			u.GoogleID = &profile.Sub
		}
	}
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "No account exists for this Google identity")
	}
	if !u.IsActive {
		return fiber.NewError(fiber.StatusUnauthorized, "Your account has been deactivated")
	}

	access, refresh, err := authService.GenerateTokenPair(db, &u)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to issue tokens")
	}
	return helper.JsonOK(c, "Login successful", authDTO.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         authDTO.FromUserModel(u),
	})
}

/* =========================================================
   ME  GET /api/auth/me
========================================================= */
func (h *AuthController) Me(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return err
	}
	var u userModel.UserModel
	if err := h.DB.WithContext(c.Context()).First(&u, "id = ?", p.UserID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	return helper.JsonOK(c, "", authDTO.FromUserModel(u))
}

/* =========================================================
   REFRESH  POST /api/auth/refresh-token
========================================================= */
func (h *AuthController) Refresh(c *fiber.Ctx) error {
	var req authDTO.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	access, refresh, u, err := authService.RotateRefreshToken(h.DB.WithContext(c.Context()), req.RefreshToken)
	if err != nil {
		if errors.Is(err, authService.ErrRefreshInvalid) {
			return fiber.NewError(fiber.StatusUnauthorized, "Refresh token invalid or expired")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to refresh token")
	}
	return helper.JsonOK(c, "Token refreshed", authDTO.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         authDTO.FromUserModel(*u),
	})
}

/* =========================================================
   LOGOUT  POST /api/auth/logout
========================================================= */
func (h *AuthController) Logout(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return err
	}
	tokenString, _ := c.Locals("token_string").(string)
	if tokenString == "" {
		return fiber.NewError(fiber.StatusBadRequest, "No token to revoke")
	}

	db := h.DB.WithContext(c.Context())
	entry := authModel.TokenBlacklistModel{
		Token:     tokenString,
		ExpiredAt: authMw.TokenExpiry(tokenString),
	}
	if err := db.Create(&entry).Error; err != nil &&
		!strings.Contains(strings.ToLower(err.Error()), "duplicate") {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to revoke token")
	}
	if err := authService.RevokeUserRefreshTokens(db, p.UserID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to revoke refresh tokens")
	}
	return helper.JsonOK(c, "Logged out", nil)
}

/* =========================================================
   CHANGE PASSWORD  POST /api/auth/change-password
========================================================= */
func (h *AuthController) ChangePassword(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return err
	}

	var req authDTO.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	db := h.DB.WithContext(c.Context())
	var u userModel.UserModel
	if err := db.First(&u, "id = ?", p.UserID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	if !authService.CheckPassword(u.Password, req.OldPassword) {
		return fiber.NewError(fiber.StatusBadRequest, "Old password is incorrect")
	}

	hashed, err := authService.HashPassword(req.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}
	if err := db.Model(&u).Update("password", hashed).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update password")
	}
	// force re-login everywhere
	_ = authService.RevokeUserRefreshTokens(db, p.UserID)

	return helper.JsonOK(c, "Password changed", nil)
}

/* =========================================================
   FORGOT / RESET PASSWORD
   POST /api/auth/forgot-password
   POST /api/auth/reset-password/:token
========================================================= */
func (h *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var req authDTO.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	db := h.DB.WithContext(c.Context())
	var u userModel.UserModel
	if err := db.Where("LOWER(email) = LOWER(?) AND is_active = TRUE", req.Email).First(&u).Error; err != nil {
		// do not reveal whether the address exists
		return helper.JsonOK(c, "If the address exists, a reset link has been sent", nil)
	}

	token, err := authService.RandomToken()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create reset token")
	}
	row := authModel.PasswordResetTokenModel{
		UserID:    u.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
	if err := db.Create(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create reset token")
	}

	// Mail delivery is handled by an external notifier reading this table.
	log.Printf("[INFO] password reset token issued for user=%s", u.ID)
	return helper.JsonOK(c, "If the address exists, a reset link has been sent", nil)
}

func (h *AuthController) ResetPassword(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Params("token"))
	if token == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing reset token")
	}

	var req authDTO.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	db := h.DB.WithContext(c.Context())
	var row authModel.PasswordResetTokenModel
	if err := db.Where("token = ? AND used_at IS NULL AND expires_at > ?", token, time.Now()).
		First(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Reset token invalid or expired")
	}

	hashed, err := authService.HashPassword(req.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&userModel.UserModel{}).
			Where("id = ?", row.UserID).
			Update("password", hashed).Error; err != nil {
			return err
		}
		now := time.Now()
		if err := tx.Model(&row).Update("used_at", &now).Error; err != nil {
			return err
		}
		return authService.RevokeUserRefreshTokens(tx, row.UserID)
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to reset password")
	}

	return helper.JsonOK(c, "Password has been reset", nil)
}
