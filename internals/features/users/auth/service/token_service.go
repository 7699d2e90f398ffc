// file: internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	authModel "sekolahku_backend/internals/features/users/auth/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

var (
	ErrRefreshInvalid = errors.New("refresh token invalid or revoked")
)

func buildAccessClaims(u *userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":       u.ID.String(),
		"user_name": u.UserName,
		"role":      u.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(configs.JWTExpiry).Unix(),
	}
}

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": userID.String(),
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": now.Add(configs.JWTRefreshExpiry).Unix(),
	}
}

// GenerateTokenPair signs an access+refresh pair and persists the refresh
// token so it can be revoked.
func GenerateTokenPair(db *gorm.DB, u *userModel.UserModel) (access string, refresh string, err error) {
	now := time.Now()

	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(u, now)).
		SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", "", err
	}
	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(u.ID, now)).
		SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return "", "", err
	}

	row := authModel.RefreshTokenModel{
		UserID:    u.ID,
		Token:     refresh,
		ExpiresAt: now.Add(configs.JWTRefreshExpiry),
	}
	if err := db.Create(&row).Error; err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// RotateRefreshToken validates a refresh token, revokes it and issues a new
// pair for the same user.
func RotateRefreshToken(db *gorm.DB, refreshToken string) (string, string, *userModel.UserModel, error) {
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(refreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTRefreshSecret), nil
	}); err != nil {
		return "", "", nil, ErrRefreshInvalid
	}

	var row authModel.RefreshTokenModel
	if err := db.Where("token = ? AND revoked_at IS NULL AND expires_at > ?", refreshToken, time.Now()).
		First(&row).Error; err != nil {
		return "", "", nil, ErrRefreshInvalid
	}

	var u userModel.UserModel
	if err := db.Where("id = ? AND is_active = TRUE", row.UserID).First(&u).Error; err != nil {
		return "", "", nil, ErrRefreshInvalid
	}

	now := time.Now()
	if err := db.Model(&row).Update("revoked_at", &now).Error; err != nil {
		return "", "", nil, err
	}

	access, refresh, err := GenerateTokenPair(db, &u)
	if err != nil {
		return "", "", nil, err
	}
	return access, refresh, &u, nil
}

// RevokeUserRefreshTokens revokes all live refresh tokens of a user.
func RevokeUserRefreshTokens(db *gorm.DB, userID uuid.UUID) error {
	now := time.Now()
	return db.Model(&authModel.RefreshTokenModel{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", &now).Error
}
