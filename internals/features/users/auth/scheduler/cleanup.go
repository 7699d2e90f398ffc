// file: internals/features/users/auth/scheduler/cleanup.go
package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	authModel "sekolahku_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler purges expired blacklist entries and dead
// refresh/reset tokens once an hour.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			if err := db.Unscoped().
				Where("expired_at < ?", now).
				Delete(&authModel.TokenBlacklistModel{}).Error; err != nil {
				log.Printf("[ERROR] blacklist cleanup: %v", err)
			}
			if err := db.
				Where("expires_at < ? OR revoked_at IS NOT NULL", now.Add(-24*time.Hour)).
				Delete(&authModel.RefreshTokenModel{}).Error; err != nil {
				log.Printf("[ERROR] refresh token cleanup: %v", err)
			}
			if err := db.
				Where("expires_at < ?", now).
				Delete(&authModel.PasswordResetTokenModel{}).Error; err != nil {
				log.Printf("[ERROR] reset token cleanup: %v", err)
			}
		}
	}()
}
