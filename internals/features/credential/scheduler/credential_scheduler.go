package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	"tapwork_backend/internals/features/credential/model"
)

// StartExpirySweeper deactivates credentials past their expiry once a
// day. Resolve already rejects expired tokens; the sweep just keeps the
// active flag honest for listings and the unique-active invariant.
func StartExpirySweeper(db *gorm.DB) {
	go func() {
		for {
			log.Println("[CLEANUP] Sweeping expired credentials...")

			res := db.Model(&model.CredentialModel{}).
				Where("credential_is_active = TRUE AND credential_expires_at IS NOT NULL AND credential_expires_at < ?", time.Now().UTC()).
				Update("credential_is_active", false)
			if res.Error != nil {
				log.Printf("[CLEANUP ERROR] credential sweep failed: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[CLEANUP] %d expired credentials deactivated", res.RowsAffected)
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}
