package utils

import (
	"elearning/database"
	"elearning/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// PurgeExpiredPendingUsers hard-deletes pending registrations whose
// verification window has passed. Expired tokens are also cleaned up lazily
// on the next verification attempt; this sweep keeps the table from growing
// when abandoned registrations never come back.
func PurgeExpiredPendingUsers() {
	result := database.Database.Db.Unscoped().
		Where("expires_at < ?", time.Now()).
		Delete(&models.PendingUser{})

	if result.Error != nil {
		log.Printf("Pending user cleanup failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Pending user cleanup removed %d expired registrations", result.RowsAffected)
	}
}

// InitializeCleanupScheduler starts the hourly pending-registration sweep.
func InitializeCleanupScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", PurgeExpiredPendingUsers); err != nil {
		log.Printf("Failed to schedule pending user cleanup: %v", err)
		return c
	}

	c.Start()
	log.Println("Pending user cleanup scheduler started.")
	return c
}
