package logging

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/ozanatli/microsite-backend/internal/models"
)

// StartCleanup schedules a nightly job that deletes system_logs older than
// 30 days. The returned cron must be stopped on shutdown.
func StartCleanup(db *gorm.DB) *cron.Cron {
	c := cron.New()

	c.AddFunc("0 3 * * *", func() {
		cutoff := time.Now().AddDate(0, 0, -30)
		result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
		if result.Error != nil {
			slog.Error("log cleanup failed", "error", result.Error)
		} else if result.RowsAffected > 0 {
			slog.Info("log cleanup completed", "deleted", result.RowsAffected)
		}
	})

	c.Start()
	return c
}
