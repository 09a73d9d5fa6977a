package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/pashudrishti/internal/models"
	"gorm.io/gorm"
)

// PurgeOlderThan deletes system_logs rows older than days and reports how many went.
// A non-positive days keeps everything, matching StartRetention.
func PurgeOlderThan(db *gorm.DB, days int, now time.Time) (int64, error) {
	if days <= 0 {
		return 0, nil
	}
	cutoff := now.AddDate(0, 0, -days)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}

// StartRetention purges old system_logs once a day until done is closed.
// A non-positive days keeps logs forever.
func StartRetention(db *gorm.DB, days int, done <-chan struct{}) {
	if days <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := PurgeOlderThan(db, days, time.Now())
				if err != nil {
					slog.Error("log retention failed", "action", "log_retention", "error", err)
				} else if deleted > 0 {
					slog.Info("log retention completed", "deleted", deleted, "retention_days", days)
				}
			case <-done:
				return
			}
		}
	}()
}
