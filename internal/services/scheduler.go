package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/ktsuchida/sensilog/internal/models"
	"gorm.io/gorm"
)

const (
	logRetention     = 30 * 24 * time.Hour
	syncJobRetention = 7 * 24 * time.Hour
)

// StartScheduler runs the daily maintenance jobs: pruning old application
// logs and finished sync jobs. The returned scheduler must be shut down on
// exit.
func StartScheduler(db *gorm.DB) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			cleanupSystemLogs(db)
			cleanupSyncJobs(db)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule cleanup job: %w", err)
	}

	sched.Start()
	return sched, nil
}

func cleanupSystemLogs(db *gorm.DB) {
	cutoff := time.Now().Add(-logRetention)
	result := db.Where("created_at < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Error("Failed to clean up system logs", slog.String("error", result.Error.Error()))
		return
	}
	if result.RowsAffected > 0 {
		slog.Info("Cleaned up old system logs", slog.Int64("deleted", result.RowsAffected))
	}
}

func cleanupSyncJobs(db *gorm.DB) {
	cutoff := time.Now().Add(-syncJobRetention)
	result := db.Where("status IN ? AND created_at < ?",
		[]string{models.SyncJobCompleted, models.SyncJobFailed}, cutoff).
		Delete(&models.SyncJob{})
	if result.Error != nil {
		slog.Error("Failed to clean up sync jobs", slog.String("error", result.Error.Error()))
		return
	}
	if result.RowsAffected > 0 {
		slog.Info("Cleaned up old sync jobs", slog.Int64("deleted", result.RowsAffected))
	}
}
