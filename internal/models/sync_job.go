package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SyncJobPending   = "pending"
	SyncJobRunning   = "running"
	SyncJobCompleted = "completed"
	SyncJobFailed    = "failed"
)

// SyncJob tracks one background match-sync run. The latest row per user also
// backs the 5-minute sync cooldown.
type SyncJob struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	Status         string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	RequestedCount int        `gorm:"not null" json:"requestedCount"`
	SyncedCount    int        `gorm:"not null;default:0" json:"syncedCount"`
	SkippedCount   int        `gorm:"not null;default:0" json:"skippedCount"`
	FailedCount    int        `gorm:"not null;default:0" json:"failedCount"`
	Error          *string    `gorm:"type:text" json:"error,omitempty"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `gorm:"index" json:"createdAt"`
	User           User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
