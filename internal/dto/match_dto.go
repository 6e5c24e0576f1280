package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/ktsuchida/sensilog/internal/models"
)

type MatchListResponse struct {
	Matches []models.MatchRecord `json:"matches"`
	Total   int64                `json:"total"`
	HasMore bool                 `json:"hasMore"`
}

type MatchSummaryResponse struct {
	TotalMatches      int64              `json:"totalMatches"`
	Averages          MetricAverages     `json:"averages"`
	WinRate           *float64           `json:"winRate,omitempty"`
	FavoriteAgent     *string            `json:"favoriteAgent,omitempty"`
	FavoriteMap       *string            `json:"favoriteMap,omitempty"`
	RecentPerformance RecentPerformance  `json:"recentPerformance"`
}

type MetricAverages struct {
	CombatScore        *float64 `json:"combatScore,omitempty"`
	HeadshotPercentage *float64 `json:"headshotPercentage,omitempty"`
	KDRatio            *float64 `json:"kdRatio,omitempty"`
	ADR                *float64 `json:"adr,omitempty"`
}

type RecentPerformance struct {
	Trend         string  `json:"trend"`
	ChangePercent float64 `json:"changePercent"`
}

type SyncRequest struct {
	Count int `json:"count,omitempty" validate:"omitempty,gte=1,lte=20"`
}

type SyncAcceptedResponse struct {
	Message string    `json:"message"`
	JobID   uuid.UUID `json:"jobId"`
}

type SyncStatusResponse struct {
	JobID          uuid.UUID  `json:"jobId"`
	Status         string     `json:"status"`
	RequestedCount int        `json:"requestedCount"`
	SyncedCount    int        `json:"syncedCount"`
	SkippedCount   int        `json:"skippedCount"`
	FailedCount    int        `json:"failedCount"`
	Error          *string    `json:"error,omitempty"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type GenerateMockRequest struct {
	Count int `json:"count,omitempty" validate:"omitempty,gte=1,lte=100"`
}

type GenerateMockResponse struct {
	Message   string `json:"message"`
	Generated int    `json:"generated"`
}

type RateLimitResponse struct {
	Error      bool   `json:"error"`
	Message    string `json:"message"`
	Code       string `json:"code"`
	RetryAfter int    `json:"retryAfter"`
}
