package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchRecord holds one external match per row. Raw counters come straight
// from the match payload; kd_ratio, adr and headshot_percentage are computed
// once at ingestion and stored denormalized. Sync never updates an existing
// row: a match id that already exists is skipped.
type MatchRecord struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	MatchID       string     `gorm:"size:50;not null;uniqueIndex" json:"matchId"`
	GameStartTime time.Time  `gorm:"not null;index" json:"gameStartTime"`
	GameEndTime   *time.Time `json:"gameEndTime,omitempty"`
	MapName       *string    `gorm:"size:50" json:"mapName,omitempty"`
	GameMode      *string    `gorm:"size:30" json:"gameMode,omitempty"`
	AgentName     *string    `gorm:"size:30" json:"agentName,omitempty"`

	Kills         *int     `json:"kills,omitempty"`
	Deaths        *int     `json:"deaths,omitempty"`
	Assists       *int     `json:"assists,omitempty"`
	CombatScore   *float64 `gorm:"type:decimal(8,2)" json:"combatScore,omitempty"`
	DamageDealt   *int     `json:"damageDealt,omitempty"`
	HeadshotCount *int     `json:"headshotCount,omitempty"`
	BodyshotCount *int     `json:"bodyshotCount,omitempty"`
	LegshotCount  *int     `json:"legshotCount,omitempty"`

	KDRatio            *float64 `gorm:"column:kd_ratio;type:decimal(5,2)" json:"kdRatio,omitempty"`
	ADR                *float64 `gorm:"column:adr;type:decimal(6,2)" json:"adr,omitempty"`
	HeadshotPercentage *float64 `gorm:"type:decimal(5,2)" json:"headshotPercentage,omitempty"`

	RoundsPlayed *int    `json:"roundsPlayed,omitempty"`
	TeamWon      *bool   `json:"teamWon,omitempty"`
	RankTier     *string `gorm:"size:20" json:"rankTier,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
