package models

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID          int          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string       `gorm:"size:100;not null" json:"name"`
	Description *string      `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	Members     []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

type TeamMember struct {
	TeamID   int       `gorm:"primaryKey" json:"teamId"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	Role     string    `gorm:"size:20;not null;default:'member'" json:"role"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joinedAt"`
	User     User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
