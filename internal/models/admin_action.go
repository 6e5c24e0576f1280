package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AdminAction is the audit trail for administrative operations.
type AdminAction struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AdminUserID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"adminUserId"`
	TargetUserID *uuid.UUID     `gorm:"type:uuid;index" json:"targetUserId,omitempty"`
	ActionType   string         `gorm:"size:50;not null" json:"actionType"`
	ResourceType *string        `gorm:"size:50" json:"resourceType,omitempty"`
	ResourceID   *uuid.UUID     `gorm:"type:uuid" json:"resourceId,omitempty"`
	Details      datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"createdAt"`
	AdminUser    User           `gorm:"foreignKey:AdminUserID" json:"-"`
}
