package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SettingsRecord is a user-authored snapshot of input-device configuration.
// Updates overwrite in place; no immutable history is kept.
type SettingsRecord struct {
	ID             uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID                   `gorm:"type:uuid;not null;index" json:"userId"`
	Sensitivity    float64                     `gorm:"type:decimal(10,4);not null" json:"sensitivity"`
	DPI            int                         `gorm:"not null" json:"dpi"`
	MouseDevice    *string                     `gorm:"size:100" json:"mouseDevice,omitempty"`
	KeyboardDevice *string                     `gorm:"size:100" json:"keyboardDevice,omitempty"`
	Mousepad       *string                     `gorm:"size:100" json:"mousepad,omitempty"`
	Tags           datatypes.JSONSlice[string] `gorm:"type:jsonb;default:'[]'" json:"tags"`
	Comment        *string                     `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt      time.Time                   `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time                   `json:"updatedAt"`
	User           User                        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	TagLabels      []Tag                       `gorm:"many2many:settings_record_tags" json:"-"`
}
