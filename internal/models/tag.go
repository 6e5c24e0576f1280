package models

import "time"

// Tag is a globally unique named label. The many-to-many link to settings
// records lives in settings_record_tags.
type Tag struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Color     string    `gorm:"size:7;not null;default:'#007bff'" json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}
