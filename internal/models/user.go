package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is created on first successful Riot login and updated on every
// subsequent login. Cached provider tokens are stored encrypted.
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email          string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	RiotPuuid      *string        `gorm:"size:78;uniqueIndex" json:"riotPuuid,omitempty"`
	GameName       *string        `gorm:"size:16" json:"gameName,omitempty"`
	TagLine        *string        `gorm:"size:5" json:"tagLine,omitempty"`
	AccessToken    string         `gorm:"type:text" json:"-"`
	RefreshToken   string         `gorm:"type:text" json:"-"`
	TokenExpiresAt *time.Time     `json:"-"`
	IsAdmin        bool           `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
