package dto

import (
	"time"

	"github.com/google/uuid"
)

type LoginURLResponse struct {
	AuthURL       string `json:"authUrl"`
	State         string `json:"state"`
	IsDevelopment bool   `json:"isDevelopment"`
}

type CallbackRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state,omitempty"`
}

type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	GameName  *string   `json:"gameName,omitempty"`
	TagLine   *string   `json:"tagLine,omitempty"`
	RiotPuuid *string   `json:"riotPuuid,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
}

type ProfileResponse struct {
	UserResponse
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
