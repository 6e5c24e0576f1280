package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSettingsRecordRequest struct {
	Sensitivity    float64  `json:"sensitivity" validate:"gte=0,lte=10"`
	DPI            int      `json:"dpi" validate:"gte=100,lte=10000"`
	MouseDevice    *string  `json:"mouseDevice,omitempty" validate:"omitempty,max=100"`
	KeyboardDevice *string  `json:"keyboardDevice,omitempty" validate:"omitempty,max=100"`
	Mousepad       *string  `json:"mousepad,omitempty" validate:"omitempty,max=100"`
	Tags           []string `json:"tags,omitempty" validate:"omitempty,dive,max=50"`
	Comment        *string  `json:"comment,omitempty" validate:"omitempty,max=500"`
}

// UpdateSettingsRecordRequest is a partial update; nil fields are left as is.
type UpdateSettingsRecordRequest struct {
	Sensitivity    *float64 `json:"sensitivity,omitempty" validate:"omitempty,gte=0,lte=10"`
	DPI            *int     `json:"dpi,omitempty" validate:"omitempty,gte=100,lte=10000"`
	MouseDevice    *string  `json:"mouseDevice,omitempty" validate:"omitempty,max=100"`
	KeyboardDevice *string  `json:"keyboardDevice,omitempty" validate:"omitempty,max=100"`
	Mousepad       *string  `json:"mousepad,omitempty" validate:"omitempty,max=100"`
	Tags           []string `json:"tags,omitempty" validate:"omitempty,dive,max=50"`
	Comment        *string  `json:"comment,omitempty" validate:"omitempty,max=500"`
}

type SettingsRecordResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"userId"`
	Sensitivity    float64   `json:"sensitivity"`
	DPI            int       `json:"dpi"`
	MouseDevice    *string   `json:"mouseDevice,omitempty"`
	KeyboardDevice *string   `json:"keyboardDevice,omitempty"`
	Mousepad       *string   `json:"mousepad,omitempty"`
	Tags           []string  `json:"tags"`
	Comment        *string   `json:"comment,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type SettingsRecordListResponse struct {
	Records []SettingsRecordResponse `json:"records"`
	Total   int64                    `json:"total"`
	HasMore bool                     `json:"hasMore"`
}

type SuggestionsResponse struct {
	Mice      []string `json:"mice"`
	Keyboards []string `json:"keyboards"`
	Mousepads []string `json:"mousepads"`
}
