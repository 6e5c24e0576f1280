package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a request body against its struct tags. Handlers call this
// right after BodyParser so nothing downstream sees unvalidated data.
func Validate(s interface{}) error {
	return validate.Struct(s)
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status      string         `json:"status"`
	Timestamp   string         `json:"timestamp"`
	Uptime      float64        `json:"uptime"`
	Environment string         `json:"environment"`
	Version     string         `json:"version"`
	Database    DatabaseHealth `json:"database"`
}

type DatabaseHealth struct {
	Status         string `json:"status"`
	ResponseTimeMs int64  `json:"responseTime"`
}
