package dto

import "github.com/ktsuchida/sensilog/internal/models"

type AdminUserListResponse struct {
	Users   []UserResponse `json:"users"`
	Total   int64          `json:"total"`
	HasMore bool           `json:"hasMore"`
}

type AdminActionListResponse struct {
	Actions []models.AdminAction `json:"actions"`
	Total   int64                `json:"total"`
}

type AdminTeamListResponse struct {
	Teams []models.Team `json:"teams"`
}
