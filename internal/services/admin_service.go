package services

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ktsuchida/sensilog/internal/dto"
	"github.com/ktsuchida/sensilog/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// ListUsers returns all accounts paginated by creation time, newest first.
func (s *AdminService) ListUsers(limit, offset int) (*dto.AdminUserListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	var users []models.User
	err := s.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	resp := &dto.AdminUserListResponse{
		Users:   make([]dto.UserResponse, 0, len(users)),
		Total:   total,
		HasMore: int64(offset+len(users)) < total,
	}
	for i := range users {
		resp.Users = append(resp.Users, userResponse(&users[i]))
	}
	return resp, nil
}

// RecordAction appends an entry to the audit trail. Audit failures are logged
// and swallowed so they never fail the operation being audited.
func (s *AdminService) RecordAction(adminUserID uuid.UUID, targetUserID *uuid.UUID, actionType string, details map[string]interface{}) {
	action := models.AdminAction{
		AdminUserID:  adminUserID,
		TargetUserID: targetUserID,
		ActionType:   actionType,
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err == nil {
			action.Details = datatypes.JSON(raw)
		}
	}
	if err := s.db.Create(&action).Error; err != nil {
		slog.Error("Failed to record admin action",
			slog.String("action_type", actionType),
			slog.String("admin_user_id", adminUserID.String()),
			slog.String("error", err.Error()))
	}
}

// ListActions returns the audit trail, newest first.
func (s *AdminService) ListActions(limit, offset int) (*dto.AdminActionListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := s.db.Model(&models.AdminAction{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count admin actions: %w", err)
	}

	var actions []models.AdminAction
	err := s.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&actions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list admin actions: %w", err)
	}

	return &dto.AdminActionListResponse{Actions: actions, Total: total}, nil
}

// ListTeams returns every team with its member rows preloaded.
func (s *AdminService) ListTeams() (*dto.AdminTeamListResponse, error) {
	var teams []models.Team
	err := s.db.Preload("Members").Order("created_at DESC").Find(&teams).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return &dto.AdminTeamListResponse{Teams: teams}, nil
}
