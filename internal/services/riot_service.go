package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ktsuchida/sensilog/internal/dto"
	"github.com/ktsuchida/sensilog/internal/models"
	"github.com/ktsuchida/sensilog/internal/riot"
	"gorm.io/gorm"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrPuuidTaken     = errors.New("riot account is already linked to another user")
	ErrNotLinked      = errors.New("no riot account is linked")
)

// RiotService handles account lookup and linking against the Riot API.
type RiotService struct {
	db     *gorm.DB
	client riot.Client
}

func NewRiotService(db *gorm.DB, client riot.Client) *RiotService {
	return &RiotService{db: db, client: client}
}

func (s *RiotService) Search(ctx context.Context, gameName, tagLine string) (*dto.PlayerSearchResponse, error) {
	account, err := s.client.AccountByRiotID(ctx, gameName, tagLine)
	if err != nil {
		if errors.Is(err, riot.ErrNotFound) {
			return &dto.PlayerSearchResponse{GameName: gameName, TagLine: tagLine}, nil
		}
		return nil, fmt.Errorf("account lookup failed: %w", err)
	}
	return &dto.PlayerSearchResponse{
		Puuid:    account.Puuid,
		GameName: account.GameName,
		TagLine:  account.TagLine,
		Found:    true,
	}, nil
}

// Link resolves the riot id and attaches its puuid to the user. A puuid can
// only belong to one account at a time.
func (s *RiotService) Link(ctx context.Context, userID uuid.UUID, gameName, tagLine string) (*dto.LinkAccountResponse, error) {
	account, err := s.client.AccountByRiotID(ctx, gameName, tagLine)
	if err != nil {
		if errors.Is(err, riot.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("account lookup failed: %w", err)
	}

	var existing models.User
	err = s.db.Where("riot_puuid = ? AND id <> ?", account.Puuid, userID).First(&existing).Error
	if err == nil {
		return nil, ErrPuuidTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check puuid ownership: %w", err)
	}

	updates := map[string]interface{}{
		"riot_puuid": account.Puuid,
		"game_name":  account.GameName,
		"tag_line":   account.TagLine,
	}
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to link riot account: %w", err)
	}

	return &dto.LinkAccountResponse{
		Message: "Riot account linked",
		Linked:  true,
		Puuid:   account.Puuid,
	}, nil
}

func (s *RiotService) Unlink(userID uuid.UUID) (*dto.UnlinkAccountResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.RiotPuuid == nil {
		return nil, ErrNotLinked
	}

	updates := map[string]interface{}{
		"riot_puuid": nil,
		"game_name":  nil,
		"tag_line":   nil,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to unlink riot account: %w", err)
	}

	return &dto.UnlinkAccountResponse{Message: "Riot account unlinked", Unlinked: true}, nil
}

func (s *RiotService) Status(userID uuid.UUID) (*dto.LinkStatusResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	resp := &dto.LinkStatusResponse{Linked: user.RiotPuuid != nil}
	if resp.Linked {
		resp.GameName = user.GameName
		resp.TagLine = user.TagLine
		resp.Puuid = user.RiotPuuid
	}
	return resp, nil
}
