package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ktsuchida/sensilog/internal/dto"
	"github.com/ktsuchida/sensilog/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrRecordNotFound = errors.New("settings record not found")

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// SettingsFilter narrows a record listing. Date bounds are inclusive; EndDate
// covers the whole named day.
type SettingsFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

func (s *SettingsService) List(userID uuid.UUID, filter SettingsFilter) ([]models.SettingsRecord, int64, error) {
	query := s.db.Model(&models.SettingsRecord{}).Where("user_id = ?", userID)
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", endOfDay(*filter.EndDate))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count settings records: %w", err)
	}

	var records []models.SettingsRecord
	err := query.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settings records: %w", err)
	}
	return records, total, nil
}

func (s *SettingsService) Create(userID uuid.UUID, req *dto.CreateSettingsRecordRequest) (*models.SettingsRecord, error) {
	record := models.SettingsRecord{
		ID:             uuid.New(),
		UserID:         userID,
		Sensitivity:    req.Sensitivity,
		DPI:            req.DPI,
		MouseDevice:    req.MouseDevice,
		KeyboardDevice: req.KeyboardDevice,
		Mousepad:       req.Mousepad,
		Tags:           datatypes.NewJSONSlice(orEmpty(req.Tags)),
		Comment:        req.Comment,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create settings record: %w", err)
	}
	return &record, nil
}

func (s *SettingsService) Get(userID, recordID uuid.UUID) (*models.SettingsRecord, error) {
	var record models.SettingsRecord
	err := s.db.Where("id = ? AND user_id = ?", recordID, userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings record: %w", err)
	}
	return &record, nil
}

// Update overwrites the supplied fields in place; history is not preserved.
func (s *SettingsService) Update(userID, recordID uuid.UUID, req *dto.UpdateSettingsRecordRequest) (*models.SettingsRecord, error) {
	record, err := s.Get(userID, recordID)
	if err != nil {
		return nil, err
	}

	if req.Sensitivity != nil {
		record.Sensitivity = *req.Sensitivity
	}
	if req.DPI != nil {
		record.DPI = *req.DPI
	}
	if req.MouseDevice != nil {
		record.MouseDevice = req.MouseDevice
	}
	if req.KeyboardDevice != nil {
		record.KeyboardDevice = req.KeyboardDevice
	}
	if req.Mousepad != nil {
		record.Mousepad = req.Mousepad
	}
	if req.Tags != nil {
		record.Tags = datatypes.NewJSONSlice(req.Tags)
	}
	if req.Comment != nil {
		record.Comment = req.Comment
	}

	if err := s.db.Save(record).Error; err != nil {
		return nil, fmt.Errorf("failed to update settings record: %w", err)
	}
	return record, nil
}

func (s *SettingsService) Delete(userID, recordID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", recordID, userID).Delete(&models.SettingsRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete settings record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Suggestions returns common gaming device names for input autocompletion.
func (s *SettingsService) Suggestions() *dto.SuggestionsResponse {
	return &dto.SuggestionsResponse{
		Mice: []string{
			"Logitech G Pro X Superlight",
			"Razer DeathAdder V3",
			"SteelSeries Rival 600",
			"Corsair M65 RGB Elite",
			"Zowie EC2",
			"Glorious Model O",
			"HyperX Pulsefire Haste",
		},
		Keyboards: []string{
			"Logitech G Pro X",
			"Razer Huntsman Elite",
			"SteelSeries Apex Pro",
			"Corsair K70 RGB",
			"Ducky One 2 Mini",
			"HyperX Alloy FPS Pro",
			"Keychron K6",
		},
		Mousepads: []string{
			"SteelSeries QcK+",
			"Razer Goliathus Extended",
			"Corsair MM300",
			"HyperX Fury S",
			"Zowie G-SR",
			"Glorious 3XL",
			"Artisan Hayate Otsu",
		},
	}
}

func orEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
