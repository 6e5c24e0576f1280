package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ktsuchida/sensilog/internal/dto"
	"github.com/ktsuchida/sensilog/internal/models"
	"github.com/ktsuchida/sensilog/internal/riot"
	"gorm.io/gorm"
)

type MatchService struct {
	db *gorm.DB
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{db: db}
}

type MatchFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Maps      []string
	Agents    []string
	GameMode  string
	Limit     int
	Offset    int
}

func (s *MatchService) List(userID uuid.UUID, filter MatchFilter) ([]models.MatchRecord, int64, error) {
	query := s.db.Model(&models.MatchRecord{}).Where("user_id = ?", userID)
	if filter.StartDate != nil {
		query = query.Where("game_start_time >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("game_start_time <= ?", endOfDay(*filter.EndDate))
	}
	if len(filter.Maps) > 0 {
		query = query.Where("map_name IN ?", filter.Maps)
	}
	if len(filter.Agents) > 0 {
		query = query.Where("agent_name IN ?", filter.Agents)
	}
	if filter.GameMode != "" {
		query = query.Where("game_mode = ?", filter.GameMode)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count matches: %w", err)
	}

	var matches []models.MatchRecord
	err := query.Order("game_start_time DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&matches).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, total, nil
}

// Summary aggregates the filtered match set: per-metric means over non-null
// values, win rate, most-played agent and map, and a recent-form trend
// comparing the latest 10 matches against the 10 before them.
func (s *MatchService) Summary(userID uuid.UUID, startDate, endDate *time.Time) (*dto.MatchSummaryResponse, error) {
	query := s.db.Where("user_id = ?", userID)
	if startDate != nil {
		query = query.Where("game_start_time >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("game_start_time <= ?", endOfDay(*endDate))
	}

	var matches []models.MatchRecord
	if err := query.Order("game_start_time DESC").Find(&matches).Error; err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}

	resp := &dto.MatchSummaryResponse{
		TotalMatches:      int64(len(matches)),
		RecentPerformance: dto.RecentPerformance{Trend: "stable"},
	}
	if len(matches) == 0 {
		return resp, nil
	}

	resp.Averages = dto.MetricAverages{
		CombatScore:        meanOf(matches, func(m *models.MatchRecord) *float64 { return m.CombatScore }),
		HeadshotPercentage: meanOf(matches, func(m *models.MatchRecord) *float64 { return m.HeadshotPercentage }),
		KDRatio:            meanOf(matches, func(m *models.MatchRecord) *float64 { return m.KDRatio }),
		ADR:                meanOf(matches, func(m *models.MatchRecord) *float64 { return m.ADR }),
	}

	wins := 0
	for _, m := range matches {
		if m.TeamWon != nil && *m.TeamWon {
			wins++
		}
	}
	winRate := float64(wins) / float64(len(matches)) * 100
	resp.WinRate = &winRate

	resp.FavoriteAgent = mostFrequent(matches, func(m *models.MatchRecord) *string { return m.AgentName })
	resp.FavoriteMap = mostFrequent(matches, func(m *models.MatchRecord) *string { return m.MapName })

	resp.RecentPerformance = recentTrend(matches)
	return resp, nil
}

// GenerateMock inserts generated matches for development use, skipping match
// ids that already exist.
func (s *MatchService) GenerateMock(userID uuid.UUID, puuid string, count int) (int, error) {
	generated := 0
	for _, m := range riot.GenerateMockMatches(puuid, count) {
		inserted, err := s.InsertIfAbsent(userID, &m)
		if err != nil {
			return generated, err
		}
		if inserted {
			generated++
		}
	}
	return generated, nil
}

// InsertIfAbsent persists one transformed match unless its external id is
// already present. This is the only dedup point; concurrent syncs race here
// and lose to the unique index.
func (s *MatchService) InsertIfAbsent(userID uuid.UUID, m *riot.Match) (bool, error) {
	var count int64
	err := s.db.Model(&models.MatchRecord{}).
		Where("user_id = ? AND match_id = ?", userID, m.MatchID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check match existence: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	record := matchToRecord(userID, m)
	if err := s.db.Create(record).Error; err != nil {
		if isDuplicateKey(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert match %s: %w", m.MatchID, err)
	}
	return true, nil
}

// isDuplicateKey matches both GORM's translated duplicate error and the raw
// Postgres unique violation, which still surfaces from raw SQL paths.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func matchToRecord(userID uuid.UUID, m *riot.Match) *models.MatchRecord {
	end := m.GameEndTime
	return &models.MatchRecord{
		ID:                 uuid.New(),
		UserID:             userID,
		MatchID:            m.MatchID,
		GameStartTime:      m.GameStartTime,
		GameEndTime:        &end,
		MapName:            ptr(m.MapName),
		GameMode:           ptr(m.GameMode),
		AgentName:          ptr(m.AgentName),
		Kills:              &m.Kills,
		Deaths:             &m.Deaths,
		Assists:            &m.Assists,
		CombatScore:        &m.CombatScore,
		DamageDealt:        &m.DamageDealt,
		HeadshotCount:      &m.HeadshotCount,
		BodyshotCount:      &m.BodyshotCount,
		LegshotCount:       &m.LegshotCount,
		KDRatio:            &m.KDRatio,
		ADR:                &m.ADR,
		HeadshotPercentage: &m.HeadshotPercentage,
		RoundsPlayed:       &m.RoundsPlayed,
		TeamWon:            &m.TeamWon,
		RankTier:           m.RankTier,
	}
}

func meanOf(matches []models.MatchRecord, metric func(*models.MatchRecord) *float64) *float64 {
	sum, n := 0.0, 0
	for i := range matches {
		if v := metric(&matches[i]); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := sum / float64(n)
	return &mean
}

func mostFrequent(matches []models.MatchRecord, field func(*models.MatchRecord) *string) *string {
	counts := make(map[string]int)
	for i := range matches {
		if v := field(&matches[i]); v != nil && *v != "" {
			counts[*v]++
		}
	}
	var best string
	bestCount := 0
	for name, count := range counts {
		if count > bestCount {
			best, bestCount = name, count
		}
	}
	if bestCount == 0 {
		return nil
	}
	return &best
}

// recentTrend compares the newest 10 matches with the 10 preceding them using
// combat score. Fewer than 5 matches on either side reads as stable.
func recentTrend(matches []models.MatchRecord) dto.RecentPerformance {
	perf := dto.RecentPerformance{Trend: "stable"}

	recent := matches
	if len(recent) > 10 {
		recent = recent[:10]
	}
	var older []models.MatchRecord
	if len(matches) > 10 {
		older = matches[10:]
		if len(older) > 10 {
			older = older[:10]
		}
	}
	if len(recent) < 5 || len(older) < 5 {
		return perf
	}

	recentAvg := meanOf(recent, func(m *models.MatchRecord) *float64 { return m.CombatScore })
	olderAvg := meanOf(older, func(m *models.MatchRecord) *float64 { return m.CombatScore })
	if recentAvg == nil || olderAvg == nil || *olderAvg == 0 {
		return perf
	}

	switch {
	case *recentAvg > *olderAvg*1.05:
		perf.Trend = "improving"
	case *recentAvg < *olderAvg*0.95:
		perf.Trend = "declining"
	}
	perf.ChangePercent = (*recentAvg - *olderAvg) / *olderAvg * 100
	return perf
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
