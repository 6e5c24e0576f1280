package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/ktsuchida/sensilog/internal/dto"
	"github.com/ktsuchida/sensilog/internal/models"
	"gorm.io/gorm"
)

const (
	MetricCombatScore        = "combatScore"
	MetricHeadshotPercentage = "headshotPercentage"
	MetricKDRatio            = "kdRatio"
	MetricADR                = "adr"
)

const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// Performance builds the time-bucketed series for one metric, its summary
// statistics and the settings changes inside the window. The window defaults
// to the trailing 30 days and the end date is inclusive through end of day.
func (s *AnalyticsService) Performance(userID uuid.UUID, metric string, startDate, endDate *time.Time, groupBy string) (*dto.PerformanceResponse, error) {
	start, end := performanceWindow(time.Now(), startDate, endDate)

	var matches []models.MatchRecord
	err := s.db.Where("user_id = ? AND game_start_time >= ? AND game_start_time <= ?", userID, start, end).
		Order("game_start_time ASC").
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}

	dataPoints := buildDataPoints(matches, metric, groupBy, start, end)

	values := make([]float64, len(dataPoints))
	for i, dp := range dataPoints {
		values[i] = dp.Value
	}
	summary := calculateSummary(values)

	changes, err := s.settingsChanges(userID, start, end)
	if err != nil {
		return nil, err
	}

	return &dto.PerformanceResponse{
		DataPoints:      dataPoints,
		Summary:         summary,
		SettingsChanges: changes,
	}, nil
}

// buildDataPoints partitions matches into half-open buckets advancing from
// start by the grouping width. Buckets without a single non-null metric value
// are omitted; matchCount still counts every match in the bucket.
func buildDataPoints(matches []models.MatchRecord, metric, groupBy string, start, end time.Time) []dto.AnalyticsDataPoint {
	dataPoints := []dto.AnalyticsDataPoint{}

	for cur := start; !cur.After(end); {
		next := advanceBucket(cur, groupBy)

		sum, valid, total := 0.0, 0, 0
		for i := range matches {
			t := matches[i].GameStartTime
			if t.Before(cur) || !t.Before(next) {
				continue
			}
			total++
			if v := metricValue(&matches[i], metric); v != nil {
				sum += *v
				valid++
			}
		}

		if valid > 0 {
			dataPoints = append(dataPoints, dto.AnalyticsDataPoint{
				Date:       cur.Format("2006-01-02"),
				Value:      sum / float64(valid),
				MatchCount: total,
			})
		}

		cur = next
	}

	return dataPoints
}

func advanceBucket(t time.Time, groupBy string) time.Time {
	switch groupBy {
	case "week":
		return t.AddDate(0, 0, 7)
	case "month":
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

func metricValue(m *models.MatchRecord, metric string) *float64 {
	switch metric {
	case MetricCombatScore:
		return m.CombatScore
	case MetricHeadshotPercentage:
		return m.HeadshotPercentage
	case MetricKDRatio:
		return m.KDRatio
	case MetricADR:
		return m.ADR
	default:
		return nil
	}
}

// calculateSummary reduces a value sequence to mean/max/min plus a direction:
// the halves either side of the floor(n/2) index are averaged and compared at
// a 5% threshold. An empty (or single-value) sequence is stable with zeros.
func calculateSummary(values []float64) dto.PerformanceSummary {
	summary := dto.PerformanceSummary{Trend: TrendStable}
	if len(values) == 0 {
		return summary
	}

	sum := 0.0
	best, worst := values[0], values[0]
	for _, v := range values {
		sum += v
		if v > best {
			best = v
		}
		if v < worst {
			worst = v
		}
	}
	summary.Average = sum / float64(len(values))
	summary.Best = best
	summary.Worst = worst

	if len(values) < 2 {
		return summary
	}

	mid := len(values) / 2
	firstAvg := mean(values[:mid])
	secondAvg := mean(values[mid:])

	switch {
	case secondAvg > firstAvg*1.05:
		summary.Trend = TrendImproving
	case secondAvg < firstAvg*0.95:
		summary.Trend = TrendDeclining
	}

	if firstAvg != 0 {
		summary.ChangePercent = (secondAvg - firstAvg) / firstAvg * 100
	}
	return summary
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// settingsChanges walks the record history newest-first and reports every
// adjacent pair where sensitivity, dpi or the mouse device differ.
func (s *AnalyticsService) settingsChanges(userID uuid.UUID, start, end time.Time) ([]dto.SettingsChange, error) {
	var records []models.SettingsRecord
	err := s.db.Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, start, end).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load settings records: %w", err)
	}
	return detectSettingsChanges(records), nil
}

func detectSettingsChanges(records []models.SettingsRecord) []dto.SettingsChange {
	changes := []dto.SettingsChange{}

	for i := 1; i < len(records); i++ {
		current, previous := &records[i-1], &records[i]
		var fields []dto.FieldChange

		if current.Sensitivity != previous.Sensitivity {
			fields = append(fields, dto.FieldChange{
				Field:    "sensitivity",
				OldValue: formatFloat(previous.Sensitivity),
				NewValue: formatFloat(current.Sensitivity),
			})
		}
		if current.DPI != previous.DPI {
			fields = append(fields, dto.FieldChange{
				Field:    "dpi",
				OldValue: strconv.Itoa(previous.DPI),
				NewValue: strconv.Itoa(current.DPI),
			})
		}
		if !equalOptional(current.MouseDevice, previous.MouseDevice) {
			fields = append(fields, dto.FieldChange{
				Field:    "mouseDevice",
				OldValue: derefOr(previous.MouseDevice),
				NewValue: derefOr(current.MouseDevice),
			})
		}

		if len(fields) > 0 {
			changes = append(changes, dto.SettingsChange{
				Date:    current.CreatedAt.UTC().Format(time.RFC3339),
				Changes: fields,
			})
		}
	}

	return changes
}

// ComparePeriods computes per-metric means for two independent windows and
// the delta between them. Metrics lacking a valid value in either period are
// left out of the comparison map.
func (s *AnalyticsService) ComparePeriods(userID uuid.UUID, req *dto.ComparisonRequest) (*dto.ComparisonResponse, error) {
	matches1, err := s.matchesInPeriod(userID, req.Period1)
	if err != nil {
		return nil, err
	}
	matches2, err := s.matchesInPeriod(userID, req.Period2)
	if err != nil {
		return nil, err
	}

	comparison := compareMetrics(
		periodAverages(matches1, req.Metrics),
		periodAverages(matches2, req.Metrics),
		req.Metrics,
	)

	return &dto.ComparisonResponse{
		Period1:    dto.PeriodStats{Label: periodLabel(req.Period1), Stats: periodSummary(matches1)},
		Period2:    dto.PeriodStats{Label: periodLabel(req.Period2), Stats: periodSummary(matches2)},
		Comparison: comparison,
	}, nil
}

func (s *AnalyticsService) matchesInPeriod(userID uuid.UUID, period dto.DateRange) ([]models.MatchRecord, error) {
	start, err := time.Parse("2006-01-02", period.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", period.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}

	var matches []models.MatchRecord
	err = s.db.Where("user_id = ? AND game_start_time >= ? AND game_start_time <= ?", userID, start, endOfDay(end)).
		Order("game_start_time ASC").
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load period matches: %w", err)
	}
	return matches, nil
}

func periodAverages(matches []models.MatchRecord, metrics []string) map[string]float64 {
	averages := make(map[string]float64)
	for _, metric := range metrics {
		sum, n := 0.0, 0
		for i := range matches {
			if v := metricValue(&matches[i], metric); v != nil {
				sum += *v
				n++
			}
		}
		if n > 0 {
			averages[metric] = sum / float64(n)
		}
	}
	return averages
}

// compareMetrics pairs up per-period averages. A metric missing a value in
// either period is left out entirely.
func compareMetrics(averages1, averages2 map[string]float64, metrics []string) map[string]dto.MetricComparison {
	comparison := make(map[string]dto.MetricComparison)
	for _, metric := range metrics {
		avg1, ok1 := averages1[metric]
		avg2, ok2 := averages2[metric]
		if !ok1 || !ok2 {
			continue
		}

		difference := avg2 - avg1
		var percentChange float64
		if avg1 != 0 {
			percentChange = difference / avg1 * 100
		}

		trend := "same"
		switch {
		case difference > 0:
			trend = "up"
		case difference < 0:
			trend = "down"
		}

		comparison[metric] = dto.MetricComparison{
			Difference:    difference,
			PercentChange: percentChange,
			Trend:         trend,
		}
	}
	return comparison
}

func periodSummary(matches []models.MatchRecord) dto.PerformanceSummary {
	values := make([]float64, 0, len(matches))
	for i := range matches {
		if matches[i].CombatScore != nil {
			values = append(values, *matches[i].CombatScore)
		}
	}
	return calculateSummary(values)
}

func periodLabel(period dto.DateRange) string {
	return period.StartDate + " - " + period.EndDate
}

// Correlation reproduces the fixed placeholder the feature has always
// returned; no correlation is actually computed.
func (s *AnalyticsService) Correlation(_ uuid.UUID, _ *dto.CorrelationQuery) *dto.CorrelationResponse {
	return &dto.CorrelationResponse{
		CorrelationCoefficient: 0.75,
		Significance:           "moderate",
		DataPoints:             []dto.CorrelationDataPoint{},
		Insights: []dto.CorrelationInsight{
			{
				Type:       "trend",
				Message:    "Average combat score improved roughly 15% after the DPI change from 800 to 1600",
				Confidence: 0.8,
			},
		},
	}
}

// performanceWindow resolves the query window. Defaults run from 30 days
// before now; the end date is stretched to the end of its day so an
// inclusive date filter catches same-day matches.
func performanceWindow(now time.Time, startDate, endDate *time.Time) (start, end time.Time) {
	end = now
	if endDate != nil {
		end = *endDate
	}
	end = endOfDay(end)

	start = now.AddDate(0, 0, -30)
	if startDate != nil {
		start = *startDate
	}
	return start, end
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func derefOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// equalOptional distinguishes an unset value from an empty one; clearing a
// field counts as a change.
func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
