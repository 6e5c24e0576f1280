package services

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ktsuchida/sensilog/internal/models"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return parsed
}

func matchAt(t *testing.T, date string, offset time.Duration, combatScore float64) models.MatchRecord {
	t.Helper()
	return models.MatchRecord{
		ID:            uuid.New(),
		GameStartTime: day(t, date).Add(offset),
		CombatScore:   &combatScore,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildDataPoints(t *testing.T) {
	t.Run("averages per day and counts matches", func(t *testing.T) {
		matches := []models.MatchRecord{
			matchAt(t, "2026-01-01", 1*time.Hour, 100),
			matchAt(t, "2026-01-01", 3*time.Hour, 200),
			matchAt(t, "2026-01-02", 2*time.Hour, 300),
		}

		points := buildDataPoints(matches, MetricCombatScore, "day",
			day(t, "2026-01-01"), endOfDay(day(t, "2026-01-02")))

		if len(points) != 2 {
			t.Fatalf("expected 2 data points, got %d", len(points))
		}
		if points[0].Date != "2026-01-01" || !almostEqual(points[0].Value, 150) || points[0].MatchCount != 2 {
			t.Errorf("unexpected first point: %+v", points[0])
		}
		if points[1].Date != "2026-01-02" || !almostEqual(points[1].Value, 300) || points[1].MatchCount != 1 {
			t.Errorf("unexpected second point: %+v", points[1])
		}
	})

	t.Run("omits buckets without valid values", func(t *testing.T) {
		matches := []models.MatchRecord{
			matchAt(t, "2026-01-01", time.Hour, 100),
			matchAt(t, "2026-01-05", time.Hour, 200),
		}

		points := buildDataPoints(matches, MetricCombatScore, "day",
			day(t, "2026-01-01"), endOfDay(day(t, "2026-01-05")))

		if len(points) != 2 {
			t.Fatalf("expected 2 data points, got %d", len(points))
		}
		if points[0].Date != "2026-01-01" || points[1].Date != "2026-01-05" {
			t.Errorf("unexpected dates: %s, %s", points[0].Date, points[1].Date)
		}
	})

	t.Run("null metric matches count but do not contribute", func(t *testing.T) {
		withNull := models.MatchRecord{
			ID:            uuid.New(),
			GameStartTime: day(t, "2026-01-01").Add(2 * time.Hour),
		}
		matches := []models.MatchRecord{
			matchAt(t, "2026-01-01", time.Hour, 100),
			withNull,
		}

		points := buildDataPoints(matches, MetricCombatScore, "day",
			day(t, "2026-01-01"), endOfDay(day(t, "2026-01-01")))

		if len(points) != 1 {
			t.Fatalf("expected 1 data point, got %d", len(points))
		}
		if !almostEqual(points[0].Value, 100) {
			t.Errorf("expected value 100, got %v", points[0].Value)
		}
		if points[0].MatchCount != 2 {
			t.Errorf("expected matchCount 2, got %d", points[0].MatchCount)
		}
	})

	t.Run("weekly buckets advance from the start date", func(t *testing.T) {
		matches := []models.MatchRecord{
			matchAt(t, "2026-01-02", time.Hour, 100),
			matchAt(t, "2026-01-09", time.Hour, 300),
		}

		points := buildDataPoints(matches, MetricCombatScore, "week",
			day(t, "2026-01-01"), endOfDay(day(t, "2026-01-14")))

		if len(points) != 2 {
			t.Fatalf("expected 2 data points, got %d", len(points))
		}
		if points[0].Date != "2026-01-01" || points[1].Date != "2026-01-08" {
			t.Errorf("unexpected bucket dates: %s, %s", points[0].Date, points[1].Date)
		}
	})

	t.Run("monthly buckets use calendar months", func(t *testing.T) {
		matches := []models.MatchRecord{
			matchAt(t, "2026-01-31", time.Hour, 100),
			matchAt(t, "2026-02-01", time.Hour, 200),
		}

		points := buildDataPoints(matches, MetricCombatScore, "month",
			day(t, "2026-01-01"), endOfDay(day(t, "2026-02-28")))

		if len(points) != 2 {
			t.Fatalf("expected 2 data points, got %d", len(points))
		}
		if points[1].Date != "2026-02-01" {
			t.Errorf("expected second bucket at 2026-02-01, got %s", points[1].Date)
		}
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		points := buildDataPoints(nil, MetricCombatScore, "day",
			day(t, "2026-01-01"), endOfDay(day(t, "2026-01-03")))
		if points == nil || len(points) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", points)
		}
	})
}

func TestCalculateSummary(t *testing.T) {
	t.Run("empty set is stable with zeros", func(t *testing.T) {
		summary := calculateSummary(nil)
		if summary.Average != 0 || summary.Best != 0 || summary.Worst != 0 {
			t.Errorf("expected zeros, got %+v", summary)
		}
		if summary.Trend != TrendStable || summary.ChangePercent != 0 {
			t.Errorf("expected stable trend, got %+v", summary)
		}
	})

	t.Run("single value is stable", func(t *testing.T) {
		summary := calculateSummary([]float64{200})
		if summary.Trend != TrendStable || summary.ChangePercent != 0 {
			t.Errorf("expected stable trend, got %+v", summary)
		}
		if !almostEqual(summary.Average, 200) || !almostEqual(summary.Best, 200) || !almostEqual(summary.Worst, 200) {
			t.Errorf("unexpected stats: %+v", summary)
		}
	})

	t.Run("improving when second half exceeds 5 percent", func(t *testing.T) {
		summary := calculateSummary([]float64{100, 100, 120, 120})
		if summary.Trend != TrendImproving {
			t.Errorf("expected improving, got %s", summary.Trend)
		}
		if !almostEqual(summary.ChangePercent, 20) {
			t.Errorf("expected changePercent 20, got %v", summary.ChangePercent)
		}
	})

	t.Run("declining when second half drops below 5 percent", func(t *testing.T) {
		summary := calculateSummary([]float64{120, 120, 100, 100})
		if summary.Trend != TrendDeclining {
			t.Errorf("expected declining, got %s", summary.Trend)
		}
	})

	t.Run("within threshold is stable", func(t *testing.T) {
		summary := calculateSummary([]float64{100, 100, 103, 103})
		if summary.Trend != TrendStable {
			t.Errorf("expected stable, got %s", summary.Trend)
		}
	})

	t.Run("odd length splits at floor of half", func(t *testing.T) {
		// first half [100], second half [100, 200]
		summary := calculateSummary([]float64{100, 100, 200})
		if summary.Trend != TrendImproving {
			t.Errorf("expected improving, got %s", summary.Trend)
		}
		if !almostEqual(summary.ChangePercent, 50) {
			t.Errorf("expected changePercent 50, got %v", summary.ChangePercent)
		}
	})

	t.Run("zero first half keeps changePercent at zero", func(t *testing.T) {
		summary := calculateSummary([]float64{0, 0, 100, 100})
		if summary.ChangePercent != 0 {
			t.Errorf("expected changePercent 0, got %v", summary.ChangePercent)
		}
		if summary.Trend != TrendImproving {
			t.Errorf("expected improving, got %s", summary.Trend)
		}
	})

	t.Run("best and worst cover the whole set", func(t *testing.T) {
		summary := calculateSummary([]float64{150, 90, 310, 200})
		if !almostEqual(summary.Best, 310) || !almostEqual(summary.Worst, 90) {
			t.Errorf("unexpected best/worst: %+v", summary)
		}
		if !almostEqual(summary.Average, 187.5) {
			t.Errorf("expected average 187.5, got %v", summary.Average)
		}
	})
}

func TestDetectSettingsChanges(t *testing.T) {
	record := func(created string, sens float64, dpi int, mouse *string) models.SettingsRecord {
		return models.SettingsRecord{
			ID:          uuid.New(),
			Sensitivity: sens,
			DPI:         dpi,
			MouseDevice: mouse,
			CreatedAt:   day(t, created),
		}
	}

	t.Run("reports only changed fields", func(t *testing.T) {
		// newest first
		records := []models.SettingsRecord{
			record("2026-01-03", 2.0, 800, nil),
			record("2026-01-02", 1.5, 800, nil),
			record("2026-01-01", 1.5, 800, nil),
		}

		changes := detectSettingsChanges(records)
		if len(changes) != 1 {
			t.Fatalf("expected 1 change, got %d", len(changes))
		}
		if len(changes[0].Changes) != 1 {
			t.Fatalf("expected 1 field change, got %d", len(changes[0].Changes))
		}
		fc := changes[0].Changes[0]
		if fc.Field != "sensitivity" || fc.OldValue != "1.5" || fc.NewValue != "2" {
			t.Errorf("unexpected field change: %+v", fc)
		}
	})

	t.Run("groups multiple field changes per pair", func(t *testing.T) {
		mouse := "Zowie EC2"
		records := []models.SettingsRecord{
			record("2026-01-02", 2.0, 1600, &mouse),
			record("2026-01-01", 1.5, 800, nil),
		}

		changes := detectSettingsChanges(records)
		if len(changes) != 1 {
			t.Fatalf("expected 1 change, got %d", len(changes))
		}
		if len(changes[0].Changes) != 3 {
			t.Errorf("expected 3 field changes, got %d", len(changes[0].Changes))
		}
	})

	t.Run("identical records yield nothing", func(t *testing.T) {
		records := []models.SettingsRecord{
			record("2026-01-02", 1.5, 800, nil),
			record("2026-01-01", 1.5, 800, nil),
		}
		if changes := detectSettingsChanges(records); len(changes) != 0 {
			t.Errorf("expected no changes, got %v", changes)
		}
	})

	t.Run("fewer than two records yield nothing", func(t *testing.T) {
		records := []models.SettingsRecord{record("2026-01-01", 1.5, 800, nil)}
		if changes := detectSettingsChanges(records); len(changes) != 0 {
			t.Errorf("expected no changes, got %v", changes)
		}
	})

	t.Run("unset to empty mouse device is a change", func(t *testing.T) {
		empty := ""
		records := []models.SettingsRecord{
			record("2026-01-02", 1.5, 800, &empty),
			record("2026-01-01", 1.5, 800, nil),
		}

		changes := detectSettingsChanges(records)
		if len(changes) != 1 {
			t.Fatalf("expected 1 change, got %d", len(changes))
		}
		fc := changes[0].Changes[0]
		if fc.Field != "mouseDevice" || fc.OldValue != "" || fc.NewValue != "" {
			t.Errorf("unexpected field change: %+v", fc)
		}
	})

	t.Run("equal mouse devices yield nothing", func(t *testing.T) {
		a, b := "Zowie EC2", "Zowie EC2"
		records := []models.SettingsRecord{
			record("2026-01-02", 1.5, 800, &a),
			record("2026-01-01", 1.5, 800, &b),
		}
		if changes := detectSettingsChanges(records); len(changes) != 0 {
			t.Errorf("expected no changes, got %v", changes)
		}
	})
}

func TestPerformanceWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

	t.Run("defaults to the trailing 30 days", func(t *testing.T) {
		start, end := performanceWindow(now, nil, nil)
		if want := now.AddDate(0, 0, -30); !start.Equal(want) {
			t.Errorf("got start %v, want %v", start, want)
		}
		if want := time.Date(2026, 3, 15, 23, 59, 59, int(999*time.Millisecond), time.UTC); !end.Equal(want) {
			t.Errorf("got end %v, want %v", end, want)
		}
	})

	t.Run("explicit dates win", func(t *testing.T) {
		from := day(t, "2026-02-01")
		to := day(t, "2026-02-10")
		start, end := performanceWindow(now, &from, &to)
		if !start.Equal(from) {
			t.Errorf("got start %v, want %v", start, from)
		}
		if !end.Equal(endOfDay(to)) {
			t.Errorf("got end %v, want end of %v", end, to)
		}
	})
}

func TestCompareMetrics(t *testing.T) {
	t.Run("computes difference and percent change", func(t *testing.T) {
		comparison := compareMetrics(
			map[string]float64{MetricKDRatio: 10},
			map[string]float64{MetricKDRatio: 15},
			[]string{MetricKDRatio},
		)

		mc, ok := comparison[MetricKDRatio]
		if !ok {
			t.Fatal("expected kdRatio in comparison")
		}
		if !almostEqual(mc.Difference, 5) || !almostEqual(mc.PercentChange, 50) || mc.Trend != "up" {
			t.Errorf("unexpected comparison: %+v", mc)
		}
	})

	t.Run("omits metric missing in either period", func(t *testing.T) {
		comparison := compareMetrics(
			map[string]float64{MetricADR: 140},
			map[string]float64{},
			[]string{MetricADR},
		)
		if len(comparison) != 0 {
			t.Errorf("expected empty comparison, got %v", comparison)
		}
	})

	t.Run("zero baseline keeps percent change at zero", func(t *testing.T) {
		comparison := compareMetrics(
			map[string]float64{MetricCombatScore: 0},
			map[string]float64{MetricCombatScore: 100},
			[]string{MetricCombatScore},
		)
		mc := comparison[MetricCombatScore]
		if mc.PercentChange != 0 || !almostEqual(mc.Difference, 100) || mc.Trend != "up" {
			t.Errorf("unexpected comparison: %+v", mc)
		}
	})

	t.Run("downward and flat trends", func(t *testing.T) {
		comparison := compareMetrics(
			map[string]float64{MetricADR: 150, MetricKDRatio: 1.2},
			map[string]float64{MetricADR: 120, MetricKDRatio: 1.2},
			[]string{MetricADR, MetricKDRatio},
		)
		if comparison[MetricADR].Trend != "down" {
			t.Errorf("expected down, got %s", comparison[MetricADR].Trend)
		}
		if comparison[MetricKDRatio].Trend != "same" {
			t.Errorf("expected same, got %s", comparison[MetricKDRatio].Trend)
		}
	})
}

func TestPeriodAverages(t *testing.T) {
	score := func(v float64) *float64 { return &v }
	matches := []models.MatchRecord{
		{CombatScore: score(100), KDRatio: score(1.0)},
		{CombatScore: score(200)},
		{},
	}

	averages := periodAverages(matches, []string{MetricCombatScore, MetricKDRatio, MetricADR})

	if !almostEqual(averages[MetricCombatScore], 150) {
		t.Errorf("expected combatScore 150, got %v", averages[MetricCombatScore])
	}
	if !almostEqual(averages[MetricKDRatio], 1.0) {
		t.Errorf("expected kdRatio 1.0, got %v", averages[MetricKDRatio])
	}
	if _, ok := averages[MetricADR]; ok {
		t.Error("expected adr to be absent with no valid values")
	}
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	out := endOfDay(in)
	if out.Hour() != 23 || out.Minute() != 59 || out.Second() != 59 {
		t.Errorf("unexpected end of day: %v", out)
	}
	if out.Day() != 15 || out.Month() != 3 {
		t.Errorf("end of day changed the date: %v", out)
	}
}
