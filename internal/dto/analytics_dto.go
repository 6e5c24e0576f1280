package dto

type PerformanceQuery struct {
	Metric    string `query:"metric" validate:"required,oneof=combatScore headshotPercentage kdRatio adr"`
	StartDate string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
	GroupBy   string `query:"groupBy" validate:"omitempty,oneof=day week month"`
}

type AnalyticsDataPoint struct {
	Date       string  `json:"date"`
	Value      float64 `json:"value"`
	MatchCount int     `json:"matchCount"`
}

type PerformanceSummary struct {
	Average       float64 `json:"average"`
	Best          float64 `json:"best"`
	Worst         float64 `json:"worst"`
	Trend         string  `json:"trend"`
	ChangePercent float64 `json:"changePercent"`
}

type FieldChange struct {
	Field    string `json:"field"`
	OldValue string `json:"oldValue,omitempty"`
	NewValue string `json:"newValue"`
}

type SettingsChange struct {
	Date    string        `json:"date"`
	Changes []FieldChange `json:"changes"`
}

type PerformanceResponse struct {
	DataPoints      []AnalyticsDataPoint `json:"dataPoints"`
	Summary         PerformanceSummary   `json:"summary"`
	SettingsChanges []SettingsChange     `json:"settingsChanges"`
}

type DateRange struct {
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

type ComparisonRequest struct {
	Period1 DateRange `json:"period1" validate:"required"`
	Period2 DateRange `json:"period2" validate:"required"`
	Metrics []string  `json:"metrics" validate:"required,min=1,dive,oneof=combatScore headshotPercentage kdRatio adr"`
}

type PeriodStats struct {
	Label string             `json:"label"`
	Stats PerformanceSummary `json:"stats"`
}

type MetricComparison struct {
	Difference    float64 `json:"difference"`
	PercentChange float64 `json:"percentChange"`
	Trend         string  `json:"trend"`
}

type ComparisonResponse struct {
	Period1    PeriodStats                 `json:"period1"`
	Period2    PeriodStats                 `json:"period2"`
	Comparison map[string]MetricComparison `json:"comparison"`
}

type CorrelationQuery struct {
	Metric       string `query:"metric" validate:"required,oneof=combatScore headshotPercentage kdRatio adr"`
	SettingField string `query:"settingField" validate:"required,oneof=sensitivity dpi mouseDevice"`
	Days         int    `query:"days" validate:"omitempty,gte=7,lte=365"`
}

type CorrelationDataPoint struct {
	SettingValue     string  `json:"settingValue"`
	PerformanceValue float64 `json:"performanceValue"`
	Date             string  `json:"date"`
}

type CorrelationInsight struct {
	Type       string  `json:"type"`
	Message    string  `json:"message"`
	Confidence float64 `json:"confidence"`
}

type CorrelationResponse struct {
	CorrelationCoefficient float64                `json:"correlationCoefficient"`
	Significance           string                 `json:"significance"`
	DataPoints             []CorrelationDataPoint `json:"dataPoints"`
	Insights               []CorrelationInsight   `json:"insights"`
}
