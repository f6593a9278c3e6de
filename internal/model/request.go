package model

import (
	"time"

	"energypredictor/internal/charts"
	"energypredictor/internal/features"
)

// PredictRequest carries the household attributes submitted through the
// HTML form, the JSON API or the CLI. The date may be given either as
// Date (YYYY-MM-DD) or as Year/Month/Day.
type PredictRequest struct {
	Occupants           int     `json:"occupants" form:"occupants" validate:"min=1"`
	HouseSizeSqft       float64 `json:"house_size_sqft" form:"house_size_sqft" validate:"gt=0"`
	MonthlyIncome       float64 `json:"monthly_income" form:"monthly_income" validate:"gt=0"`
	OutsideTempCelsius  float64 `json:"outside_temp_celsius" form:"outside_temp_celsius"`
	Date                string  `json:"date,omitempty" form:"date"`
	Year                int     `json:"year,omitempty" form:"year" validate:"omitempty,min=1"`
	Month               int     `json:"month,omitempty" form:"month" validate:"omitempty,min=1,max=12"`
	Day                 int     `json:"day,omitempty" form:"day" validate:"omitempty,min=1,max=31"`
	HeatingType         string  `json:"heating_type" form:"heating_type" validate:"required"`
	CoolingType         string  `json:"cooling_type" form:"cooling_type" validate:"required"`
	ManualOverride      string  `json:"manual_override" form:"manual_override" validate:"required"`
	EnergyStarCertified bool    `json:"energy_star_certified" form:"energy_star_certified"`
	Model               string  `json:"model,omitempty" form:"model"`
}

// InputSummary echoes the normalised input a prediction was made from
type InputSummary struct {
	Occupants           int     `json:"occupants"`
	HouseSizeSqft       float64 `json:"house_size_sqft"`
	MonthlyIncome       float64 `json:"monthly_income"`
	OutsideTempCelsius  float64 `json:"outside_temp_celsius"`
	Date                string  `json:"date"`
	HeatingType         string  `json:"heating_type"`
	CoolingType         string  `json:"cooling_type"`
	ManualOverride      string  `json:"manual_override"`
	EnergyStarCertified bool    `json:"energy_star_certified"`
}

// NewInputSummary converts a RawInput for display
func NewInputSummary(raw features.RawInput) InputSummary {
	return InputSummary{
		Occupants:           raw.Occupants,
		HouseSizeSqft:       raw.HouseSizeSqft,
		MonthlyIncome:       raw.MonthlyIncome,
		OutsideTempCelsius:  raw.OutsideTempCelsius,
		Date:                raw.Date.Format(time.DateOnly),
		HeatingType:         string(raw.HeatingType),
		CoolingType:         string(raw.CoolingType),
		ManualOverride:      string(raw.ManualOverride),
		EnergyStarCertified: raw.EnergyStarCertified,
	}
}

// PredictionResult is returned for a successful prediction
type PredictionResult struct {
	ID            string          `json:"id"`
	Model         string          `json:"model"`
	PredictionKWh float64         `json:"prediction_kwh"`
	Display       string          `json:"display"`
	Schema        string          `json:"schema"`
	Input         InputSummary    `json:"input"`
	Season        string          `json:"season"`
	Features      features.Vector `json:"features"`
	Charts        *charts.Set     `json:"charts"`
	Cached        bool            `json:"cached"`
	CreatedAt     time.Time       `json:"created_at"`
	Took          int64           `json:"took_ms"`
}

// FeaturesResponse is returned by the derive-only endpoint
type FeaturesResponse struct {
	Schema   string          `json:"schema"`
	Input    InputSummary    `json:"input"`
	Season   string          `json:"season"`
	Weekday  int             `json:"weekday"`
	Features features.Vector `json:"features"`
}

// SchemaResponse describes the feature layout models must be trained on
type SchemaResponse struct {
	Schema                string   `json:"schema"`
	Columns               []string `json:"columns"`
	SeasonOrdinal         bool     `json:"season_ordinal"`
	TempAboveAvgThreshold float64  `json:"temp_above_avg_threshold"`
	LowTempThreshold      float64  `json:"low_temp_threshold"`
	HighIncomeThreshold   float64  `json:"high_income_threshold"`
}

// ModelsResponse lists the loaded models
type ModelsResponse struct {
	Default string      `json:"default"`
	Models  []ModelInfo `json:"models"`
}

// ModelInfo describes one loaded model
type ModelInfo struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Features int    `json:"features"`
	Default  bool   `json:"default"`
}

// SimilarResponse lists stored predictions closest to a reference prediction
type SimilarResponse struct {
	ID      string             `json:"id"`
	Results []PredictionRecord `json:"results"`
}
