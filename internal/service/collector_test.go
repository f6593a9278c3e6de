package service

import (
	"errors"
	"math"
	"testing"
	"time"

	"energypredictor/internal/features"
	"energypredictor/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *model.PredictRequest {
	return &model.PredictRequest{
		Occupants:           3,
		HouseSizeSqft:       1800,
		MonthlyIncome:       45000,
		OutsideTempCelsius:  30,
		Date:                "2025-07-04",
		HeatingType:         "Gas",
		CoolingType:         "AC",
		ManualOverride:      "No",
		EnergyStarCertified: true,
	}
}

func TestCollector_Valid(t *testing.T) {
	c := NewCollector(nil)

	raw, err := c.Collect(validRequest())
	require.NoError(t, err)

	assert.Equal(t, 3, raw.Occupants)
	assert.Equal(t, 1800.0, raw.HouseSizeSqft)
	assert.Equal(t, time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC), raw.Date)
	assert.Equal(t, features.HeatingGas, raw.HeatingType)
	assert.Equal(t, features.CoolingAC, raw.CoolingType)
	assert.Equal(t, features.ManualOverrideNo, raw.ManualOverride)
	assert.True(t, raw.EnergyStarCertified)
}

func TestCollector_Aliases(t *testing.T) {
	req := validRequest()
	req.HeatingType = "electricity"
	req.CoolingType = "air conditioning"
	req.ManualOverride = "y"

	raw, err := NewCollector(nil).Collect(req)
	require.NoError(t, err)
	assert.Equal(t, features.HeatingElectric, raw.HeatingType)
	assert.Equal(t, features.CoolingAC, raw.CoolingType)
	assert.Equal(t, features.ManualOverrideYes, raw.ManualOverride)
}

func TestCollector_YearMonthDay(t *testing.T) {
	req := validRequest()
	req.Date = ""
	req.Year, req.Month, req.Day = 2024, 2, 29

	raw, err := NewCollector(nil).Collect(req)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), raw.Date)
}

func TestCollector_DefaultsToToday(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	c := NewCollector(loc)
	// 2025-03-01 in UTC+10 while still Feb 28 in UTC
	c.now = func() time.Time { return time.Date(2025, time.February, 28, 20, 0, 0, 0, time.UTC) }

	req := validRequest()
	req.Date = ""

	raw, err := c.Collect(req)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), raw.Date)
}

func TestCollector_InvalidDates(t *testing.T) {
	tests := []struct {
		name  string
		apply func(r *model.PredictRequest)
	}{
		{"feb 29 non-leap", func(r *model.PredictRequest) { r.Date = ""; r.Year, r.Month, r.Day = 2023, 2, 29 }},
		{"april 31", func(r *model.PredictRequest) { r.Date = ""; r.Year, r.Month, r.Day = 2025, 4, 31 }},
		{"partial", func(r *model.PredictRequest) { r.Date = ""; r.Year, r.Month = 2025, 4 }},
		{"string feb 30", func(r *model.PredictRequest) { r.Date = "2025-02-30" }},
		{"bad format", func(r *model.PredictRequest) { r.Date = "04/07/2025" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.apply(req)

			_, err := NewCollector(nil).Collect(req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.True(t, errors.Is(err, ErrInvalidDate))
		})
	}
}

func TestCollector_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		apply   func(r *model.PredictRequest)
		message string
	}{
		{"zero occupants", func(r *model.PredictRequest) { r.Occupants = 0 }, "occupants must be at least 1"},
		{"zero size", func(r *model.PredictRequest) { r.HouseSizeSqft = 0 }, "house_size_sqft must be greater than 0"},
		{"negative income", func(r *model.PredictRequest) { r.MonthlyIncome = -1 }, "monthly_income must be greater than 0"},
		{"month 13", func(r *model.PredictRequest) { r.Date = ""; r.Year, r.Month, r.Day = 2025, 13, 1 }, "month must be at most 12"},
		{"missing heating", func(r *model.PredictRequest) { r.HeatingType = "" }, "heating_type is required"},
		{"unknown heating", func(r *model.PredictRequest) { r.HeatingType = "Solar" }, `heating_type "Solar"`},
		{"unknown cooling", func(r *model.PredictRequest) { r.CoolingType = "Swamp" }, `cooling_type "Swamp"`},
		{"unknown override", func(r *model.PredictRequest) { r.ManualOverride = "maybe" }, `manual_override "maybe"`},
		{"nan temperature", func(r *model.PredictRequest) { r.OutsideTempCelsius = math.NaN() }, "outside_temp_celsius must be a finite number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.apply(req)

			_, err := NewCollector(nil).Collect(req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestCollector_NilRequest(t *testing.T) {
	_, err := NewCollector(nil).Collect(nil)
	assert.ErrorIs(t, err, ErrValidation)
}
