package charts

import (
	"testing"
	"time"

	"energypredictor/internal/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRaw() features.RawInput {
	return features.RawInput{
		Occupants:          4,
		HouseSizeSqft:      2000,
		MonthlyIncome:      30000,
		OutsideTempCelsius: 10,
		Date:               time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		HeatingType:        features.HeatingGas,
		CoolingType:        features.CoolingFan,
		ManualOverride:     features.ManualOverrideYes,
	}
}

func TestTrendPoints(t *testing.T) {
	points := TrendPoints(100)
	require.Len(t, points, TrendDays)

	want := []float64{80, 90, 100, 110, 120, 130, 140}
	for i, p := range points {
		assert.InDelta(t, want[i], p.Value, 1e-9)
	}
	assert.Equal(t, "Day 1", points[0].Label)
	assert.Equal(t, "Day 7", points[6].Label)
}

func TestTrendPoints_ExactFormula(t *testing.T) {
	pred := 306.6666666666667
	for i, p := range TrendPoints(pred) {
		assert.Equal(t, pred*(0.8+0.1*float64(i)), p.Value)
	}
}

func TestInputsDonut_Percentages(t *testing.T) {
	chart := InputsDonut(sampleRaw())
	require.Len(t, chart.Series, 1)
	data := chart.Series[0].Data
	require.Len(t, data, 4)

	sum := 0.0
	for _, p := range data {
		require.NotNil(t, p.Percent)
		sum += *p.Percent
	}
	assert.InDelta(t, 100.0, sum, 0.05)
	assert.Equal(t, DonutHole, chart.Hole)
	assert.Equal(t, []string{"#636EFA", "#EF553B", "#00CC96", "#AB63FA"}, chart.Colors)
}

func TestInputsDonut_ZeroTotal(t *testing.T) {
	raw := features.RawInput{}
	chart := InputsDonut(raw)
	for _, p := range chart.Series[0].Data {
		require.NotNil(t, p.Percent)
		assert.Equal(t, 0.0, *p.Percent)
	}
}

func TestInputsBar(t *testing.T) {
	chart := InputsBar(sampleRaw())
	labels := []string{}
	values := []float64{}
	for _, p := range chart.Series[0].Data {
		labels = append(labels, p.Label)
		values = append(values, p.Value)
	}
	assert.Equal(t, []string{"Occupants", "House Size", "Income", "Outside Temp"}, labels)
	assert.Equal(t, []float64{4, 2000, 30000, 10}, values)
	assert.Equal(t, "h", chart.Orientation)
}

func TestDerivedBar(t *testing.T) {
	raw := sampleRaw()
	chart := DerivedBar(features.Derive(raw))
	data := chart.Series[0].Data
	require.Len(t, data, 4)
	assert.Equal(t, 7500.0, data[0].Value)
	assert.Equal(t, 500.0, data[1].Value)
	assert.Equal(t, 0.0, data[2].Value)
	assert.Equal(t, 1.0, data[3].Value)
}

func TestVersusAverage_AxisMax(t *testing.T) {
	assert.Equal(t, 100.0, VersusAverage(40).AxisMax)
	assert.Equal(t, 310.0, VersusAverage(300).AxisMax)

	chart := VersusAverage(40)
	require.NotNil(t, chart.Reference)
	assert.Equal(t, AverageUsageKWh, chart.Reference.Value)
	assert.Equal(t, "Avg Usage (50 kWh)", chart.Reference.Label)
}

func TestBuild(t *testing.T) {
	raw := sampleRaw()
	set := Build(raw, features.Derive(raw), 120)
	require.NotNil(t, set.Inputs)
	require.NotNil(t, set.Composition)
	require.NotNil(t, set.Trend)
	require.NotNil(t, set.Derived)
	require.NotNil(t, set.VersusAverage)
	assert.Equal(t, TypeDonut, set.Composition.ChartType)
	assert.Equal(t, TypeLine, set.Trend.ChartType)
}

func TestRoundTo2(t *testing.T) {
	assert.Equal(t, 1.23, RoundTo2(1.234))
	assert.Equal(t, 1.24, RoundTo2(1.235001))
}
