// Package charts produces render-ready chart data for a prediction. Nothing
// here draws; front ends plot the returned series as they see fit.
package charts

import (
	"fmt"
	"math"

	"energypredictor/internal/features"
)

// Chart types
const (
	TypeBar   = "bar"
	TypeDonut = "donut"
	TypeLine  = "line"
)

const (
	// TrendDays is the number of points in the synthetic usage trend
	TrendDays = 7
	// AverageUsageKWh is the reference household usage shown next to a prediction
	AverageUsageKWh = 50.0
	// DonutHole is the inner radius fraction of the donut chart
	DonutHole = 0.4
)

var donutColors = []string{"#636EFA", "#EF553B", "#00CC96", "#AB63FA"}

// ChartPoint is one labelled value in a series
type ChartPoint struct {
	Label   string   `json:"label"`
	Value   float64  `json:"value"`
	Percent *float64 `json:"percent,omitempty"`
}

// ChartSeries is a named list of points
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ReferenceLine marks a fixed value on the value axis
type ReferenceLine struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// ChartConfig is a single chart ready to hand to a plotting library
type ChartConfig struct {
	ID          string         `json:"id"`
	ChartType   string         `json:"chartType"`
	Title       string         `json:"title"`
	Orientation string         `json:"orientation,omitempty"`
	XAxis       string         `json:"xAxis,omitempty"`
	YAxis       string         `json:"yAxis,omitempty"`
	AxisMax     float64        `json:"axisMax,omitempty"`
	Hole        float64        `json:"hole,omitempty"`
	Series      []ChartSeries  `json:"series"`
	Colors      []string       `json:"colors,omitempty"`
	Reference   *ReferenceLine `json:"reference,omitempty"`
	ShowLegend  bool           `json:"showLegend"`
	ShowGrid    bool           `json:"showGrid"`
}

// Set is the full group of charts returned with a prediction
type Set struct {
	Inputs        *ChartConfig `json:"inputs"`
	Composition   *ChartConfig `json:"composition"`
	Trend         *ChartConfig `json:"trend"`
	Derived       *ChartConfig `json:"derived"`
	VersusAverage *ChartConfig `json:"versusAverage"`
}

// Build assembles every chart for a prediction.
func Build(raw features.RawInput, v features.Vector, predictionKWh float64) *Set {
	return &Set{
		Inputs:        InputsBar(raw),
		Composition:   InputsDonut(raw),
		Trend:         TrendLine(predictionKWh),
		Derived:       DerivedBar(v),
		VersusAverage: VersusAverage(predictionKWh),
	}
}

func inputPoints(raw features.RawInput) []ChartPoint {
	return []ChartPoint{
		{Label: "Occupants", Value: float64(raw.Occupants)},
		{Label: "House Size", Value: raw.HouseSizeSqft},
		{Label: "Income", Value: raw.MonthlyIncome},
		{Label: "Outside Temp", Value: raw.OutsideTempCelsius},
	}
}

// InputsBar is a horizontal bar chart of the four raw quantities.
func InputsBar(raw features.RawInput) *ChartConfig {
	return &ChartConfig{
		ID:          "inputs",
		ChartType:   TypeBar,
		Title:       "Bar Chart",
		Orientation: "h",
		Series: []ChartSeries{{
			Name:  "Inputs",
			Data:  inputPoints(raw),
			Color: "lightskyblue",
		}},
		ShowGrid: false,
	}
}

// InputsDonut shows each raw quantity's share of their sum.
func InputsDonut(raw features.RawInput) *ChartConfig {
	points := inputPoints(raw)

	total := 0.0
	for _, p := range points {
		total += p.Value
	}
	for i := range points {
		pct := 0.0
		if total != 0 {
			pct = RoundTo2(points[i].Value / total * 100)
		}
		points[i].Percent = &pct
	}

	colors := make([]string, len(donutColors))
	copy(colors, donutColors)

	return &ChartConfig{
		ID:        "composition",
		ChartType: TypeDonut,
		Title:     "Pie Chart",
		Hole:      DonutHole,
		Series: []ChartSeries{{
			Name: "Inputs",
			Data: points,
		}},
		Colors:     colors,
		ShowLegend: false,
	}
}

// TrendPoints returns the synthetic rising trend prediction·(0.8 + 0.1·i), i = 0..6.
func TrendPoints(predictionKWh float64) []ChartPoint {
	points := make([]ChartPoint, TrendDays)
	for i := 0; i < TrendDays; i++ {
		points[i] = ChartPoint{
			Label: fmt.Sprintf("Day %d", i+1),
			Value: predictionKWh * (0.8 + 0.1*float64(i)),
		}
	}
	return points
}

// TrendLine is a line chart of TrendPoints.
func TrendLine(predictionKWh float64) *ChartConfig {
	return &ChartConfig{
		ID:        "trend",
		ChartType: TypeLine,
		Title:     "Energy usage over 7 days",
		XAxis:     "Day",
		YAxis:     "Energy Usage (kWh)",
		Series: []ChartSeries{{
			Name:  "Estimated usage",
			Data:  TrendPoints(predictionKWh),
			Color: "deepskyblue",
		}},
		ShowGrid: true,
	}
}

// DerivedBar breaks down a few engineered features.
func DerivedBar(v features.Vector) *ChartConfig {
	return &ChartConfig{
		ID:        "derived",
		ChartType: TypeBar,
		Title:     "Breakdown of Derived Features",
		XAxis:     "Feature",
		YAxis:     "Value",
		Series: []ChartSeries{{
			Name: "Value",
			Data: []ChartPoint{
				{Label: "Income/Person", Value: v[features.ColIncomePerPerson]},
				{Label: "Sqft/Person", Value: v[features.ColSquareFeetPerPerson]},
				{Label: "High Income Flag", Value: v[features.ColHighIncomeFlag]},
				{Label: "Low Temp Flag", Value: v[features.ColLowTempFlag]},
			},
		}},
		ShowGrid: true,
	}
}

// VersusAverage compares the prediction with the reference average usage.
func VersusAverage(predictionKWh float64) *ChartConfig {
	return &ChartConfig{
		ID:          "versus_average",
		ChartType:   TypeBar,
		Title:       "Energy Usage vs. Average",
		Orientation: "h",
		XAxis:       "Energy Usage (kWh)",
		AxisMax:     math.Max(100, predictionKWh+10),
		Series: []ChartSeries{{
			Name:  "Your Usage",
			Data:  []ChartPoint{{Label: "Your Usage", Value: predictionKWh}},
			Color: "#4caf50",
		}},
		Reference: &ReferenceLine{
			Label: fmt.Sprintf("Avg Usage (%g kWh)", AverageUsageKWh),
			Value: AverageUsageKWh,
			Color: "red",
		},
		ShowLegend: true,
	}
}

// RoundTo2 rounds to two decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
