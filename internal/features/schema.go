package features

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Schema identifies the feature layout produced by Derive. Models trained on
// any other layout are rejected by the inference layer.
const (
	SchemaName = "household-energy-v2"

	// TempAboveAvgThreshold is the outside temperature (°C) above which
	// temp_above_avg is set.
	TempAboveAvgThreshold = 28.0
	// LowTempThreshold is the outside temperature (°C) below which
	// low_temp_flag is set.
	LowTempThreshold = 15.0
	// HighIncomeThreshold is the monthly income above which
	// high_income_flag is set.
	HighIncomeThreshold = 40000.0
)

// Column indexes, in the exact order the model was fit on.
const (
	ColNumOccupants = iota
	ColHouseSizeSqft
	ColMonthlyIncome
	ColOutsideTempCelsius
	ColYear
	ColMonth
	ColDay
	ColHeatingElectric
	ColHeatingGas
	ColHeatingNone
	ColCoolingAC
	ColCoolingFan
	ColCoolingNone
	ColManualOverrideY
	ColManualOverrideN
	ColIsWeekend
	ColTempAboveAvg
	ColIncomePerPerson
	ColSquareFeetPerPerson
	ColHighIncomeFlag
	ColLowTempFlag
	ColSeasonSpring
	ColSeasonSummer
	ColSeasonFall
	ColSeasonWinter
	ColDayOfWeek0
	ColDayOfWeek6
	ColEnergyStarHome

	NumColumns
)

var columns = [NumColumns]string{
	ColNumOccupants:        "num_occupants",
	ColHouseSizeSqft:       "house_size_sqft",
	ColMonthlyIncome:       "monthly_income",
	ColOutsideTempCelsius:  "outside_temp_celsius",
	ColYear:                "year",
	ColMonth:               "month",
	ColDay:                 "day",
	ColHeatingElectric:     "heating_type_Electric",
	ColHeatingGas:          "heating_type_Gas",
	ColHeatingNone:         "heating_type_None",
	ColCoolingAC:           "cooling_type_AC",
	ColCoolingFan:          "cooling_type_Fan",
	ColCoolingNone:         "cooling_type_None",
	ColManualOverrideY:     "manual_override_Y",
	ColManualOverrideN:     "manual_override_N",
	ColIsWeekend:           "is_weekend",
	ColTempAboveAvg:        "temp_above_avg",
	ColIncomePerPerson:     "income_per_person",
	ColSquareFeetPerPerson: "square_feet_per_person",
	ColHighIncomeFlag:      "high_income_flag",
	ColLowTempFlag:         "low_temp_flag",
	ColSeasonSpring:        "season_spring",
	ColSeasonSummer:        "season_summer",
	ColSeasonFall:          "season_fall",
	ColSeasonWinter:        "season_winter",
	ColDayOfWeek0:          "day_of_week_0",
	ColDayOfWeek6:          "day_of_week_6",
	ColEnergyStarHome:      "energy_star_home",
}

var columnIndex = func() map[string]int {
	idx := make(map[string]int, NumColumns)
	for i, name := range columns {
		idx[name] = i
	}
	return idx
}()

// Columns returns the ordered column names of the feature schema.
func Columns() []string {
	out := make([]string, NumColumns)
	copy(out, columns[:])
	return out
}

// ColumnIndex returns the position of a named column.
func ColumnIndex(name string) (int, bool) {
	i, ok := columnIndex[name]
	return i, ok
}

// MatchesSchema reports whether names equals Columns() in length and order.
// On mismatch it returns a description of the first difference.
func MatchesSchema(names []string) (bool, string) {
	if len(names) != NumColumns {
		return false, fmt.Sprintf("expected %d features, got %d", NumColumns, len(names))
	}
	for i, name := range names {
		if name != columns[i] {
			return false, fmt.Sprintf("feature %d: expected %q, got %q", i, columns[i], name)
		}
	}
	return true, ""
}

// Vector is a derived feature vector in schema order. Arrays compare by
// value, so two vectors derived from the same input are ==.
type Vector [NumColumns]float64

// Values returns the feature values in schema order.
func (v Vector) Values() []float64 {
	out := make([]float64, NumColumns)
	copy(out, v[:])
	return out
}

// Float32s returns the values as float32, the element type pgvector stores.
func (v Vector) Float32s() []float32 {
	out := make([]float32, NumColumns)
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}

// Get returns the value of the named column.
func (v Vector) Get(name string) (float64, bool) {
	i, ok := columnIndex[name]
	if !ok {
		return 0, false
	}
	return v[i], true
}

// MarshalJSON encodes the vector as a JSON object whose keys follow schema order.
func (v Vector) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(name)
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(v[i], 'g', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by column name. Every column must be present.
func (v *Vector) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out Vector
	for i, name := range columns {
		x, ok := m[name]
		if !ok {
			return fmt.Errorf("missing feature %q", name)
		}
		out[i] = x
	}
	if len(m) != NumColumns {
		return fmt.Errorf("expected %d features, got %d", NumColumns, len(m))
	}
	*v = out
	return nil
}

// VectorFromValues builds a Vector from values in schema order.
func VectorFromValues(values []float64) (Vector, error) {
	var v Vector
	if len(values) != NumColumns {
		return v, fmt.Errorf("expected %d values, got %d", NumColumns, len(values))
	}
	copy(v[:], values)
	return v, nil
}
