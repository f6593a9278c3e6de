package features

import "time"

// HeatingType is the household heating system
type HeatingType string

const (
	HeatingElectric HeatingType = "Electric"
	HeatingGas      HeatingType = "Gas"
	HeatingNone     HeatingType = "None"
)

// CoolingType is the household cooling system
type CoolingType string

const (
	CoolingAC   CoolingType = "AC"
	CoolingFan  CoolingType = "Fan"
	CoolingNone CoolingType = "None"
)

// ManualOverride records whether the thermostat was manually overridden
type ManualOverride string

const (
	ManualOverrideYes ManualOverride = "Yes"
	ManualOverrideNo  ManualOverride = "No"
)

// RawInput holds the household attributes collected for a single prediction.
// The caller guarantees Occupants >= 1, positive size and income, and a real
// calendar date.
type RawInput struct {
	Occupants           int
	HouseSizeSqft       float64
	MonthlyIncome       float64
	OutsideTempCelsius  float64
	Date                time.Time
	HeatingType         HeatingType
	CoolingType         CoolingType
	ManualOverride      ManualOverride
	EnergyStarCertified bool
}
