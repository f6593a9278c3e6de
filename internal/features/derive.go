// Package features turns collected household attributes into the fixed,
// ordered feature vector the energy models were trained on.
package features

import "time"

// Season is the meteorological season of a month
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
)

// SeasonForMonth maps a month to its season. Only the month matters.
func SeasonForMonth(m time.Month) Season {
	switch m {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonFall
	}
}

// Ordinal returns the season's ordinal code (winter=1, spring=2, summer=3,
// fall=4). The code is not part of the feature vector.
func (s Season) Ordinal() int {
	switch s {
	case SeasonWinter:
		return 1
	case SeasonSpring:
		return 2
	case SeasonSummer:
		return 3
	case SeasonFall:
		return 4
	}
	return 0
}

// Weekday returns the weekday index of d with Monday=0 through Sunday=6.
func Weekday(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

// Derive computes the feature vector for raw. It never fails; an unknown
// categorical value leaves every branch of its one-hot group at 0.
func Derive(raw RawInput) Vector {
	var v Vector

	occupants := float64(raw.Occupants)
	weekday := Weekday(raw.Date)
	season := SeasonForMonth(raw.Date.Month())

	v[ColNumOccupants] = occupants
	v[ColHouseSizeSqft] = raw.HouseSizeSqft
	v[ColMonthlyIncome] = raw.MonthlyIncome
	v[ColOutsideTempCelsius] = raw.OutsideTempCelsius
	v[ColYear] = float64(raw.Date.Year())
	v[ColMonth] = float64(raw.Date.Month())
	v[ColDay] = float64(raw.Date.Day())

	v[ColHeatingElectric] = flag(raw.HeatingType == HeatingElectric)
	v[ColHeatingGas] = flag(raw.HeatingType == HeatingGas)
	v[ColHeatingNone] = flag(raw.HeatingType == HeatingNone)

	v[ColCoolingAC] = flag(raw.CoolingType == CoolingAC)
	v[ColCoolingFan] = flag(raw.CoolingType == CoolingFan)
	v[ColCoolingNone] = flag(raw.CoolingType == CoolingNone)

	v[ColManualOverrideY] = flag(raw.ManualOverride == ManualOverrideYes)
	v[ColManualOverrideN] = flag(raw.ManualOverride == ManualOverrideNo)

	v[ColIsWeekend] = flag(weekday >= 5)
	v[ColTempAboveAvg] = flag(raw.OutsideTempCelsius > TempAboveAvgThreshold)
	v[ColIncomePerPerson] = raw.MonthlyIncome / occupants
	v[ColSquareFeetPerPerson] = raw.HouseSizeSqft / occupants
	v[ColHighIncomeFlag] = flag(raw.MonthlyIncome > HighIncomeThreshold)
	v[ColLowTempFlag] = flag(raw.OutsideTempCelsius < LowTempThreshold)

	v[ColSeasonSpring] = flag(season == SeasonSpring)
	v[ColSeasonSummer] = flag(season == SeasonSummer)
	v[ColSeasonFall] = flag(season == SeasonFall)
	v[ColSeasonWinter] = flag(season == SeasonWinter)

	v[ColDayOfWeek0] = flag(weekday == 0)
	v[ColDayOfWeek6] = flag(weekday == 6)
	v[ColEnergyStarHome] = flag(raw.EnergyStarCertified)

	return v
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
