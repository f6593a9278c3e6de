package utils

import (
	"strings"

	"energypredictor/internal/features"
)

// Aliases accepted for the categorical inputs. Keys are lower case with
// surrounding space trimmed.
var (
	heatingAliases = map[string]features.HeatingType{
		"electric":    features.HeatingElectric,
		"electricity": features.HeatingElectric,
		"electrical":  features.HeatingElectric,
		"gas":         features.HeatingGas,
		"natural gas": features.HeatingGas,
		"none":        features.HeatingNone,
		"no":          features.HeatingNone,
	}

	coolingAliases = map[string]features.CoolingType{
		"ac":               features.CoolingAC,
		"a/c":              features.CoolingAC,
		"aircon":           features.CoolingAC,
		"air conditioner":  features.CoolingAC,
		"air conditioning": features.CoolingAC,
		"fan":              features.CoolingFan,
		"fans":             features.CoolingFan,
		"none":             features.CoolingNone,
		"no":               features.CoolingNone,
	}

	overrideAliases = map[string]features.ManualOverride{
		"yes":   features.ManualOverrideYes,
		"y":     features.ManualOverrideYes,
		"true":  features.ManualOverrideYes,
		"1":     features.ManualOverrideYes,
		"no":    features.ManualOverrideNo,
		"n":     features.ManualOverrideNo,
		"false": features.ManualOverrideNo,
		"0":     features.ManualOverrideNo,
	}
)

func key(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// NormalizeHeatingType maps a free-form label to a HeatingType.
// ok is false for labels outside the known vocabulary.
func NormalizeHeatingType(s string) (features.HeatingType, bool) {
	v, ok := heatingAliases[key(s)]
	return v, ok
}

// NormalizeCoolingType maps a free-form label to a CoolingType
func NormalizeCoolingType(s string) (features.CoolingType, bool) {
	v, ok := coolingAliases[key(s)]
	return v, ok
}

// NormalizeManualOverride maps a free-form label to a ManualOverride
func NormalizeManualOverride(s string) (features.ManualOverride, bool) {
	v, ok := overrideAliases[key(s)]
	return v, ok
}
