package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"energypredictor/internal/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

var householdArgs = []string{
	"--occupants", "4",
	"--house-size", "2000",
	"--income", "30000",
	"--temp", "26",
	"--date", "2025-07-04",
	"--heating", "Electric",
	"--cooling", "AC",
	"--override", "No",
	"--energy-star",
}

func TestSchemaCommand(t *testing.T) {
	out := execute(t, "schema")
	assert.Contains(t, out, features.SchemaName)
	assert.Contains(t, out, " 0 num_occupants")
	assert.Contains(t, out, "27 energy_star_home")
}

func TestFeaturesCommand(t *testing.T) {
	out := execute(t, append([]string{"features", "--json"}, householdArgs...)...)

	var resp struct {
		Weekday  int             `json:"weekday"`
		Features features.Vector `json:"features"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 4, resp.Weekday)
	assert.Equal(t, 7500.0, resp.Features[features.ColIncomePerPerson])
	assert.Equal(t, 1.0, resp.Features[features.ColSeasonSummer])
}

func TestRunCommand(t *testing.T) {
	args := append([]string{"run", "--manifest", "../../models/models.yaml", "--model", "random_forest"}, householdArgs...)
	out := execute(t, args...)
	assert.Contains(t, out, "Predicted energy usage (random_forest): 306.67 kWh")
}

func TestModelsCommand(t *testing.T) {
	out := execute(t, "models", "--manifest", "../../models/models.yaml")
	assert.Contains(t, out, "random_forest")
	assert.Contains(t, out, "linear_regression")
}
