package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"energypredictor/internal/inference"
	"energypredictor/internal/model"
	"energypredictor/internal/service"

	"github.com/spf13/cobra"
)

// modelFlags select the artifacts to load
type modelFlags struct {
	manifest  string
	modelPath string
	kind      string
	name      string
}

func (f *modelFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.manifest, "manifest", envOr("MODEL_MANIFEST", "models/models.yaml"), "Path to the model manifest (YAML)")
	fs.StringVar(&f.modelPath, "model-path", os.Getenv("MODEL_PATH"), "Path to a single model artifact; takes precedence over --manifest")
	fs.StringVar(&f.kind, "model-kind", os.Getenv("MODEL_KIND"), "Expected kind of --model-path (linear_regression or random_forest)")
	fs.StringVar(&f.name, "model-name", os.Getenv("MODEL_NAME"), "Name for --model-path")
}

func (f *modelFlags) open(ctx context.Context) (*inference.Registry, error) {
	manifest := f.manifest
	if f.modelPath != "" {
		manifest = ""
	}
	return inference.OpenRegistry(ctx, manifest, f.modelPath, f.kind, f.name)
}

func (f *modelFlags) service(ctx context.Context) (*service.PredictionService, error) {
	reg, err := f.open(ctx)
	if err != nil {
		return nil, err
	}
	return service.NewPredictionService(reg, service.Options{
		Locale:   envOr("DISPLAY_LOCALE", "en"),
		Location: time.Local,
	})
}

// bindInput registers one flag per household attribute
func bindInput(cmd *cobra.Command, req *model.PredictRequest) {
	fs := cmd.Flags()
	fs.IntVar(&req.Occupants, "occupants", 1, "Number of occupants")
	fs.Float64Var(&req.HouseSizeSqft, "house-size", 0, "House size in square feet")
	fs.Float64Var(&req.MonthlyIncome, "income", 0, "Monthly income")
	fs.Float64Var(&req.OutsideTempCelsius, "temp", 0, "Outside temperature in degrees Celsius")
	fs.StringVar(&req.Date, "date", "", "Date as YYYY-MM-DD (default today)")
	fs.StringVar(&req.HeatingType, "heating", "", "Heating type: Electric, Gas or None")
	fs.StringVar(&req.CoolingType, "cooling", "", "Cooling type: AC, Fan or None")
	fs.StringVar(&req.ManualOverride, "override", "No", "Manual override: Yes or No")
	fs.BoolVar(&req.EnergyStarCertified, "energy-star", false, "Home is Energy Star certified")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
