// Package inference loads pre-trained regression artifacts and evaluates
// them against derived feature vectors.
package inference

import (
	"context"
	"errors"
	"fmt"

	"energypredictor/internal/features"
)

// Artifact kinds understood by the loader
const (
	KindLinearRegression = "linear_regression"
	KindRandomForest     = "random_forest"
)

var (
	// ErrSchemaMismatch is returned when a model's declared feature layout
	// differs from the layout produced by features.Derive.
	ErrSchemaMismatch = errors.New("feature schema mismatch")
	// ErrModelNotFound is returned when a requested model is not loaded.
	ErrModelNotFound = errors.New("model not found")
	// ErrInvalidArtifact is returned for unreadable or malformed artifacts.
	ErrInvalidArtifact = errors.New("invalid model artifact")
)

// Model is a loaded, read-only regression model
type Model interface {
	// Name is the registry name of the model
	Name() string
	// Kind is the artifact kind, e.g. "random_forest"
	Kind() string
	// FeatureNames is the ordered feature layout the model was fit on
	FeatureNames() []string
	// Predict returns the predicted monthly energy usage in kWh
	Predict(ctx context.Context, v features.Vector) (float64, error)
}

// checkSchema verifies a model's feature layout against the deriver's.
func checkSchema(names []string) error {
	if ok, reason := features.MatchesSchema(names); !ok {
		return fmt.Errorf("%w: %s", ErrSchemaMismatch, reason)
	}
	return nil
}

func copyNames(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
