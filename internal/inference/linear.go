package inference

import (
	"context"
	"fmt"
	"math"

	"energypredictor/internal/features"
)

// LinearRegression evaluates intercept + Σ coefficient_i · x_i
type LinearRegression struct {
	name         string
	featureNames []string
	intercept    float64
	coefficients []float64
}

// NewLinearRegression builds a linear model, rejecting layouts that do not
// match the feature schema.
func NewLinearRegression(name string, featureNames []string, intercept float64, coefficients []float64) (*LinearRegression, error) {
	if err := checkSchema(featureNames); err != nil {
		return nil, err
	}
	if len(coefficients) != len(featureNames) {
		return nil, fmt.Errorf("%w: %d coefficients for %d features", ErrSchemaMismatch, len(coefficients), len(featureNames))
	}
	coefs := make([]float64, len(coefficients))
	copy(coefs, coefficients)

	return &LinearRegression{
		name:         name,
		featureNames: copyNames(featureNames),
		intercept:    intercept,
		coefficients: coefs,
	}, nil
}

// Name returns the registry name
func (m *LinearRegression) Name() string { return m.name }

// Kind returns KindLinearRegression
func (m *LinearRegression) Kind() string { return KindLinearRegression }

// FeatureNames returns the ordered feature layout
func (m *LinearRegression) FeatureNames() []string { return copyNames(m.featureNames) }

// Predict computes the linear combination for v
func (m *LinearRegression) Predict(ctx context.Context, v features.Vector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(m.coefficients) != len(v) {
		return 0, fmt.Errorf("%w: model expects %d features, vector has %d", ErrSchemaMismatch, len(m.coefficients), len(v))
	}

	y := m.intercept
	for i, x := range v {
		y += m.coefficients[i] * x
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, fmt.Errorf("linear model %s produced non-finite output", m.name)
	}
	return y, nil
}
