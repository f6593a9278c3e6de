package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
)

// PredictionRecord is a stored prediction
type PredictionRecord struct {
	ID            string          `json:"id" db:"id"`
	ModelName     string          `json:"model" db:"model_name"`
	PredictionKWh float64         `json:"prediction_kwh" db:"prediction_kwh"`
	Input         InputJSON       `json:"input" db:"input"`
	Features      pgvector.Vector `json:"-" db:"features"`
	Distance      *float64        `json:"distance,omitempty" db:"distance"` // set by similarity queries
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// FeatureValues returns the stored vector as float64 in schema order
func (r PredictionRecord) FeatureValues() []float64 {
	src := r.Features.Slice()
	out := make([]float64, len(src))
	for i, x := range src {
		out[i] = float64(x)
	}
	return out
}

// InputJSON stores an InputSummary in a JSONB column
type InputJSON InputSummary

// Value implements driver.Valuer interface
func (j InputJSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *InputJSON) Scan(value interface{}) error {
	if value == nil {
		*j = InputJSON{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("unsupported input column type %T", value)
	}
}

// PredictionEvent is published once per successful prediction
type PredictionEvent struct {
	ID            string       `json:"id"`
	Model         string       `json:"model"`
	Schema        string       `json:"schema"`
	PredictionKWh float64      `json:"prediction_kwh"`
	Input         InputSummary `json:"input"`
	Features      []float64    `json:"features"`
	CreatedAt     time.Time    `json:"created_at"`
}
