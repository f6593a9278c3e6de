package inference

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// artifactSchema describes the JSON layout of a model artifact file
const artifactSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["kind", "feature_names"],
  "properties": {
    "kind": {"type": "string", "enum": ["linear_regression", "random_forest"]},
    "name": {"type": "string"},
    "feature_names": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "intercept": {"type": "number"},
    "coefficients": {"type": "array", "items": {"type": "number"}},
    "trees": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["nodes"],
        "properties": {
          "nodes": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "properties": {
                "feature": {"type": "integer"},
                "threshold": {"type": "number"},
                "left": {"type": "integer"},
                "right": {"type": "integer"},
                "value": {"type": "number"},
                "leaf": {"type": "boolean"}
              }
            }
          }
        }
      }
    }
  },
  "allOf": [
    {
      "if": {"properties": {"kind": {"const": "linear_regression"}}},
      "then": {"required": ["intercept", "coefficients"]}
    },
    {
      "if": {"properties": {"kind": {"const": "random_forest"}}},
      "then": {"required": ["trees"]}
    }
  ]
}`

var artifactValidator = func() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(artifactSchema))
	if err != nil {
		panic(fmt.Sprintf("invalid artifact schema: %v", err))
	}
	return schema
}()

// Artifact is the decoded content of a model file
type Artifact struct {
	Kind         string    `json:"kind"`
	Name         string    `json:"name,omitempty"`
	FeatureNames []string  `json:"feature_names"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients,omitempty"`
	Trees        []Tree    `json:"trees,omitempty"`
}

// ParseArtifact validates raw JSON against the artifact schema and decodes it.
func ParseArtifact(data []byte) (*Artifact, error) {
	result, err := artifactValidator.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			msgs = append(msgs, field+": "+desc.Description())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidArtifact, strings.Join(msgs, "; "))
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	return &a, nil
}

// Build constructs the model described by the artifact. name overrides the
// artifact's own name when non-empty.
func (a *Artifact) Build(name string) (Model, error) {
	if name == "" {
		name = a.Name
	}
	if name == "" {
		name = a.Kind
	}

	switch a.Kind {
	case KindLinearRegression:
		return NewLinearRegression(name, a.FeatureNames, a.Intercept, a.Coefficients)
	case KindRandomForest:
		return NewRandomForest(name, a.FeatureNames, a.Trees)
	default:
		return nil, fmt.Errorf("%w: unsupported model kind %q", ErrInvalidArtifact, a.Kind)
	}
}

// LoadModel reads and builds the model artifact at path. When kind is set it
// must agree with the artifact's declared kind.
func LoadModel(name, kind, path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}

	artifact, err := ParseArtifact(data)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	if kind != "" && kind != artifact.Kind {
		return nil, fmt.Errorf("model %s: %w: manifest kind %q, artifact kind %q", path, ErrInvalidArtifact, kind, artifact.Kind)
	}

	model, err := artifact.Build(name)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return model, nil
}
