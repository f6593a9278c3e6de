package inference

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"
)

// ManifestEntry names one model artifact to load
type ManifestEntry struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	Path    string `yaml:"path"`
	Default bool   `yaml:"default"`
}

// Manifest lists the model artifacts served by the process
type Manifest struct {
	Models []ManifestEntry `yaml:"models"`
}

// LoadManifest reads a YAML manifest. Relative artifact paths resolve
// against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model manifest: %w", err)
	}
	if len(m.Models) == 0 {
		return nil, errors.New("model manifest lists no models")
	}

	dir := filepath.Dir(path)
	for i := range m.Models {
		if m.Models[i].Path != "" && !filepath.IsAbs(m.Models[i].Path) {
			m.Models[i].Path = filepath.Join(dir, m.Models[i].Path)
		}
	}
	return &m, nil
}

// ModelInfo summarises a loaded model
type ModelInfo struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Features int    `json:"features"`
	Default  bool   `json:"default"`
}

// Registry holds the models loaded at startup. It is never mutated after
// construction, so concurrent reads need no locking.
type Registry struct {
	models       map[string]Model
	defaultModel string
}

// NewRegistry builds a registry from already constructed models. The first
// model is the default unless defaultName is set.
func NewRegistry(defaultName string, models ...Model) (*Registry, error) {
	if len(models) == 0 {
		return nil, errors.New("no models provided")
	}

	r := &Registry{models: make(map[string]Model, len(models))}
	for _, m := range models {
		if _, dup := r.models[m.Name()]; dup {
			return nil, fmt.Errorf("duplicate model name %q", m.Name())
		}
		r.models[m.Name()] = m
	}

	if defaultName == "" {
		defaultName = models[0].Name()
	}
	if _, ok := r.models[defaultName]; !ok {
		return nil, fmt.Errorf("%w: default %q", ErrModelNotFound, defaultName)
	}
	r.defaultModel = defaultName
	return r, nil
}

// LoadRegistry loads every manifest entry concurrently. Any failure aborts
// the whole load.
func LoadRegistry(ctx context.Context, manifest *Manifest) (*Registry, error) {
	if manifest == nil || len(manifest.Models) == 0 {
		return nil, errors.New("model manifest lists no models")
	}

	models := make([]Model, len(manifest.Models))
	defaultName := ""

	g, gCtx := errgroup.WithContext(ctx)
	for i, entry := range manifest.Models {
		if entry.Name == "" {
			return nil, fmt.Errorf("manifest entry %d has no name", i)
		}
		if entry.Default {
			if defaultName != "" {
				return nil, fmt.Errorf("manifest marks both %q and %q as default", defaultName, entry.Name)
			}
			defaultName = entry.Name
		}

		i, entry := i, entry
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			m, err := LoadModel(entry.Name, entry.Kind, entry.Path)
			if err != nil {
				return err
			}
			models[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewRegistry(defaultName, models...)
}

// Get returns the named model, or the default model when name is empty.
func (r *Registry) Get(name string) (Model, error) {
	if name == "" {
		name = r.defaultModel
	}
	m, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrModelNotFound, name)
	}
	return m, nil
}

// Default returns the default model
func (r *Registry) Default() Model {
	return r.models[r.defaultModel]
}

// DefaultName returns the name of the default model
func (r *Registry) DefaultName() string {
	return r.defaultModel
}

// List returns the loaded models sorted by name
func (r *Registry) List() []ModelInfo {
	out := make([]ModelInfo, 0, len(r.models))
	for name, m := range r.models {
		out = append(out, ModelInfo{
			Name:     name,
			Kind:     m.Kind(),
			Features: len(m.FeatureNames()),
			Default:  name == r.defaultModel,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// OpenRegistry loads the manifest at manifestPath. When manifestPath is
// empty it serves the single artifact at modelPath instead.
func OpenRegistry(ctx context.Context, manifestPath, modelPath, kind, name string) (*Registry, error) {
	if manifestPath != "" {
		manifest, err := LoadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		return LoadRegistry(ctx, manifest)
	}

	if modelPath == "" {
		return nil, errors.New("no model manifest or model path configured")
	}
	m, err := LoadModel(name, kind, modelPath)
	if err != nil {
		return nil, err
	}
	return NewRegistry("", m)
}
