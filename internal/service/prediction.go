package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"energypredictor/internal/charts"
	"energypredictor/internal/features"
	"energypredictor/internal/inference"
	"energypredictor/internal/metrics"
	"energypredictor/internal/model"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	// ErrPredictionFailed wraps schema mismatches and inference errors
	ErrPredictionFailed = errors.New("prediction failed")
	// ErrNotFound is returned for unknown prediction ids
	ErrNotFound = errors.New("prediction not found")
	// ErrStoreDisabled is returned by lookups when no store is configured
	ErrStoreDisabled = errors.New("prediction store disabled")
)

const (
	defaultSimilar = 5
	maxSimilar     = 50
)

// PredictionStore persists predictions
type PredictionStore interface {
	InsertPrediction(ctx context.Context, rec *model.PredictionRecord) error
	GetPredictionByID(ctx context.Context, id string) (*model.PredictionRecord, error)
	FindSimilar(ctx context.Context, id string, limit int) ([]model.PredictionRecord, error)
}

// EventPublisher emits one event per successful prediction
type EventPublisher interface {
	Publish(ctx context.Context, ev *model.PredictionEvent) error
}

// Options configures a PredictionService. Store and Events may be nil.
type Options struct {
	Store       PredictionStore
	Events      EventPublisher
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
	CacheSize   int
	Locale      string
	Location    *time.Location
	SinkTimeout time.Duration
}

// PredictionService runs collect, derive, infer and chart building for one request
type PredictionService struct {
	registry    *inference.Registry
	collector   *Collector
	store       PredictionStore
	events      EventPublisher
	metrics     *metrics.Metrics
	logger      *zap.Logger
	cache       *lru.Cache[string, float64]
	printer     *message.Printer
	sinkTimeout time.Duration
	wg          sync.WaitGroup
}

// NewPredictionService creates a new prediction service
func NewPredictionService(registry *inference.Registry, opts Options) (*PredictionService, error) {
	if registry == nil {
		return nil, errors.New("model registry is required")
	}

	s := &PredictionService{
		registry:    registry,
		collector:   NewCollector(opts.Location),
		store:       opts.Store,
		events:      opts.Events,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
		sinkTimeout: opts.SinkTimeout,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.sinkTimeout <= 0 {
		s.sinkTimeout = 5 * time.Second
	}

	if opts.CacheSize > 0 {
		cache, err := lru.New[string, float64](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create prediction cache: %w", err)
		}
		s.cache = cache
	}

	tag, err := language.Parse(opts.Locale)
	if err != nil {
		tag = language.English
	}
	s.printer = message.NewPrinter(tag)

	return s, nil
}

// Predict returns the energy usage prediction for req
func (s *PredictionService) Predict(ctx context.Context, req *model.PredictRequest) (*model.PredictionResult, error) {
	startTime := time.Now()

	raw, err := s.collector.Collect(req)
	if err != nil {
		s.metrics.Prediction("none", metrics.OutcomeInvalidInput, 0)
		return nil, err
	}
	vector := features.Derive(raw)

	m, err := s.registry.Get(req.Model)
	if err != nil {
		s.metrics.Prediction("none", metrics.OutcomeModelNotFound, 0)
		return nil, err
	}

	kwh, cached, err := s.infer(ctx, m, vector)
	if err != nil {
		s.metrics.Prediction(m.Name(), metrics.OutcomeInferenceFailed, 0)
		return nil, fmt.Errorf("%w: %w", ErrPredictionFailed, err)
	}
	s.metrics.Prediction(m.Name(), metrics.OutcomeSuccess, kwh)

	result := &model.PredictionResult{
		ID:            uuid.NewString(),
		Model:         m.Name(),
		PredictionKWh: kwh,
		Display:       s.Display(kwh),
		Schema:        features.SchemaName,
		Input:         model.NewInputSummary(raw),
		Season:        string(features.SeasonForMonth(raw.Date.Month())),
		Features:      vector,
		Charts:        charts.Build(raw, vector, kwh),
		Cached:        cached,
		CreatedAt:     time.Now().UTC(),
	}
	result.Took = time.Since(startTime).Milliseconds()

	s.record(result)
	return result, nil
}

// infer runs the model, consulting the cache first. Models are pure and
// read-only, so a cached value is the value the model would return.
func (s *PredictionService) infer(ctx context.Context, m inference.Model, v features.Vector) (float64, bool, error) {
	if s.cache == nil {
		kwh, err := m.Predict(ctx, v)
		return kwh, false, err
	}

	key := cacheKey(m.Name(), v)
	if kwh, ok := s.cache.Get(key); ok {
		s.metrics.CacheHit()
		return kwh, true, nil
	}
	s.metrics.CacheMiss()

	kwh, err := m.Predict(ctx, v)
	if err != nil {
		return 0, false, err
	}
	s.cache.Add(key, kwh)
	return kwh, false, nil
}

func cacheKey(name string, v features.Vector) string {
	var b strings.Builder
	b.WriteString(name)
	for _, x := range v {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	return b.String()
}

// Display formats kWh for the configured locale, e.g. "1,234.57 kWh"
func (s *PredictionService) Display(kwh float64) string {
	return s.printer.Sprintf("%.2f kWh", kwh)
}

// record hands the prediction to the store and event sinks in the background
func (s *PredictionService) record(res *model.PredictionResult) {
	if s.store != nil {
		rec := &model.PredictionRecord{
			ID:            res.ID,
			ModelName:     res.Model,
			PredictionKWh: res.PredictionKWh,
			Input:         model.InputJSON(res.Input),
			Features:      pgvector.NewVector(res.Features.Float32s()),
			CreatedAt:     res.CreatedAt,
		}
		s.async("postgres", func(ctx context.Context) error {
			return s.store.InsertPrediction(ctx, rec)
		})
	}

	if s.events != nil {
		ev := &model.PredictionEvent{
			ID:            res.ID,
			Model:         res.Model,
			Schema:        res.Schema,
			PredictionKWh: res.PredictionKWh,
			Input:         res.Input,
			Features:      res.Features.Values(),
			CreatedAt:     res.CreatedAt,
		}
		s.async("kafka", func(ctx context.Context) error {
			return s.events.Publish(ctx, ev)
		})
	}
}

func (s *PredictionService) async(sink string, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.sinkTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			s.metrics.SinkError(sink)
			s.logger.Warn("prediction sink write failed", zap.String("sink", sink), zap.Error(err))
		}
	}()
}

// Wait blocks until background sink writes have finished
func (s *PredictionService) Wait() {
	s.wg.Wait()
}

// Derive validates req and returns its feature vector without running a model
func (s *PredictionService) Derive(_ context.Context, req *model.PredictRequest) (*model.FeaturesResponse, error) {
	return s.collector.Features(req)
}

// GetPrediction loads a stored prediction
func (s *PredictionService) GetPrediction(ctx context.Context, id string) (*model.PredictionRecord, error) {
	if s.store == nil {
		return nil, ErrStoreDisabled
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	rec, err := s.store.GetPredictionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return rec, nil
}

// SimilarPredictions returns up to k stored predictions whose feature
// vectors are closest to that of prediction id
func (s *PredictionService) SimilarPredictions(ctx context.Context, id string, k int) (*model.SimilarResponse, error) {
	if _, err := s.GetPrediction(ctx, id); err != nil {
		return nil, err
	}

	if k <= 0 {
		k = defaultSimilar
	}
	if k > maxSimilar {
		k = maxSimilar
	}

	recs, err := s.store.FindSimilar(ctx, id, k)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []model.PredictionRecord{}
	}
	return &model.SimilarResponse{ID: id, Results: recs}, nil
}

// Models lists the loaded models
func (s *PredictionService) Models() *model.ModelsResponse {
	infos := s.registry.List()
	out := &model.ModelsResponse{
		Default: s.registry.DefaultName(),
		Models:  make([]model.ModelInfo, 0, len(infos)),
	}
	for _, info := range infos {
		out.Models = append(out.Models, model.ModelInfo{
			Name:     info.Name,
			Kind:     info.Kind,
			Features: info.Features,
			Default:  info.Default,
		})
	}
	return out
}

// Schema describes the feature layout
func (s *PredictionService) Schema() *model.SchemaResponse {
	return &model.SchemaResponse{
		Schema:                features.SchemaName,
		Columns:               features.Columns(),
		SeasonOrdinal:         false,
		TempAboveAvgThreshold: features.TempAboveAvgThreshold,
		LowTempThreshold:      features.LowTempThreshold,
		HighIncomeThreshold:   features.HighIncomeThreshold,
	}
}
