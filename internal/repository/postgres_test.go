package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"energypredictor/internal/features"
	"energypredictor/internal/model"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests need a PostgreSQL server with the pgvector extension available.
// Set TEST_DATABASE_URL to run them.
func testRepo(t *testing.T) *PostgresRepository {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	repo, err := NewPostgresRepository(dsn, 2, 1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func record(occupants int, kwh float64) *model.PredictionRecord {
	raw := features.RawInput{
		Occupants:          occupants,
		HouseSizeSqft:      1500,
		MonthlyIncome:      30000,
		OutsideTempCelsius: 20,
		Date:               time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		HeatingType:        features.HeatingGas,
		CoolingType:        features.CoolingFan,
		ManualOverride:     features.ManualOverrideNo,
	}
	v := features.Derive(raw)
	return &model.PredictionRecord{
		ID:            uuid.NewString(),
		ModelName:     "random_forest",
		PredictionKWh: kwh,
		Input:         model.InputJSON(model.NewInputSummary(raw)),
		Features:      pgvector.NewVector(v.Float32s()),
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestPostgresRepository_InsertAndGet(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	rec := record(3, 280)
	require.NoError(t, repo.InsertPrediction(ctx, rec))

	got, err := repo.GetPredictionByID(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.ModelName, got.ModelName)
	assert.Equal(t, rec.PredictionKWh, got.PredictionKWh)
	assert.Equal(t, 3, got.Input.Occupants)
	assert.Len(t, got.FeatureValues(), features.NumColumns)

	missing, err := repo.GetPredictionByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostgresRepository_FindSimilar(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	ref := record(3, 280)
	near := record(4, 300)
	far := record(12, 900)
	for _, r := range []*model.PredictionRecord{ref, near, far} {
		require.NoError(t, repo.InsertPrediction(ctx, r))
	}

	got, err := repo.FindSimilar(ctx, ref.ID, 100)
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
		require.NotNil(t, r.Distance)
	}
	assert.NotContains(t, ids, ref.ID)
	nearIdx, farIdx := -1, -1
	for i, id := range ids {
		if id == near.ID {
			nearIdx = i
		}
		if id == far.ID {
			farIdx = i
		}
	}
	require.GreaterOrEqual(t, nearIdx, 0)
	require.GreaterOrEqual(t, farIdx, 0)
	assert.Less(t, nearIdx, farIdx)
}
