package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"energypredictor/internal/features"
	"energypredictor/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// schemaDDL creates the prediction log. The features column width matches
// features.NumColumns.
var schemaDDL = []string{
	`CREATE EXTENSION IF NOT EXISTS vector`,
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS prediction_logs (
		id             UUID PRIMARY KEY,
		model_name     TEXT NOT NULL,
		prediction_kwh DOUBLE PRECISION NOT NULL,
		input          JSONB NOT NULL,
		features       vector(%d) NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`, features.NumColumns),
	`CREATE INDEX IF NOT EXISTS prediction_logs_created_at_idx ON prediction_logs (created_at DESC)`,
}

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepositoryFromDB wraps an existing connection
func NewPostgresRepositoryFromDB(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema creates the pgvector extension and prediction table if missing
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaDDL {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// InsertPrediction stores a prediction and its feature vector
func (r *PostgresRepository) InsertPrediction(ctx context.Context, rec *model.PredictionRecord) error {
	query := `
		INSERT INTO prediction_logs (id, model_name, prediction_kwh, input, features, created_at)
		VALUES (:id, :model_name, :prediction_kwh, :input, :features, :created_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, rec)
	if err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}
	return nil
}

// GetPredictionByID retrieves a stored prediction; it returns nil, nil when absent
func (r *PostgresRepository) GetPredictionByID(ctx context.Context, id string) (*model.PredictionRecord, error) {
	var rec model.PredictionRecord
	query := `
		SELECT id, model_name, prediction_kwh, input, features, created_at
		FROM prediction_logs
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &rec, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	return &rec, nil
}

// FindSimilar returns up to limit stored predictions nearest (L2) to the
// feature vector of prediction id, excluding id itself
func (r *PostgresRepository) FindSimilar(ctx context.Context, id string, limit int) ([]model.PredictionRecord, error) {
	query := `
		SELECT p.id, p.model_name, p.prediction_kwh, p.input, p.features, p.created_at,
			p.features <-> ref.features AS distance
		FROM prediction_logs p, (SELECT features FROM prediction_logs WHERE id = $1) ref
		WHERE p.id <> $1
		ORDER BY p.features <-> ref.features
		LIMIT $2
	`
	var recs []model.PredictionRecord
	if err := r.db.SelectContext(ctx, &recs, query, id, limit); err != nil {
		return nil, fmt.Errorf("failed to find similar predictions: %w", err)
	}
	return recs, nil
}
