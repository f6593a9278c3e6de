package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRESQL_URI", "")
	t.Setenv("PG_DSN", "")
	t.Setenv("PG_ENABLED", "")
	t.Setenv("MODEL_MANIFEST", "")
	t.Setenv("MODEL_PATH", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "models/models.yaml", cfg.Model.ManifestPath)
	assert.False(t, cfg.PostgreSQL.Enabled)
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, 1024, cfg.Cache.Size)
}

func TestLoad_SingleModelPathReplacesManifest(t *testing.T) {
	t.Setenv("MODEL_MANIFEST", "")
	t.Setenv("MODEL_PATH", "/srv/models/linear.json")
	t.Setenv("MODEL_KIND", "linear_regression")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Model.ManifestPath)
	assert.Equal(t, "/srv/models/linear.json", cfg.Model.Path)
	assert.Equal(t, "linear_regression", cfg.Model.Kind)
}

func TestLoad_DSNEnablesStore(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/energy")
	t.Setenv("PG_ENABLED", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.PostgreSQL.Enabled)
	assert.Equal(t, "postgres://u:p@db:5432/energy", cfg.GetPostgreSQLDSN())
}

func TestLoad_ExplicitDisableWins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/energy")
	t.Setenv("PG_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.PostgreSQL.Enabled)
}

func TestLoad_KafkaBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092 ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.KafkaEnabled())
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("PREDICTION_CACHE_SIZE", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Cache.Size)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetPostgreSQLDSN_FromFields(t *testing.T) {
	cfg := &Config{PostgreSQL: PostgreSQLConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Database: "d", SSLMode: "disable",
	}}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=d sslmode=disable", cfg.GetPostgreSQLDSN())
}
