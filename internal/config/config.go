package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Model      ModelConfig
	Cache      CacheConfig
	Kafka      KafkaConfig
	Logging    LoggingConfig
}

// PostgreSQLConfig holds configuration for the optional prediction store
type PostgreSQLConfig struct {
	Enabled            bool
	DSN                string // full connection string, takes precedence over the fields below
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	WriteTimeoutSec    int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
	TimeZone       string
	DisplayLocale  string
}

// ModelConfig selects the model artifacts loaded at startup. ManifestPath
// wins over Path when both are set.
type ModelConfig struct {
	ManifestPath string
	Path         string
	Kind         string
	Name         string
}

// CacheConfig holds prediction cache configuration
type CacheConfig struct {
	Size int
}

// KafkaConfig holds prediction event publishing configuration
type KafkaConfig struct {
	Brokers         []string
	Topic           string
	WriteTimeoutSec int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("POSTGRESQL_URI", getEnv("PG_DSN", ""))),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "energy_predictor"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
			WriteTimeoutSec:    getEnvAsInt("PG_WRITE_TIMEOUT", 5),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
			TimeZone:       getEnv("TIME_ZONE", "Local"),
			DisplayLocale:  getEnv("DISPLAY_LOCALE", "en"),
		},
		Model: ModelConfig{
			ManifestPath: getEnv("MODEL_MANIFEST", "models/models.yaml"),
			Path:         getEnv("MODEL_PATH", ""),
			Kind:         getEnv("MODEL_KIND", ""),
			Name:         getEnv("MODEL_NAME", ""),
		},
		Cache: CacheConfig{
			Size: getEnvAsInt("PREDICTION_CACHE_SIZE", 1024),
		},
		Kafka: KafkaConfig{
			Brokers:         getEnvAsList("KAFKA_BROKERS", nil),
			Topic:           getEnv("KAFKA_PREDICTION_TOPIC", "energy.predictions"),
			WriteTimeoutSec: getEnvAsInt("KAFKA_WRITE_TIMEOUT", 5),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
		},
	}

	// An explicit single model path replaces the default manifest.
	if cfg.Model.Path != "" && os.Getenv("MODEL_MANIFEST") == "" {
		cfg.Model.ManifestPath = ""
	}

	cfg.PostgreSQL.Enabled = getEnvAsBool("PG_ENABLED", cfg.PostgreSQL.DSN != "")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail later at startup
func (c *Config) Validate() error {
	if c.Model.ManifestPath == "" && c.Model.Path == "" {
		return fmt.Errorf("either MODEL_MANIFEST or MODEL_PATH must be set")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.Server.Port)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("invalid PREDICTION_CACHE_SIZE %d", c.Cache.Size)
	}
	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// KafkaEnabled reports whether prediction events should be published
func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0 && c.Kafka.Topic != ""
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default %t", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
