package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"energypredictor/internal/config"
	"energypredictor/internal/events"
	"energypredictor/internal/handler"
	"energypredictor/internal/inference"
	"energypredictor/internal/logging"
	"energypredictor/internal/metrics"
	"energypredictor/internal/repository"
	"energypredictor/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, restoreLog, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialise logging: %v", err)
	}
	defer restoreLog()

	// Print version info
	log.Printf("Home Energy Usage Predictor")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)

	gin.SetMode(cfg.Server.GinMode)

	loc, err := time.LoadLocation(cfg.Server.TimeZone)
	if err != nil {
		log.Fatalf("Invalid TIME_ZONE %q: %v", cfg.Server.TimeZone, err)
	}

	// Load models
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	registry, err := inference.OpenRegistry(loadCtx, cfg.Model.ManifestPath, cfg.Model.Path, cfg.Model.Kind, cfg.Model.Name)
	cancelLoad()
	if err != nil {
		log.Fatalf("Failed to load models: %v", err)
	}
	for _, m := range registry.List() {
		log.Printf("✅ Loaded model %s (%s, %d features, default=%t)", m.Name, m.Kind, m.Features, m.Default)
	}

	opts := service.Options{
		Metrics:     metrics.New(),
		Logger:      logger,
		CacheSize:   cfg.Cache.Size,
		Locale:      cfg.Server.DisplayLocale,
		Location:    loc,
		SinkTimeout: time.Duration(cfg.PostgreSQL.WriteTimeoutSec) * time.Second,
	}

	// Optional prediction store
	if cfg.PostgreSQL.Enabled {
		repo, err := repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer repo.Close()

		schemaCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = repo.EnsureSchema(schemaCtx)
		cancel()
		if err != nil {
			log.Fatalf("Failed to prepare database schema: %v", err)
		}
		opts.Store = repo
		log.Println("✅ Connected to PostgreSQL database")
	} else {
		log.Println("⚠️  PostgreSQL is disabled - predictions will not be stored")
	}

	// Optional prediction events
	if cfg.KafkaEnabled() {
		publisher := events.NewKafkaPublisher(
			cfg.Kafka.Brokers,
			cfg.Kafka.Topic,
			time.Duration(cfg.Kafka.WriteTimeoutSec)*time.Second,
		)
		defer publisher.Close()
		opts.Events = publisher
		log.Printf("✅ Publishing prediction events to %s on %s", cfg.Kafka.Topic, strings.Join(cfg.Kafka.Brokers, ","))
	}

	predictionService, err := service.NewPredictionService(registry, opts)
	if err != nil {
		log.Fatalf("Failed to initialise prediction service: %v", err)
	}

	log.Println("✅ Services initialized")

	// Initialize handlers
	predictHandler := handler.NewPredictHandler(predictionService)
	predictionsHandler := handler.NewPredictionsHandler(predictionService)
	modelsHandler := handler.NewModelsHandler(predictionService)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), opts.Metrics.Middleware())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	if origins := splitList(cfg.Server.AllowedOrigins); len(origins) == 1 && origins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowMethods = splitList(cfg.Server.AllowedMethods)
	corsConfig.AllowHeaders = splitList(cfg.Server.AllowedHeaders)
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "healthy",
			"service":       "energy-predictor",
			"version":       Version,
			"build_time":    BuildTime,
			"git_commit":    GitCommit,
			"default_model": registry.DefaultName(),
		})
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/predict", predictHandler.Predict)
		apiV1.POST("/features", predictHandler.Features)

		apiV1.GET("/models", modelsHandler.List)
		apiV1.GET("/schema", modelsHandler.Schema)

		apiV1.GET("/predictions/:id", predictionsHandler.Get)
		apiV1.GET("/predictions/:id/similar", predictionsHandler.Similar)
	}

	// Serve the prediction form
	// This function is implemented in embed.go (production) or static_dev.go (development)
	setupStaticFiles(router)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("🌐 Web UI: http://localhost:%d", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	predictionService.Wait()
	log.Println("✅ Server stopped")
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
