package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mgnrega/server/config"
	"mgnrega/server/internal/api"
	"mgnrega/server/internal/charts"
	"mgnrega/server/internal/collector"
	"mgnrega/server/internal/dashboard"
	"mgnrega/server/internal/database"
	"mgnrega/server/internal/generative"
	"mgnrega/server/internal/language"
	"mgnrega/server/internal/location"
	"mgnrega/server/internal/store"
	"mgnrega/server/internal/translation"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	connectTimeout := time.Duration(cfg.Mongo.ConnectTimeout) * time.Second
	db, err := database.NewDatabase(cfg.Mongo.URI, cfg.Mongo.Database, connectTimeout, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	districts := store.NewDistrictStore(db, logger)
	analytics := store.NewAnalyticsStore(db, logger)
	cache := store.NewCacheStore(db, logger)

	resolver := location.NewResolver(cfg, logger)
	detector := language.NewDetector(logger)
	translator := translation.NewTranslator(cfg, logger)
	gemini := generative.NewClient(cfg, logger)
	renderer := charts.NewRenderer(cfg, logger)
	coll := collector.NewCollector(cfg, districts, cache, gemini, logger)
	builder := dashboard.NewAggregator(resolver, districts, detector, analytics, logger)

	// Seed on first start so the dashboard has something to show.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 5*time.Minute)
	count, err := districts.Count(startupCtx)
	if err != nil {
		logger.WithError(err).Error("Failed to count districts")
	} else if count == 0 {
		logger.Info("No district data found, running initial collection")
		coll.CollectAll(startupCtx)
	}
	cancelStartup()

	scheduler := collector.NewScheduler(coll, time.Duration(cfg.Collector.RefreshInterval)*time.Hour, logger)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(builder, districts, analytics, translator, renderer, coll, db, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(cors.Default())
	router.Use(api.RequestID())
	router.Use(api.RequestLogger(logger))
	api.SetupRoutes(router, handler,
		api.RateLimit(cfg.RateLimit.Max, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute, logger))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Starting server on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Forced shutdown")
	}
	logger.Info("Server stopped")
}
