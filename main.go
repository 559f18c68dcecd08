package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drivefund/config"
	"drivefund/controllers"
	"drivefund/database"
	"drivefund/metrics"
	"drivefund/middleware"
	"drivefund/models"
	"drivefund/routes"
	"drivefund/services"
	"drivefund/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Initialize application
	app, err := NewApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Start the application
	if err := app.Start(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// Application represents the main application structure
type Application struct {
	config      *config.Config
	server      *http.Server
	dbManager   *config.DatabaseManager
	vocabulary  *models.StatusVocabulary
	recorder    *metrics.Recorder
	rateLimiter *middleware.RateLimiter
	router      *gin.Engine

	// cancels background jobs
	stop context.CancelFunc
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	cfg := config.LoadConfig()
	if err := cfg.ValidateConfig(); err != nil {
		return nil, err
	}
	requestLogger := cfg.ConfigureLogging()
	utils.SetJWTSecret(cfg.JWTSecret)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	vocabulary, err := config.LoadStatusVocabulary(cfg.StatusVocabularyFile)
	if err != nil {
		return nil, err
	}

	app := &Application{
		config:     cfg,
		vocabulary: vocabulary,
		recorder:   metrics.New(),
		router:     gin.New(),
	}
	if cfg.RateLimitEnabled {
		app.rateLimiter = middleware.NewRateLimiter(cfg.RateLimitWindow, cfg.RateLimitRequests)
	}

	store, pinger, err := app.initializeStore()
	if err != nil {
		return nil, err
	}

	analyticsService := services.NewAnalyticsService(store, vocabulary, services.WithMetrics(app.recorder))

	// Trust proxies for proper client IP detection
	if err := app.router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
		return nil, err
	}

	routes.SetupRoutes(app.router, routes.Dependencies{
		Analytics:      analyticsService,
		Health:         controllers.NewHealthController(cfg.AppName, cfg.AppVersion, cfg.Environment, cfg.DataSource, pinger),
		Vocabulary:     vocabulary,
		Permission:     cfg.AnalyticsPermission,
		Metrics:        app.recorder,
		MetricsHandler: app.recorder.Handler(),
		RateLimiter:    app.rateLimiter,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         requestLogger,
	})

	app.server = &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      app.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return app, nil
}

// initializeStore connects the configured data source. pinger is nil for the
// in-memory store.
func (app *Application) initializeStore() (services.AnalyticsStore, controllers.Pinger, error) {
	if app.config.UsesMemoryStore() {
		log.Warn("Serving analytics from the in-memory store")
		store := database.NewMemoryStore(app.vocabulary)
		if app.config.MemorySeedFile != "" {
			if err := store.LoadMemorySeedFile(app.config.MemorySeedFile); err != nil {
				return nil, nil, err
			}
			log.WithField("path", app.config.MemorySeedFile).Info("Loaded memory seed")
		}
		return store, nil, nil
	}

	log.Info("Initializing database...")
	app.dbManager = config.NewDatabaseManager(app.config)
	if err := app.dbManager.Initialize(); err != nil {
		return nil, nil, err
	}
	if err := app.dbManager.SetupDatabase(); err != nil {
		return nil, nil, err
	}

	if app.config.Debug {
		if sizes, err := app.dbManager.GetCollectionSizes(); err == nil {
			log.WithField("collections", sizes).Debug("Analytics collection sizes")
		}
	}

	log.Info("Database initialization completed successfully")
	return database.NewMongoAnalyticsStore(app.dbManager.Collections(), app.vocabulary), app.dbManager, nil
}

// Start starts background jobs and the HTTP server, then blocks until shutdown
func (app *Application) Start() error {
	app.logStartupInfo()

	ctx, cancel := context.WithCancel(context.Background())
	app.stop = cancel
	app.startBackgroundJobs(ctx)

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Server starting on %s", app.server.Addr)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		app.shutdown()
		return err
	case <-quit:
		log.Info("Shutdown signal received...")
	}

	app.shutdown()
	return nil
}

// shutdown gracefully shuts down the application
func (app *Application) shutdown() {
	log.Info("Shutting down server...")

	if app.stop != nil {
		app.stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if app.dbManager != nil {
		if err := app.dbManager.Close(); err != nil {
			log.WithError(err).Error("Error closing database")
		}
	}

	log.Info("Server shutdown complete")
}

func (app *Application) startBackgroundJobs(ctx context.Context) {
	if app.dbManager != nil {
		go app.dbManager.MonitorConnection(ctx, 5*time.Minute)
	}

	if app.rateLimiter != nil {
		go app.rateLimiter.RunCleanup(10*time.Minute, ctx.Done())
	}

	log.Info("Background jobs started successfully")
}

// logStartupInfo logs important startup information
func (app *Application) logStartupInfo() {
	log.WithFields(log.Fields{
		"app":         app.config.AppName,
		"version":     app.config.AppVersion,
		"environment": app.config.Environment,
		"data_source": app.config.DataSource,
		"database":    app.config.DBName,
		"rate_limit":  app.config.RateLimitEnabled,
		"vocabulary":  app.config.StatusVocabularyFile,
	}).Info("Starting application")
}
