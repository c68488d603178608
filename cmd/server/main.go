package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/niaga-platform/service-analytics/internal/clients"
	"github.com/niaga-platform/service-analytics/internal/config"
	"github.com/niaga-platform/service-analytics/internal/events"
	"github.com/niaga-platform/service-analytics/internal/handlers"
	applogger "github.com/niaga-platform/service-analytics/internal/logger"
	"github.com/niaga-platform/service-analytics/internal/middleware"
	"github.com/niaga-platform/service-analytics/internal/models"
	"github.com/niaga-platform/service-analytics/internal/providers"
	"github.com/niaga-platform/service-analytics/internal/render"
	"github.com/niaga-platform/service-analytics/internal/repository"
	"github.com/niaga-platform/service-analytics/internal/routes"
	"github.com/niaga-platform/service-analytics/internal/services"
)

func main() {
	// Load .env file in development
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger, err := applogger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Sentry for error tracking
	sentryEnabled := false
	if cfg.Sentry.DSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			Release:          cfg.Sentry.Release,
			ServerName:       "analytics-service",
			TracesSampleRate: 0.1,
		})
		if err != nil {
			logger.Warn("Failed to initialize Sentry", zap.Error(err))
		} else {
			sentryEnabled = true
			defer sentry.Flush(2 * time.Second)
		}
	}

	location, err := cfg.Analytics.Location()
	if err != nil {
		logger.Fatal("Invalid analytics timezone", zap.Error(err))
	}

	// Connect to database
	var orderRepo *repository.OrderRepository
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		if cfg.Analytics.Source == config.SourceDatabase {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		logger.Warn("Failed to connect to database, read model sync disabled", zap.Error(err))
	} else {
		if err := db.AutoMigrate(&models.AnalyticsOrder{}); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		sqlDB, _ := db.DB()
		defer sqlDB.Close()
		orderRepo = repository.NewOrderRepository(db, logger)
	}

	// Connect to Redis (optional - caching is skipped without it)
	var redisClient *redis.Client
	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := rc.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Failed to connect to Redis, series cache disabled", zap.Error(err))
		_ = rc.Close()
	} else {
		redisClient = rc
		defer redisClient.Close()
		logger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr()))
	}
	pingCancel()

	// Pick the order source
	factoryCfg := &providers.FactoryConfig{Logger: logger}
	if orderRepo != nil {
		factoryCfg.Database = orderRepo
	}
	if cfg.Services.OrderURL != "" {
		factoryCfg.OrderService = clients.NewOrderClient(cfg.Services.OrderURL, logger)
	}
	source, err := providers.NewSourceFactory(factoryCfg).Create(cfg.Analytics.Source)
	if err != nil {
		logger.Fatal("Failed to initialize order source", zap.Error(err))
	}

	// Initialize services
	seriesCache := services.NewSeriesCache(redisClient, cfg.Analytics.CacheTTL, logger)
	chartService := services.NewChartService(source, seriesCache, &services.ChartServiceConfig{
		Location:     location,
		DefaultColor: cfg.Analytics.DefaultColor,
		Options: render.Options{
			Width:      cfg.Chart.Width,
			Height:     cfg.Chart.Height,
			HTMLHeight: cfg.Chart.HTMLHeight,
		},
	}, logger)

	// Connect to NATS (optional - only if configured)
	var natsConn *nats.Conn
	var eventSubscriber *events.Subscriber

	if cfg.NATS.URL != "" {
		natsConn, err = nats.Connect(cfg.NATS.URL, nats.Name(cfg.App.Name))
		if err != nil {
			logger.Warn("Failed to connect to NATS, cache invalidation disabled", zap.Error(err))
		} else {
			logger.Info("Connected to NATS", zap.String("url", cfg.NATS.URL))

			var store events.OrderStore
			if orderRepo != nil {
				store = orderRepo
			}
			eventSubscriber = events.NewSubscriber(natsConn, seriesCache, store, logger)
			if err := eventSubscriber.Start(); err != nil {
				logger.Warn("Failed to start event subscriber", zap.Error(err))
			}
		}
	}

	// Initialize handlers
	chartHandler := handlers.NewChartHandler(chartService, logger)

	// Set Gin mode
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()

	// Apply global middleware
	router.Use(gin.Recovery())
	if sentryEnabled {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Setup routes using the routes package
	routes.SetupRoutes(router, &routes.RouteConfig{
		ChartHandler: chartHandler,
		JWTSecret:    cfg.JWT.Secret,
		ServiceName:  "analytics",
	})

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Analytics service starting",
			zap.String("port", cfg.App.Port),
			zap.String("source", cfg.Analytics.Source),
			zap.String("timezone", location.String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if eventSubscriber != nil {
		eventSubscriber.Stop()
	}
	if natsConn != nil {
		if err := natsConn.Drain(); err != nil {
			logger.Warn("Failed to drain NATS connection", zap.Error(err))
		}
	}

	logger.Info("Server exited")
}
