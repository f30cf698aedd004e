package app

import (
	"context"
	"database/sql"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Navneet1266/energy-ingestion/internal/config"
	"github.com/Navneet1266/energy-ingestion/internal/db"
	httpserver "github.com/Navneet1266/energy-ingestion/internal/http"
	"github.com/Navneet1266/energy-ingestion/internal/http/handlers"
	redisstore "github.com/Navneet1266/energy-ingestion/internal/redis"
	"github.com/Navneet1266/energy-ingestion/internal/repository"
	"github.com/Navneet1266/energy-ingestion/internal/service"
)

const version = "1.0.0"

// App wires the ingestion engine dependencies.
type App struct {
	server      *httpserver.Server
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN, cfg.Database.ConnectRetries, cfg.RetryDelay(), logger)
	if err != nil {
		return nil, err
	}

	db.ApplySchema(ctx, sqlDB, logger)

	var (
		redisClient *redis.Client
		cache       *redisstore.Cache
	)
	if strings.TrimSpace(cfg.Redis.Addr) != "" {
		redisClient, err = redisstore.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		cache = redisstore.NewCache(redisClient, cfg.LiveCacheTTL())
	}

	store := repository.NewTelemetryStore(sqlDB)
	ingestionService := service.NewIngestionService(store, cache, logger)
	analyticsService := service.NewAnalyticsService(store, logger)
	liveStatusService := service.NewLiveStatusService(store, cache, logger)

	deps := httpserver.RouterDeps{
		Ingestion:  handlers.NewIngestionHandlers(ingestionService, logger),
		Analytics:  handlers.NewAnalyticsHandler(analyticsService, logger),
		LiveStatus: handlers.NewLiveStatusHandlers(liveStatusService, logger),
		Index:      handlers.NewIndexHandler(version),
		Health:     handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(deps, cfg.Auth.JWTSecret)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		db:          sqlDB,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Run starts serving HTTP requests.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
