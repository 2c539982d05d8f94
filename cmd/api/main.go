// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agritrace/agritrace-api/internal/activity"
	"github.com/agritrace/agritrace-api/internal/admin"
	"github.com/agritrace/agritrace-api/internal/auth"
	"github.com/agritrace/agritrace-api/internal/collection"
	"github.com/agritrace/agritrace-api/internal/config"
	"github.com/agritrace/agritrace-api/internal/core"
	"github.com/agritrace/agritrace-api/internal/farmer"
	"github.com/agritrace/agritrace-api/internal/health"
	"github.com/agritrace/agritrace-api/internal/insights"
	"github.com/agritrace/agritrace-api/internal/middleware"
	"github.com/agritrace/agritrace-api/internal/notify"
	"github.com/agritrace/agritrace-api/internal/router"
	"github.com/agritrace/agritrace-api/internal/server"
	"github.com/agritrace/agritrace-api/internal/user"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		logger.Info("database schema applied")
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	hub := notify.NewHub(notify.HubConfig{
		SendBuffer:   cfg.Realtime.SendBuffer,
		WriteTimeout: cfg.Realtime.WriteTimeout,
		PingInterval: cfg.Realtime.PingInterval,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || middleware.OriginAllowed(cfg.CORS, origin)
		},
		Logger: logger,
	})

	relayCtx, stopRelay := context.WithCancel(ctx)
	defer stopRelay()

	var sink notify.Publisher = hub
	switch {
	case cfg.IsTest():
		sink = notify.Nop{}
	case cfg.Realtime.RelayEnabled:
		relay := notify.NewRedisRelay(redis.Client, cfg.Realtime.Channel, hub, logger)
		go func() {
			if err := relay.Run(relayCtx); err != nil {
				logger.Error("realtime relay stopped", "error", err)
			}
		}()
		sink = relay
	}
	publisher := notify.NewAsync(sink, cfg.Realtime.WriteTimeout, logger)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)

	authSvc := auth.NewService(jwtManager, userSvc)
	authHandler := auth.NewHandler(authSvc)

	farmerRepo := farmer.NewRepository(db.DB)
	farmerDir := farmer.NewDirectory(farmerRepo)

	activityRepo := activity.NewRepository(db.DB)
	activitySvc := activity.NewService(activityRepo, farmerDir, publisher)

	collectionRepo := collection.NewRepository(db.DB)
	collectionSvc := collection.NewService(collectionRepo, farmerDir, publisher)

	farmerSvc := farmer.NewService(farmerRepo, activitySvc, collectionSvc, publisher)

	var generator insights.Generator = insights.Offline{}
	if cfg.AI.APIKey != "" {
		gemini, genErr := insights.NewGeminiGenerator(ctx, cfg.AI)
		if genErr != nil {
			logger.Warn("gemini unavailable, using offline insights", "error", genErr)
		} else {
			generator = gemini
			logger.Info("gemini generator initialized", "model", cfg.AI.Model)
		}
	}
	insightsSvc := insights.NewService(
		insights.NewRepository(db.DB),
		generator,
		insights.NewRedisCache(redis.Client, cfg.AI.CacheTTL),
		logger,
	)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:         db.Stats,
		RedisStats:      redis.PoolStats,
		DBPing:          db.Ping,
		RedisPing:       redis.Ping,
		RealtimeClients: hub.ClientCount,
		Counters: map[string]admin.Counter{
			"users":       userSvc,
			"farmers":     farmerSvc,
			"activities":  activitySvc,
			"collections": collectionSvc,
		},
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router.Mount(srv.Router(), router.Deps{
		Config:   cfg,
		Logger:   logger,
		Redis:    redis.Client,
		Verifier: auth.NewSessionVerifier(jwtManager, authSvc),
	}, router.Handlers{
		Auth:        authHandler,
		Farmers:     farmer.NewHandler(farmerSvc),
		Activities:  activity.NewHandler(activitySvc),
		Collections: collection.NewHandler(collectionSvc),
		Insights:    insights.NewHandler(insightsSvc),
		Admin:       adminHandler,
		Users:       user.NewHandler(userSvc),
		Health:      healthHandler,
		Realtime:    hub.ServeWS,
		JWKS:        jwtManager.GetJWKSHandler(),
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	drainDelay := cfg.Server.DrainDelay
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	publisher.Wait()
	stopRelay()
	hub.Close()

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
