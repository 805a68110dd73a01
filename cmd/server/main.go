package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/maxviazov/egretwind/internal/cache"
	"github.com/maxviazov/egretwind/internal/config"
	"github.com/maxviazov/egretwind/internal/handler"
	"github.com/maxviazov/egretwind/internal/logger"
	"github.com/maxviazov/egretwind/internal/middleware"
	"github.com/maxviazov/egretwind/internal/repository"
	"github.com/maxviazov/egretwind/internal/repository/postgres"
	"github.com/maxviazov/egretwind/internal/service"
)

func main() {
	configPath := pflag.StringP("config", "c", "config.yaml", "path to the YAML config file")
	pflag.Parse()

	// Load application config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("service stopped with error")
	}
	appLogger.Info().Msg("👋 Service stopped")
}

func run(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) error {
	db, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		return err
	}
	defer db.Close()

	var views service.ViewCache
	if cfg.Redis.Enabled {
		rdb, err := cache.NewClient(ctx, cfg.Redis, appLogger)
		if err != nil {
			// the cache is an optimisation; serve from Postgres alone
			appLogger.Warn().Err(err).Msg("redis unavailable, view cache disabled")
		} else {
			defer rdb.Close()
			views = cache.NewViews(rdb, time.Duration(cfg.Redis.TTL)*time.Second, cfg.Redis.Prefix)
		}
	}

	pool := db.Pool()
	users := postgres.NewUserRepository(pool)
	articles := postgres.NewArticleRepository(pool)

	articleSvc := service.NewArticleService(articles, users, views, cfg.Pagination.MaxPageSize, appLogger)
	userSvc := service.NewUserService(users, appLogger)

	if cfg.App.Env == "prod" || cfg.App.Env == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestLogger(appLogger),
		middleware.CORS(cfg.HTTP.CORSOrigins),
		middleware.RateLimit(cfg.HTTP.RateLimit, cfg.HTTP.RateBurst),
	)
	handler.Register(engine, postgres.NewPinger(pool), articleSvc, userSvc, time.Duration(cfg.HTTP.RequestTimeout)*time.Second)

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("version", cfg.App.Version).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLogger.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownTimeout)*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
