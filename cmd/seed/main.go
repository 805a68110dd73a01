// Command seed loads a YAML fixture of users and their articles into Postgres.
// Everything is written in one transaction; a single bad row leaves the database untouched.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/maxviazov/egretwind/internal/config"
	"github.com/maxviazov/egretwind/internal/logger"
	"github.com/maxviazov/egretwind/internal/repository"
	"github.com/maxviazov/egretwind/internal/repository/postgres"
	"github.com/maxviazov/egretwind/internal/service"
)

func main() {
	configPath := pflag.StringP("config", "c", "config.yaml", "path to the YAML config file")
	fixturePath := pflag.StringP("fixture", "f", "fixtures/seed.yaml", "path to the YAML seed fixture")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	fx, err := LoadFixture(*fixturePath)
	if err != nil {
		appLogger.Fatal().Err(err).Str("fixture", *fixturePath).Msg("fixture loading failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer db.Close()

	pool := db.Pool()
	users := postgres.NewUserRepository(pool)
	s := seeder{
		tx:       postgres.NewTxManager(pool),
		users:    service.NewUserService(users, appLogger),
		articles: service.NewArticleService(postgres.NewArticleRepository(pool), users, nil, cfg.Pagination.MaxPageSize, appLogger),
	}

	stats, err := s.Seed(ctx, fx)
	if err != nil {
		if fe := service.FieldErrors(err); fe != nil {
			appLogger.Error().Interface("field_errors", fe).Msg("fixture rejected")
		}
		appLogger.Fatal().Err(err).Msg("seeding failed, nothing written")
	}
	appLogger.Info().Int("users", stats.Users).Int("articles", stats.Articles).Msg("✅ Seed complete")
}
