// Entitlement API server.
//
// @title        Entitlement API
// @version      1.0
// @description  Licensing, quota and account backend for the QuickConvert file tools.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quickconvert/entitlement-system/internal/api"
	"github.com/quickconvert/entitlement-system/internal/core/ports"
	"github.com/quickconvert/entitlement-system/internal/core/service"
	mongodb "github.com/quickconvert/entitlement-system/internal/infrastructure/db/mongo"
	redisdb "github.com/quickconvert/entitlement-system/internal/infrastructure/db/redis"
	"github.com/quickconvert/entitlement-system/internal/infrastructure/memory"
	"github.com/quickconvert/entitlement-system/internal/pkg/config"
	"github.com/quickconvert/entitlement-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	log.Info().
		Str("env", cfg.Env).
		Str("store", cfg.Store).
		Msg("starting entitlement API")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps := buildDependencies(ctx, cfg)

	codec := service.NewSessionCodec(cfg.SessionSecret, 0)
	deps.Auth = service.NewAuthService(deps.users, codec, log)
	deps.Licenses = service.NewLicenseService(deps.licenses, cfg.WebhookSecret, log)
	deps.Quota = service.NewQuotaService(deps.ledger, cfg.Quota.Limits(), log)
	deps.Proxy = service.NewProxyService(nil, cfg.Proxy.OCRAPIKey, log)
	deps.SessionTTL = codec.TTL()

	e := api.NewRouter(cfg, deps.Dependencies, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}

type wiring struct {
	api.Dependencies

	users    ports.UserRepository
	licenses ports.LicenseRepository
	ledger   ports.QuotaLedger
}

// buildDependencies selects the persistence backend. The memory backend is
// the safe zero-configuration fallback for local and dev runs.
func buildDependencies(ctx context.Context, cfg *config.Config) *wiring {
	log := logger.Get()
	w := &wiring{}

	if cfg.Store == config.StoreMongo {
		_, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connect failed")
		}

		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect failed")
		}

		userRepo := mongodb.NewUserRepository(db)
		licenseRepo := mongodb.NewLicenseRepository(db)
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("ensure user indexes failed")
		}
		if err := licenseRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("ensure license indexes failed")
		}

		w.users = userRepo
		w.licenses = licenseRepo
		w.ledger = redisdb.NewQuotaLedger(rdb)
		w.Mongo = db
		w.Redis = rdb
		return w
	}

	log.Warn().Msg("using in-memory store: nothing will survive a restart")
	w.users = memory.NewUserRepository()
	w.licenses = memory.NewLicenseRepository()
	w.ledger = memory.NewQuotaLedger()
	return w
}
