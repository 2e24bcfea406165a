package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rafals/storefront/internal/config"
	"github.com/Rafals/storefront/internal/fakeapi"
	"github.com/Rafals/storefront/internal/logger"
	"github.com/Rafals/storefront/internal/server"

	"go.uber.org/zap"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}
	cfg, err := config.LoadFakeAPI()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.GoEnv, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	store := fakeapi.NewStore(fakeapi.NewBcryptHasher(0), log.Named("store"))
	if cfg.Seed {
		if err := store.Seed(); err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
		log.Info("seeded",
			zap.String("admin", fakeapi.SeedAdminEmail),
			zap.String("user", fakeapi.SeedUserEmail),
		)
	}

	issuer := fakeapi.NewTokenIssuer(cfg.JWTSecret, 24*time.Hour)
	e := server.New(store, issuer, log.Named("http"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("fake api listening", zap.String("addr", cfg.Port))
	if err := server.Start(ctx, e, cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
