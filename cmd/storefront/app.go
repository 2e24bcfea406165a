package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Rafals/storefront/internal/apiclient"
	"github.com/Rafals/storefront/internal/config"
	"github.com/Rafals/storefront/internal/infra/db"
	infraRepo "github.com/Rafals/storefront/internal/infra/repository"
	"github.com/Rafals/storefront/internal/logger"
	"github.com/Rafals/storefront/internal/repository"
	"github.com/Rafals/storefront/internal/session"
	"github.com/Rafals/storefront/internal/telemetry"
	"github.com/Rafals/storefront/internal/usecase"
	"github.com/Rafals/storefront/internal/validator"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// app holds everything a command needs, built once per invocation.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	notifier *styledNotifier

	sessions *session.Service
	cart     *usecase.CartUsecase
	catalog  *usecase.ProductUsecase
	auth     *usecase.AuthUsecase
	checkout *usecase.OrderUsecase
	profile  *usecase.ProfileUsecase
	admin    *usecase.AdminUsecase

	closers []func(context.Context) error
}

func newApp(ctx context.Context, out io.Writer) (*app, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.GoEnv, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log, notifier: newStyledNotifier(out)}
	a.closers = append(a.closers, func(context.Context) error {
		_ = log.Sync()
		return nil
	})

	shutdown, err := telemetry.Init(cfg.TraceExporter, os.Stderr)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, shutdown)

	store, err := a.openCredentialStore(ctx)
	if err != nil {
		a.close(ctx)
		return nil, err
	}

	a.sessions = session.NewService(store, log)

	client := apiclient.New(cfg.APIURL, apiclient.Options{
		Timeout:     cfg.RequestTimeout,
		MaxFailures: cfg.BreakerMaxFailures,
		Logger:      log,
	})
	v := validator.NewFormValidator()

	a.cart = usecase.NewCartUsecase(client, a.sessions, a.notifier, log)
	a.catalog = usecase.NewProductUsecase(client, log)
	a.auth = usecase.NewAuthUsecase(client, a.sessions, v, a.notifier, log)
	a.checkout = usecase.NewOrderUsecase(client, a.sessions, a.cart, v, a.notifier, log)
	a.profile = usecase.NewProfileUsecase(client, a.sessions, v, a.notifier, log)
	a.admin = usecase.NewAdminUsecase(client, a.sessions, v, a.notifier, log)
	a.closers = append(a.closers, func(context.Context) error {
		a.cart.Close()
		return nil
	})

	// a stored session gets its cart loaded; a failure is already recorded
	_ = a.cart.Start(ctx)
	return a, nil
}

func (a *app) openCredentialStore(ctx context.Context) (repository.CredentialRepository, error) {
	switch a.cfg.CredentialStore {
	case "memory":
		return infraRepo.NewCredentialMemoryRepository(), nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: a.cfg.CredentialDSN})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping failed: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
		return infraRepo.NewCredentialRedisRepository(rdb, a.cfg.Profile), nil

	default:
		gdb, err := db.Connect(a.cfg.CredentialStore, a.cfg.CredentialDSN)
		if err != nil {
			return nil, fmt.Errorf("open credential store: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return sqlDB.Close() })
		return infraRepo.NewCredentialGormRepository(gdb, a.cfg.Profile)
	}
}

// close runs the closers in reverse order.
func (a *app) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.log.Debug("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}
