package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Rafals/storefront/internal/fakeapi"
	"github.com/Rafals/storefront/internal/handler"
	"github.com/Rafals/storefront/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// New builds the echo app serving the storefront REST API under /api.
func New(store *fakeapi.Store, issuer *fakeapi.TokenIssuer, log *zap.Logger) *echo.Echo {
	if log == nil {
		log = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.FaultInjector(store, handler.WriteError))

	RegisterRoutes(e, store, issuer)
	return e
}

// Start serves until ctx is done, then shuts down gracefully.
func Start(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
