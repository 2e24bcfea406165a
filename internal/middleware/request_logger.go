package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request with the client's X-Request-ID.
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			log.Info("request",
				zap.String("method", req.Method),
				zap.String("route", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", req.Header.Get("X-Request-ID")),
			)
			return nil
		}
	}
}

// FaultSource hands out queued failures per route.
type FaultSource interface {
	TakeFault(route string) error
}

// FaultInjector answers with a queued failure instead of calling the handler.
func FaultInjector(src FaultSource, write func(echo.Context, error) error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := src.TakeFault(c.Request().Method + " " + c.Path()); err != nil {
				return write(c, err)
			}
			return next(c)
		}
	}
}
