package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// TokenVersionSource knows each account's current token version.
// ok is false for deleted or banned accounts.
type TokenVersionSource interface {
	TokenVersion(userID int64) (version int, ok bool)
}

// TokenVersionGuard rejects tokens whose tv claim is stale (logout everywhere, ban, reset).
func TokenVersionGuard(src TokenVersionSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(CtxUserIDKey).(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			tv, ok := c.Get(CtxTokenVersionKey).(int)
			if !ok || tv < 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			current, ok := src.TokenVersion(userID)
			if !ok || current != tv {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			return next(c)
		}
	}
}
