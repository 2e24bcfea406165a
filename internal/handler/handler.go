package handler

import (
	"net/http"
	"strconv"

	"github.com/Rafals/storefront/internal/fakeapi"
	"github.com/Rafals/storefront/internal/middleware"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the error body of every non-2xx answer.
type ErrorResponse struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Guards are the middleware chains for authenticated and admin routes.
type Guards struct {
	Auth  []echo.MiddlewareFunc
	Admin []echo.MiddlewareFunc
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := fakeapi.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Message: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	id, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
