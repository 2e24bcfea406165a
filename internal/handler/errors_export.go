package handler

import "github.com/labstack/echo/v4"

// WriteError writes err the same way the handlers do.
func WriteError(c echo.Context, err error) error {
	return writeError(c, err)
}
