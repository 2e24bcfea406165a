package server

import (
	"github.com/Rafals/storefront/internal/fakeapi"
	"github.com/Rafals/storefront/internal/handler"
	"github.com/Rafals/storefront/internal/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, store *fakeapi.Store, issuer *fakeapi.TokenIssuer) {
	auth := []echo.MiddlewareFunc{
		middleware.AuthJWT(issuer.Secret()),
		middleware.TokenVersionGuard(store),
	}
	guards := handler.Guards{
		Auth:  auth,
		Admin: append(append([]echo.MiddlewareFunc{}, auth...), middleware.AdminRoleGuard()),
	}

	api := e.Group("/api")

	authH := handler.NewAuthHandler(store, issuer)
	authH.RegisterRoutes(api)
	handler.NewUserHandler(store, authH).RegisterRoutes(api, guards)
	handler.NewProductHandler(store).RegisterRoutes(api, guards)
	handler.NewCartHandler(store).RegisterRoutes(api, guards)
	handler.NewOrderHandler(store).RegisterRoutes(api, guards)
	handler.NewCouponHandler(store).RegisterRoutes(api, guards)
	handler.NewAdminUserHandler(store).RegisterRoutes(api, guards)
}
