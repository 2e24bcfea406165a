package handler

import (
	"net/http"

	"github.com/Rafals/storefront/internal/domain/model"
	"github.com/Rafals/storefront/internal/fakeapi"

	"github.com/labstack/echo/v4"
)

// /coupons: validate for shoppers, the rest for admins
type CouponHandler struct {
	store *fakeapi.Store
}

func NewCouponHandler(store *fakeapi.Store) *CouponHandler {
	return &CouponHandler{store: store}
}

func (h *CouponHandler) RegisterRoutes(api *echo.Group, guards Guards) {
	g := api.Group("/coupons")

	g.GET("/validate/:code", h.validate, guards.Auth...)
	g.GET("/all", h.list, guards.Admin...)
	g.POST("/create", h.create, guards.Admin...)
	g.DELETE("/:id", h.delete, guards.Admin...)
}

func (h *CouponHandler) validate(c echo.Context) error {
	coupon, err := h.store.ValidateCoupon(c.Param("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, coupon)
}

func (h *CouponHandler) list(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ListCoupons())
}

func (h *CouponHandler) create(c echo.Context) error {
	var req model.Coupon
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	coupon, err := h.store.CreateCoupon(req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, coupon)
}

func (h *CouponHandler) delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	if err := h.store.DeleteCoupon(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Coupon deleted"})
}
