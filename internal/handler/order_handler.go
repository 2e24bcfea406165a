package handler

import (
	"net/http"

	"github.com/Rafals/storefront/internal/domain/model"
	"github.com/Rafals/storefront/internal/fakeapi"

	"github.com/labstack/echo/v4"
)

// /orders for the logged-in user
type OrderHandler struct {
	store *fakeapi.Store
}

func NewOrderHandler(store *fakeapi.Store) *OrderHandler {
	return &OrderHandler{store: store}
}

func (h *OrderHandler) RegisterRoutes(api *echo.Group, guards Guards) {
	g := api.Group("/orders", guards.Auth...)

	g.POST("", h.create)
	g.GET("", h.list)
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	var req model.OrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	order, err := h.store.PlaceOrder(userID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}
	return c.JSON(http.StatusOK, h.store.ListOrders(userID))
}
