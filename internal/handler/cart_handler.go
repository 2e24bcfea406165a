package handler

import (
	"net/http"
	"strconv"

	"github.com/Rafals/storefront/internal/fakeapi"

	"github.com/labstack/echo/v4"
)

// /cart for the logged-in user
type CartHandler struct {
	store *fakeapi.Store
}

func NewCartHandler(store *fakeapi.Store) *CartHandler {
	return &CartHandler{store: store}
}

func (h *CartHandler) RegisterRoutes(api *echo.Group, guards Guards) {
	g := api.Group("/cart", guards.Auth...)

	g.GET("", h.getCart)
	g.POST("/add/:id", h.add)
	g.DELETE("/remove/:id", h.remove)
}

func (h *CartHandler) getCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}
	return c.JSON(http.StatusOK, h.store.Cart(userID))
}

// POST /cart/add/:id?quantity=N, N may be negative
func (h *CartHandler) add(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	productID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	quantity := int64(1)
	if q := c.QueryParam("quantity"); q != "" {
		n, err := strconv.ParseInt(q, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid quantity"})
		}
		quantity = n
	}

	if err := h.store.AddToCart(userID, productID, quantity); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Cart updated"})
}

func (h *CartHandler) remove(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	productID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	if err := h.store.RemoveFromCart(userID, productID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Removed from cart"})
}
