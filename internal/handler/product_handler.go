package handler

import (
	"net/http"

	"github.com/Rafals/storefront/internal/fakeapi"

	"github.com/labstack/echo/v4"
)

// public catalog plus the admin delete
type ProductHandler struct {
	store *fakeapi.Store
}

func NewProductHandler(store *fakeapi.Store) *ProductHandler {
	return &ProductHandler{store: store}
}

func (h *ProductHandler) RegisterRoutes(api *echo.Group, guards Guards) {
	api.GET("/products", h.list)
	api.GET("/products/search", h.search)
	api.GET("/product/:id", h.detail)
	api.GET("/product/:id/image", h.image)
	api.DELETE("/product/:id", h.delete, guards.Admin...)
}

func (h *ProductHandler) list(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ListProducts())
}

func (h *ProductHandler) search(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.SearchProducts(c.QueryParam("keyword")))
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	p, err := h.store.GetProduct(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) image(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	data, typ, err := h.store.ProductImage(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.Blob(http.StatusOK, typ, data)
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	if err := h.store.DeleteProduct(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted"})
}
