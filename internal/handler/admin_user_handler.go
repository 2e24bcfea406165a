package handler

import (
	"net/http"

	"github.com/Rafals/storefront/internal/fakeapi"

	"github.com/labstack/echo/v4"
)

// /users: admin user management
type AdminUserHandler struct {
	store *fakeapi.Store
}

func NewAdminUserHandler(store *fakeapi.Store) *AdminUserHandler {
	return &AdminUserHandler{store: store}
}

type banRequest struct {
	Days   int    `json:"days"`
	Reason string `json:"reason"`
}

func (h *AdminUserHandler) RegisterRoutes(api *echo.Group, guards Guards) {
	g := api.Group("/users", guards.Admin...)

	g.GET("", h.list)
	g.DELETE("/:id", h.delete)
	g.PUT("/:id/ban", h.ban)
	g.PUT("/:id/unban", h.unban)
}

func (h *AdminUserHandler) list(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ListUsers())
}

func (h *AdminUserHandler) delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	// no deleting yourself
	if self, _ := getUserIDFromContext(c); self == id {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Cannot delete yourself"})
	}

	if err := h.store.DeleteUser(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted"})
}

func (h *AdminUserHandler) ban(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	var req banRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	if err := h.store.BanUser(id, req.Days, req.Reason); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User banned"})
}

func (h *AdminUserHandler) unban(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	if err := h.store.UnbanUser(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User unbanned"})
}
