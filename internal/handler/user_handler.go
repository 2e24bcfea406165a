package handler

import (
	"net/http"

	"github.com/Rafals/storefront/internal/fakeapi"

	"github.com/labstack/echo/v4"
)

// /user: the logged-in user's own profile
type UserHandler struct {
	store *fakeapi.Store
	auth  *AuthHandler
}

func NewUserHandler(store *fakeapi.Store, auth *AuthHandler) *UserHandler {
	return &UserHandler{store: store, auth: auth}
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type changeEmailRequest struct {
	NewEmail string `json:"newEmail"`
}

type changeEmailVerifyRequest struct {
	Code string `json:"code"`
}

func (h *UserHandler) RegisterRoutes(api *echo.Group, guards Guards) {
	g := api.Group("/user", guards.Auth...)

	g.PUT("/change-password", h.changePassword)
	g.POST("/change-email-request", h.changeEmailRequest)
	g.POST("/change-email-verify", h.changeEmailVerify)
}

func (h *UserHandler) changePassword(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	if err := h.store.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password changed"})
}

func (h *UserHandler) changeEmailRequest(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	var req changeEmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	if err := h.store.ChangeEmailRequest(userID, req.NewEmail); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Code sent"})
}

// answers with a fresh token for the new address
func (h *UserHandler) changeEmailVerify(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}

	var req changeEmailVerifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	acc, err := h.store.ChangeEmailVerify(userID, req.Code)
	if err != nil {
		return writeError(c, err)
	}
	return h.auth.respondWithToken(c, acc)
}
