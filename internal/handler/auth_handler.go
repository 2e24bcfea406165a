package handler

import (
	"net/http"
	"strings"

	"github.com/Rafals/storefront/internal/fakeapi"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	store  *fakeapi.Store
	issuer *fakeapi.TokenIssuer
}

func NewAuthHandler(store *fakeapi.Store, issuer *fakeapi.TokenIssuer) *AuthHandler {
	return &AuthHandler{store: store, issuer: issuer}
}

type loginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captchaToken"`
}

type registerRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captchaToken"`
}

type googleRequest struct {
	Token string `json:"token"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type forgotRequest struct {
	Email string `json:"email"`
}

type resetRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

type authResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *AuthHandler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/auth")

	g.POST("/login", h.login)
	g.POST("/register", h.register)
	g.POST("/google", h.google)
	g.POST("/verify", h.verify)
	g.POST("/forgot-password", h.forgotPassword)
	g.POST("/reset-password", h.resetPassword)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}
	// any non-empty captcha passes here
	if strings.TrimSpace(req.CaptchaToken) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Captcha is required"})
	}

	acc, err := h.store.Login(req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return h.respondWithToken(c, acc)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}
	if strings.TrimSpace(req.CaptchaToken) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Captcha is required"})
	}

	if err := h.store.Register(req.Username, req.Email, req.Password); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Registered. Check your email for the code."})
}

func (h *AuthHandler) google(c echo.Context) error {
	var req googleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	acc, err := h.store.GoogleLogin(req.Token)
	if err != nil {
		return writeError(c, err)
	}
	return h.respondWithToken(c, acc)
}

func (h *AuthHandler) verify(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	if err := h.store.Verify(req.Email, req.Code); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Account verified"})
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req forgotRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	if err := h.store.ForgotPassword(req.Email); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Reset code sent"})
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req resetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	if err := h.store.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password changed"})
}

func (h *AuthHandler) respondWithToken(c echo.Context, acc fakeapi.Account) error {
	token, err := h.issuer.Issue(acc)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
	}
	return c.JSON(http.StatusOK, authResponse{
		Token:    token,
		Username: acc.Username,
		Role:     fakeapi.RoleClaim(acc.Role),
	})
}
