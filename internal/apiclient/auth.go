package apiclient

import (
	"context"
	"net/http"
)

type LoginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captchaToken"`
}

type RegisterRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captchaToken"`
}

// AuthResponse is returned by login, Google login and email change.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type googleLoginRequest struct {
	Token string `json:"token"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
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

func (c *Client) Login(ctx context.Context, in LoginRequest) (AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", in, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, in RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", in, nil)
}

// GoogleLogin exchanges a Google credential for a storefront token.
func (c *Client) GoogleLogin(ctx context.Context, credential string) (AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/google", "", googleLoginRequest{Token: credential}, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}

func (c *Client) VerifyAccount(ctx context.Context, email string, code string) error {
	return c.do(ctx, http.MethodPost, "/auth/verify", "", verifyRequest{Email: email, Code: code}, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", "", forgotPasswordRequest{Email: email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, email string, code string, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/auth/reset-password", "", resetPasswordRequest{
		Email:       email,
		Code:        code,
		NewPassword: newPassword,
	}, nil)
}

func (c *Client) ChangePassword(ctx context.Context, token string, oldPassword string, newPassword string) error {
	return c.do(ctx, http.MethodPut, "/user/change-password", token, changePasswordRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	}, nil)
}

// ChangeEmailRequest sends a code to the current address.
func (c *Client) ChangeEmailRequest(ctx context.Context, token string, newEmail string) error {
	return c.do(ctx, http.MethodPost, "/user/change-email-request", token, changeEmailRequest{NewEmail: newEmail}, nil)
}

// ChangeEmailVerify confirms the change; the response carries a fresh token.
func (c *Client) ChangeEmailVerify(ctx context.Context, token string, code string) (AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/user/change-email-verify", token, changeEmailVerifyRequest{Code: code}, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}
