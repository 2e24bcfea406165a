package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rafals/storefront/internal/apiclient"
	"github.com/Rafals/storefront/internal/domain/model"
	"github.com/Rafals/storefront/internal/session"

	"go.uber.org/zap"
)

type LoginInput struct {
	Email        string
	Password     string
	CaptchaToken string
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	CaptchaToken    string
}

// AuthUsecase obtains tokens and stores them through the session service.
// Storing a token is what triggers the cart refresh.
type AuthUsecase struct {
	api       AuthAPI
	sessions  *session.Service
	validator FormValidator
	notifier  Notifier
	log       *zap.Logger
}

func NewAuthUsecase(api AuthAPI, sessions *session.Service, validator FormValidator, notifier Notifier, log *zap.Logger) *AuthUsecase {
	if notifier == nil {
		notifier = NopNotifier
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthUsecase{
		api:       api,
		sessions:  sessions,
		validator: validator,
		notifier:  notifier,
		log:       log.Named("auth"),
	}
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (model.Session, error) {
	if strings.TrimSpace(in.CaptchaToken) == "" {
		return model.Session{}, ErrCaptchaRequired
	}
	email := strings.TrimSpace(in.Email)
	if err := u.validator.ValidateLogin(email, in.Password); err != nil {
		return model.Session{}, err
	}

	resp, err := u.api.Login(ctx, apiclient.LoginRequest{
		Email:        email,
		Password:     in.Password,
		CaptchaToken: in.CaptchaToken,
	})
	if err != nil {
		u.notifier.Error(serverMessage(err, "Action failed. Please try again."))
		return model.Session{}, fmt.Errorf("login: %w", err)
	}
	return u.store(ctx, resp)
}

// GoogleLogin exchanges an opaque Google credential for a session.
func (u *AuthUsecase) GoogleLogin(ctx context.Context, credential string) (model.Session, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return model.Session{}, errors.New("google credential is required")
	}

	resp, err := u.api.GoogleLogin(ctx, credential)
	if err != nil {
		u.notifier.Error(serverMessage(err, "Google login failed. Please try again."))
		return model.Session{}, fmt.Errorf("google login: %w", err)
	}
	return u.store(ctx, resp)
}

// Register creates the account; it does not log in (the account needs verifying).
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) error {
	if strings.TrimSpace(in.CaptchaToken) == "" {
		return ErrCaptchaRequired
	}
	if err := u.validator.ValidateRegister(in.Username, in.Email, in.Password, in.ConfirmPassword); err != nil {
		return err
	}

	err := u.api.Register(ctx, apiclient.RegisterRequest{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		Password:     in.Password,
		CaptchaToken: in.CaptchaToken,
	})
	if err != nil {
		u.notifier.Error(serverMessage(err, "Action failed. Please try again."))
		return fmt.Errorf("register: %w", err)
	}
	u.notifier.Success("Account created, check your email for the verification code")
	return nil
}

func (u *AuthUsecase) VerifyAccount(ctx context.Context, email string, code string) error {
	if err := u.validator.ValidateEmail(email); err != nil {
		return err
	}
	if strings.TrimSpace(code) == "" {
		return errors.New("verification code is required")
	}
	if err := u.api.VerifyAccount(ctx, strings.TrimSpace(email), strings.TrimSpace(code)); err != nil {
		u.notifier.Error(serverMessage(err, "Verification failed"))
		return fmt.Errorf("verify account: %w", err)
	}
	u.notifier.Success("Account verified, you can login now")
	return nil
}

func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	if err := u.validator.ValidateEmail(email); err != nil {
		return err
	}
	if err := u.api.ForgotPassword(ctx, strings.TrimSpace(email)); err != nil {
		u.notifier.Error(serverMessage(err, "Could not send the reset code"))
		return fmt.Errorf("forgot password: %w", err)
	}
	u.notifier.Success("Reset code sent, check your inbox")
	return nil
}

func (u *AuthUsecase) ResetPassword(ctx context.Context, email string, code string, newPassword string) error {
	if err := u.validator.ValidateEmail(email); err != nil {
		return err
	}
	if err := u.validator.ValidateNewPassword(newPassword); err != nil {
		return err
	}
	if err := u.api.ResetPassword(ctx, strings.TrimSpace(email), strings.TrimSpace(code), newPassword); err != nil {
		u.notifier.Error(serverMessage(err, "Could not reset the password"))
		return fmt.Errorf("reset password: %w", err)
	}
	u.notifier.Success("Password changed, please login")
	return nil
}

// Logout clears the stored session; listeners empty the cart.
func (u *AuthUsecase) Logout(ctx context.Context) error {
	if err := u.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Whoami returns the stored session and whether its token is usable.
func (u *AuthUsecase) Whoami(ctx context.Context) (model.Session, bool, error) {
	sess, err := u.sessions.Current(ctx)
	if err != nil {
		return model.Session{}, false, err
	}
	return sess, u.sessions.Present(sess), nil
}

func (u *AuthUsecase) store(ctx context.Context, resp apiclient.AuthResponse) (model.Session, error) {
	sess := model.Session{
		Token:    resp.Token,
		Username: resp.Username,
		Role:     model.ParseRole(resp.Role),
	}
	if !u.sessions.Present(sess) {
		return model.Session{}, ErrNoToken
	}

	if err := u.sessions.Set(ctx, sess); err != nil {
		return model.Session{}, fmt.Errorf("store session: %w", err)
	}

	u.log.Info("logged in", zap.String("username", sess.Username), zap.String("role", string(sess.Role)))
	return sess, nil
}
