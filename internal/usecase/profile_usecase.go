package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rafals/storefront/internal/apiclient"
	"github.com/Rafals/storefront/internal/session"

	"go.uber.org/zap"
)

// ProfileUsecase changes password and email for the logged-in user.
type ProfileUsecase struct {
	api       ProfileAPI
	sessions  *session.Service
	validator FormValidator
	notifier  Notifier
	log       *zap.Logger
}

func NewProfileUsecase(api ProfileAPI, sessions *session.Service, validator FormValidator, notifier Notifier, log *zap.Logger) *ProfileUsecase {
	if notifier == nil {
		notifier = NopNotifier
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ProfileUsecase{api: api, sessions: sessions, validator: validator, notifier: notifier, log: log.Named("profile")}
}

func (u *ProfileUsecase) ChangePassword(ctx context.Context, oldPassword string, newPassword string) error {
	token := u.sessions.Token(ctx)
	if token == "" {
		return ErrAuthRequired
	}
	if oldPassword == "" {
		return errors.New("current password is required")
	}
	if err := u.validator.ValidateNewPassword(newPassword); err != nil {
		return err
	}

	if err := u.api.ChangePassword(ctx, token, oldPassword, newPassword); err != nil {
		return u.fail(ctx, "change password", err, "Could not change the password")
	}
	u.notifier.Success("Password changed")
	return nil
}

// RequestEmailChange sends a code to the current address.
func (u *ProfileUsecase) RequestEmailChange(ctx context.Context, newEmail string) error {
	token := u.sessions.Token(ctx)
	if token == "" {
		return ErrAuthRequired
	}
	if err := u.validator.ValidateEmail(newEmail); err != nil {
		return err
	}

	if err := u.api.ChangeEmailRequest(ctx, token, strings.TrimSpace(newEmail)); err != nil {
		return u.fail(ctx, "change email request", err, "Could not send the code")
	}
	u.notifier.Info("Security code sent to your current email address")
	return nil
}

// VerifyEmailChange confirms the code and stores the fresh token the server returns.
func (u *ProfileUsecase) VerifyEmailChange(ctx context.Context, code string) error {
	token := u.sessions.Token(ctx)
	if token == "" {
		return ErrAuthRequired
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return errors.New("code is required")
	}

	resp, err := u.api.ChangeEmailVerify(ctx, token, code)
	if err != nil {
		return u.fail(ctx, "change email verify", err, "Wrong code")
	}

	if resp.Token != "" {
		sess, err := u.sessions.Current(ctx)
		if err != nil {
			return fmt.Errorf("read session: %w", err)
		}
		sess.Token = resp.Token
		if resp.Username != "" {
			sess.Username = resp.Username
		}
		if err := u.sessions.Set(ctx, sess); err != nil {
			return fmt.Errorf("store session: %w", err)
		}
	}
	u.notifier.Success("Email changed")
	return nil
}

func (u *ProfileUsecase) fail(ctx context.Context, op string, err error, def string) error {
	if apiclient.IsUnauthorized(err) {
		if cerr := u.sessions.Clear(ctx); cerr != nil {
			u.log.Warn("clear session failed", zap.Error(cerr))
		}
		u.notifier.Error(ErrSessionExpired.Error())
		return fmt.Errorf("%s: %w", op, errors.Join(ErrSessionExpired, err))
	}
	u.notifier.Error(serverMessage(err, def))
	return fmt.Errorf("%s: %w", op, err)
}
