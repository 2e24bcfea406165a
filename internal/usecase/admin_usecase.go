package usecase

import (
	"context"
	"fmt"

	"github.com/Rafals/storefront/internal/domain/model"
	"github.com/Rafals/storefront/internal/session"

	"go.uber.org/zap"
)

// AdminUsecase is the admin panel. Every call checks the stored role first.
type AdminUsecase struct {
	api       AdminAPI
	sessions  *session.Service
	validator FormValidator
	notifier  Notifier
	log       *zap.Logger
}

func NewAdminUsecase(api AdminAPI, sessions *session.Service, validator FormValidator, notifier Notifier, log *zap.Logger) *AdminUsecase {
	if notifier == nil {
		notifier = NopNotifier
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminUsecase{api: api, sessions: sessions, validator: validator, notifier: notifier, log: log.Named("admin")}
}

// adminToken returns the token when the session is an admin one.
func (u *AdminUsecase) adminToken(ctx context.Context) (string, error) {
	sess, err := u.sessions.Current(ctx)
	if err != nil {
		return "", err
	}
	if !u.sessions.Present(sess) {
		return "", ErrAuthRequired
	}
	if !sess.IsAdmin() {
		u.notifier.Error("Access Denied")
		return "", ErrForbidden
	}
	return sess.Token, nil
}

func (u *AdminUsecase) ListUsers(ctx context.Context) ([]model.AdminUser, error) {
	token, err := u.adminToken(ctx)
	if err != nil {
		return nil, err
	}
	users, err := u.api.ListUsers(ctx, token)
	if err != nil {
		u.notifier.Error("Failed to fetch data")
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (u *AdminUsecase) DeleteUser(ctx context.Context, id int64) error {
	token, err := u.adminToken(ctx)
	if err != nil {
		return err
	}
	if err := u.api.DeleteUser(ctx, token, id); err != nil {
		u.notifier.Error(serverMessage(err, "Failed to delete user"))
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	u.notifier.Success("User deleted")
	return nil
}

func (u *AdminUsecase) BanUser(ctx context.Context, id int64, days int, reason string) error {
	token, err := u.adminToken(ctx)
	if err != nil {
		return err
	}
	if err := u.validator.ValidateBan(days, reason); err != nil {
		return err
	}
	if err := u.api.BanUser(ctx, token, id, days, reason); err != nil {
		u.notifier.Error(serverMessage(err, "Failed to ban user"))
		return fmt.Errorf("ban user %d: %w", id, err)
	}
	u.log.Info("user banned", zap.Int64("user_id", id), zap.Int("days", days))
	u.notifier.Success("User banned successfully")
	return nil
}

func (u *AdminUsecase) UnbanUser(ctx context.Context, id int64) error {
	token, err := u.adminToken(ctx)
	if err != nil {
		return err
	}
	if err := u.api.UnbanUser(ctx, token, id); err != nil {
		u.notifier.Error("Failed to unban")
		return fmt.Errorf("unban user %d: %w", id, err)
	}
	u.notifier.Success("User unbanned")
	return nil
}

func (u *AdminUsecase) ListCoupons(ctx context.Context) ([]model.Coupon, error) {
	token, err := u.adminToken(ctx)
	if err != nil {
		return nil, err
	}
	coupons, err := u.api.ListCoupons(ctx, token)
	if err != nil {
		u.notifier.Error("Failed to fetch data")
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	return coupons, nil
}

// CreateCoupon upper-cases the code and creates it active.
func (u *AdminUsecase) CreateCoupon(ctx context.Context, code string, discountPercent int64) error {
	token, err := u.adminToken(ctx)
	if err != nil {
		return err
	}
	if err := u.validator.ValidateCoupon(code, discountPercent); err != nil {
		return err
	}

	c := model.Coupon{
		Code:            model.NormalizeCouponCode(code),
		DiscountPercent: discountPercent,
		IsActive:        true,
	}
	if err := u.api.CreateCoupon(ctx, token, c); err != nil {
		u.notifier.Error(serverMessage(err, "Failed to create coupon"))
		return fmt.Errorf("create coupon %s: %w", c.Code, err)
	}
	u.notifier.Success("Coupon created!")
	return nil
}

func (u *AdminUsecase) DeleteCoupon(ctx context.Context, id int64) error {
	token, err := u.adminToken(ctx)
	if err != nil {
		return err
	}
	if err := u.api.DeleteCoupon(ctx, token, id); err != nil {
		u.notifier.Error("Failed to delete coupon")
		return fmt.Errorf("delete coupon %d: %w", id, err)
	}
	u.notifier.Success("Coupon deleted")
	return nil
}

func (u *AdminUsecase) DeleteProduct(ctx context.Context, id int64) error {
	token, err := u.adminToken(ctx)
	if err != nil {
		return err
	}
	if err := u.api.DeleteProduct(ctx, token, id); err != nil {
		u.notifier.Error("Error deleting product")
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	u.notifier.Success("Product deleted successfully")
	return nil
}
