package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Rafals/storefront/internal/apiclient"
	"github.com/Rafals/storefront/internal/domain/model"
	"github.com/Rafals/storefront/internal/session"

	"go.uber.org/zap"
)

// CheckoutInput is the address form plus shipping choice.
type CheckoutInput struct {
	FirstName      string
	LastName       string
	Street         string
	City           string
	ZipCode        string
	ShippingMethod model.ShippingMethod
}

// Totals is the checkout summary.
type Totals struct {
	Subtotal model.Money
	Discount model.Money
	Shipping model.Money
	Total    model.Money
}

// ComputeTotals is subtotal - subtotal*percent/100 + shipping.
func ComputeTotals(lines []model.CartLine, discountPercent int64, method model.ShippingMethod) Totals {
	subtotal := model.CartTotal(lines)
	discount := subtotal.Percent(discountPercent)
	shipping := method.Cost()
	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    subtotal - discount + shipping,
	}
}

// OrderUsecase runs checkout: coupon, totals and order placement.
type OrderUsecase struct {
	api       CheckoutAPI
	sessions  *session.Service
	cart      *CartUsecase
	validator FormValidator
	notifier  Notifier
	log       *zap.Logger

	mu     sync.Mutex
	coupon *model.Coupon
}

func NewOrderUsecase(api CheckoutAPI, sessions *session.Service, cart *CartUsecase, validator FormValidator, notifier Notifier, log *zap.Logger) *OrderUsecase {
	if notifier == nil {
		notifier = NopNotifier
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderUsecase{
		api:       api,
		sessions:  sessions,
		cart:      cart,
		validator: validator,
		notifier:  notifier,
		log:       log.Named("checkout"),
	}
}

// ApplyCoupon validates the code with the server. A rejected code drops any applied coupon.
func (u *OrderUsecase) ApplyCoupon(ctx context.Context, code string) (model.Coupon, error) {
	code = model.NormalizeCouponCode(code)
	if code == "" {
		return model.Coupon{}, ErrInvalidCoupon
	}

	c, err := u.api.ValidateCoupon(ctx, u.sessions.Token(ctx), code)
	if err != nil {
		u.RemoveCoupon()
		u.notifier.Error(serverMessage(err, "Invalid coupon code"))
		return model.Coupon{}, fmt.Errorf("apply coupon %s: %w", code, errors.Join(ErrInvalidCoupon, err))
	}
	if c.Code == "" {
		c.Code = code
	}
	if c.DiscountPercent < 0 || c.DiscountPercent > 100 {
		u.RemoveCoupon()
		return model.Coupon{}, fmt.Errorf("apply coupon %s: %w", code, ErrInvalidCoupon)
	}

	u.mu.Lock()
	u.coupon = &c
	u.mu.Unlock()

	u.notifier.Success(fmt.Sprintf("Coupon applied! -%d%%", c.DiscountPercent))
	return c, nil
}

func (u *OrderUsecase) RemoveCoupon() {
	u.mu.Lock()
	u.coupon = nil
	u.mu.Unlock()
}

func (u *OrderUsecase) AppliedCoupon() (model.Coupon, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.coupon == nil {
		return model.Coupon{}, false
	}
	return *u.coupon, true
}

// Totals uses the current cart lines and the applied coupon.
func (u *OrderUsecase) Totals(method model.ShippingMethod) Totals {
	var pct int64
	if c, ok := u.AppliedCoupon(); ok {
		pct = c.DiscountPercent
	}
	return ComputeTotals(u.cart.Lines(), pct, method)
}

// PlaceOrder sends the order. On success the server has emptied its cart,
// so only the local lines are cleared.
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in CheckoutInput) (model.Order, error) {
	token := u.sessions.Token(ctx)
	if token == "" {
		return model.Order{}, ErrAuthRequired
	}
	if len(u.cart.Lines()) == 0 {
		return model.Order{}, ErrEmptyCart
	}
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Street = strings.TrimSpace(in.Street)
	in.City = strings.TrimSpace(in.City)
	in.ZipCode = strings.TrimSpace(in.ZipCode)
	if err := u.validator.ValidateAddress(in); err != nil {
		return model.Order{}, err
	}

	totals := u.Totals(in.ShippingMethod)
	req := model.OrderRequest{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Street:         in.Street,
		City:           in.City,
		ZipCode:        in.ZipCode,
		ShippingMethod: in.ShippingMethod,
		// the server recomputes; this is informational
		TotalAmount: totals.Total,
	}
	if c, ok := u.AppliedCoupon(); ok {
		code := c.Code
		req.CouponCode = &code
	}

	order, err := u.api.PlaceOrder(ctx, token, req)
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			if cerr := u.sessions.Clear(ctx); cerr != nil {
				u.log.Warn("clear session failed", zap.Error(cerr))
			}
			u.notifier.Error(ErrSessionExpired.Error())
			return model.Order{}, fmt.Errorf("place order: %w", errors.Join(ErrSessionExpired, err))
		}
		u.log.Warn("place order failed", zap.Error(err))
		u.notifier.Error("Failed to place order. Please try again.")
		return model.Order{}, fmt.Errorf("place order: %w", err)
	}

	u.cart.ClearCart()
	u.RemoveCoupon()
	u.log.Info("order placed", zap.String("order_id", order.ID), zap.Stringer("total", totals.Total))
	u.notifier.Success("Order placed successfully!")
	return order, nil
}

func (u *OrderUsecase) ListOrders(ctx context.Context) ([]model.Order, error) {
	token := u.sessions.Token(ctx)
	if token == "" {
		return nil, ErrAuthRequired
	}
	orders, err := u.api.ListOrders(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
