package usecase

import (
	"context"
	"errors"

	"github.com/Rafals/storefront/internal/apiclient"
	"github.com/Rafals/storefront/internal/domain/model"
)

var (
	// operation needs a logged-in session
	ErrAuthRequired = errors.New("please login first")

	// token rejected by the server mid-session
	ErrSessionExpired = errors.New("session expired, please login again")

	// admin panel without ADMIN role
	ErrForbidden = errors.New("access denied")

	// client-side or server-side stock bound
	ErrStockExceeded = errors.New("cannot add more than available stock")

	ErrCaptchaRequired = errors.New("please confirm you are not a robot")
	ErrEmptyCart       = errors.New("your cart is empty")
	ErrInvalidCoupon   = errors.New("invalid coupon code")
	ErrNoToken         = errors.New("server returned no token")
	ErrNoImage         = errors.New("product has no image")
)

// Notifier is the transient user-facing signal (toast).
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Info(string)    {}
func (nopNotifier) Error(string)   {}

// NopNotifier drops every message.
var NopNotifier Notifier = nopNotifier{}

// FormValidator checks input before anything is sent.
type FormValidator interface {
	ValidateLogin(email string, password string) error
	ValidateRegister(username string, email string, password string, confirm string) error
	ValidateEmail(email string) error
	ValidateNewPassword(password string) error
	ValidateAddress(in CheckoutInput) error
	ValidateCoupon(code string, discountPercent int64) error
	ValidateBan(days int, reason string) error
}

// CartAPI is the remote cart the synchronizer mirrors.
type CartAPI interface {
	GetCart(ctx context.Context, token string) ([]model.ServerCartItem, error)
	AddToCart(ctx context.Context, token string, productID int64, quantity int64) error
	RemoveFromCart(ctx context.Context, token string, productID int64) error
}

type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	SearchProducts(ctx context.Context, keyword string) ([]model.Product, error)
	GetProductImage(ctx context.Context, id int64) ([]byte, error)
}

type AuthAPI interface {
	Login(ctx context.Context, in apiclient.LoginRequest) (apiclient.AuthResponse, error)
	Register(ctx context.Context, in apiclient.RegisterRequest) error
	GoogleLogin(ctx context.Context, credential string) (apiclient.AuthResponse, error)
	VerifyAccount(ctx context.Context, email string, code string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email string, code string, newPassword string) error
}

type ProfileAPI interface {
	ChangePassword(ctx context.Context, token string, oldPassword string, newPassword string) error
	ChangeEmailRequest(ctx context.Context, token string, newEmail string) error
	ChangeEmailVerify(ctx context.Context, token string, code string) (apiclient.AuthResponse, error)
}

type CheckoutAPI interface {
	ValidateCoupon(ctx context.Context, token string, code string) (model.Coupon, error)
	PlaceOrder(ctx context.Context, token string, in model.OrderRequest) (model.Order, error)
	ListOrders(ctx context.Context, token string) ([]model.Order, error)
}

type AdminAPI interface {
	ListUsers(ctx context.Context, token string) ([]model.AdminUser, error)
	DeleteUser(ctx context.Context, token string, id int64) error
	BanUser(ctx context.Context, token string, id int64, days int, reason string) error
	UnbanUser(ctx context.Context, token string, id int64) error
	ListCoupons(ctx context.Context, token string) ([]model.Coupon, error)
	CreateCoupon(ctx context.Context, token string, in model.Coupon) error
	DeleteCoupon(ctx context.Context, token string, id int64) error
	DeleteProduct(ctx context.Context, token string, id int64) error
}

// serverMessage prefers the server's text, falling back to def.
func serverMessage(err error, def string) string {
	if ae, ok := apiclient.AsAPIError(err); ok && ae.Message != "" {
		return ae.Message
	}
	return def
}
