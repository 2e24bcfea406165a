package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Rafals/storefront/internal/apiclient"
	"github.com/Rafals/storefront/internal/domain/model"
	infraRepo "github.com/Rafals/storefront/internal/infra/repository"
	"github.com/Rafals/storefront/internal/session"
	"github.com/Rafals/storefront/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mocks
// =====================

type CartAPIMock struct{ mock.Mock }

func (m *CartAPIMock) GetCart(ctx context.Context, token string) ([]model.ServerCartItem, error) {
	args := m.Called(ctx, token)
	items, _ := args.Get(0).([]model.ServerCartItem)
	return items, args.Error(1)
}

func (m *CartAPIMock) AddToCart(ctx context.Context, token string, productID int64, quantity int64) error {
	args := m.Called(ctx, token, productID, quantity)
	return args.Error(0)
}

func (m *CartAPIMock) RemoveFromCart(ctx context.Context, token string, productID int64) error {
	args := m.Called(ctx, token, productID)
	return args.Error(0)
}

var _ usecase.CartAPI = (*CartAPIMock)(nil)

type CatalogAPIMock struct{ mock.Mock }

func (m *CatalogAPIMock) ListProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]model.Product)
	return p, args.Error(1)
}

func (m *CatalogAPIMock) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *CatalogAPIMock) SearchProducts(ctx context.Context, keyword string) ([]model.Product, error) {
	args := m.Called(ctx, keyword)
	p, _ := args.Get(0).([]model.Product)
	return p, args.Error(1)
}

func (m *CatalogAPIMock) GetProductImage(ctx context.Context, id int64) ([]byte, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type AuthAPIMock struct{ mock.Mock }

func (m *AuthAPIMock) Login(ctx context.Context, in apiclient.LoginRequest) (apiclient.AuthResponse, error) {
	args := m.Called(ctx, in)
	r, _ := args.Get(0).(apiclient.AuthResponse)
	return r, args.Error(1)
}

func (m *AuthAPIMock) Register(ctx context.Context, in apiclient.RegisterRequest) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *AuthAPIMock) GoogleLogin(ctx context.Context, credential string) (apiclient.AuthResponse, error) {
	args := m.Called(ctx, credential)
	r, _ := args.Get(0).(apiclient.AuthResponse)
	return r, args.Error(1)
}

func (m *AuthAPIMock) VerifyAccount(ctx context.Context, email string, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

func (m *AuthAPIMock) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *AuthAPIMock) ResetPassword(ctx context.Context, email string, code string, newPassword string) error {
	args := m.Called(ctx, email, code, newPassword)
	return args.Error(0)
}

type ProfileAPIMock struct{ mock.Mock }

func (m *ProfileAPIMock) ChangePassword(ctx context.Context, token string, oldPassword string, newPassword string) error {
	args := m.Called(ctx, token, oldPassword, newPassword)
	return args.Error(0)
}

func (m *ProfileAPIMock) ChangeEmailRequest(ctx context.Context, token string, newEmail string) error {
	args := m.Called(ctx, token, newEmail)
	return args.Error(0)
}

func (m *ProfileAPIMock) ChangeEmailVerify(ctx context.Context, token string, code string) (apiclient.AuthResponse, error) {
	args := m.Called(ctx, token, code)
	r, _ := args.Get(0).(apiclient.AuthResponse)
	return r, args.Error(1)
}

type CheckoutAPIMock struct{ mock.Mock }

func (m *CheckoutAPIMock) ValidateCoupon(ctx context.Context, token string, code string) (model.Coupon, error) {
	args := m.Called(ctx, token, code)
	c, _ := args.Get(0).(model.Coupon)
	return c, args.Error(1)
}

func (m *CheckoutAPIMock) PlaceOrder(ctx context.Context, token string, in model.OrderRequest) (model.Order, error) {
	args := m.Called(ctx, token, in)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *CheckoutAPIMock) ListOrders(ctx context.Context, token string) ([]model.Order, error) {
	args := m.Called(ctx, token)
	o, _ := args.Get(0).([]model.Order)
	return o, args.Error(1)
}

type AdminAPIMock struct{ mock.Mock }

func (m *AdminAPIMock) ListUsers(ctx context.Context, token string) ([]model.AdminUser, error) {
	args := m.Called(ctx, token)
	u, _ := args.Get(0).([]model.AdminUser)
	return u, args.Error(1)
}

func (m *AdminAPIMock) DeleteUser(ctx context.Context, token string, id int64) error {
	return m.Called(ctx, token, id).Error(0)
}

func (m *AdminAPIMock) BanUser(ctx context.Context, token string, id int64, days int, reason string) error {
	return m.Called(ctx, token, id, days, reason).Error(0)
}

func (m *AdminAPIMock) UnbanUser(ctx context.Context, token string, id int64) error {
	return m.Called(ctx, token, id).Error(0)
}

func (m *AdminAPIMock) ListCoupons(ctx context.Context, token string) ([]model.Coupon, error) {
	args := m.Called(ctx, token)
	c, _ := args.Get(0).([]model.Coupon)
	return c, args.Error(1)
}

func (m *AdminAPIMock) CreateCoupon(ctx context.Context, token string, in model.Coupon) error {
	return m.Called(ctx, token, in).Error(0)
}

func (m *AdminAPIMock) DeleteCoupon(ctx context.Context, token string, id int64) error {
	return m.Called(ctx, token, id).Error(0)
}

func (m *AdminAPIMock) DeleteProduct(ctx context.Context, token string, id int64) error {
	return m.Called(ctx, token, id).Error(0)
}

// recordingNotifier keeps every toast.
type recordingNotifier struct {
	mu       sync.Mutex
	success  []string
	info     []string
	errorMsg []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.success = append(n.success, msg)
}

func (n *recordingNotifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.info = append(n.info, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errorMsg = append(n.errorMsg, msg)
}

func (n *recordingNotifier) Infos() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.info...)
}

func (n *recordingNotifier) Errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errorMsg...)
}

func (n *recordingNotifier) Successes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.success...)
}

// =====================
// helper
// =====================

var ctxAny = mock.Anything

func newSessions(t *testing.T) (*session.Service, *infraRepo.CredentialMemoryRepository) {
	t.Helper()
	store := infraRepo.NewCredentialMemoryRepository()
	return session.NewService(store, nil), store
}

// loginAs writes the session straight into the store, bypassing listeners.
func loginAs(t *testing.T, store *infraRepo.CredentialMemoryRepository, sess model.Session) {
	t.Helper()
	require.NoError(t, store.Save(context.Background(), sess))
}

func mustJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func product(id int64, price model.Money, stock int64) model.Product {
	return model.Product{
		ID:               id,
		Name:             fmt.Sprintf("P%d", id),
		Price:            price,
		StockQuantity:    stock,
		ProductAvailable: stock > 0,
	}
}
