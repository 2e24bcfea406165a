package fakeapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/Rafals/storefront/internal/domain/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(NewBcryptHasher(bcrypt.MinCost), nil)
	require.NoError(t, s.Seed())
	return s
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
}

func userID(t *testing.T, s *Store) int64 {
	t.Helper()
	acc, err := s.Login(SeedUserEmail, SeedUserPassword)
	require.NoError(t, err)
	return acc.ID
}

// =====================
// accounts
// =====================

func TestStore_Login(t *testing.T) {
	s := newTestStore(t)

	acc, err := s.Login(" ADMIN@example.com ", SeedAdminPassword)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, acc.Role)

	_, err = s.Login(SeedAdminEmail, "wrong")
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = s.Login("nobody@example.com", "x")
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestStore_RegisterVerifyLogin(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Register("carol", "carol@example.com", "password1"))

	_, err := s.Login("carol@example.com", "password1")
	requireStatus(t, err, http.StatusForbidden)

	requireStatus(t, s.Verify("carol@example.com", "nope"), http.StatusBadRequest)

	code := s.PendingCode("carol@example.com")
	require.Len(t, code, 6)
	require.NoError(t, s.Verify("carol@example.com", code))

	acc, err := s.Login("carol@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, acc.Role)
}

func TestStore_Register_Conflicts(t *testing.T) {
	s := newTestStore(t)

	requireStatus(t, s.Register("other", SeedUserEmail, "password1"), http.StatusConflict)
	requireStatus(t, s.Register("USER", "new@example.com", "password1"), http.StatusConflict)
	requireStatus(t, s.Register("x", "x@example.com", "short"), http.StatusBadRequest)
}

func TestStore_ResetPassword_RevokesTokens(t *testing.T) {
	s := newTestStore(t)
	id := userID(t, s)
	before, ok := s.TokenVersion(id)
	require.True(t, ok)

	require.NoError(t, s.ForgotPassword(SeedUserEmail))
	require.NoError(t, s.ResetPassword(SeedUserEmail, s.PendingCode(SeedUserEmail), "newpassword"))

	after, _ := s.TokenVersion(id)
	assert.Equal(t, before+1, after)

	_, err := s.Login(SeedUserEmail, "newpassword")
	assert.NoError(t, err)
}

func TestStore_GoogleLogin_CreatesAccount(t *testing.T) {
	s := newTestStore(t)

	acc, err := s.GoogleLogin("gina@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, "gina", acc.Username)

	again, err := s.GoogleLogin("GINA@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, again.ID)

	_, err = s.GoogleLogin("not-an-email")
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestStore_ChangeEmail(t *testing.T) {
	s := newTestStore(t)
	id := userID(t, s)

	requireStatus(t, s.ChangeEmailRequest(id, SeedAdminEmail), http.StatusConflict)
	require.NoError(t, s.ChangeEmailRequest(id, "fresh@example.com"))

	_, err := s.ChangeEmailVerify(id, "000000x")
	requireStatus(t, err, http.StatusBadRequest)

	acc, err := s.ChangeEmailVerify(id, s.PendingCode(SeedUserEmail))
	require.NoError(t, err)
	assert.Equal(t, "fresh@example.com", acc.Email)
}

// =====================
// bans
// =====================

func TestStore_Ban_BlocksLoginAndTokens(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newTestStore(t).WithClock(func() time.Time { return now })
	id := userID(t, s)

	require.NoError(t, s.BanUser(id, 7, "spam"))

	_, ok := s.TokenVersion(id)
	assert.False(t, ok)

	_, err := s.Login(SeedUserEmail, SeedUserPassword)
	requireStatus(t, err, http.StatusForbidden)
	assert.Contains(t, err.Error(), "spam")

	users := s.ListUsers()
	require.Len(t, users, 2)
	assert.True(t, users[1].Banned)
	assert.Equal(t, "2025-01-08T00:00:00Z", users[1].BanExpiration)
	assert.Equal(t, "ROLE_USER", users[1].Role)

	// ban runs out
	now = now.Add(8 * 24 * time.Hour)
	_, err = s.Login(SeedUserEmail, SeedUserPassword)
	assert.NoError(t, err)
}

func TestStore_Ban_Rules(t *testing.T) {
	s := newTestStore(t)
	admin, err := s.Login(SeedAdminEmail, SeedAdminPassword)
	require.NoError(t, err)
	id := userID(t, s)

	requireStatus(t, s.BanUser(admin.ID, 1, "x"), http.StatusBadRequest)
	requireStatus(t, s.BanUser(id, 1, " "), http.StatusBadRequest)
	requireStatus(t, s.BanUser(999, 1, "x"), http.StatusNotFound)

	require.NoError(t, s.BanUser(id, 0, "forever"))
	require.NoError(t, s.UnbanUser(id))
	_, ok := s.TokenVersion(id)
	assert.True(t, ok)
}

// =====================
// catalog / cart
// =====================

func TestStore_Search(t *testing.T) {
	s := newTestStore(t)

	assert.Len(t, s.SearchProducts("mug"), 1)
	assert.Len(t, s.SearchProducts("ELECTRONICS"), 1)
	assert.Empty(t, s.SearchProducts("  "))

	_, err := s.GetProduct(99)
	requireStatus(t, err, http.StatusNotFound)
}

func TestStore_ProductImage(t *testing.T) {
	s := newTestStore(t)

	data, typ, err := s.ProductImage(1)
	require.NoError(t, err)
	assert.Equal(t, SeedKeyboardImage, data)
	assert.Equal(t, "image/png", typ)

	_, _, err = s.ProductImage(2)
	requireStatus(t, err, http.StatusNotFound)

	_, _, err = s.ProductImage(99)
	requireStatus(t, err, http.StatusNotFound)

	p := s.AddProduct(model.Product{Name: "Broken", ImageData: "%%%"})
	_, _, err = s.ProductImage(p.ID)
	assert.Error(t, err)
	_, isHTTP := AsHTTPError(err)
	assert.False(t, isHTTP)
}

func TestStore_Cart_AddClampRemove(t *testing.T) {
	s := newTestStore(t)
	id := userID(t, s)

	require.NoError(t, s.AddToCart(id, 2, 2))
	require.NoError(t, s.AddToCart(id, 1, 1))
	require.NoError(t, s.AddToCart(id, 2, 1))

	cart := s.Cart(id)
	require.Len(t, cart, 2)
	assert.Equal(t, int64(2), cart[0].Product.ID)
	assert.Equal(t, int64(3), cart[0].Quantity)

	// mug has stock 2
	err := s.AddToCart(id, 3, 3)
	requireStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, err.Error(), "stock")

	requireStatus(t, s.AddToCart(id, 1, 0), http.StatusBadRequest)
	requireStatus(t, s.AddToCart(id, 42, 1), http.StatusNotFound)

	// decrement to zero drops the line
	require.NoError(t, s.AddToCart(id, 1, -1))
	assert.Len(t, s.Cart(id), 1)

	require.NoError(t, s.RemoveFromCart(id, 2))
	require.NoError(t, s.RemoveFromCart(id, 2))
	assert.Empty(t, s.Cart(id))
}

func TestStore_DeleteProduct_DropsCartLines(t *testing.T) {
	s := newTestStore(t)
	id := userID(t, s)

	require.NoError(t, s.AddToCart(id, 1, 1))
	require.NoError(t, s.DeleteProduct(1))

	assert.Empty(t, s.Cart(id))
	requireStatus(t, s.DeleteProduct(1), http.StatusNotFound)
}

// =====================
// coupons / orders
// =====================

func TestStore_Coupons(t *testing.T) {
	s := newTestStore(t)

	c, err := s.ValidateCoupon(" save10 ")
	require.NoError(t, err)
	assert.Equal(t, int64(10), c.DiscountPercent)

	_, err = s.ValidateCoupon("NOPE")
	requireStatus(t, err, http.StatusNotFound)

	created, err := s.CreateCoupon(model.Coupon{Code: "half", DiscountPercent: 50, IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "HALF", created.Code)

	_, err = s.CreateCoupon(model.Coupon{Code: "HALF", DiscountPercent: 50})
	requireStatus(t, err, http.StatusConflict)
	_, err = s.CreateCoupon(model.Coupon{Code: "X", DiscountPercent: 0})
	requireStatus(t, err, http.StatusBadRequest)

	assert.Len(t, s.ListCoupons(), 2)
	require.NoError(t, s.DeleteCoupon(created.ID))
	requireStatus(t, s.DeleteCoupon(created.ID), http.StatusNotFound)
}

func TestStore_PlaceOrder(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s := newTestStore(t).WithClock(func() time.Time { return now })
	id := userID(t, s)

	require.NoError(t, s.AddToCart(id, 1, 2))
	require.NoError(t, s.AddToCart(id, 2, 3))

	code := "save10"
	order, err := s.PlaceOrder(id, model.OrderRequest{
		FirstName: "A", LastName: "B", Street: "C", City: "D", ZipCode: "E",
		ShippingMethod: model.ShippingDHL,
		CouponCode:     &code,
	})

	require.NoError(t, err)
	assert.Equal(t, "47.85", order.TotalAmount.String())
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, "SAVE10", order.CouponCode)
	assert.Equal(t, "2025-03-01T10:00:00Z", order.CreatedAt)
	assert.Len(t, order.Items, 2)
	assert.Empty(t, s.Cart(id))
	assert.Len(t, s.ListOrders(id), 1)

	p, err := s.GetProduct(1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.StockQuantity)
}

func TestStore_PlaceOrder_Errors(t *testing.T) {
	s := newTestStore(t)
	id := userID(t, s)
	addr := model.OrderRequest{FirstName: "A", LastName: "B", Street: "C", City: "D", ZipCode: "E", ShippingMethod: model.ShippingDPD}

	_, err := s.PlaceOrder(id, addr)
	requireStatus(t, err, http.StatusBadRequest)

	require.NoError(t, s.AddToCart(id, 3, 2))
	require.NoError(t, s.SetStock(3, 1))
	_, err = s.PlaceOrder(id, addr)
	requireStatus(t, err, http.StatusConflict)

	bad := addr
	bad.ShippingMethod = "UPS"
	_, err = s.PlaceOrder(id, bad)
	requireStatus(t, err, http.StatusBadRequest)

	bogus := "BOGUS"
	withCoupon := addr
	withCoupon.CouponCode = &bogus
	require.NoError(t, s.SetStock(3, 5))
	_, err = s.PlaceOrder(id, withCoupon)
	requireStatus(t, err, http.StatusBadRequest)

	// nothing was taken
	assert.Len(t, s.Cart(id), 1)
}

// =====================
// faults / tokens
// =====================

func TestStore_FailNext(t *testing.T) {
	s := newTestStore(t)
	s.FailNext("GET /api/cart", http.StatusServiceUnavailable, "maintenance")

	err := s.TakeFault("GET /api/cart")
	requireStatus(t, err, http.StatusServiceUnavailable)
	assert.NoError(t, s.TakeFault("GET /api/cart"))
}

func TestTokenIssuer_Issue(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("secret", time.Hour).WithClock(func() time.Time { return now })

	raw, err := issuer.Issue(Account{ID: 7, Username: "alice", Role: model.RoleUser, TokenVersion: 2})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(raw, claims)
	require.NoError(t, err)

	assert.Equal(t, "7", claims["sub"])
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, "USER", claims["role"])
	assert.Equal(t, float64(2), claims["tv"])
	assert.Equal(t, float64(now.Add(time.Hour).Unix()), claims["exp"])
	assert.Equal(t, "ROLE_ADMIN", RoleClaim(model.RoleAdmin))
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hashed, err := h.Hash("password1")
	require.NoError(t, err)
	assert.True(t, h.Verify("password1", hashed))
	assert.False(t, h.Verify("password2", hashed))
}
