package fakeapi

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Rafals/storefront/internal/domain/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Account is what the handlers need to issue a token.
type Account struct {
	ID           int64
	Username     string
	Email        string
	Role         model.Role
	TokenVersion int
}

type user struct {
	Account
	PasswordHash  string
	Enabled       bool
	Banned        bool
	BanReason     string
	BanExpiration time.Time // zero means permanent
	AuthProvider  string

	verifyCode   string
	resetCode    string
	pendingEmail string
	emailCode    string
}

type cartRow struct {
	productID int64
	quantity  int64
}

type fault struct {
	status  int
	message string
}

// Store is the whole fake backend state, kept in memory.
type Store struct {
	hasher *BcryptHasher
	log    *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	users    map[int64]*user
	products map[int64]*model.Product
	carts    map[int64][]cartRow
	coupons  map[int64]*model.Coupon
	orders   map[int64][]model.Order
	faults   map[string][]fault

	nextUserID    int64
	nextProductID int64
	nextCouponID  int64
}

func NewStore(hasher *BcryptHasher, log *zap.Logger) *Store {
	if hasher == nil {
		hasher = NewBcryptHasher(0)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		hasher:        hasher,
		log:           log,
		now:           time.Now,
		users:         map[int64]*user{},
		products:      map[int64]*model.Product{},
		carts:         map[int64][]cartRow{},
		coupons:       map[int64]*model.Coupon{},
		orders:        map[int64][]model.Order{},
		faults:        map[string][]fault{},
		nextUserID:    1,
		nextProductID: 1,
		nextCouponID:  1,
	}
}

func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// FailNext makes the next request to route (e.g. "GET /api/cart") answer status.
func (s *Store) FailNext(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[route] = append(s.faults[route], fault{status: status, message: message})
}

// TakeFault pops a queued failure for route.
func (s *Store) TakeFault(route string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.faults[route]
	if len(q) == 0 {
		return nil
	}
	f := q[0]
	s.faults[route] = q[1:]
	return NewHTTPError(f.status, f.message)
}

// ---- accounts ----

// CreateUser adds an enabled account. Used for seeding and tests.
func (s *Store) CreateUser(username string, email string, password string, role model.Role) (Account, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email = normalizeEmail(email)
	if s.userByEmailLocked(email) != nil {
		return Account{}, NewHTTPError(http.StatusConflict, "email already exists")
	}
	u := &user{
		Account: Account{
			ID:       s.nextUserID,
			Username: username,
			Email:    email,
			Role:     role,
		},
		PasswordHash: hash,
		Enabled:      true,
		AuthProvider: "LOCAL",
	}
	s.nextUserID++
	s.users[u.ID] = u
	return u.Account, nil
}

// Register creates a disabled account and sends (logs) a verification code.
func (s *Store) Register(username string, email string, password string) error {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || len(password) < 8 {
		return NewHTTPError(http.StatusBadRequest, "invalid registration data")
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userByEmailLocked(email) != nil {
		return NewHTTPError(http.StatusConflict, "Email is already taken")
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return NewHTTPError(http.StatusConflict, "Username is already taken")
		}
	}

	u := &user{
		Account: Account{
			ID:       s.nextUserID,
			Username: username,
			Email:    email,
			Role:     model.RoleUser,
		},
		PasswordHash: hash,
		AuthProvider: "LOCAL",
		verifyCode:   newCode(),
	}
	s.nextUserID++
	s.users[u.ID] = u
	s.log.Info("verification code", zap.String("email", email), zap.String("code", u.verifyCode))
	return nil
}

func (s *Store) Verify(email string, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByEmailLocked(normalizeEmail(email))
	if u == nil || u.verifyCode == "" || u.verifyCode != strings.TrimSpace(code) {
		return NewHTTPError(http.StatusBadRequest, "Invalid verification code")
	}
	u.Enabled = true
	u.verifyCode = ""
	return nil
}

func (s *Store) Login(email string, password string) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByEmailLocked(normalizeEmail(email))
	if u == nil || u.PasswordHash == "" || !s.hasher.Verify(password, u.PasswordHash) {
		return Account{}, NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}
	if err := s.checkActiveLocked(u); err != nil {
		return Account{}, err
	}
	return u.Account, nil
}

// GoogleLogin trusts the credential as the Google account email.
func (s *Store) GoogleLogin(credential string) (Account, error) {
	email := normalizeEmail(credential)
	if email == "" || !strings.Contains(email, "@") {
		return Account{}, NewHTTPError(http.StatusUnauthorized, "Invalid Google token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByEmailLocked(email)
	if u == nil {
		u = &user{
			Account: Account{
				ID:       s.nextUserID,
				Username: strings.SplitN(email, "@", 2)[0],
				Email:    email,
				Role:     model.RoleUser,
			},
			Enabled:      true,
			AuthProvider: "GOOGLE",
		}
		s.nextUserID++
		s.users[u.ID] = u
	}
	if err := s.checkActiveLocked(u); err != nil {
		return Account{}, err
	}
	return u.Account, nil
}

func (s *Store) ForgotPassword(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByEmailLocked(normalizeEmail(email))
	if u == nil {
		return NewHTTPError(http.StatusNotFound, "User not found")
	}
	u.resetCode = newCode()
	s.log.Info("password reset code", zap.String("email", u.Email), zap.String("code", u.resetCode))
	return nil
}

func (s *Store) ResetPassword(email string, code string, newPassword string) error {
	if len(newPassword) < 8 {
		return NewHTTPError(http.StatusBadRequest, "password too short")
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByEmailLocked(normalizeEmail(email))
	if u == nil || u.resetCode == "" || u.resetCode != strings.TrimSpace(code) {
		return NewHTTPError(http.StatusBadRequest, "Invalid reset code")
	}
	u.PasswordHash = hash
	u.resetCode = ""
	// old tokens stop working
	u.TokenVersion++
	return nil
}

func (s *Store) ChangePassword(userID int64, oldPassword string, newPassword string) error {
	if len(newPassword) < 8 {
		return NewHTTPError(http.StatusBadRequest, "password too short")
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if u.PasswordHash == "" || !s.hasher.Verify(oldPassword, u.PasswordHash) {
		return NewHTTPError(http.StatusBadRequest, "Current password is incorrect")
	}
	u.PasswordHash = hash
	return nil
}

func (s *Store) ChangeEmailRequest(userID int64, newEmail string) error {
	newEmail = normalizeEmail(newEmail)
	if !strings.Contains(newEmail, "@") {
		return NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if other := s.userByEmailLocked(newEmail); other != nil && other.ID != userID {
		return NewHTTPError(http.StatusConflict, "Email is already taken")
	}
	u.pendingEmail = newEmail
	u.emailCode = newCode()
	s.log.Info("email change code", zap.String("email", u.Email), zap.String("code", u.emailCode))
	return nil
}

// ChangeEmailVerify applies the pending address; the caller issues a fresh token.
func (s *Store) ChangeEmailVerify(userID int64, code string) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return Account{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if u.emailCode == "" || u.emailCode != strings.TrimSpace(code) {
		return Account{}, NewHTTPError(http.StatusBadRequest, "Invalid code")
	}
	u.Email = u.pendingEmail
	u.pendingEmail = ""
	u.emailCode = ""
	return u.Account, nil
}

// PendingCode returns the last code sent to email (verify, reset or email change).
func (s *Store) PendingCode(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByEmailLocked(normalizeEmail(email))
	if u == nil {
		return ""
	}
	switch {
	case u.verifyCode != "":
		return u.verifyCode
	case u.resetCode != "":
		return u.resetCode
	default:
		return u.emailCode
	}
}

// TokenVersion is checked against the tv claim on every authenticated request.
func (s *Store) TokenVersion(userID int64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return 0, false
	}
	if u.Banned && (u.BanExpiration.IsZero() || s.now().Before(u.BanExpiration)) {
		return 0, false
	}
	return u.TokenVersion, true
}

// RevokeTokens bumps the token version so every issued token gets 401.
func (s *Store) RevokeTokens(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		u.TokenVersion++
	}
}

// ---- admin: users ----

func (s *Store) ListUsers() []model.AdminUser {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.AdminUser, 0, len(s.users))
	for _, u := range s.users {
		au := model.AdminUser{
			ID:           u.ID,
			Username:     u.Username,
			Email:        u.Email,
			Role:         RoleClaim(u.Role),
			Enabled:      u.Enabled,
			Banned:       u.Banned,
			BanReason:    u.BanReason,
			AuthProvider: u.AuthProvider,
		}
		if u.Banned && !u.BanExpiration.IsZero() {
			au.BanExpiration = u.BanExpiration.UTC().Format(time.RFC3339)
		}
		out = append(out, au)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) DeleteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return NewHTTPError(http.StatusNotFound, "User not found")
	}
	delete(s.users, id)
	delete(s.carts, id)
	delete(s.orders, id)
	return nil
}

// BanUser bans for days; 0 days is permanent.
func (s *Store) BanUser(id int64, days int, reason string) error {
	if days < 0 || strings.TrimSpace(reason) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid ban")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return NewHTTPError(http.StatusNotFound, "User not found")
	}
	if u.Role == model.RoleAdmin {
		return NewHTTPError(http.StatusBadRequest, "Cannot ban an admin")
	}
	u.Banned = true
	u.BanReason = reason
	u.BanExpiration = time.Time{}
	if days > 0 {
		u.BanExpiration = s.now().Add(time.Duration(days) * 24 * time.Hour)
	}
	u.TokenVersion++
	return nil
}

func (s *Store) UnbanUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return NewHTTPError(http.StatusNotFound, "User not found")
	}
	u.Banned = false
	u.BanReason = ""
	u.BanExpiration = time.Time{}
	return nil
}

// ---- catalog ----

// AddProduct stores p with a fresh id and returns it.
func (s *Store) AddProduct(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextProductID
	s.nextProductID++
	s.products[p.ID] = &p
	return p
}

func (s *Store) ListProducts() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.productsLocked(func(model.Product) bool { return true })
}

func (s *Store) GetProduct(id int64) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	return *p, nil
}

// ProductImage decodes the base64 imageData of a product.
func (s *Store) ProductImage(id int64) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, "", NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if p.ImageData == "" {
		return nil, "", NewHTTPError(http.StatusNotFound, "Image not found")
	}
	data, err := base64.StdEncoding.DecodeString(p.ImageData)
	if err != nil {
		return nil, "", fmt.Errorf("decode image of product %d: %w", id, err)
	}

	typ := p.ImageType
	if typ == "" {
		typ = "application/octet-stream"
	}
	return data, typ, nil
}

// SearchProducts matches name, description, brand or category, case-insensitively.
func (s *Store) SearchProducts(keyword string) []model.Product {
	kw := strings.ToLower(strings.TrimSpace(keyword))

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.productsLocked(func(p model.Product) bool {
		if kw == "" {
			return false
		}
		for _, f := range []string{p.Name, p.Description, p.Brand, p.Category} {
			if strings.Contains(strings.ToLower(f), kw) {
				return true
			}
		}
		return false
	})
}

func (s *Store) DeleteProduct(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	delete(s.products, id)
	for uid, rows := range s.carts {
		s.carts[uid] = dropRow(rows, id)
	}
	return nil
}

// SetStock changes stock out of band, like another shopper buying.
func (s *Store) SetStock(id int64, stock int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	p.StockQuantity = stock
	p.ProductAvailable = stock > 0
	return nil
}

// ---- cart ----

func (s *Store) Cart(userID int64) []model.ServerCartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cartLocked(userID)
}

// AddToCart adds quantity (negative decrements). A line reaching 0 is removed.
func (s *Store) AddToCart(userID int64, productID int64, quantity int64) error {
	if quantity == 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}

	rows := s.carts[userID]
	idx := -1
	for i, r := range rows {
		if r.productID == productID {
			idx = i
			break
		}
	}

	var current int64
	if idx >= 0 {
		current = rows[idx].quantity
	}
	next := current + quantity
	if next > p.StockQuantity {
		return NewHTTPError(http.StatusBadRequest, "stock exceeded")
	}

	switch {
	case next <= 0:
		if idx >= 0 {
			s.carts[userID] = dropRow(rows, productID)
		}
	case idx >= 0:
		rows[idx].quantity = next
	default:
		s.carts[userID] = append(rows, cartRow{productID: productID, quantity: next})
	}
	return nil
}

func (s *Store) RemoveFromCart(userID int64, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[userID] = dropRow(s.carts[userID], productID)
	return nil
}

// ---- coupons ----

func (s *Store) ValidateCoupon(code string) (model.Coupon, error) {
	code = model.NormalizeCouponCode(code)

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.couponByCodeLocked(code)
	if c == nil || !c.IsActive {
		return model.Coupon{}, NewHTTPError(http.StatusNotFound, "Invalid coupon code")
	}
	return *c, nil
}

func (s *Store) ListCoupons() []model.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Coupon, 0, len(s.coupons))
	for _, c := range s.coupons {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) CreateCoupon(in model.Coupon) (model.Coupon, error) {
	in.Code = model.NormalizeCouponCode(in.Code)
	if in.Code == "" || in.DiscountPercent < 1 || in.DiscountPercent > 100 {
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "invalid coupon")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.couponByCodeLocked(in.Code) != nil {
		return model.Coupon{}, NewHTTPError(http.StatusConflict, "Coupon code already exists")
	}
	in.ID = s.nextCouponID
	s.nextCouponID++
	s.coupons[in.ID] = &in
	return in, nil
}

func (s *Store) DeleteCoupon(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.coupons[id]; !ok {
		return NewHTTPError(http.StatusNotFound, "Coupon not found")
	}
	delete(s.coupons, id)
	return nil
}

// ---- orders ----

// PlaceOrder recomputes the total, takes the stock and empties the cart.
func (s *Store) PlaceOrder(userID int64, req model.OrderRequest) (model.Order, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" ||
		strings.TrimSpace(req.Street) == "" || strings.TrimSpace(req.City) == "" ||
		strings.TrimSpace(req.ZipCode) == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "address is incomplete")
	}
	if !req.ShippingMethod.Valid() {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid shipping method")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.carts[userID]
	if len(rows) == 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Cart is empty")
	}

	var pct int64
	var couponCode string
	if req.CouponCode != nil && strings.TrimSpace(*req.CouponCode) != "" {
		c := s.couponByCodeLocked(model.NormalizeCouponCode(*req.CouponCode))
		if c == nil || !c.IsActive {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "Invalid coupon code")
		}
		pct = c.DiscountPercent
		couponCode = c.Code
	}

	items := make([]model.OrderItem, 0, len(rows))
	var subtotal model.Money
	for _, r := range rows {
		p, ok := s.products[r.productID]
		if !ok {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "Product no longer available")
		}
		if r.quantity > p.StockQuantity {
			return model.Order{}, NewHTTPError(http.StatusConflict, fmt.Sprintf("stock exceeded for %s", p.Name))
		}
		items = append(items, model.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    r.quantity,
			Price:       p.Price,
		})
		subtotal += p.Price.Mul(r.quantity)
	}

	for _, r := range rows {
		p := s.products[r.productID]
		p.StockQuantity -= r.quantity
		p.ProductAvailable = p.StockQuantity > 0
	}

	order := model.Order{
		ID:             uuid.NewString(),
		Status:         model.OrderStatusPending,
		TotalAmount:    subtotal - subtotal.Percent(pct) + req.ShippingMethod.Cost(),
		ShippingMethod: req.ShippingMethod,
		CouponCode:     couponCode,
		CreatedAt:      s.now().UTC().Format(time.RFC3339),
		Items:          items,
	}
	s.orders[userID] = append(s.orders[userID], order)
	delete(s.carts, userID)
	return order, nil
}

func (s *Store) ListOrders(userID int64) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Order, len(s.orders[userID]))
	copy(out, s.orders[userID])
	return out
}

// ---- helpers ----

func (s *Store) userByEmailLocked(email string) *user {
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (s *Store) couponByCodeLocked(code string) *model.Coupon {
	for _, c := range s.coupons {
		if c.Code == code {
			return c
		}
	}
	return nil
}

func (s *Store) checkActiveLocked(u *user) error {
	if !u.Enabled {
		return NewHTTPError(http.StatusForbidden, "Account is not verified")
	}
	if u.Banned {
		if !u.BanExpiration.IsZero() && !s.now().Before(u.BanExpiration) {
			u.Banned = false
			u.BanReason = ""
			u.BanExpiration = time.Time{}
			return nil
		}
		return NewHTTPError(http.StatusForbidden, "Account banned: "+u.BanReason)
	}
	return nil
}

func (s *Store) productsLocked(keep func(model.Product) bool) []model.Product {
	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(*p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) cartLocked(userID int64) []model.ServerCartItem {
	rows := s.carts[userID]
	out := make([]model.ServerCartItem, 0, len(rows))
	for _, r := range rows {
		p, ok := s.products[r.productID]
		if !ok {
			continue
		}
		out = append(out, model.ServerCartItem{Product: *p, Quantity: r.quantity})
	}
	return out
}

func dropRow(rows []cartRow, productID int64) []cartRow {
	out := rows[:0]
	for _, r := range rows {
		if r.productID != productID {
			out = append(out, r)
		}
	}
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newCode is a 6 digit verification code.
func newCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}
