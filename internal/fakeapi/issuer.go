package fakeapi

import (
	"strconv"
	"time"

	"github.com/Rafals/storefront/internal/domain/model"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock swaps the clock used for iat/exp.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	i.now = now
	return i
}

func (i *TokenIssuer) Secret() []byte {
	return i.secret
}

func (i *TokenIssuer) Issue(acc Account) (string, error) {
	now := i.now()

	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(acc.ID, 10),
		"username": acc.Username,
		"role":     string(acc.Role),
		"tv":       acc.TokenVersion,
		"iat":      now.Unix(),
		"exp":      now.Add(i.ttl).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

// RoleClaim is the role as the login response spells it.
func RoleClaim(r model.Role) string {
	return "ROLE_" + string(r)
}
