package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Rafals/storefront/internal/domain/model"
)

type banRequest struct {
	Days   int    `json:"days"`
	Reason string `json:"reason"`
}

// ValidateCoupon checks a code and returns its discount.
func (c *Client) ValidateCoupon(ctx context.Context, token string, code string) (model.Coupon, error) {
	var out model.Coupon
	path := "/coupons/validate/" + url.PathEscape(code)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return model.Coupon{}, err
	}
	return out, nil
}

func (c *Client) ListCoupons(ctx context.Context, token string) ([]model.Coupon, error) {
	var out []model.Coupon
	if err := c.do(ctx, http.MethodGet, "/coupons/all", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCoupon(ctx context.Context, token string, in model.Coupon) error {
	return c.do(ctx, http.MethodPost, "/coupons/create", token, in, nil)
}

func (c *Client) DeleteCoupon(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/coupons/%d", id), token, nil, nil)
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]model.AdminUser, error) {
	var out []model.AdminUser
	if err := c.do(ctx, http.MethodGet, "/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteUser(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), token, nil, nil)
}

func (c *Client) BanUser(ctx context.Context, token string, id int64, days int, reason string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d/ban", id), token, banRequest{Days: days, Reason: reason}, nil)
}

func (c *Client) UnbanUser(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d/unban", id), token, nil, nil)
}
