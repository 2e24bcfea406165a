package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Rafals/storefront/internal/domain/model"
)

// GetCart returns the server cart as {product, quantity} rows.
func (c *Client) GetCart(ctx context.Context, token string) ([]model.ServerCartItem, error) {
	var items []model.ServerCartItem
	if err := c.do(ctx, http.MethodGet, "/cart", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart adds quantity (may be negative) of a product. The server clamps to stock.
func (c *Client) AddToCart(ctx context.Context, token string, productID int64, quantity int64) error {
	q := url.Values{}
	q.Set("quantity", strconv.FormatInt(quantity, 10))
	path := fmt.Sprintf("/cart/add/%d?%s", productID, q.Encode())
	return c.do(ctx, http.MethodPost, path, token, struct{}{}, nil)
}

func (c *Client) RemoveFromCart(ctx context.Context, token string, productID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/remove/%d", productID), token, nil, nil)
}
