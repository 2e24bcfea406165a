package apiclient

import (
	"context"
	"net/http"

	"github.com/Rafals/storefront/internal/domain/model"
)

// PlaceOrder creates an order from the server cart. The server empties the cart on success.
func (c *Client) PlaceOrder(ctx context.Context, token string, in model.OrderRequest) (model.Order, error) {
	var out model.Order
	if err := c.do(ctx, http.MethodPost, "/orders", token, in, &out); err != nil {
		return model.Order{}, err
	}
	return out, nil
}

func (c *Client) ListOrders(ctx context.Context, token string) ([]model.Order, error) {
	var out []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
