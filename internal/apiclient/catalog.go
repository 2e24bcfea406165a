package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Rafals/storefront/internal/domain/model"
)

func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/products", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/product/%d", id), "", nil, &p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// GetProductImage returns the raw image bytes. A product without an image answers 404.
func (c *Client) GetProductImage(ctx context.Context, id int64) ([]byte, error) {
	return c.execute(ctx, http.MethodGet, fmt.Sprintf("/product/%d/image", id), "", nil)
}

func (c *Client) SearchProducts(ctx context.Context, keyword string) ([]model.Product, error) {
	q := url.Values{}
	q.Set("keyword", keyword)

	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/products/search?"+q.Encode(), "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// DeleteProduct is admin only.
func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/product/%d", id), token, nil, nil)
}
