package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rafals/storefront/internal/domain/model"
	"go.uber.org/zap"
)

// ProductUsecase is the read-only catalog. No token is involved.
type ProductUsecase struct {
	api CatalogAPI
	log *zap.Logger
}

func NewProductUsecase(api CatalogAPI, log *zap.Logger) *ProductUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductUsecase{api: api, log: log.Named("catalog")}
}

func (u *ProductUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := u.api.ListProducts(ctx)
	if err != nil {
		u.log.Warn("list products failed", zap.Error(err))
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, fmt.Errorf("invalid product id %d", id)
	}
	p, err := u.api.GetProduct(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// ProductImage fetches the image of a product that names one; ErrNoImage otherwise.
func (u *ProductUsecase) ProductImage(ctx context.Context, p model.Product) ([]byte, error) {
	if p.ImageName == "" {
		return nil, ErrNoImage
	}
	data, err := u.api.GetProductImage(ctx, p.ID)
	if err != nil {
		u.log.Warn("image fetch failed", zap.Int64("product_id", p.ID), zap.Error(err))
		return nil, fmt.Errorf("image of product %d: %w", p.ID, err)
	}
	return data, nil
}

// SearchProducts trims the keyword; an empty keyword returns nothing without a request.
func (u *ProductUsecase) SearchProducts(ctx context.Context, keyword string) ([]model.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []model.Product{}, nil
	}
	products, err := u.api.SearchProducts(ctx, keyword)
	if err != nil {
		u.log.Warn("search failed", zap.String("keyword", keyword), zap.Error(err))
		return nil, fmt.Errorf("search %q: %w", keyword, err)
	}
	return products, nil
}
