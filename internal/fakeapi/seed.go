package fakeapi

import (
	"encoding/base64"

	"github.com/Rafals/storefront/internal/domain/model"
)

// Seed credentials for local runs.
const (
	SeedAdminEmail    = "admin@example.com"
	SeedAdminPassword = "admin12345"
	SeedUserEmail     = "user@example.com"
	SeedUserPassword  = "user12345"
)

// SeedKeyboardImage is the image bytes of product 1 (a PNG signature).
var SeedKeyboardImage = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Seed fills an empty store with two accounts, a few products and a coupon.
func (s *Store) Seed() error {
	if _, err := s.CreateUser("admin", SeedAdminEmail, SeedAdminPassword, model.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.CreateUser("user", SeedUserEmail, SeedUserPassword, model.RoleUser); err != nil {
		return err
	}

	products := []model.Product{
		{Name: "Mechanical Keyboard", Brand: "Keychron", Category: "Electronics", Description: "75% hot-swap keyboard", Price: model.NewMoney(10, 0), StockQuantity: 5, ProductAvailable: true, ReleaseDate: "2024-03-01",
			ImageName: "keyboard.png", ImageType: "image/png", ImageData: base64.StdEncoding.EncodeToString(SeedKeyboardImage)},
		{Name: "USB-C Cable", Brand: "Anker", Category: "Accessories", Description: "1m braided cable", Price: model.NewMoney(5, 50), StockQuantity: 10, ProductAvailable: true, ReleaseDate: "2023-09-12"},
		{Name: "Travel Mug", Brand: "Contigo", Category: "Home", Description: "Leak-proof mug", Price: model.NewMoney(24, 99), StockQuantity: 2, ProductAvailable: true, ReleaseDate: "2022-11-20"},
		{Name: "Notebook", Brand: "Leuchtturm", Category: "Stationery", Description: "A5 dotted", Price: model.NewMoney(18, 0), StockQuantity: 0, ProductAvailable: false, ReleaseDate: "2021-01-15"},
	}
	for _, p := range products {
		s.AddProduct(p)
	}

	if _, err := s.CreateCoupon(model.Coupon{Code: "SAVE10", DiscountPercent: 10, IsActive: true}); err != nil {
		return err
	}
	return nil
}
