package model

import (
	"encoding/json"
	"fmt"
)

// Product is a catalog item as the remote API returns it.
type Product struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	Brand            string `json:"brand,omitempty"`
	Category         string `json:"category,omitempty"`
	Price            Money  `json:"price"`
	StockQuantity    int64  `json:"stockQuantity"`
	ProductAvailable bool   `json:"productAvailable"`
	ReleaseDate      string `json:"releaseDate,omitempty"`
	ImageName        string `json:"imageName,omitempty"`
	ImageType        string `json:"imageType,omitempty"`
	ImageData        string `json:"imageData,omitempty"`
}

// UnmarshalJSON rejects a negative price.
func (p *Product) UnmarshalJSON(b []byte) error {
	type plain Product
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v.Price < 0 {
		return fmt.Errorf("product %d: %w: negative price %s", v.ID, ErrInvalidMoney, v.Price)
	}
	*p = Product(v)
	return nil
}
