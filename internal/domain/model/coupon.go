package model

import "strings"

type Coupon struct {
	ID              int64  `json:"id,omitempty"`
	Code            string `json:"code"`
	DiscountPercent int64  `json:"discountPercent"`
	IsActive        bool   `json:"isActive"`
}

// NormalizeCouponCode trims and upper-cases a code.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
