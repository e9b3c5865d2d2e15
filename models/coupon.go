package models

import (
	"strings"
	"time"
)

// Coupon is a percentage discount that customers redeem by code.
type Coupon struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Discount  float64   `json:"discount"` // percent, 0-100
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeCouponCode trims and upper-cases a user supplied code.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
