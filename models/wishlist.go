package models

import "time"

// WishlistItem is a product saved for later by a user.
type WishlistItem struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	ProductID     string    `json:"product_id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	DiscountPrice *float64  `json:"discount_price,omitempty"`
	Image         string    `json:"image"`
	AddedAt       time.Time `json:"added_at"`
}

// EffectivePrice returns the unit price the wishlist entry would be sold at.
func (w WishlistItem) EffectivePrice() float64 {
	return EffectivePrice(w.Price, w.DiscountPrice)
}
