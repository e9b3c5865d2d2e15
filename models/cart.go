package models

import "time"

// CartLineItem is one product/quantity pair in a user's cart. Name and
// prices are copied from the product when the item is added.
type CartLineItem struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	ProductID     string    `json:"product_id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	DiscountPrice *float64  `json:"discount_price,omitempty"`
	Image         string    `json:"image"`
	Quantity      int       `json:"quantity"`
	AddedAt       time.Time `json:"added_at"`
}

// EffectivePrice returns the unit price charged for this line item.
func (i CartLineItem) EffectivePrice() float64 {
	return EffectivePrice(i.Price, i.DiscountPrice)
}

// LineTotal is the effective price times quantity.
func (i CartLineItem) LineTotal() float64 {
	return i.EffectivePrice() * float64(i.Quantity)
}

// OrderItem converts the cart line into an order snapshot entry.
func (i CartLineItem) OrderItem() OrderItem {
	return OrderItem{
		ProductID:     i.ProductID,
		Name:          i.Name,
		Price:         i.Price,
		DiscountPrice: i.DiscountPrice,
		Image:         i.Image,
		Quantity:      i.Quantity,
	}
}

// NewCartLineItem snapshots product into a line item for userID.
func NewCartLineItem(userID string, product Product, quantity int, now time.Time) CartLineItem {
	return CartLineItem{
		UserID:        userID,
		ProductID:     product.ID,
		Name:          product.Name,
		Price:         product.Price,
		DiscountPrice: product.DiscountPrice,
		Image:         product.Image,
		Quantity:      quantity,
		AddedAt:       now,
	}
}
