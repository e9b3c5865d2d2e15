package models

// Collection names in the document store.
const (
	CollectionProducts      = "products"
	CollectionCart          = "cart"
	CollectionWishlist      = "wishlist"
	CollectionCoupons       = "coupons"
	CollectionOrders        = "orders"
	CollectionNotifications = "notifications"
	CollectionPayments      = "payments"
	CollectionAddresses     = "addresses"
)

// PartitionedCollections hold per-user data; every read and write against
// them must be scoped by the owning user's id.
var PartitionedCollections = []string{
	CollectionCart,
	CollectionWishlist,
	CollectionOrders,
	CollectionNotifications,
	CollectionPayments,
	CollectionAddresses,
}

// User is the authenticated principal handed to the core by the auth
// middleware. Login and registration happen elsewhere.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	IsAdmin       bool   `json:"is_admin"`
}

// Product represents a catalog product
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discount_price,omitempty"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory"`
	Catalogue     string   `json:"catalogue"`
	Tags          []string `json:"tags,omitempty"`
	Image         string   `json:"image"`
	Description   string   `json:"description"`
}

// EffectivePrice returns the price actually charged for one unit.
func (p Product) EffectivePrice() float64 {
	return EffectivePrice(p.Price, p.DiscountPrice)
}

// HasActiveDiscount reports whether the discount price undercuts the base price.
func (p Product) HasActiveDiscount() bool {
	return p.DiscountPrice != nil && *p.DiscountPrice < p.Price
}

// EffectivePrice is discountPrice when present and below price, else price.
func EffectivePrice(price float64, discountPrice *float64) float64 {
	if discountPrice != nil && *discountPrice < price {
		return *discountPrice
	}
	return price
}
