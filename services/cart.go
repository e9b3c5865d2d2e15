package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/store"
	"github.com/Govind-619/ShopSphere/utils"
)

// CartLedger manages each user's cart line items. Every operation is scoped
// to one user's partition of the cart collection.
type CartLedger struct {
	store store.Store
	now   func() time.Time
}

func NewCartLedger(st store.Store) *CartLedger {
	return &CartLedger{store: st, now: time.Now}
}

func (l *CartLedger) find(ctx context.Context, userID, productID string) (*store.Document, error) {
	docs, err := l.store.Find(ctx, models.CollectionCart, userID, store.Eq("product_id", productID))
	if err != nil {
		return nil, remoteError("failed to load cart", err, nil)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return &docs[0], nil
}

// AddItem snapshots product into the cart. Adding a product that is already
// in the cart fails with ErrAlreadyInCart; callers decide whether to remove
// it instead.
func (l *CartLedger) AddItem(ctx context.Context, userID string, product models.Product, quantity int) (*models.CartLineItem, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if product.ID == "" {
		return nil, ErrInvalidProduct
	}
	utils.LogDebug("Adding product %s x%d to cart for user ID: %s", product.ID, quantity, userID)

	item := models.NewCartLineItem(userID, product, quantity, l.now())
	fields, err := store.Encode(item)
	if err != nil {
		return nil, decodeError("cart item", err)
	}
	// Keyed by product, so concurrent adds leave one line item.
	doc, err := l.store.CreateUnique(ctx, models.CollectionCart, userID, product.ID, fields)
	if errors.Is(err, store.ErrConflict) {
		return nil, ErrAlreadyInCart
	}
	if err != nil {
		utils.LogError("Failed to add product %s to cart for user ID: %s: %v", product.ID, userID, err)
		return nil, remoteError("failed to add item to cart", err, nil)
	}
	item.ID = doc.ID
	utils.LogInfo("Product %s added to cart for user ID: %s", product.ID, userID)
	return &item, nil
}

// RemoveItem deletes the product's line item. Removing an absent product is
// not an error.
func (l *CartLedger) RemoveItem(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return ErrUserRequired
	}
	docs, err := l.store.Find(ctx, models.CollectionCart, userID, store.Eq("product_id", productID))
	if err != nil {
		return remoteError("failed to load cart", err, nil)
	}
	for _, doc := range docs {
		err := l.store.Delete(ctx, models.CollectionCart, userID, doc.ID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			utils.LogError("Failed to remove product %s from cart for user ID: %s: %v", productID, userID, err)
			return remoteError("failed to remove item from cart", err, nil)
		}
	}
	utils.LogInfo("Product %s removed from cart for user ID: %s", productID, userID)
	return nil
}

// SetQuantity overwrites the quantity of an existing line item.
func (l *CartLedger) SetQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if userID == "" {
		return ErrUserRequired
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	doc, err := l.find(ctx, userID, productID)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrCartItemNotFound
	}
	err = l.store.Update(ctx, models.CollectionCart, userID, doc.ID, store.Fields{"quantity": quantity})
	if err != nil {
		return remoteError("failed to update cart quantity", err, ErrCartItemNotFound)
	}
	utils.LogDebug("Quantity of product %s set to %d for user ID: %s", productID, quantity, userID)
	return nil
}

// Increment adds one unit and returns the new quantity.
func (l *CartLedger) Increment(ctx context.Context, userID, productID string) (int, error) {
	return l.adjust(ctx, userID, productID, 1)
}

// Decrement removes one unit but never goes below one; at quantity 1 it is
// a no-op rather than a removal.
func (l *CartLedger) Decrement(ctx context.Context, userID, productID string) (int, error) {
	return l.adjust(ctx, userID, productID, -1)
}

func (l *CartLedger) adjust(ctx context.Context, userID, productID string, delta int) (int, error) {
	if userID == "" {
		return 0, ErrUserRequired
	}
	doc, err := l.find(ctx, userID, productID)
	if err != nil {
		return 0, err
	}
	if doc == nil {
		return 0, ErrCartItemNotFound
	}
	n, err := l.store.Increment(ctx, models.CollectionCart, userID, doc.ID, "quantity", delta, 1)
	if err != nil {
		return 0, remoteError("failed to update cart quantity", err, ErrCartItemNotFound)
	}
	return n, nil
}

// ListItems returns the user's line items in the order they were added.
func (l *CartLedger) ListItems(ctx context.Context, userID string) ([]models.CartLineItem, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	docs, err := l.store.Find(ctx, models.CollectionCart, userID)
	if err != nil {
		return nil, remoteError("failed to load cart", err, nil)
	}
	items, err := store.DecodeAll[models.CartLineItem](docs)
	if err != nil {
		return nil, decodeError("cart item", err)
	}
	return items, nil
}

// Clear deletes every line item of the user. It stops at the first failure
// and reports it; items deleted before that stay deleted.
func (l *CartLedger) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUserRequired
	}
	docs, err := l.store.Find(ctx, models.CollectionCart, userID)
	if err != nil {
		return remoteError("failed to load cart", err, nil)
	}
	for _, doc := range docs {
		err := l.store.Delete(ctx, models.CollectionCart, userID, doc.ID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return remoteError("failed to clear cart", err, nil)
		}
	}
	utils.LogInfo("Cart cleared for user ID: %s (%d items)", userID, len(docs))
	return nil
}

// Watch streams the user's cart after every change. The caller must Close
// the feed when it stops reading.
func (l *CartLedger) Watch(ctx context.Context, userID string) (*Feed[models.CartLineItem], error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	sub, err := l.store.Subscribe(ctx, models.CollectionCart, userID)
	if err != nil {
		return nil, remoteError("failed to watch cart", err, nil)
	}
	return newFeed[models.CartLineItem](sub, "cart item", nil), nil
}

// Subtotal is the sum of effective price times quantity over items.
func Subtotal[T interface{ LineTotal() float64 }](items []T) float64 {
	total := 0.0
	for _, item := range items {
		total += item.LineTotal()
	}
	return roundMoney(total)
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// ApplyDiscount reduces total by percent.
func ApplyDiscount(total, percent float64) float64 {
	if percent <= 0 {
		return roundMoney(total)
	}
	return roundMoney(total * (1 - percent/100))
}
