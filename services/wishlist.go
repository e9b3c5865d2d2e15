package services

import (
	"context"
	"errors"
	"time"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/store"
	"github.com/Govind-619/ShopSphere/utils"
)

// Wishlist keeps products a user saved for later and moves them to and
// from the cart.
type Wishlist struct {
	store store.Store
	cart  *CartLedger
	now   func() time.Time
}

func NewWishlist(st store.Store, cart *CartLedger) *Wishlist {
	return &Wishlist{store: st, cart: cart, now: time.Now}
}

func (w *Wishlist) find(ctx context.Context, userID, productID string) ([]store.Document, error) {
	docs, err := w.store.Find(ctx, models.CollectionWishlist, userID, store.Eq("product_id", productID))
	if err != nil {
		return nil, remoteError("failed to load wishlist", err, nil)
	}
	return docs, nil
}

func (w *Wishlist) Add(ctx context.Context, userID string, product models.Product) (*models.WishlistItem, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if product.ID == "" {
		return nil, ErrInvalidProduct
	}
	item := models.WishlistItem{
		UserID:        userID,
		ProductID:     product.ID,
		Name:          product.Name,
		Price:         product.Price,
		DiscountPrice: product.DiscountPrice,
		Image:         product.Image,
		AddedAt:       w.now(),
	}
	fields, err := store.Encode(item)
	if err != nil {
		return nil, decodeError("wishlist item", err)
	}
	doc, err := w.store.CreateUnique(ctx, models.CollectionWishlist, userID, product.ID, fields)
	if errors.Is(err, store.ErrConflict) {
		return nil, ErrAlreadyInWishlist
	}
	if err != nil {
		return nil, remoteError("failed to add item to wishlist", err, nil)
	}
	item.ID = doc.ID
	utils.LogInfo("Product %s added to wishlist for user ID: %s", product.ID, userID)
	return &item, nil
}

// Remove deletes the product from the wishlist. Absent products are ignored.
func (w *Wishlist) Remove(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return ErrUserRequired
	}
	docs, err := w.find(ctx, userID, productID)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		err := w.store.Delete(ctx, models.CollectionWishlist, userID, doc.ID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return remoteError("failed to remove item from wishlist", err, nil)
		}
	}
	return nil
}

func (w *Wishlist) List(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	docs, err := w.store.Find(ctx, models.CollectionWishlist, userID)
	if err != nil {
		return nil, remoteError("failed to load wishlist", err, nil)
	}
	items, err := store.DecodeAll[models.WishlistItem](docs)
	if err != nil {
		return nil, decodeError("wishlist item", err)
	}
	return items, nil
}

// MoveToCart adds the saved product to the cart with quantity 1 and then
// drops it from the wishlist. A product already in the cart is still
// removed from the wishlist.
func (w *Wishlist) MoveToCart(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return ErrUserRequired
	}
	docs, err := w.find(ctx, userID, productID)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return ErrWishlistItemNotFound
	}
	var saved models.WishlistItem
	if err := store.Decode(docs[0], &saved); err != nil {
		return decodeError("wishlist item", err)
	}

	product := models.Product{
		ID:            saved.ProductID,
		Name:          saved.Name,
		Price:         saved.Price,
		DiscountPrice: saved.DiscountPrice,
		Image:         saved.Image,
	}
	if _, err := w.cart.AddItem(ctx, userID, product, 1); err != nil && !errors.Is(err, ErrAlreadyInCart) {
		return err
	}
	if err := w.Remove(ctx, userID, productID); err != nil {
		return err
	}
	utils.LogInfo("Product %s moved from wishlist to cart for user ID: %s", productID, userID)
	return nil
}

// MoveFromCart saves the cart line item to the wishlist and then removes it
// from the cart.
func (w *Wishlist) MoveFromCart(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return ErrUserRequired
	}
	line, err := w.cart.find(ctx, userID, productID)
	if err != nil {
		return err
	}
	if line == nil {
		return ErrCartItemNotFound
	}
	var item models.CartLineItem
	if err := store.Decode(*line, &item); err != nil {
		return decodeError("cart item", err)
	}

	product := models.Product{
		ID:            item.ProductID,
		Name:          item.Name,
		Price:         item.Price,
		DiscountPrice: item.DiscountPrice,
		Image:         item.Image,
	}
	if _, err := w.Add(ctx, userID, product); err != nil && !errors.Is(err, ErrAlreadyInWishlist) {
		return err
	}
	if err := w.cart.RemoveItem(ctx, userID, productID); err != nil {
		return err
	}
	utils.LogInfo("Product %s moved from cart to wishlist for user ID: %s", productID, userID)
	return nil
}
