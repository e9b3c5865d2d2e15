package services

import (
	"context"
	"errors"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/utils"
)

// CheckoutSession is the per-user state carried between checkout calls. It
// lives in the client session, not in the store, and belongs to UserID only.
type CheckoutSession struct {
	UserID          string            `json:"user_id"`
	CouponCode      string            `json:"coupon_code,omitempty"`
	DiscountPercent float64           `json:"discount_percent,omitempty"`
	BuyNow          *models.OrderItem `json:"buy_now,omitempty"`
}

func NewCheckoutSession(userID string) *CheckoutSession {
	return &CheckoutSession{UserID: userID}
}

// OwnedBy reports whether the session was started by userID.
func (s *CheckoutSession) OwnedBy(userID string) bool {
	return userID != "" && s.UserID == userID
}

// CouponApplied reports whether a coupon was already used in this session.
func (s *CheckoutSession) CouponApplied() bool {
	return s.CouponCode != ""
}

// CheckoutSummary is what the checkout screen shows before placing.
type CheckoutSummary struct {
	Source          string             `json:"source"`
	Items           []models.OrderItem `json:"items"`
	ItemCount       int                `json:"item_count"`
	Subtotal        float64            `json:"subtotal"`
	CouponCode      string             `json:"coupon_code,omitempty"`
	DiscountPercent float64            `json:"discount_percent"`
	Discount        float64            `json:"discount"`
	Total           float64            `json:"total"`
}

// Checkout drives the cart or buy-now item through coupon application into
// the order compiler.
type Checkout struct {
	catalog  *Catalog
	cart     *CartLedger
	coupons  *CouponValidator
	compiler *OrderCompiler
}

func NewCheckout(catalog *Catalog, cart *CartLedger, coupons *CouponValidator, compiler *OrderCompiler) *Checkout {
	return &Checkout{catalog: catalog, cart: cart, coupons: coupons, compiler: compiler}
}

// items resolves what is being bought: the buy-now item when one is set,
// otherwise the whole cart.
func (co *Checkout) items(ctx context.Context, userID string, sess *CheckoutSession) ([]models.OrderItem, bool, error) {
	if sess.BuyNow != nil {
		return []models.OrderItem{*sess.BuyNow}, false, nil
	}
	lines, err := co.cart.ListItems(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, line.OrderItem())
	}
	return items, true, nil
}

func (co *Checkout) Summary(ctx context.Context, userID string, sess *CheckoutSession) (*CheckoutSummary, error) {
	items, fromCart, err := co.items(ctx, userID, sess)
	if err != nil {
		return nil, err
	}
	summary := &CheckoutSummary{
		Source:          models.OrderSourceBuyNow,
		Items:           items,
		Subtotal:        Subtotal(items),
		CouponCode:      sess.CouponCode,
		DiscountPercent: sess.DiscountPercent,
	}
	if fromCart {
		summary.Source = models.OrderSourceCart
	}
	for _, item := range items {
		summary.ItemCount += item.Quantity
	}
	summary.Total = ApplyDiscount(summary.Subtotal, sess.DiscountPercent)
	summary.Discount = roundMoney(summary.Subtotal - summary.Total)
	return summary, nil
}

// ApplyCoupon validates code against the current subtotal and records it in
// the session. A session accepts one coupon only.
func (co *Checkout) ApplyCoupon(ctx context.Context, userID string, sess *CheckoutSession, code string) (*CheckoutSummary, error) {
	if sess.CouponApplied() {
		return nil, ErrCouponAlreadyApplied
	}
	summary, err := co.Summary(ctx, userID, sess)
	if err != nil {
		return nil, err
	}
	if len(summary.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	result, err := co.coupons.Apply(ctx, code, summary.Subtotal)
	if err != nil {
		return nil, err
	}
	sess.CouponCode = result.Code
	sess.DiscountPercent = result.DiscountPercent
	utils.LogInfo("Coupon %s applied for user ID: %s", result.Code, userID)
	return co.Summary(ctx, userID, sess)
}

func (co *Checkout) RemoveCoupon(sess *CheckoutSession) {
	sess.CouponCode = ""
	sess.DiscountPercent = 0
}

// BuyNow switches the session to a single product bought outside the cart.
func (co *Checkout) BuyNow(ctx context.Context, sess *CheckoutSession, productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	product, err := co.catalog.Get(ctx, productID)
	if err != nil {
		return err
	}
	item := models.NewOrderItem(*product, quantity)
	sess.BuyNow = &item
	return nil
}

func (co *Checkout) SetBuyNowQuantity(sess *CheckoutSession, quantity int) error {
	if sess.BuyNow == nil {
		return ErrEmptyOrder
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	sess.BuyNow.Quantity = quantity
	return nil
}

func (co *Checkout) ClearBuyNow(sess *CheckoutSession) {
	sess.BuyNow = nil
}

// PlaceOrder compiles the session into an order. An applied coupon is
// looked up again; one that is no longer active is dropped from the session
// and the order is refused with ErrCouponWithdrawn. On success the session
// is reset so the next checkout starts without a coupon.
func (co *Checkout) PlaceOrder(ctx context.Context, user models.User, sess *CheckoutSession, billing models.BillingInfo, paymentMethod string) (*models.Order, error) {
	if missing := billing.MissingFields(); len(missing) > 0 {
		return nil, ErrMissingBillingInfo
	}
	items, fromCart, err := co.items(ctx, user.ID, sess)
	if err != nil {
		return nil, err
	}
	if sess.CouponApplied() {
		// The coupon may have been deactivated since it was applied.
		result, err := co.coupons.Apply(ctx, sess.CouponCode, Subtotal(items))
		if errors.Is(err, ErrCouponNotFound) {
			utils.LogInfo("Coupon %s withdrawn before checkout for user ID: %s", sess.CouponCode, user.ID)
			co.RemoveCoupon(sess)
			return nil, ErrCouponWithdrawn
		}
		if err != nil {
			return nil, err
		}
		sess.DiscountPercent = result.DiscountPercent
	}
	order, err := co.compiler.PlaceOrder(ctx, PlaceOrderInput{
		UserID:          user.ID,
		Email:           user.Email,
		Billing:         billing,
		PaymentMethod:   paymentMethod,
		Items:           items,
		DiscountPercent: sess.DiscountPercent,
		CouponCode:      sess.CouponCode,
		FromCart:        fromCart,
	})
	if err != nil {
		return nil, err
	}
	*sess = CheckoutSession{UserID: user.ID}
	return order, nil
}
