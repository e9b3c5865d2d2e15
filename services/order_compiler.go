package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/store"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/sirupsen/logrus"
)

// PlaceOrderInput is everything needed to write one order.
type PlaceOrderInput struct {
	UserID          string
	Email           string
	Billing         models.BillingInfo
	PaymentMethod   string
	Items           []models.OrderItem
	DiscountPercent float64
	CouponCode      string
	// FromCart marks items that came from the user's cart; the cart is
	// cleared once the order is stored.
	FromCart bool
}

// OrderCompiler turns a validated item snapshot into an order record.
type OrderCompiler struct {
	store store.Store
	cart  *CartLedger
	now   func() time.Time
}

func NewOrderCompiler(st store.Store, cart *CartLedger) *OrderCompiler {
	return &OrderCompiler{store: st, cart: cart, now: time.Now}
}

func validateOrderInput(in PlaceOrderInput) (models.PaymentMethod, error) {
	if in.UserID == "" {
		return "", ErrUserRequired
	}
	if missing := in.Billing.MissingFields(); len(missing) > 0 {
		return "", utils.ValidationError(
			fmt.Sprintf("missing billing info: %s", strings.Join(missing, ", ")), ErrMissingBillingInfo)
	}
	method, err := models.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return "", utils.ValidationError(err.Error(), ErrInvalidPaymentMethod)
	}
	if len(in.Items) == 0 {
		return "", ErrEmptyOrder
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return "", ErrInvalidQuantity
		}
		if item.ProductID == "" {
			return "", ErrInvalidProduct
		}
	}
	if in.DiscountPercent < 0 || in.DiscountPercent > 100 {
		return "", ErrInvalidDiscount
	}
	return method, nil
}

// PlaceOrder validates the input, computes the total once and writes the
// order with status Placed. For cart orders the cart is cleared only after
// the order write succeeded, so a failed write leaves the cart untouched.
func (oc *OrderCompiler) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	method, err := validateOrderInput(in)
	if err != nil {
		utils.LogDebug("Order rejected for user ID: %s: %v", in.UserID, err)
		return nil, err
	}
	billing := in.Billing.Normalize()

	subtotal := Subtotal(in.Items)
	order := models.Order{
		UserID:          in.UserID,
		Email:           in.Email,
		CustomerName:    billing.Name,
		Phone:           billing.Phone,
		Address:         billing.Address,
		PaymentMethod:   method,
		Source:          models.OrderSourceBuyNow,
		Items:           in.Items,
		Subtotal:        subtotal,
		DiscountPercent: in.DiscountPercent,
		TotalAmount:     ApplyDiscount(subtotal, in.DiscountPercent),
		CouponApplied:   in.DiscountPercent > 0,
		Status:          models.OrderStatusPlaced,
		CreatedAt:       oc.now(),
	}
	if order.CouponApplied {
		order.CouponCode = models.NormalizeCouponCode(in.CouponCode)
	}
	if in.FromCart {
		order.Source = models.OrderSourceCart
	}

	fields, err := store.Encode(order)
	if err != nil {
		return nil, decodeError("order", err)
	}
	doc, err := oc.store.Create(ctx, models.CollectionOrders, in.UserID, fields)
	if err != nil {
		utils.LogError("Failed to place order for user ID: %s: %v", in.UserID, err)
		return nil, remoteError("failed to place order", err, nil)
	}
	order.ID = doc.ID

	utils.LogEvent("order_placed", logrus.Fields{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"items":    order.ItemCount(),
		"total":    order.TotalAmount,
		"coupon":   order.CouponCode,
		"source":   order.Source,
	})

	if in.FromCart {
		// Best effort once the order is stored.
		if err := oc.cart.Clear(ctx, in.UserID); err != nil {
			utils.LogError("Order %s placed but cart clear failed for user ID: %s: %v", order.ID, in.UserID, err)
		}
	}
	return &order, nil
}
