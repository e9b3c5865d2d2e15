package models

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus is the closed set of order states.
type OrderStatus string

// Order status constants
const (
	OrderStatusPlaced          OrderStatus = "Placed"
	OrderStatusShipped         OrderStatus = "Shipped"
	OrderStatusDelivered       OrderStatus = "Delivered"
	OrderStatusCancelRequested OrderStatus = "Cancel Requested"
	OrderStatusCancelled       OrderStatus = "Cancelled"
	OrderStatusCancelRejected  OrderStatus = "Cancel Rejected"
	OrderStatusReturnRequested OrderStatus = "Return Requested"
	OrderStatusReturnApproved  OrderStatus = "Return Approved"
	OrderStatusReturnRejected  OrderStatus = "Return Rejected"
)

// OrderStatuses lists every legal status.
var OrderStatuses = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelRequested,
	OrderStatusCancelled,
	OrderStatusCancelRejected,
	OrderStatusReturnRequested,
	OrderStatusReturnApproved,
	OrderStatusReturnRejected,
}

func statusKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", " ", "-", " ").Replace(s)
}

// ParseOrderStatus accepts the display form ("Cancel Requested") as well as
// the upper snake form ("CANCEL_REQUESTED") used by the admin app.
func ParseOrderStatus(s string) (OrderStatus, error) {
	key := statusKey(s)
	for _, status := range OrderStatuses {
		if statusKey(string(status)) == key {
			return status, nil
		}
	}
	return "", fmt.Errorf("unrecognized order status %q", s)
}

// PaymentMethod is the payment label recorded on an order.
type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "COD"
	PaymentOnline PaymentMethod = "ONLINE"
)

// ParsePaymentMethod normalizes "cod"/"online" in any case.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case PaymentCOD:
		return PaymentCOD, nil
	case PaymentOnline:
		return PaymentOnline, nil
	}
	return "", fmt.Errorf("unsupported payment method %q", s)
}

// ActionReasons is the fixed set of reasons a customer may give when asking
// to cancel or return an order.
var ActionReasons = []string{
	"Ordered by mistake",
	"Found cheaper elsewhere",
	"Delivery taking too long",
	"Changed my mind",
	"Other",
}

// IsActionReason reports whether reason is one of ActionReasons.
func IsActionReason(reason string) bool {
	for _, r := range ActionReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// Order source labels.
const (
	OrderSourceCart   = "cart"
	OrderSourceBuyNow = "buy_now"
)

// Order is written once at checkout. Only Status, the per-transition
// timestamps and the reason fields change afterwards.
type Order struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	Email           string        `json:"email,omitempty"`
	CustomerName    string        `json:"name"`
	Phone           string        `json:"phone"`
	Address         string        `json:"address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	Source          string        `json:"source"`
	Items           []OrderItem   `json:"items"`
	Subtotal        float64       `json:"subtotal"`
	DiscountPercent float64       `json:"discount_percent"`
	TotalAmount     float64       `json:"total_amount"`
	CouponApplied   bool          `json:"coupon_applied"`
	CouponCode      string        `json:"coupon_code,omitempty"`
	Status          OrderStatus   `json:"status"`
	CancelReason    string        `json:"cancel_reason,omitempty"`
	ReturnReason    string        `json:"return_reason,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`

	ShippedAt         *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	CancelRequestedAt *time.Time `json:"cancel_requested_at,omitempty"`
	CancelledAt       *time.Time `json:"cancelled_at,omitempty"`
	CancelRejectedAt  *time.Time `json:"cancel_rejected_at,omitempty"`
	ReturnRequestedAt *time.Time `json:"return_requested_at,omitempty"`
	ReturnApprovedAt  *time.Time `json:"return_approved_at,omitempty"`
	ReturnRejectedAt  *time.Time `json:"return_rejected_at,omitempty"`
}

// ItemCount is the total number of units in the order.
func (o Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// OrderItem is an immutable product snapshot inside an order.
type OrderItem struct {
	ProductID     string   `json:"product_id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discount_price,omitempty"`
	Image         string   `json:"image"`
	Quantity      int      `json:"quantity"`
}

// EffectivePrice returns the unit price charged for this item.
func (i OrderItem) EffectivePrice() float64 {
	return EffectivePrice(i.Price, i.DiscountPrice)
}

// LineTotal is the effective price times quantity.
func (i OrderItem) LineTotal() float64 {
	return i.EffectivePrice() * float64(i.Quantity)
}

// NewOrderItem snapshots product at quantity.
func NewOrderItem(product Product, quantity int) OrderItem {
	return OrderItem{
		ProductID:     product.ID,
		Name:          product.Name,
		Price:         product.Price,
		DiscountPrice: product.DiscountPrice,
		Image:         product.Image,
		Quantity:      quantity,
	}
}
