package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/store"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/sirupsen/logrus"
)

// Actor is who asks for a status change.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorAdmin    Actor = "admin"
)

type orderNotice struct {
	title   string
	message string // formatted with the order id
}

type orderTransition struct {
	actor      Actor
	from       []models.OrderStatus
	stampField string
	reason     string // field that stores the customer's reason
	notice     *orderNotice
}

// orderTransitions is keyed by target status.
var orderTransitions = map[models.OrderStatus]orderTransition{
	models.OrderStatusCancelRequested: {
		actor:      ActorCustomer,
		from:       []models.OrderStatus{models.OrderStatusPlaced},
		stampField: "cancel_requested_at",
		reason:     "cancel_reason",
	},
	models.OrderStatusReturnRequested: {
		actor:      ActorCustomer,
		from:       []models.OrderStatus{models.OrderStatusDelivered},
		stampField: "return_requested_at",
		reason:     "return_reason",
	},
	models.OrderStatusShipped: {
		actor:      ActorAdmin,
		from:       []models.OrderStatus{models.OrderStatusPlaced, models.OrderStatusCancelRejected},
		stampField: "shipped_at",
	},
	models.OrderStatusDelivered: {
		actor:      ActorAdmin,
		from:       []models.OrderStatus{models.OrderStatusPlaced, models.OrderStatusShipped, models.OrderStatusCancelRejected},
		stampField: "delivered_at",
	},
	models.OrderStatusCancelled: {
		actor:      ActorAdmin,
		from:       []models.OrderStatus{models.OrderStatusCancelRequested},
		stampField: "cancelled_at",
		notice:     &orderNotice{"Order Cancelled", "Your order %s has been cancelled."},
	},
	models.OrderStatusCancelRejected: {
		actor:      ActorAdmin,
		from:       []models.OrderStatus{models.OrderStatusCancelRequested},
		stampField: "cancel_rejected_at",
		notice:     &orderNotice{"Cancel Rejected", "Your cancellation request for order %s was rejected."},
	},
	models.OrderStatusReturnApproved: {
		actor:      ActorAdmin,
		from:       []models.OrderStatus{models.OrderStatusReturnRequested},
		stampField: "return_approved_at",
		notice:     &orderNotice{"Return Approved", "Your return request for order %s has been approved."},
	},
	models.OrderStatusReturnRejected: {
		actor:      ActorAdmin,
		from:       []models.OrderStatus{models.OrderStatusReturnRequested},
		stampField: "return_rejected_at",
		notice:     &orderNotice{"Return Rejected", "Your return request for order %s was rejected."},
	},
}

// CanTransition reports whether actor may move an order from one status to
// another.
func CanTransition(actor Actor, from, to models.OrderStatus) bool {
	t, ok := orderTransitions[to]
	if !ok || t.actor != actor {
		return false
	}
	for _, s := range t.from {
		if s == from {
			return true
		}
	}
	return false
}

// NextStatuses lists the targets actor may choose from status, in the order
// of models.OrderStatuses.
func NextStatuses(actor Actor, from models.OrderStatus) []models.OrderStatus {
	var next []models.OrderStatus
	for _, to := range models.OrderStatuses {
		if CanTransition(actor, from, to) {
			next = append(next, to)
		}
	}
	return next
}

// OrderLifecycle moves orders through the status table. Every write is
// guarded by the status it was validated against, so two concurrent
// changes cannot both succeed.
type OrderLifecycle struct {
	store    store.Store
	notifier Notifier
	now      func() time.Time
}

func NewOrderLifecycle(st store.Store, notifier Notifier) *OrderLifecycle {
	return &OrderLifecycle{store: st, notifier: notifier, now: time.Now}
}

// RequestCancel asks for cancellation of a Placed order.
func (lc *OrderLifecycle) RequestCancel(ctx context.Context, userID, orderID, reason string) (*models.Order, error) {
	return lc.customerRequest(ctx, userID, orderID, models.OrderStatusCancelRequested, reason)
}

// RequestReturn asks for a return of a Delivered order.
func (lc *OrderLifecycle) RequestReturn(ctx context.Context, userID, orderID, reason string) (*models.Order, error) {
	return lc.customerRequest(ctx, userID, orderID, models.OrderStatusReturnRequested, reason)
}

func (lc *OrderLifecycle) customerRequest(ctx context.Context, userID, orderID string, to models.OrderStatus, reason string) (*models.Order, error) {
	if userID == "" || userID == store.AllOwners {
		return nil, ErrUserRequired
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}
	if !models.IsActionReason(reason) {
		return nil, ErrInvalidReason
	}
	return lc.transition(ctx, userID, orderID, ActorCustomer, to, reason)
}

// UpdateStatus applies an admin decision to any user's order.
func (lc *OrderLifecycle) UpdateStatus(ctx context.Context, orderID string, to models.OrderStatus) (*models.Order, error) {
	return lc.transition(ctx, store.AllOwners, orderID, ActorAdmin, to, "")
}

func (lc *OrderLifecycle) transition(ctx context.Context, owner, orderID string, actor Actor, to models.OrderStatus, reason string) (*models.Order, error) {
	rule, ok := orderTransitions[to]
	if !ok || rule.actor != actor {
		return nil, utils.InvalidTransitionError(
			fmt.Sprintf("%s cannot set status %q", actor, to), ErrInvalidTransition)
	}

	doc, err := lc.store.Get(ctx, models.CollectionOrders, owner, orderID)
	if err != nil {
		return nil, remoteError("failed to load order", err, ErrOrderNotFound)
	}
	var order models.Order
	if err := store.Decode(*doc, &order); err != nil {
		return nil, decodeError("order", err)
	}
	stored := string(order.Status)
	from, err := models.ParseOrderStatus(stored)
	if err != nil {
		utils.LogError("Order %s has unrecognized status %q", orderID, stored)
		return nil, utils.DataError(fmt.Sprintf("order %s has unrecognized status %q", orderID, stored), ErrUnknownStatus)
	}
	if !CanTransition(actor, from, to) {
		utils.LogEvent("invalid_transition", logrus.Fields{"order_id": orderID, "from": from, "to": to, "actor": actor})
		return nil, utils.InvalidTransitionError(
			fmt.Sprintf("cannot change order from %q to %q", from, to), ErrInvalidTransition)
	}

	now := lc.now()
	fields := store.Fields{"status": string(to), rule.stampField: now}
	if rule.reason != "" {
		fields[rule.reason] = reason
	}
	err = lc.store.Update(ctx, models.CollectionOrders, owner, orderID, fields, store.Eq("status", stored))
	if errors.Is(err, store.ErrConflict) {
		return nil, utils.InvalidTransitionError("order status changed concurrently", ErrInvalidTransition)
	}
	if err != nil {
		return nil, remoteError("failed to update order status", err, ErrOrderNotFound)
	}

	order.Status = to
	setOrderStamp(&order, to, now)
	switch to {
	case models.OrderStatusCancelRequested:
		order.CancelReason = reason
	case models.OrderStatusReturnRequested:
		order.ReturnReason = reason
	}
	utils.LogEvent("order_status_changed", logrus.Fields{"order_id": orderID, "from": from, "to": to, "actor": actor})

	if rule.notice != nil && lc.notifier != nil {
		notice := Notice{
			UserID:  order.UserID,
			Email:   order.Email,
			Title:   rule.notice.title,
			Message: fmt.Sprintf(rule.notice.message, order.ID),
		}
		if err := lc.notifier.Notify(ctx, notice); err != nil {
			// The status change stands; the notice is not retried.
			utils.LogError("Failed to notify user %s about order %s: %v", order.UserID, order.ID, err)
		}
	}
	return &order, nil
}

func setOrderStamp(order *models.Order, status models.OrderStatus, at time.Time) {
	t := at
	switch status {
	case models.OrderStatusShipped:
		order.ShippedAt = &t
	case models.OrderStatusDelivered:
		order.DeliveredAt = &t
	case models.OrderStatusCancelRequested:
		order.CancelRequestedAt = &t
	case models.OrderStatusCancelled:
		order.CancelledAt = &t
	case models.OrderStatusCancelRejected:
		order.CancelRejectedAt = &t
	case models.OrderStatusReturnRequested:
		order.ReturnRequestedAt = &t
	case models.OrderStatusReturnApproved:
		order.ReturnApprovedAt = &t
	case models.OrderStatusReturnRejected:
		order.ReturnRejectedAt = &t
	}
}
