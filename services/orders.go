package services

import (
	"context"
	"sort"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/store"
)

// Orders is the read side of the orders collection.
type Orders struct {
	store store.Store
}

func NewOrders(st store.Store) *Orders {
	return &Orders{store: st}
}

func newestFirst(orders []models.Order) []models.Order {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

func (o *Orders) list(ctx context.Context, owner string, filters ...store.Filter) ([]models.Order, error) {
	docs, err := o.store.Find(ctx, models.CollectionOrders, owner, filters...)
	if err != nil {
		return nil, remoteError("failed to load orders", err, nil)
	}
	orders, err := store.DecodeAll[models.Order](docs)
	if err != nil {
		return nil, decodeError("order", err)
	}
	return newestFirst(orders), nil
}

// ListForUser returns the user's orders, newest first.
func (o *Orders) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	return o.list(ctx, userID)
}

// ListAll returns every user's orders, newest first, optionally narrowed to
// one status.
func (o *Orders) ListAll(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	var filters []store.Filter
	if status != "" {
		filters = append(filters, store.Eq("status", string(status)))
	}
	return o.list(ctx, store.AllOwners, filters...)
}

// Get loads one order. Pass store.AllOwners as userID for admin reads.
func (o *Orders) Get(ctx context.Context, userID, orderID string) (*models.Order, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	doc, err := o.store.Get(ctx, models.CollectionOrders, userID, orderID)
	if err != nil {
		return nil, remoteError("failed to load order", err, ErrOrderNotFound)
	}
	var order models.Order
	if err := store.Decode(*doc, &order); err != nil {
		return nil, decodeError("order", err)
	}
	return &order, nil
}

// WatchUser streams the user's orders, newest first.
func (o *Orders) WatchUser(ctx context.Context, userID string) (*Feed[models.Order], error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	return o.watch(ctx, userID)
}

// WatchAll streams every order for the admin view.
func (o *Orders) WatchAll(ctx context.Context, status models.OrderStatus) (*Feed[models.Order], error) {
	var filters []store.Filter
	if status != "" {
		filters = append(filters, store.Eq("status", string(status)))
	}
	return o.watch(ctx, store.AllOwners, filters...)
}

func (o *Orders) watch(ctx context.Context, owner string, filters ...store.Filter) (*Feed[models.Order], error) {
	sub, err := o.store.Subscribe(ctx, models.CollectionOrders, owner, filters...)
	if err != nil {
		return nil, remoteError("failed to watch orders", err, nil)
	}
	return newFeed[models.Order](sub, "order", newestFirst), nil
}
