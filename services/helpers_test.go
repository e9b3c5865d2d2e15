package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/store"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("connection refused")

// testClock advances one second per reading so creation order is visible
// in timestamps.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

// failingStore fails selected operations on selected collections.
type failingStore struct {
	store.Store

	mu     sync.Mutex
	failOn map[string]bool
}

func newFailingStore(inner store.Store) *failingStore {
	return &failingStore{Store: inner, failOn: make(map[string]bool)}
}

func (f *failingStore) fail(op, collection string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOn[op+":"+collection] = true
}

func (f *failingStore) check(op, collection string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[op+":"+collection] {
		return errStoreDown
	}
	return nil
}

func (f *failingStore) Create(ctx context.Context, collection, ownerID string, fields store.Fields) (*store.Document, error) {
	if err := f.check("create", collection); err != nil {
		return nil, err
	}
	return f.Store.Create(ctx, collection, ownerID, fields)
}

func (f *failingStore) CreateUnique(ctx context.Context, collection, ownerID, key string, fields store.Fields) (*store.Document, error) {
	if err := f.check("create", collection); err != nil {
		return nil, err
	}
	return f.Store.CreateUnique(ctx, collection, ownerID, key, fields)
}

func (f *failingStore) Find(ctx context.Context, collection, ownerID string, filters ...store.Filter) ([]store.Document, error) {
	if err := f.check("find", collection); err != nil {
		return nil, err
	}
	return f.Store.Find(ctx, collection, ownerID, filters...)
}

func (f *failingStore) Update(ctx context.Context, collection, ownerID, id string, fields store.Fields, guards ...store.Filter) error {
	if err := f.check("update", collection); err != nil {
		return err
	}
	return f.Store.Update(ctx, collection, ownerID, id, fields, guards...)
}

func (f *failingStore) Delete(ctx context.Context, collection, ownerID, id string) error {
	if err := f.check("delete", collection); err != nil {
		return err
	}
	return f.Store.Delete(ctx, collection, ownerID, id)
}

// recordingNotifier captures notices and can be told to fail.
type recordingNotifier struct {
	mu      sync.Mutex
	notices []Notice
	err     error
}

func (r *recordingNotifier) Notify(_ context.Context, n Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.notices = append(r.notices, n)
	return nil
}

func (r *recordingNotifier) all() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

type testEnv struct {
	ctx      context.Context
	memory   *store.Memory
	store    *failingStore
	svc      *Services
	clock    *testClock
	notifier *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := newTestClock()
	memory := store.NewMemory(
		store.WithPartitioned(models.PartitionedCollections...),
		store.WithClock(clock.Now),
	)
	fs := newFailingStore(memory)
	svc := New(fs, nil)

	notifier := &recordingNotifier{}
	svc.Lifecycle.notifier = notifier

	svc.Cart.now = clock.Now
	svc.Wishlist.now = clock.Now
	svc.CouponAdm.now = clock.Now
	svc.Compiler.now = clock.Now
	svc.Lifecycle.now = clock.Now
	svc.Inbox.now = clock.Now
	svc.Payments.now = clock.Now
	svc.Addresses.now = clock.Now
	svc.Taxonomy.now = clock.Now

	return &testEnv{
		ctx:      context.Background(),
		memory:   memory,
		store:    fs,
		svc:      svc,
		clock:    clock,
		notifier: notifier,
	}
}

func price(v float64) *float64 { return &v }

func (e *testEnv) product(t *testing.T, name string, base float64, discount *float64) models.Product {
	t.Helper()
	p, err := e.svc.Catalog.Create(e.ctx, models.Product{Name: name, Price: base, DiscountPrice: discount, Category: "General"})
	require.NoError(t, err)
	return *p
}

func (e *testEnv) coupon(t *testing.T, code string, percent float64, active bool) models.Coupon {
	t.Helper()
	c, err := e.svc.CouponAdm.Create(e.ctx, code, percent, active)
	require.NoError(t, err)
	return *c
}

var testBilling = models.BillingInfo{Name: "Asha Rao", Phone: "9876543210", Address: "12 Lake Road, Pune"}

// placedOrder writes an order for userID through the compiler and returns it.
func (e *testEnv) placedOrder(t *testing.T, userID string) models.Order {
	t.Helper()
	p := e.product(t, "Desk Lamp", 500, nil)
	order, err := e.svc.Compiler.PlaceOrder(e.ctx, PlaceOrderInput{
		UserID:        userID,
		Email:         userID + "@example.com",
		Billing:       testBilling,
		PaymentMethod: "COD",
		Items:         []models.OrderItem{models.NewOrderItem(p, 1)},
	})
	require.NoError(t, err)
	return *order
}

// forceStatus rewrites the stored status without going through the table.
func (e *testEnv) forceStatus(t *testing.T, order models.Order, status string) {
	t.Helper()
	require.NoError(t, e.memory.Update(e.ctx, models.CollectionOrders, order.UserID, order.ID, store.Fields{"status": status}))
}
