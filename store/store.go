// Package store is the document store the commerce core persists to. It
// offers create, keyed create, point read, equality query, merge update, atomic increment,
// delete and change subscriptions over schemaless collections.
//
// Collections registered as partitioned hold per-user documents: every call
// against them must name the owning user, or AllOwners for admin-wide reads
// and updates. The store rejects unscoped access with ErrOwnerRequired.
package store

import (
	"context"
	"errors"
	"time"
)

// AllOwners scopes a read or update on a partitioned collection to every
// user. It is never valid for Create.
const AllOwners = "*"

var (
	ErrNotFound      = errors.New("store: document not found")
	ErrConflict      = errors.New("store: precondition failed")
	ErrOwnerRequired = errors.New("store: owner id required for partitioned collection")
)

// Fields is the schemaless body of a document.
type Fields map[string]interface{}

// Document is one stored record.
type Document struct {
	ID        string
	OwnerID   string
	Fields    Fields
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter is an equality condition on a top-level field.
type Filter struct {
	Field string
	Value interface{}
}

// Eq builds an equality filter.
func Eq(field string, value interface{}) Filter {
	return Filter{Field: field, Value: value}
}

// Store is implemented by Memory and Gorm.
type Store interface {
	Create(ctx context.Context, collection, ownerID string, fields Fields) (*Document, error)
	// CreateUnique creates a document under key, which is unique within the
	// owner's scope of the collection. A taken key fails with ErrConflict;
	// the key is released when its document is deleted.
	CreateUnique(ctx context.Context, collection, ownerID, key string, fields Fields) (*Document, error)
	Get(ctx context.Context, collection, ownerID, id string) (*Document, error)
	Find(ctx context.Context, collection, ownerID string, filters ...Filter) ([]Document, error)
	// Update merges fields into the document. When guards are given the
	// update only applies if every guard matches, otherwise ErrConflict.
	Update(ctx context.Context, collection, ownerID, id string, fields Fields, guards ...Filter) error
	// Increment adds delta to a numeric field without a read-modify-write
	// round trip, clamping the result at floor. It returns the new value.
	Increment(ctx context.Context, collection, ownerID, id, field string, delta, floor int) (int, error)
	Delete(ctx context.Context, collection, ownerID, id string) error
	// Subscribe delivers the current result set of the query and a fresh one
	// after every change to the collection within the owner's scope.
	Subscribe(ctx context.Context, collection, ownerID string, filters ...Filter) (*Subscription, error)
}

// Option configures a store implementation.
type Option func(*base)

// WithPartitioned marks collections as per-user.
func WithPartitioned(collections ...string) Option {
	return func(b *base) {
		for _, c := range collections {
			b.partitioned[c] = true
		}
	}
}

// WithClock overrides the time source used for document timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

// base carries the behaviour shared by every implementation.
type base struct {
	partitioned map[string]bool
	broker      *broker
	now         func() time.Time
}

func newBase(opts []Option) base {
	b := base{
		partitioned: make(map[string]bool),
		broker:      newBroker(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// scope resolves the owner filter for a call. An empty result means the
// call is not owner filtered.
func (b *base) scope(collection, ownerID string, creating bool) (string, error) {
	if !b.partitioned[collection] {
		return "", nil
	}
	switch ownerID {
	case "":
		return "", ErrOwnerRequired
	case AllOwners:
		if creating {
			return "", ErrOwnerRequired
		}
		return "", nil
	}
	return ownerID, nil
}

func (b *base) publish(collection, ownerID string) {
	b.broker.publish(change{collection: collection, ownerID: ownerID})
}
