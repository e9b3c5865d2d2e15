package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryDoc struct {
	seq int64
	key string
	doc Document
}

// Memory is an in-process Store used by tests and by single-node runs
// without a database.
type Memory struct {
	base

	mu          sync.RWMutex
	seq         int64
	collections map[string]map[string]*memoryDoc
}

// NewMemory returns an empty in-memory store.
func NewMemory(opts ...Option) *Memory {
	return &Memory{
		base:        newBase(opts),
		collections: make(map[string]map[string]*memoryDoc),
	}
}

func (m *Memory) Create(ctx context.Context, collection, ownerID string, fields Fields) (*Document, error) {
	return m.create(ctx, collection, ownerID, "", fields)
}

func (m *Memory) CreateUnique(ctx context.Context, collection, ownerID, key string, fields Fields) (*Document, error) {
	if key == "" {
		return nil, fmt.Errorf("store: empty key for %s", collection)
	}
	return m.create(ctx, collection, ownerID, key, fields)
}

func (m *Memory) create(ctx context.Context, collection, ownerID, key string, fields Fields) (*Document, error) {
	if _, err := m.scope(collection, ownerID, true); err != nil {
		return nil, err
	}
	body, err := normalizeFields(fields)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := m.now()
	m.mu.Lock()
	coll, ok := m.collections[collection]
	if !ok {
		coll = make(map[string]*memoryDoc)
		m.collections[collection] = coll
	}
	if key != "" {
		for _, entry := range coll {
			if entry.key == key && entry.doc.OwnerID == ownerID {
				m.mu.Unlock()
				return nil, ErrConflict
			}
		}
	}
	m.seq++
	doc := Document{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Fields:    body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	coll[doc.ID] = &memoryDoc{seq: m.seq, key: key, doc: doc}
	m.mu.Unlock()

	m.publish(collection, ownerID)
	out := copyDocument(doc)
	return &out, nil
}

// lookup must be called with m.mu held.
func (m *Memory) lookup(collection, scope, id string) (*memoryDoc, error) {
	entry, ok := m.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	if scope != "" && entry.doc.OwnerID != scope {
		return nil, ErrNotFound
	}
	return entry, nil
}

func (m *Memory) Get(ctx context.Context, collection, ownerID, id string) (*Document, error) {
	scope, err := m.scope(collection, ownerID, false)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, err := m.lookup(collection, scope, id)
	if err != nil {
		return nil, err
	}
	out := copyDocument(entry.doc)
	return &out, nil
}

func (m *Memory) Find(ctx context.Context, collection, ownerID string, filters ...Filter) ([]Document, error) {
	scope, err := m.scope(collection, ownerID, false)
	if err != nil {
		return nil, err
	}
	return m.find(ctx, collection, scope, filters)
}

func (m *Memory) find(ctx context.Context, collection, scope string, filters []Filter) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []*memoryDoc
	for _, entry := range m.collections[collection] {
		if scope != "" && entry.doc.OwnerID != scope {
			continue
		}
		ok, err := matches(entry.doc.Fields, filters)
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	docs := make([]Document, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, copyDocument(entry.doc))
	}
	return docs, nil
}

func (m *Memory) Update(ctx context.Context, collection, ownerID, id string, fields Fields, guards ...Filter) error {
	scope, err := m.scope(collection, ownerID, false)
	if err != nil {
		return err
	}
	patch, err := normalizeFields(fields)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	entry, err := m.lookup(collection, scope, id)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	ok, err := matches(entry.doc.Fields, guards)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	if !ok {
		m.mu.Unlock()
		return ErrConflict
	}
	merged := make(Fields, len(entry.doc.Fields)+len(patch))
	for k, v := range entry.doc.Fields {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	entry.doc.Fields = merged
	entry.doc.UpdatedAt = m.now()
	owner := entry.doc.OwnerID
	m.mu.Unlock()

	m.publish(collection, owner)
	return nil
}

func (m *Memory) Increment(ctx context.Context, collection, ownerID, id, field string, delta, floor int) (int, error) {
	scope, err := m.scope(collection, ownerID, false)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	entry, err := m.lookup(collection, scope, id)
	if err != nil {
		m.mu.Unlock()
		return 0, err
	}
	current := 0
	if raw, ok := entry.doc.Fields[field]; ok && raw != nil {
		n, ok := raw.(float64)
		if !ok {
			m.mu.Unlock()
			return 0, fmt.Errorf("store: field %s of %s/%s is not numeric", field, collection, id)
		}
		current = int(n)
	}
	next := current + delta
	if next < floor {
		next = floor
	}
	merged := make(Fields, len(entry.doc.Fields)+1)
	for k, v := range entry.doc.Fields {
		merged[k] = v
	}
	merged[field] = float64(next)
	entry.doc.Fields = merged
	entry.doc.UpdatedAt = m.now()
	owner := entry.doc.OwnerID
	m.mu.Unlock()

	m.publish(collection, owner)
	return next, nil
}

func (m *Memory) Delete(ctx context.Context, collection, ownerID, id string) error {
	scope, err := m.scope(collection, ownerID, false)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	entry, err := m.lookup(collection, scope, id)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	delete(m.collections[collection], id)
	owner := entry.doc.OwnerID
	m.mu.Unlock()

	m.publish(collection, owner)
	return nil
}

func (m *Memory) Subscribe(ctx context.Context, collection, ownerID string, filters ...Filter) (*Subscription, error) {
	scope, err := m.scope(collection, ownerID, false)
	if err != nil {
		return nil, err
	}
	return m.subscribe(ctx, collection, scope, func(ctx context.Context) ([]Document, error) {
		return m.find(ctx, collection, scope, filters)
	}), nil
}

// copyDocument detaches the returned document from the stored one. Field
// values are JSON-shaped, so only maps and slices need copying.
func copyDocument(doc Document) Document {
	doc.Fields = copyValue(map[string]interface{}(doc.Fields)).(map[string]interface{})
	return doc
}

func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = copyValue(val)
		}
		return out
	case Fields:
		return copyValue(map[string]interface{}(t))
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = copyValue(val)
		}
		return out
	}
	return v
}
