package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// documentRecord is the row layout backing every collection: one jsonb body
// per document, keyed by collection and partitioned by owner. Seq records
// insertion order. UniqueKey is null for documents created without a key.
type documentRecord struct {
	ID         string  `gorm:"primaryKey;size:36"`
	Seq        int64   `gorm:"type:bigserial;autoIncrement;not null;index"`
	Collection string  `gorm:"size:64;not null;index:idx_documents_scope,priority:1;uniqueIndex:idx_documents_key,priority:1"`
	OwnerID    string  `gorm:"size:128;index:idx_documents_scope,priority:2;uniqueIndex:idx_documents_key,priority:2"`
	UniqueKey  *string `gorm:"size:255;uniqueIndex:idx_documents_key,priority:3"`
	Body       string  `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (documentRecord) TableName() string {
	return "documents"
}

func (r documentRecord) document() (Document, error) {
	var fields Fields
	if err := json.Unmarshal([]byte(r.Body), &fields); err != nil {
		return Document{}, fmt.Errorf("store: corrupt body for %s/%s: %w", r.Collection, r.ID, err)
	}
	if fields == nil {
		fields = Fields{}
	}
	return Document{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Fields:    fields,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

// Gorm stores documents in a postgres jsonb table through gorm. Change
// notifications are published in-process, so subscribers only observe
// writes made through the same Gorm value.
type Gorm struct {
	base
	db *gorm.DB
}

// NewGorm wraps an open gorm connection.
func NewGorm(db *gorm.DB, opts ...Option) *Gorm {
	return &Gorm{base: newBase(opts), db: db}
}

// Migrate creates or updates the documents table.
func (g *Gorm) Migrate() error {
	return g.db.AutoMigrate(&documentRecord{})
}

func (g *Gorm) scoped(ctx context.Context, collection, scope string) *gorm.DB {
	q := g.db.WithContext(ctx).Model(&documentRecord{}).Where("collection = ?", collection)
	if scope != "" {
		q = q.Where("owner_id = ?", scope)
	}
	return q
}

func withFilters(q *gorm.DB, filters []Filter) (*gorm.DB, error) {
	for _, f := range filters {
		raw, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("store: filter %s: %w", f.Field, err)
		}
		q = q.Where("body -> ? = ?::jsonb", f.Field, string(raw))
	}
	return q, nil
}

func (g *Gorm) Create(ctx context.Context, collection, ownerID string, fields Fields) (*Document, error) {
	return g.create(ctx, collection, ownerID, nil, fields)
}

// CreateUnique relies on the idx_documents_key unique index; a taken key
// inserts nothing.
func (g *Gorm) CreateUnique(ctx context.Context, collection, ownerID, key string, fields Fields) (*Document, error) {
	if key == "" {
		return nil, fmt.Errorf("store: empty key for %s", collection)
	}
	return g.create(ctx, collection, ownerID, &key, fields)
}

func (g *Gorm) create(ctx context.Context, collection, ownerID string, key *string, fields Fields) (*Document, error) {
	if _, err := g.scope(collection, ownerID, true); err != nil {
		return nil, err
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("store: fields are not JSON encodable: %w", err)
	}
	now := g.now()
	rec := documentRecord{
		ID:         uuid.NewString(),
		Collection: collection,
		OwnerID:    ownerID,
		UniqueKey:  key,
		Body:       string(body),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	q := g.db.WithContext(ctx)
	if key != nil {
		q = q.Clauses(clause.OnConflict{DoNothing: true})
	}
	res := q.Create(&rec)
	if res.Error != nil {
		return nil, fmt.Errorf("store: create in %s: %w", collection, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrConflict
	}
	g.publish(collection, ownerID)
	doc, err := rec.document()
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (g *Gorm) Get(ctx context.Context, collection, ownerID, id string) (*Document, error) {
	scope, err := g.scope(collection, ownerID, false)
	if err != nil {
		return nil, err
	}
	var rec documentRecord
	err = g.scoped(ctx, collection, scope).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %s/%s: %w", collection, id, err)
	}
	doc, err := rec.document()
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (g *Gorm) Find(ctx context.Context, collection, ownerID string, filters ...Filter) ([]Document, error) {
	scope, err := g.scope(collection, ownerID, false)
	if err != nil {
		return nil, err
	}
	return g.find(ctx, collection, scope, filters)
}

func (g *Gorm) find(ctx context.Context, collection, scope string, filters []Filter) ([]Document, error) {
	q, err := withFilters(g.scoped(ctx, collection, scope), filters)
	if err != nil {
		return nil, err
	}
	var recs []documentRecord
	if err := q.Order("seq").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("store: find in %s: %w", collection, err)
	}
	docs := make([]Document, 0, len(recs))
	for _, rec := range recs {
		doc, err := rec.document()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (g *Gorm) Update(ctx context.Context, collection, ownerID, id string, fields Fields, guards ...Filter) error {
	scope, err := g.scope(collection, ownerID, false)
	if err != nil {
		return err
	}
	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("store: fields are not JSON encodable: %w", err)
	}
	q, err := withFilters(g.scoped(ctx, collection, scope).Where("id = ?", id), guards)
	if err != nil {
		return err
	}
	res := q.Updates(map[string]interface{}{
		"body":       gorm.Expr("body || ?::jsonb", string(patch)),
		"updated_at": g.now(),
	})
	if res.Error != nil {
		return fmt.Errorf("store: update %s/%s: %w", collection, id, res.Error)
	}
	if res.RowsAffected == 0 {
		// Either the document is gone or a guard did not match.
		if _, err := g.Get(ctx, collection, ownerID, id); err != nil {
			return err
		}
		return ErrConflict
	}
	owner, err := g.owner(ctx, id, scope)
	if err != nil {
		return err
	}
	g.publish(collection, owner)
	return nil
}

func (g *Gorm) owner(ctx context.Context, id, scope string) (string, error) {
	if scope != "" {
		return scope, nil
	}
	var owners []string
	err := g.db.WithContext(ctx).Model(&documentRecord{}).Where("id = ?", id).Pluck("owner_id", &owners).Error
	if err != nil {
		return "", fmt.Errorf("store: owner of %s: %w", id, err)
	}
	if len(owners) == 0 {
		return "", nil
	}
	return owners[0], nil
}

func (g *Gorm) Increment(ctx context.Context, collection, ownerID, id, field string, delta, floor int) (int, error) {
	scope, err := g.scope(collection, ownerID, false)
	if err != nil {
		return 0, err
	}
	sql := `UPDATE documents
		SET body = jsonb_set(body, ARRAY[?]::text[], to_jsonb(GREATEST(COALESCE((body->>?)::numeric, 0) + ?, ?))),
		    updated_at = ?
		WHERE collection = ? AND id = ?`
	args := []interface{}{field, field, delta, floor, g.now(), collection, id}
	if scope != "" {
		sql += " AND owner_id = ?"
		args = append(args, scope)
	}
	sql += " RETURNING owner_id, (body->>?)::numeric AS value"
	args = append(args, field)

	var rows []struct {
		OwnerID string
		Value   float64
	}
	if err := g.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return 0, fmt.Errorf("store: increment %s/%s.%s: %w", collection, id, field, err)
	}
	if len(rows) == 0 {
		return 0, ErrNotFound
	}
	g.publish(collection, rows[0].OwnerID)
	return int(rows[0].Value), nil
}

func (g *Gorm) Delete(ctx context.Context, collection, ownerID, id string) error {
	scope, err := g.scope(collection, ownerID, false)
	if err != nil {
		return err
	}
	owner, err := g.owner(ctx, id, scope)
	if err != nil {
		return err
	}
	res := g.scoped(ctx, collection, scope).Where("id = ?", id).Delete(&documentRecord{})
	if res.Error != nil {
		return fmt.Errorf("store: delete %s/%s: %w", collection, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	g.publish(collection, owner)
	return nil
}

func (g *Gorm) Subscribe(ctx context.Context, collection, ownerID string, filters ...Filter) (*Subscription, error) {
	scope, err := g.scope(collection, ownerID, false)
	if err != nil {
		return nil, err
	}
	return g.subscribe(ctx, collection, scope, func(ctx context.Context) ([]Document, error) {
		return g.find(ctx, collection, scope, filters)
	}), nil
}
