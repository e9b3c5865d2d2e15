package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/store"
	"github.com/Govind-619/ShopSphere/utils"
)

const (
	minTermLength = 2
	maxTermLength = 100
)

// Taxonomy maintains the categories, subcategories, catalogues and tags the
// admin picks from when editing products. Names are unique per kind, and
// per category for subcategories, ignoring case.
type Taxonomy struct {
	store store.Store
	now   func() time.Time
}

func NewTaxonomy(st store.Store) *Taxonomy {
	return &Taxonomy{store: st, now: time.Now}
}

func checkKind(kind string) error {
	if !models.IsTaxonomyKind(kind) {
		return ErrUnknownTaxonomy
	}
	return nil
}

func termKey(name, category string) string {
	key := strings.ToLower(name)
	if category != "" {
		key = strings.ToLower(category) + "/" + key
	}
	return key
}

func validateTermName(name string) error {
	if n := utf8.RuneCountInString(name); n < minTermLength || n > maxTermLength {
		return utils.ValidationError("name must be between 2 and 100 characters", ErrInvalidTerm)
	}
	if ok, msg := utils.ValidateXSS(name); !ok {
		return utils.ValidationError(msg, ErrInvalidTerm)
	}
	return nil
}

// Create adds a term. Subcategories must name an existing category and are
// stored under that category's spelling.
func (t *Taxonomy) Create(ctx context.Context, kind, name, category string) (*models.Term, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if err := validateTermName(name); err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if kind == models.TaxonomySubcategories {
		parent, err := t.findByName(ctx, models.TaxonomyCategories, category)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, utils.ValidationError("subcategory needs an existing category", ErrInvalidTerm)
		}
		category = parent.Name
	} else {
		category = ""
	}

	term := models.Term{Kind: kind, Name: name, Category: category, CreatedAt: t.now()}
	fields, err := store.Encode(term)
	if err != nil {
		return nil, decodeError("term", err)
	}
	doc, err := t.store.CreateUnique(ctx, kind, "", termKey(name, category), fields)
	if errors.Is(err, store.ErrConflict) {
		return nil, ErrTermExists
	}
	if err != nil {
		return nil, remoteError("failed to create "+kind, err, nil)
	}
	term.ID = doc.ID
	utils.LogInfo("Taxonomy %s: created %q", kind, name)
	return &term, nil
}

// List returns the terms of kind sorted by name. For subcategories a
// non-empty category narrows the result to that category.
func (t *Taxonomy) List(ctx context.Context, kind, category string) ([]models.Term, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	terms, err := t.all(ctx, kind)
	if err != nil {
		return nil, err
	}
	if category = strings.TrimSpace(category); category != "" && kind == models.TaxonomySubcategories {
		filtered := terms[:0]
		for _, term := range terms {
			if strings.EqualFold(term.Category, category) {
				filtered = append(filtered, term)
			}
		}
		terms = filtered
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return strings.ToLower(terms[i].Name) < strings.ToLower(terms[j].Name)
	})
	return terms, nil
}

// Delete removes a term. A category that still has subcategories is kept.
func (t *Taxonomy) Delete(ctx context.Context, kind, id string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	if kind == models.TaxonomyCategories {
		doc, err := t.store.Get(ctx, kind, "", id)
		if err != nil {
			return remoteError("failed to load category", err, ErrTermNotFound)
		}
		var category models.Term
		if err := store.Decode(*doc, &category); err != nil {
			return decodeError("term", err)
		}
		subs, err := t.List(ctx, models.TaxonomySubcategories, category.Name)
		if err != nil {
			return err
		}
		if len(subs) > 0 {
			return ErrCategoryInUse
		}
	}
	if err := t.store.Delete(ctx, kind, "", id); err != nil {
		return remoteError("failed to delete from "+kind, err, ErrTermNotFound)
	}
	utils.LogInfo("Taxonomy %s: deleted %s", kind, id)
	return nil
}

func (t *Taxonomy) all(ctx context.Context, kind string) ([]models.Term, error) {
	docs, err := t.store.Find(ctx, kind, "")
	if err != nil {
		return nil, remoteError("failed to load "+kind, err, nil)
	}
	terms, err := store.DecodeAll[models.Term](docs)
	if err != nil {
		return nil, decodeError("term", err)
	}
	return terms, nil
}

func (t *Taxonomy) findByName(ctx context.Context, kind, name string) (*models.Term, error) {
	if name == "" {
		return nil, nil
	}
	terms, err := t.all(ctx, kind)
	if err != nil {
		return nil, err
	}
	for i := range terms {
		if strings.EqualFold(terms[i].Name, name) {
			return &terms[i], nil
		}
	}
	return nil, nil
}
