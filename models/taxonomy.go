package models

import "time"

// Taxonomy kinds. Each kind is stored in the collection of the same name.
const (
	TaxonomyCategories    = "categories"
	TaxonomySubcategories = "subcategories"
	TaxonomyCatalogues    = "catalogues"
	TaxonomyTags          = "tags"
)

var TaxonomyKinds = []string{
	TaxonomyCategories,
	TaxonomySubcategories,
	TaxonomyCatalogues,
	TaxonomyTags,
}

// IsTaxonomyKind reports whether kind names a taxonomy collection.
func IsTaxonomyKind(kind string) bool {
	for _, k := range TaxonomyKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Term is one entry of the admin-maintained product taxonomy. Products refer
// to terms by name as free text, so removing a term leaves products alone.
// Category is set on subcategories only.
type Term struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
