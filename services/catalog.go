package services

import (
	"context"
	"strings"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/store"
	"github.com/Govind-619/ShopSphere/utils"
)

// Catalog reads products for the core and lets admins maintain them. Carts
// and orders never reference a product live; they copy what they need.
type Catalog struct {
	store store.Store
}

func NewCatalog(st store.Store) *Catalog {
	return &Catalog{store: st}
}

func (c *Catalog) Get(ctx context.Context, id string) (*models.Product, error) {
	doc, err := c.store.Get(ctx, models.CollectionProducts, "", id)
	if err != nil {
		return nil, remoteError("failed to load product", err, ErrProductNotFound)
	}
	var product models.Product
	if err := store.Decode(*doc, &product); err != nil {
		return nil, decodeError("product", err)
	}
	return &product, nil
}

// List returns every product, or only those in category when it is set.
func (c *Catalog) List(ctx context.Context, category string) ([]models.Product, error) {
	var filters []store.Filter
	if category = strings.TrimSpace(category); category != "" {
		filters = append(filters, store.Eq("category", category))
	}
	docs, err := c.store.Find(ctx, models.CollectionProducts, "", filters...)
	if err != nil {
		return nil, remoteError("failed to load products", err, nil)
	}
	products, err := store.DecodeAll[models.Product](docs)
	if err != nil {
		return nil, decodeError("product", err)
	}
	return products, nil
}

// ValidateProduct checks the admin form rules: a name, a positive price and
// a non-negative discount price. A discount at or above the price is kept
// but never takes effect.
func ValidateProduct(p models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return utils.ValidationError("product name is required", ErrInvalidProduct)
	}
	if err := utils.ValidatePrice(p.Price); err != nil {
		return utils.ValidationError(err.Error(), ErrInvalidProduct)
	}
	if p.DiscountPrice != nil && *p.DiscountPrice < 0 {
		return utils.ValidationError("discount price cannot be negative", ErrInvalidProduct)
	}
	for _, text := range []string{p.Name, p.Description} {
		if ok, msg := utils.ValidateXSS(text); !ok {
			return utils.ValidationError(msg, ErrInvalidProduct)
		}
	}
	return nil
}

func normalizeProduct(p models.Product) models.Product {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.Subcategory = strings.TrimSpace(p.Subcategory)
	p.Catalogue = strings.TrimSpace(p.Catalogue)
	var tags []string
	for _, tag := range p.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	p.Tags = tags
	return p
}

func (c *Catalog) Create(ctx context.Context, p models.Product) (*models.Product, error) {
	if err := ValidateProduct(p); err != nil {
		return nil, err
	}
	p = normalizeProduct(p)
	fields, err := store.Encode(p)
	if err != nil {
		return nil, decodeError("product", err)
	}
	doc, err := c.store.Create(ctx, models.CollectionProducts, "", fields)
	if err != nil {
		return nil, remoteError("failed to create product", err, nil)
	}
	p.ID = doc.ID
	utils.LogInfo("Product %s created: %s", p.ID, p.Name)
	return &p, nil
}

// Update replaces every editable field of an existing product.
func (c *Catalog) Update(ctx context.Context, id string, p models.Product) (*models.Product, error) {
	if err := ValidateProduct(p); err != nil {
		return nil, err
	}
	p = normalizeProduct(p)
	fields, err := store.Encode(p)
	if err != nil {
		return nil, decodeError("product", err)
	}
	// Encode omits a nil discount; clear any stored one explicitly.
	if p.DiscountPrice == nil {
		fields["discount_price"] = nil
	}
	if p.Tags == nil {
		fields["tags"] = []string{}
	}
	if err := c.store.Update(ctx, models.CollectionProducts, "", id, fields); err != nil {
		return nil, remoteError("failed to update product", err, ErrProductNotFound)
	}
	p.ID = id
	utils.LogInfo("Product %s updated", id)
	return &p, nil
}

func (c *Catalog) Delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, models.CollectionProducts, "", id); err != nil {
		return remoteError("failed to delete product", err, ErrProductNotFound)
	}
	utils.LogInfo("Product %s deleted", id)
	return nil
}
