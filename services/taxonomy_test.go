package services

import (
	"testing"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func termNames(terms []models.Term) []string {
	names := make([]string, 0, len(terms))
	for _, term := range terms {
		names = append(names, term.Name)
	}
	return names
}

func TestTaxonomy_CreateAndListSorted(t *testing.T) {
	env := newTestEnv(t)
	for _, name := range []string{"Lighting", "decor", "Furniture"} {
		_, err := env.svc.Taxonomy.Create(env.ctx, models.TaxonomyCategories, name, "")
		require.NoError(t, err)
	}
	tag, err := env.svc.Taxonomy.Create(env.ctx, models.TaxonomyTags, "  bestseller ", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "bestseller", tag.Name)
	assert.Empty(t, tag.Category)

	terms, err := env.svc.Taxonomy.List(env.ctx, models.TaxonomyCategories, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"decor", "Furniture", "Lighting"}, termNames(terms))

	terms, err = env.svc.Taxonomy.List(env.ctx, models.TaxonomyCatalogues, "")
	require.NoError(t, err)
	assert.Empty(t, terms)
}

func TestTaxonomy_NamesAreUniquePerKind(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Taxonomy.Create(env.ctx, models.TaxonomyCategories, "Lighting", "")
	require.NoError(t, err)

	_, err = env.svc.Taxonomy.Create(env.ctx, models.TaxonomyCategories, "LIGHTING", "")
	assert.ErrorIs(t, err, ErrTermExists)
	assert.True(t, utils.IsConflictError(err))

	// Same name under another kind is fine.
	_, err = env.svc.Taxonomy.Create(env.ctx, models.TaxonomyTags, "Lighting", "")
	assert.NoError(t, err)
}

func TestTaxonomy_SubcategoriesBelongToACategory(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Taxonomy.Create(env.ctx, models.TaxonomyCategories, "Lighting", "")
	require.NoError(t, err)
	_, err = env.svc.Taxonomy.Create(env.ctx, models.TaxonomyCategories, "Decor", "")
	require.NoError(t, err)

	_, err = env.svc.Taxonomy.Create(env.ctx, models.TaxonomySubcategories, "Lamps", "Garden")
	assert.ErrorIs(t, err, ErrInvalidTerm)
	_, err = env.svc.Taxonomy.Create(env.ctx, models.TaxonomySubcategories, "Lamps", "")
	assert.ErrorIs(t, err, ErrInvalidTerm)

	lamps, err := env.svc.Taxonomy.Create(env.ctx, models.TaxonomySubcategories, "Lamps", "lighting")
	require.NoError(t, err)
	assert.Equal(t, "Lighting", lamps.Category)

	// A subcategory name is unique within its category only.
	_, err = env.svc.Taxonomy.Create(env.ctx, models.TaxonomySubcategories, "lamps", "Lighting")
	assert.ErrorIs(t, err, ErrTermExists)
	_, err = env.svc.Taxonomy.Create(env.ctx, models.TaxonomySubcategories, "Lamps", "Decor")
	require.NoError(t, err)

	terms, err := env.svc.Taxonomy.List(env.ctx, models.TaxonomySubcategories, "LIGHTING")
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, lamps.ID, terms[0].ID)

	terms, err = env.svc.Taxonomy.List(env.ctx, models.TaxonomySubcategories, "")
	require.NoError(t, err)
	assert.Len(t, terms, 2)
}

func TestTaxonomy_Delete(t *testing.T) {
	env := newTestEnv(t)
	lighting, err := env.svc.Taxonomy.Create(env.ctx, models.TaxonomyCategories, "Lighting", "")
	require.NoError(t, err)
	lamps, err := env.svc.Taxonomy.Create(env.ctx, models.TaxonomySubcategories, "Lamps", "Lighting")
	require.NoError(t, err)

	err = env.svc.Taxonomy.Delete(env.ctx, models.TaxonomyCategories, lighting.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	require.NoError(t, env.svc.Taxonomy.Delete(env.ctx, models.TaxonomySubcategories, lamps.ID))
	require.NoError(t, env.svc.Taxonomy.Delete(env.ctx, models.TaxonomyCategories, lighting.ID))
	assert.ErrorIs(t, env.svc.Taxonomy.Delete(env.ctx, models.TaxonomyCategories, lighting.ID), ErrTermNotFound)

	// The name is free again once deleted.
	_, err = env.svc.Taxonomy.Create(env.ctx, models.TaxonomyCategories, "Lighting", "")
	assert.NoError(t, err)
}

func TestTaxonomy_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Taxonomy.Create(env.ctx, "brands", "Acme", "")
	assert.ErrorIs(t, err, ErrUnknownTaxonomy)
	_, err = env.svc.Taxonomy.List(env.ctx, "brands", "")
	assert.ErrorIs(t, err, ErrUnknownTaxonomy)

	for _, name := range []string{"", " x ", "<script>x</script>"} {
		_, err := env.svc.Taxonomy.Create(env.ctx, models.TaxonomyTags, name, "")
		assert.ErrorIs(t, err, ErrInvalidTerm, name)
	}
}
