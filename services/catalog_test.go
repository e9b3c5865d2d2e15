package services

import (
	"testing"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProduct(t *testing.T) {
	cases := []struct {
		name    string
		product models.Product
		ok      bool
	}{
		{"valid", models.Product{Name: "Rug", Price: 999}, true},
		{"discount above price is kept", models.Product{Name: "Rug", Price: 999, DiscountPrice: price(1200)}, true},
		{"blank name", models.Product{Name: "  ", Price: 999}, false},
		{"zero price", models.Product{Name: "Rug", Price: 0}, false},
		{"negative discount", models.Product{Name: "Rug", Price: 999, DiscountPrice: price(-1)}, false},
		{"script in description", models.Product{Name: "Rug", Price: 10, Description: "<script>alert(1)</script>"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateProduct(tc.product)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidProduct)
			assert.True(t, utils.IsValidationError(err))
		})
	}
}

func TestCatalog_CRUD(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.svc.Catalog.Create(env.ctx, models.Product{
		Name: " Rug ", Price: 999, DiscountPrice: price(899), Category: "Home", Tags: []string{"soft", " "},
	})
	require.NoError(t, err)
	assert.Equal(t, "Rug", created.Name)
	assert.Equal(t, []string{"soft"}, created.Tags)

	got, err := env.svc.Catalog.Get(env.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 899.0, got.EffectivePrice())

	_, err = env.svc.Catalog.Update(env.ctx, created.ID, models.Product{Name: "Rug", Price: 999, Category: "Home"})
	require.NoError(t, err)
	got, err = env.svc.Catalog.Get(env.ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DiscountPrice)
	assert.Equal(t, 999.0, got.EffectivePrice())

	require.NoError(t, env.svc.Catalog.Delete(env.ctx, created.ID))
	_, err = env.svc.Catalog.Get(env.ctx, created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, env.svc.Catalog.Delete(env.ctx, created.ID), ErrProductNotFound)
}

func TestCatalog_ListByCategory(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Catalog.Create(env.ctx, models.Product{Name: "Rug", Price: 10, Category: "Home"})
	require.NoError(t, err)
	_, err = env.svc.Catalog.Create(env.ctx, models.Product{Name: "Ball", Price: 5, Category: "Toys"})
	require.NoError(t, err)

	all, err := env.svc.Catalog.List(env.ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	toys, err := env.svc.Catalog.List(env.ctx, "Toys")
	require.NoError(t, err)
	require.Len(t, toys, 1)
	assert.Equal(t, "Ball", toys[0].Name)
}
