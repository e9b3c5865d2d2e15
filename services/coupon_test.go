package services

import (
	"testing"

	"github.com/Govind-619/ShopSphere/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponValidator_Apply(t *testing.T) {
	env := newTestEnv(t)
	env.coupon(t, "save10", 10, true)

	result, err := env.svc.Coupons.Apply(env.ctx, "  Save10 ", 1250)
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", result.Code)
	assert.Equal(t, 10.0, result.DiscountPercent)
	assert.Equal(t, 1125.0, result.NewTotal)
}

func TestCouponValidator_UnknownCode(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Coupons.Apply(env.ctx, "XYZ123", 100)
	assert.ErrorIs(t, err, ErrCouponNotFound)
	assert.True(t, utils.IsNotFoundError(err))
}

func TestCouponValidator_InactiveCode(t *testing.T) {
	env := newTestEnv(t)
	env.coupon(t, "OLD50", 50, false)

	_, err := env.svc.Coupons.Apply(env.ctx, "old50", 100)
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestCouponValidator_BlankCode(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Coupons.Apply(env.ctx, "   ", 100)
	assert.ErrorIs(t, err, ErrCouponCodeRequired)
}

func TestCouponService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CouponAdm.Create(env.ctx, "BIG", 120, true)
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	_, err = env.svc.CouponAdm.Create(env.ctx, "ZERO", 0, true)
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	env.coupon(t, "fest", 20, true)
	_, err = env.svc.CouponAdm.Create(env.ctx, "FEST", 30, true)
	assert.ErrorIs(t, err, ErrCouponExists)
}

func TestCouponService_ToggleAndDelete(t *testing.T) {
	env := newTestEnv(t)
	c := env.coupon(t, "FEST", 20, true)

	require.NoError(t, env.svc.CouponAdm.SetActive(env.ctx, c.ID, false))
	_, err := env.svc.Coupons.Apply(env.ctx, "FEST", 100)
	assert.ErrorIs(t, err, ErrCouponNotFound)

	require.NoError(t, env.svc.CouponAdm.SetActive(env.ctx, c.ID, true))
	_, err = env.svc.Coupons.Apply(env.ctx, "FEST", 100)
	require.NoError(t, err)

	coupons, err := env.svc.CouponAdm.List(env.ctx)
	require.NoError(t, err)
	require.Len(t, coupons, 1)
	assert.True(t, coupons[0].Active)

	require.NoError(t, env.svc.CouponAdm.Delete(env.ctx, c.ID))
	assert.ErrorIs(t, env.svc.CouponAdm.Delete(env.ctx, c.ID), ErrCouponNotFound)
	assert.ErrorIs(t, env.svc.CouponAdm.SetActive(env.ctx, c.ID, true), ErrCouponNotFound)
}
