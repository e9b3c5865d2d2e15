package services

import (
	"context"
	"time"

	"github.com/Govind-619/ShopSphere/models"
	"github.com/Govind-619/ShopSphere/store"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/sirupsen/logrus"
)

// CouponResult is the outcome of a successful coupon lookup.
type CouponResult struct {
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discount_percent"`
	NewTotal        float64 `json:"new_total"`
}

// CouponValidator looks codes up among active coupons. It keeps no state;
// refusing a second coupon in one checkout is up to the caller.
type CouponValidator struct {
	store store.Store
}

func NewCouponValidator(st store.Store) *CouponValidator {
	return &CouponValidator{store: st}
}

// Apply matches code case-insensitively against active coupons and returns
// the discounted total.
func (v *CouponValidator) Apply(ctx context.Context, code string, currentTotal float64) (*CouponResult, error) {
	code = models.NormalizeCouponCode(code)
	if code == "" {
		return nil, ErrCouponCodeRequired
	}
	docs, err := v.store.Find(ctx, models.CollectionCoupons, "", store.Eq("code", code), store.Eq("active", true))
	if err != nil {
		return nil, remoteError("failed to look up coupon", err, nil)
	}
	if len(docs) == 0 {
		utils.LogEvent("coupon_rejected", logrus.Fields{"code": code})
		return nil, ErrCouponNotFound
	}
	var coupon models.Coupon
	if err := store.Decode(docs[0], &coupon); err != nil {
		return nil, decodeError("coupon", err)
	}
	if utils.ValidateCouponPercent(coupon.Discount) != nil {
		return nil, utils.DataError("coupon "+coupon.Code+" has an invalid discount", nil)
	}
	return &CouponResult{
		Code:            coupon.Code,
		DiscountPercent: coupon.Discount,
		NewTotal:        ApplyDiscount(currentTotal, coupon.Discount),
	}, nil
}

// CouponService is the admin side of coupons.
type CouponService struct {
	store store.Store
	now   func() time.Time
}

func NewCouponService(st store.Store) *CouponService {
	return &CouponService{store: st, now: time.Now}
}

func (s *CouponService) Create(ctx context.Context, code string, discount float64, active bool) (*models.Coupon, error) {
	code = models.NormalizeCouponCode(code)
	if code == "" {
		return nil, ErrCouponCodeRequired
	}
	if err := utils.ValidateCouponPercent(discount); err != nil {
		return nil, utils.ValidationError(err.Error(), ErrInvalidDiscount)
	}
	existing, err := s.store.Find(ctx, models.CollectionCoupons, "", store.Eq("code", code))
	if err != nil {
		return nil, remoteError("failed to check coupon code", err, nil)
	}
	if len(existing) > 0 {
		return nil, ErrCouponExists
	}

	coupon := models.Coupon{Code: code, Discount: discount, Active: active, CreatedAt: s.now()}
	fields, err := store.Encode(coupon)
	if err != nil {
		return nil, decodeError("coupon", err)
	}
	doc, err := s.store.Create(ctx, models.CollectionCoupons, "", fields)
	if err != nil {
		return nil, remoteError("failed to create coupon", err, nil)
	}
	coupon.ID = doc.ID
	utils.LogInfo("Coupon %s created with %.2f%% discount", code, discount)
	return &coupon, nil
}

func (s *CouponService) List(ctx context.Context) ([]models.Coupon, error) {
	docs, err := s.store.Find(ctx, models.CollectionCoupons, "")
	if err != nil {
		return nil, remoteError("failed to load coupons", err, nil)
	}
	coupons, err := store.DecodeAll[models.Coupon](docs)
	if err != nil {
		return nil, decodeError("coupon", err)
	}
	return coupons, nil
}

func (s *CouponService) SetActive(ctx context.Context, id string, active bool) error {
	if err := s.store.Update(ctx, models.CollectionCoupons, "", id, store.Fields{"active": active}); err != nil {
		return remoteError("failed to update coupon", err, ErrCouponNotFound)
	}
	utils.LogInfo("Coupon %s active=%t", id, active)
	return nil
}

func (s *CouponService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, models.CollectionCoupons, "", id); err != nil {
		return remoteError("failed to delete coupon", err, ErrCouponNotFound)
	}
	utils.LogInfo("Coupon %s deleted", id)
	return nil
}
