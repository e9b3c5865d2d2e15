package services

import (
	"errors"

	"github.com/Govind-619/ShopSphere/store"
	"github.com/Govind-619/ShopSphere/utils"
)

// Sentinel errors. They are AppErrors, so callers can match them with
// errors.Is or classify them with the utils.Is*Error helpers.
var (
	ErrInvalidQuantity      = utils.ValidationError("quantity must be at least 1", nil)
	ErrInvalidProduct       = utils.ValidationError("invalid product", nil)
	ErrMissingBillingInfo   = utils.ValidationError("name, phone and address are required", nil)
	ErrInvalidPaymentMethod = utils.ValidationError("payment method must be COD or ONLINE", nil)
	ErrEmptyOrder           = utils.ValidationError("order has no items", nil)
	ErrInvalidDiscount      = utils.ValidationError("discount must be between 0 and 100 percent", nil)
	ErrCouponCodeRequired   = utils.ValidationError("coupon code is required", nil)
	ErrReasonRequired       = utils.ValidationError("a reason is required", nil)
	ErrInvalidReason        = utils.ValidationError("reason is not one of the allowed reasons", nil)
	ErrInvalidCard          = utils.ValidationError("invalid card details", nil)
	ErrInvalidAddress       = utils.ValidationError("invalid address", nil)
	ErrInvalidTerm          = utils.ValidationError("invalid taxonomy entry", nil)
	ErrUserRequired         = utils.ValidationError("user id is required", nil)

	ErrProductNotFound      = utils.NotFoundError("product not found", nil)
	ErrCartItemNotFound     = utils.NotFoundError("item not in cart", nil)
	ErrWishlistItemNotFound = utils.NotFoundError("item not in wishlist", nil)
	ErrCouponNotFound       = utils.NotFoundError("invalid or inactive coupon code", nil)
	ErrOrderNotFound        = utils.NotFoundError("order not found", nil)
	ErrNotificationNotFound = utils.NotFoundError("notification not found", nil)
	ErrAddressNotFound      = utils.NotFoundError("address not found", nil)
	ErrUnknownTaxonomy      = utils.NotFoundError("unknown taxonomy", nil)
	ErrTermNotFound         = utils.NotFoundError("taxonomy entry not found", nil)

	ErrAlreadyInCart        = utils.ConflictError("product already in cart", nil)
	ErrAlreadyInWishlist    = utils.ConflictError("product already in wishlist", nil)
	ErrCouponAlreadyApplied = utils.ConflictError("a coupon is already applied", nil)
	ErrCouponExists         = utils.ConflictError("coupon code already exists", nil)
	ErrCouponWithdrawn      = utils.ConflictError("the applied coupon is no longer active", nil)
	ErrTermExists           = utils.ConflictError("an entry with this name already exists", nil)
	ErrCategoryInUse        = utils.ConflictError("category still has subcategories", nil)

	ErrInvalidTransition = utils.InvalidTransitionError("order status change not allowed", nil)

	ErrUnknownStatus = utils.DataError("order has an unrecognized status", nil)
)

// remoteError classifies a store failure. Missing documents map to notFound
// when it is given; everything else is a remote operation failure.
func remoteError(op string, err error, notFound error) error {
	if notFound != nil && errors.Is(err, store.ErrNotFound) {
		return notFound
	}
	if utils.IsAppError(err) {
		return err
	}
	return utils.RemoteOperationError(op, err)
}

func decodeError(what string, err error) error {
	return utils.DataError("corrupt "+what+" record", err)
}
