package models

import "errors"

// Domain errors. The API layer translates these into HTTP statuses; nothing
// here is fatal to the process.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductNameTaken  = errors.New("product name already in use")
	ErrProductNotDeleted = errors.New("product is not deleted")
	ErrInvalidProduct    = errors.New("invalid product input")

	ErrCouponNotFound      = errors.New("coupon not found")
	ErrDuplicateCouponCode = errors.New("coupon code already in use")
	ErrInvalidCouponCode   = errors.New("invalid coupon code")
	ErrInvalidCouponType   = errors.New("invalid coupon type")
	ErrInvalidCouponValue  = errors.New("invalid coupon value")
	ErrInvalidCouponWindow = errors.New("invalid coupon validity window")
	ErrCouponNotRedeemable = errors.New("coupon outside its validity window")

	ErrDiscountConflict     = errors.New("product already has an active discount")
	ErrInvalidDiscountValue = errors.New("invalid discount value")
	ErrPriceTooLow          = errors.New("discount would push the price below the minimum")
)
