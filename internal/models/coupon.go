package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validity windows longer than this are rejected at creation time.
const MaxCouponWindow = 5 * 365 * 24 * time.Hour

var (
	couponCodePattern = regexp.MustCompile(`^[a-z0-9]+$`)

	reservedCodes = map[string]struct{}{
		"admin":     {},
		"auth":      {},
		"null":      {},
		"undefined": {},
	}

	percentMin = decimal.NewFromInt(1)
	percentMax = decimal.NewFromInt(80)
)

type Coupon struct {
	ID    int
	Code  string
	Type  DiscountType
	Value decimal.Decimal

	// OneShot is persisted and returned to clients but no redemption
	// tracking consumes it.
	OneShot bool

	ValidFrom  time.Time
	ValidUntil time.Time
	CreatedAt  time.Time
	DeletedAt  *time.Time
}

// Discount returns the descriptor this coupon produces when applied.
func (c *Coupon) Discount() Discount {
	return Discount{Type: c.Type, Value: c.Value}
}

// RedeemableAt reports whether t falls inside the coupon's validity window.
func (c *Coupon) RedeemableAt(t time.Time) bool {
	return !t.Before(c.ValidFrom) && !t.After(c.ValidUntil)
}

func (c *Coupon) Deleted() bool {
	return c.DeletedAt != nil
}

// NormalizeCouponCode trims and lower-cases a raw coupon code. Lookups and
// storage always use the normalized form.
func NormalizeCouponCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// CouponInput is raw coupon creation input before normalization.
type CouponInput struct {
	Code       string
	Type       DiscountType
	Value      decimal.Decimal
	OneShot    bool
	ValidFrom  time.Time
	ValidUntil time.Time
}

// Validate normalizes the input and returns a coupon ready to persist.
// Uniqueness of the code is the storage layer's concern, not checked here.
func (in CouponInput) Validate() (*Coupon, error) {
	code := NormalizeCouponCode(in.Code)
	if err := ValidateCouponCode(code); err != nil {
		return nil, err
	}
	if err := ValidateCouponValue(in.Type, in.Value); err != nil {
		return nil, err
	}
	if err := ValidateCouponWindow(in.ValidFrom, in.ValidUntil); err != nil {
		return nil, err
	}
	return &Coupon{
		Code:       code,
		Type:       in.Type,
		Value:      in.Value,
		OneShot:    in.OneShot,
		ValidFrom:  in.ValidFrom,
		ValidUntil: in.ValidUntil,
	}, nil
}

// ValidateCouponCode checks an already-normalized code.
func ValidateCouponCode(code string) error {
	if len(code) < 4 || len(code) > 20 {
		return fmt.Errorf("%w: must be between 4 and 20 characters", ErrInvalidCouponCode)
	}
	if !couponCodePattern.MatchString(code) {
		return fmt.Errorf("%w: only alphanumeric characters are allowed", ErrInvalidCouponCode)
	}
	if _, ok := reservedCodes[code]; ok {
		return fmt.Errorf("%w: %q is a reserved word", ErrInvalidCouponCode, code)
	}
	return nil
}

func ValidateCouponValue(t DiscountType, v decimal.Decimal) error {
	switch t {
	case DiscountPercent:
		if v.LessThan(percentMin) || v.GreaterThan(percentMax) {
			return fmt.Errorf("%w: percent value must be between 1 and 80", ErrInvalidCouponValue)
		}
	case DiscountFixed:
		if !v.IsPositive() {
			return fmt.Errorf("%w: fixed value must be positive", ErrInvalidCouponValue)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCouponType, t)
	}
	return nil
}

func ValidateCouponWindow(from, until time.Time) error {
	if !until.After(from) {
		return fmt.Errorf("%w: valid_until must be after valid_from", ErrInvalidCouponWindow)
	}
	if until.Sub(from) > MaxCouponWindow {
		return fmt.Errorf("%w: window cannot exceed 5 years", ErrInvalidCouponWindow)
	}
	return nil
}

// CouponPatch lists the optional fields of a partial coupon update. The code
// itself is immutable; everything else can be replaced and is re-validated
// against the merged result.
type CouponPatch struct {
	Type       *DiscountType
	Value      *decimal.Decimal
	OneShot    *bool
	ValidFrom  *time.Time
	ValidUntil *time.Time
}

// CouponFilter describes a paginated coupon listing request.
type CouponFilter struct {
	IncludeDeleted bool
	Page           int
	Limit          int
}
