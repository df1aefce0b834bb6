package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/product-catalog-service/internal/models"
	"github.com/Cheertaboi/product-catalog-service/internal/pricing"
)

// ProductStore is the slice of product persistence the discount service
// needs: load one row, write its discount columns back.
type ProductStore interface {
	GetByID(ctx context.Context, id int) (*models.Product, error)
	SetDiscount(ctx context.Context, id int, d *models.Discount, couponID *int) error
}

// CouponLookup resolves a raw coupon code to a non-deleted coupon.
type CouponLookup interface {
	GetActive(ctx context.Context, code string) (*models.Coupon, error)
}

// DiscountService owns the transitions between the no-discount,
// percent-discount and coupon-discount states of a product. Each transition
// is a single-row load-mutate-save; concurrent writers race with
// last-writer-wins semantics.
type DiscountService struct {
	products ProductStore
	coupons  CouponLookup
	now      func() time.Time
}

func NewDiscountService(products ProductStore, coupons CouponLookup) *DiscountService {
	return &DiscountService{products: products, coupons: coupons, now: time.Now}
}

var (
	percentFloor   = decimal.NewFromInt(1)
	percentCeiling = decimal.NewFromInt(80)
)

// ApplyPercent attaches a direct percentage discount to a product that has
// none.
func (s *DiscountService) ApplyPercent(ctx context.Context, id int, value decimal.Decimal) (*models.Product, error) {
	if value.LessThan(percentFloor) || value.GreaterThan(percentCeiling) {
		return nil, fmt.Errorf("%w: percent must be between 1 and 80", models.ErrInvalidDiscountValue)
	}
	p, err := s.activeProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.ActiveDiscount() != nil {
		return nil, models.ErrDiscountConflict
	}
	d := models.Discount{Type: models.DiscountPercent, Value: value}
	if err := checkFloor(p.Price, d); err != nil {
		return nil, err
	}
	if err := s.products.SetDiscount(ctx, id, &d, nil); err != nil {
		return nil, err
	}
	p.DiscountType = &d.Type
	p.DiscountValue = &d.Value
	return p, nil
}

// ApplyCoupon redeems a coupon against a product that has no discount. The
// coupon must be non-deleted and inside its validity window right now. Its
// one_shot flag is carried on the row but nothing tracks consumption.
func (s *DiscountService) ApplyCoupon(ctx context.Context, id int, code string) (*models.Product, error) {
	p, err := s.activeProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.ActiveDiscount() != nil {
		return nil, models.ErrDiscountConflict
	}
	coupon, err := s.coupons.GetActive(ctx, code)
	if err != nil {
		return nil, err
	}
	if !coupon.RedeemableAt(s.now().UTC()) {
		return nil, models.ErrCouponNotRedeemable
	}
	d := coupon.Discount()
	if err := checkFloor(p.Price, d); err != nil {
		return nil, err
	}
	if err := s.products.SetDiscount(ctx, id, &d, &coupon.ID); err != nil {
		return nil, err
	}
	p.DiscountType = &d.Type
	p.DiscountValue = &d.Value
	p.CouponID = &coupon.ID
	return p, nil
}

// Remove clears any active discount. Removing from a product with none is a
// successful no-op.
func (s *DiscountService) Remove(ctx context.Context, id int) error {
	p, err := s.activeProduct(ctx, id)
	if err != nil {
		return err
	}
	if p.ActiveDiscount() == nil {
		return nil
	}
	return s.products.SetDiscount(ctx, id, nil, nil)
}

func (s *DiscountService) activeProduct(ctx context.Context, id int) (*models.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Deleted() {
		return nil, models.ErrProductNotFound
	}
	return p, nil
}

// checkFloor rejects a discount whose unrounded subtraction leaves less than
// 0.01. This is stricter than the pricing clamp on purpose: applying a
// discount that crosses the floor is an input error, not something to round
// away.
func checkFloor(base decimal.Decimal, d models.Discount) error {
	if pricing.Subtract(base, d).LessThan(pricing.Floor) {
		return models.ErrPriceTooLow
	}
	return nil
}
