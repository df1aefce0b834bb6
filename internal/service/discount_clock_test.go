package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/product-catalog-service/internal/models"
)

type fixedProductStore struct {
	product *models.Product
}

func (s *fixedProductStore) GetByID(context.Context, int) (*models.Product, error) {
	cp := *s.product
	return &cp, nil
}

func (s *fixedProductStore) SetDiscount(context.Context, int, *models.Discount, *int) error {
	return nil
}

type fixedCouponLookup struct {
	coupon *models.Coupon
}

func (l *fixedCouponLookup) GetActive(context.Context, string) (*models.Coupon, error) {
	return l.coupon, nil
}

// Window checks evaluate against the service clock, inclusive on both ends.
func TestApplyCouponWindowBoundaries(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := from.Add(48 * time.Hour)

	store := &fixedProductStore{product: &models.Product{ID: 1, Name: "p", Price: decimal.RequireFromString("100.00")}}
	lookup := &fixedCouponLookup{coupon: &models.Coupon{
		ID:         1,
		Code:       "newyear26",
		Type:       models.DiscountPercent,
		Value:      decimal.NewFromInt(10),
		ValidFrom:  from,
		ValidUntil: until,
	}}
	svc := NewDiscountService(store, lookup)

	cases := []struct {
		name string
		at   time.Time
		ok   bool
	}{
		{"just before valid_from", from.Add(-time.Second), false},
		{"exactly valid_from", from, true},
		{"inside the window", from.Add(time.Hour), true},
		{"exactly valid_until", until, true},
		{"just after valid_until", until.Add(time.Second), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc.now = func() time.Time { return tc.at }
			_, err := svc.ApplyCoupon(context.Background(), 1, "newyear26")
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, models.ErrCouponNotRedeemable)
			}
		})
	}
}
