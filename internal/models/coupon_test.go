package models_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/product-catalog-service/internal/models"
)

func validInput() models.CouponInput {
	now := time.Now().UTC()
	return models.CouponInput{
		Code:       "SUMMER10",
		Type:       models.DiscountPercent,
		Value:      decimal.NewFromInt(10),
		ValidFrom:  now,
		ValidUntil: now.Add(24 * time.Hour),
	}
}

func TestCouponInputValidate(t *testing.T) {
	t.Run("normalizes code to lowercase", func(t *testing.T) {
		in := validInput()
		in.Code = "  SUMMER10 "
		coupon, err := in.Validate()
		require.NoError(t, err)
		require.Equal(t, "summer10", coupon.Code)
	})

	t.Run("rejects short and long codes", func(t *testing.T) {
		for _, code := range []string{"abc", "thiscodeiswaytoolongtofit"} {
			in := validInput()
			in.Code = code
			_, err := in.Validate()
			require.ErrorIs(t, err, models.ErrInvalidCouponCode)
		}
	})

	t.Run("rejects non-alphanumeric codes", func(t *testing.T) {
		for _, code := range []string{"sum-mer", "sale 10", "c0de!"} {
			in := validInput()
			in.Code = code
			_, err := in.Validate()
			require.ErrorIs(t, err, models.ErrInvalidCouponCode)
		}
	})

	t.Run("rejects reserved words regardless of case", func(t *testing.T) {
		for _, code := range []string{"admin", "AUTH", "null", "Undefined"} {
			in := validInput()
			in.Code = code
			_, err := in.Validate()
			require.ErrorIs(t, err, models.ErrInvalidCouponCode)
		}
	})

	t.Run("percent value bounds", func(t *testing.T) {
		for _, v := range []string{"0.99", "81", "0", "-5"} {
			in := validInput()
			in.Value = decimal.RequireFromString(v)
			_, err := in.Validate()
			require.ErrorIs(t, err, models.ErrInvalidCouponValue)
		}
		for _, v := range []string{"1", "80", "25.5"} {
			in := validInput()
			in.Value = decimal.RequireFromString(v)
			_, err := in.Validate()
			require.NoError(t, err)
		}
	})

	t.Run("fixed value must be positive", func(t *testing.T) {
		in := validInput()
		in.Type = models.DiscountFixed
		in.Value = decimal.Zero
		_, err := in.Validate()
		require.ErrorIs(t, err, models.ErrInvalidCouponValue)

		in.Value = decimal.RequireFromString("0.01")
		_, err = in.Validate()
		require.NoError(t, err)
	})

	t.Run("rejects unknown discount type", func(t *testing.T) {
		in := validInput()
		in.Type = models.DiscountType("bogus")
		_, err := in.Validate()
		require.ErrorIs(t, err, models.ErrInvalidCouponType)
	})

	t.Run("window must be strictly positive", func(t *testing.T) {
		in := validInput()
		in.ValidUntil = in.ValidFrom
		_, err := in.Validate()
		require.ErrorIs(t, err, models.ErrInvalidCouponWindow)

		in.ValidUntil = in.ValidFrom.Add(-time.Hour)
		_, err = in.Validate()
		require.ErrorIs(t, err, models.ErrInvalidCouponWindow)
	})

	t.Run("window cannot exceed five years", func(t *testing.T) {
		in := validInput()
		in.ValidUntil = in.ValidFrom.Add(models.MaxCouponWindow + time.Hour)
		_, err := in.Validate()
		require.ErrorIs(t, err, models.ErrInvalidCouponWindow)

		in.ValidUntil = in.ValidFrom.Add(models.MaxCouponWindow)
		_, err = in.Validate()
		require.NoError(t, err)
	})
}

func TestCouponRedeemableAt(t *testing.T) {
	now := time.Now().UTC()
	c := models.Coupon{ValidFrom: now.Add(-time.Hour), ValidUntil: now.Add(time.Hour)}
	require.True(t, c.RedeemableAt(now))
	require.True(t, c.RedeemableAt(c.ValidFrom))
	require.True(t, c.RedeemableAt(c.ValidUntil))
	require.False(t, c.RedeemableAt(c.ValidFrom.Add(-time.Second)))
	require.False(t, c.RedeemableAt(c.ValidUntil.Add(time.Second)))
}
