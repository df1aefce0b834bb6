// Package pricing computes effective product prices. Everything here is pure:
// the same inputs always produce the same price, with no side effects.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/product-catalog-service/internal/models"
)

// Floor is the lowest price a discount can ever produce.
var Floor = decimal.New(1, -2) // 0.01

var hundred = decimal.NewFromInt(100)

// FinalPrice maps a base price and an optional discount descriptor to the
// effective price. The result is quantized to 2 decimal places (round
// half-up) and clamped to Floor. It is evaluated on every product read so the
// representation always carries final_price.
func FinalPrice(base decimal.Decimal, d *models.Discount) (decimal.Decimal, *models.Discount) {
	if d == nil {
		return base, nil
	}
	final := Subtract(base, *d).Round(2)
	if final.LessThan(Floor) {
		final = Floor
	}
	return final, d
}

// Subtract returns the unrounded result of taking the discount off the base
// price. The discount application path uses this raw value to reject
// operations that would cross the floor, rather than silently clamping.
func Subtract(base decimal.Decimal, d models.Discount) decimal.Decimal {
	switch d.Type {
	case models.DiscountPercent:
		return base.Sub(base.Mul(d.Value).Div(hundred))
	case models.DiscountFixed:
		return base.Sub(d.Value)
	}
	// unknown descriptor leaves the price untouched
	return base
}
