package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// Discount is the descriptor of the single discount active on a product.
// It is always owned by exactly one product and replaced or cleared as a unit.
type Discount struct {
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

type Product struct {
	ID          int
	Name        string
	Description *string
	Price       decimal.Decimal
	Stock       int
	CreatedAt   time.Time
	DeletedAt   *time.Time

	// Discount fields are mutated only through the discount service.
	// Percent discounts carry no coupon reference; coupon discounts do.
	DiscountType  *DiscountType
	DiscountValue *decimal.Decimal
	CouponID      *int
}

// ActiveDiscount returns the discount descriptor currently attached to the
// product, or nil when none is set.
func (p *Product) ActiveDiscount() *Discount {
	if p.DiscountType == nil || p.DiscountValue == nil {
		return nil
	}
	return &Discount{Type: *p.DiscountType, Value: *p.DiscountValue}
}

func (p *Product) Deleted() bool {
	return p.DeletedAt != nil
}

// ProductPatch lists the optional fields of a partial product update.
// Nil fields are left untouched by the merge.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
}

// ProductFilter describes a paginated product listing request.
type ProductFilter struct {
	Search         string
	MinPrice       *decimal.Decimal
	MaxPrice       *decimal.Decimal
	SortBy         string
	SortOrder      string
	IncludeDeleted bool
	Page           int
	Limit          int
}
