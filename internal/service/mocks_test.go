package service_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Cheertaboi/product-catalog-service/internal/models"
	"github.com/Cheertaboi/product-catalog-service/internal/service"
)

var (
	_ service.ProductRepo  = (*mockProductRepo)(nil)
	_ service.ProductStore = (*mockProductRepo)(nil)
	_ service.CouponRepo   = (*mockCouponRepo)(nil)
)

type mockProductRepo struct {
	seq   int
	store map[int]*models.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{store: make(map[int]*models.Product)}
}

func (m *mockProductRepo) Create(_ context.Context, p *models.Product) error {
	for _, existing := range m.store {
		if existing.Name == p.Name {
			return models.ErrProductNameTaken
		}
	}
	m.seq++
	p.ID = m.seq
	p.CreatedAt = time.Now().UTC()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id int) (*models.Product, error) {
	p, ok := m.store[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) Update(_ context.Context, p *models.Product) error {
	stored, ok := m.store[p.ID]
	if !ok {
		return models.ErrProductNotFound
	}
	for _, existing := range m.store {
		if existing.Name == p.Name && existing.ID != p.ID {
			return models.ErrProductNameTaken
		}
	}
	stored.Name = p.Name
	stored.Description = p.Description
	stored.Price = p.Price
	stored.Stock = p.Stock
	return nil
}

func (m *mockProductRepo) SetDeleted(_ context.Context, id int, at *time.Time) error {
	p, ok := m.store[id]
	if !ok {
		return models.ErrProductNotFound
	}
	p.DeletedAt = at
	return nil
}

func (m *mockProductRepo) SetDiscount(_ context.Context, id int, d *models.Discount, couponID *int) error {
	p, ok := m.store[id]
	if !ok {
		return models.ErrProductNotFound
	}
	if d == nil {
		p.DiscountType = nil
		p.DiscountValue = nil
		p.CouponID = nil
		return nil
	}
	dt, dv := d.Type, d.Value
	p.DiscountType = &dt
	p.DiscountValue = &dv
	p.CouponID = couponID
	return nil
}

func (m *mockProductRepo) List(_ context.Context, f models.ProductFilter) ([]*models.Product, int, error) {
	var matched []*models.Product
	for _, p := range m.store {
		if p.Deleted() && !f.IncludeDeleted {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		cp := *p
		matched = append(matched, &cp)
	}
	asc := strings.EqualFold(f.SortOrder, "asc")
	sort.Slice(matched, func(i, j int) bool {
		var less bool
		switch f.SortBy {
		case "name":
			less = matched[i].Name < matched[j].Name
		case "price":
			less = matched[i].Price.LessThan(matched[j].Price)
		case "stock":
			less = matched[i].Stock < matched[j].Stock
		default:
			less = matched[i].ID < matched[j].ID
		}
		if asc {
			return less
		}
		return !less
	})
	total := len(matched)
	start := (f.Page - 1) * f.Limit
	if start > total {
		start = total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

type mockCouponRepo struct {
	seq   int
	store map[string]*models.Coupon
}

func newMockCouponRepo() *mockCouponRepo {
	return &mockCouponRepo{store: make(map[string]*models.Coupon)}
}

func (m *mockCouponRepo) Create(_ context.Context, c *models.Coupon) error {
	if _, ok := m.store[c.Code]; ok {
		return models.ErrDuplicateCouponCode
	}
	m.seq++
	c.ID = m.seq
	c.CreatedAt = time.Now().UTC()
	cp := *c
	m.store[c.Code] = &cp
	return nil
}

func (m *mockCouponRepo) GetByCode(_ context.Context, code string) (*models.Coupon, error) {
	c, ok := m.store[code]
	if !ok || c.Deleted() {
		return nil, models.ErrCouponNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCouponRepo) Update(_ context.Context, c *models.Coupon) error {
	stored, ok := m.store[c.Code]
	if !ok || stored.Deleted() {
		return models.ErrCouponNotFound
	}
	stored.Type = c.Type
	stored.Value = c.Value
	stored.OneShot = c.OneShot
	stored.ValidFrom = c.ValidFrom
	stored.ValidUntil = c.ValidUntil
	return nil
}

func (m *mockCouponRepo) SoftDelete(_ context.Context, code string) error {
	c, ok := m.store[code]
	if !ok || c.Deleted() {
		return models.ErrCouponNotFound
	}
	now := time.Now().UTC()
	c.DeletedAt = &now
	return nil
}

func (m *mockCouponRepo) List(_ context.Context, f models.CouponFilter) ([]*models.Coupon, int, error) {
	var matched []*models.Coupon
	for _, c := range m.store {
		if c.Deleted() && !f.IncludeDeleted {
			continue
		}
		cp := *c
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	total := len(matched)
	start := (f.Page - 1) * f.Limit
	if start > total {
		start = total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}
