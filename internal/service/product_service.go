package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/product-catalog-service/internal/models"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

// ProductRepo is the persistence surface the product service needs
// (use interfaces to allow mocking).
type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id int) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	SetDeleted(ctx context.Context, id int, at *time.Time) error
	List(ctx context.Context, f models.ProductFilter) ([]*models.Product, int, error)
}

type ProductService struct {
	repo ProductRepo
	now  func() time.Time
}

func NewProductService(repo ProductRepo) *ProductService {
	return &ProductService{repo: repo, now: time.Now}
}

type ProductInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	Stock       int
}

func validateProduct(name string, price decimal.Decimal, stock int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", models.ErrInvalidProduct)
	}
	if !price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than zero", models.ErrInvalidProduct)
	}
	if stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", models.ErrInvalidProduct)
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := validateProduct(in.Name, in.Price, in.Stock); err != nil {
		return nil, err
	}
	p := &models.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns an active product; soft-deleted rows report not found.
func (s *ProductService) Get(ctx context.Context, id int) (*models.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Deleted() {
		return nil, models.ErrProductNotFound
	}
	return p, nil
}

// Update applies a partial update field by field and persists the merged row.
func (s *ProductService) Update(ctx context.Context, id int, patch models.ProductPatch) (*models.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if err := validateProduct(p.Name, p.Price, p.Stock); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SoftDelete marks the product inactive. An active discount survives the
// delete and is still there after a restore.
func (s *ProductService) SoftDelete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	now := s.now().UTC()
	return s.repo.SetDeleted(ctx, id, &now)
}

// Restore clears the soft-delete timestamp. Restoring an active product is a
// conflict, not a no-op.
func (s *ProductService) Restore(ctx context.Context, id int) (*models.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Deleted() {
		return nil, models.ErrProductNotDeleted
	}
	if err := s.repo.SetDeleted(ctx, id, nil); err != nil {
		return nil, err
	}
	p.DeletedAt = nil
	return p, nil
}

// PageMeta describes one page of a listing.
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

func pageMeta(page, limit, total int) PageMeta {
	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}
	return PageMeta{Page: page, Limit: limit, TotalItems: total, TotalPages: pages}
}

// List returns a filtered page of products. Page and limit are clamped to
// sane bounds rather than rejected.
func (s *ProductService) List(ctx context.Context, f models.ProductFilter) ([]*models.Product, PageMeta, error) {
	f.Page, f.Limit = clampPage(f.Page, f.Limit)
	products, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, PageMeta{}, err
	}
	return products, pageMeta(f.Page, f.Limit, total), nil
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
