package service

import (
	"context"

	"github.com/Cheertaboi/product-catalog-service/internal/cache"
	"github.com/Cheertaboi/product-catalog-service/internal/models"
)

// CouponRepo is the persistence surface the coupon service needs.
type CouponRepo interface {
	Create(ctx context.Context, c *models.Coupon) error
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	Update(ctx context.Context, c *models.Coupon) error
	SoftDelete(ctx context.Context, code string) error
	List(ctx context.Context, f models.CouponFilter) ([]*models.Coupon, int, error)
}

type CouponService struct {
	repo  CouponRepo
	cache *cache.CouponCache
}

// NewCouponService wires the repository with an optional read-through cache;
// a nil cache disables caching.
func NewCouponService(repo CouponRepo, c *cache.CouponCache) *CouponService {
	return &CouponService{repo: repo, cache: c}
}

func (s *CouponService) Create(ctx context.Context, in models.CouponInput) (*models.Coupon, error) {
	coupon, err := in.Validate()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, coupon); err != nil {
		return nil, err
	}
	s.cache.Set(ctx, coupon)
	return coupon, nil
}

// GetActive returns the non-deleted coupon for a raw code, consulting the
// cache before the repository.
func (s *CouponService) GetActive(ctx context.Context, code string) (*models.Coupon, error) {
	code = models.NormalizeCouponCode(code)
	if coupon, ok := s.cache.Get(ctx, code); ok {
		return coupon, nil
	}
	coupon, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, coupon)
	return coupon, nil
}

// Update merges a partial update into the stored coupon, re-validates the
// merged discount shape, and persists it.
func (s *CouponService) Update(ctx context.Context, code string, patch models.CouponPatch) (*models.Coupon, error) {
	coupon, err := s.GetActive(ctx, code)
	if err != nil {
		return nil, err
	}
	if patch.Type != nil {
		coupon.Type = *patch.Type
	}
	if patch.Value != nil {
		coupon.Value = *patch.Value
	}
	if patch.OneShot != nil {
		coupon.OneShot = *patch.OneShot
	}
	if patch.ValidFrom != nil {
		coupon.ValidFrom = *patch.ValidFrom
	}
	if patch.ValidUntil != nil {
		coupon.ValidUntil = *patch.ValidUntil
	}
	if err := models.ValidateCouponValue(coupon.Type, coupon.Value); err != nil {
		return nil, err
	}
	if err := models.ValidateCouponWindow(coupon.ValidFrom, coupon.ValidUntil); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, coupon); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, coupon.Code)
	return coupon, nil
}

// Delete soft-deletes the coupon, making it unredeemable. There is no
// restore path for coupons.
func (s *CouponService) Delete(ctx context.Context, code string) error {
	code = models.NormalizeCouponCode(code)
	if err := s.repo.SoftDelete(ctx, code); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, code)
	return nil
}

func (s *CouponService) List(ctx context.Context, f models.CouponFilter) ([]*models.Coupon, PageMeta, error) {
	f.Page, f.Limit = clampPage(f.Page, f.Limit)
	coupons, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, PageMeta{}, err
	}
	return coupons, pageMeta(f.Page, f.Limit, total), nil
}
