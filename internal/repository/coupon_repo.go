package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Cheertaboi/product-catalog-service/internal/models"
)

type CouponRepo struct {
	db *sql.DB
}

func NewCouponRepo(db *sql.DB) *CouponRepo {
	return &CouponRepo{db: db}
}

const couponColumns = `id, code, type, value, one_shot, valid_from, valid_until, created_at, deleted_at`

func scanCoupon(row interface{ Scan(...any) error }) (*models.Coupon, error) {
	var (
		c         models.Coupon
		deletedAt sql.NullTime
	)
	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.Type,
		&c.Value,
		&c.OneShot,
		&c.ValidFrom,
		&c.ValidUntil,
		&c.CreatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		c.DeletedAt = &t
	}
	return &c, nil
}

// Create inserts the coupon and fills in its id and created_at. The unique
// constraint on code surfaces as models.ErrDuplicateCouponCode.
func (r *CouponRepo) Create(ctx context.Context, c *models.Coupon) error {
	query := `
		INSERT INTO coupons (code, type, value, one_shot, valid_from, valid_until, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		c.Code, c.Type, c.Value, c.OneShot, c.ValidFrom, c.ValidUntil,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateCouponCode
		}
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

// GetByCode loads a non-deleted coupon by its normalized code. Deleted
// coupons are unredeemable and indistinguishable from missing ones.
func (r *CouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1 AND deleted_at IS NULL`
	c, err := scanCoupon(r.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCouponNotFound
		}
		return nil, fmt.Errorf("get coupon %q: %w", code, err)
	}
	return c, nil
}

// Update rewrites the coupon's discount-shape fields. The code is immutable.
func (r *CouponRepo) Update(ctx context.Context, c *models.Coupon) error {
	query := `
		UPDATE coupons
		SET type = $2, value = $3, one_shot = $4, valid_from = $5, valid_until = $6
		WHERE code = $1 AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query,
		c.Code, c.Type, c.Value, c.OneShot, c.ValidFrom, c.ValidUntil,
	)
	if err != nil {
		return fmt.Errorf("update coupon %q: %w", c.Code, err)
	}
	return requireRow(res, models.ErrCouponNotFound)
}

// SoftDelete marks the coupon unredeemable. Already-deleted coupons report
// not found.
func (r *CouponRepo) SoftDelete(ctx context.Context, code string) error {
	query := `UPDATE coupons SET deleted_at = NOW() WHERE code = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, code)
	if err != nil {
		return fmt.Errorf("delete coupon %q: %w", code, err)
	}
	return requireRow(res, models.ErrCouponNotFound)
}

// List returns one page of coupons plus the total count, newest first.
func (r *CouponRepo) List(ctx context.Context, f models.CouponFilter) ([]*models.Coupon, int, error) {
	cond := ""
	if !f.IncludeDeleted {
		cond = " WHERE deleted_at IS NULL"
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM coupons`+cond).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count coupons: %w", err)
	}

	query := `SELECT ` + couponColumns + ` FROM coupons` + cond +
		` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, f.Limit, (f.Page-1)*f.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()

	var coupons []*models.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list coupons: %w", err)
	}
	return coupons, total, nil
}
