package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/product-catalog-service/internal/models"
)

const uniqueViolation = "23505"

// Columns clients may sort product listings by. Anything else falls back to
// created_at.
var productSortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"stock":      "stock",
	"created_at": "created_at",
}

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = `id, name, description, price, stock, created_at, deleted_at,
       discount_type, discount_value, coupon_id`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	var (
		p             models.Product
		description   sql.NullString
		deletedAt     sql.NullTime
		discountType  sql.NullString
		discountValue decimal.NullDecimal
		couponID      sql.NullInt64
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&description,
		&p.Price,
		&p.Stock,
		&p.CreatedAt,
		&deletedAt,
		&discountType,
		&discountValue,
		&couponID,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		p.Description = &description.String
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		p.DeletedAt = &t
	}
	if discountType.Valid && discountValue.Valid {
		dt := models.DiscountType(discountType.String)
		dv := discountValue.Decimal
		p.DiscountType = &dt
		p.DiscountValue = &dv
	}
	if couponID.Valid {
		id := int(couponID.Int64)
		p.CouponID = &id
	}
	return &p, nil
}

// Create inserts the product and fills in its id and created_at. A name
// collision surfaces as models.ErrProductNameTaken.
func (r *ProductRepo) Create(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (name, description, price, stock, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.Price, p.Stock).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrProductNameTaken
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID loads a product row regardless of its deleted state; callers gate
// on DeletedAt themselves.
func (r *ProductRepo) GetByID(ctx context.Context, id int) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// Update writes the mutable catalog fields back to the row.
func (r *ProductRepo) Update(ctx context.Context, p *models.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Description, p.Price, p.Stock)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrProductNameTaken
		}
		return fmt.Errorf("update product %d: %w", p.ID, err)
	}
	return requireRow(res, models.ErrProductNotFound)
}

// SetDeleted writes the soft-delete timestamp; nil restores the row.
func (r *ProductRepo) SetDeleted(ctx context.Context, id int, at *time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET deleted_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("set product %d deleted: %w", id, err)
	}
	return requireRow(res, models.ErrProductNotFound)
}

// SetDiscount replaces the product's discount descriptor and coupon reference
// in a single statement; a nil discount clears all three columns.
func (r *ProductRepo) SetDiscount(ctx context.Context, id int, d *models.Discount, couponID *int) error {
	query := `
		UPDATE products
		SET discount_type = $2, discount_value = $3, coupon_id = $4
		WHERE id = $1
	`
	var (
		dt sql.NullString
		dv decimal.NullDecimal
	)
	if d != nil {
		dt = sql.NullString{String: string(d.Type), Valid: true}
		dv = decimal.NullDecimal{Decimal: d.Value, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, query, id, dt, dv, couponID)
	if err != nil {
		return fmt.Errorf("set product %d discount: %w", id, err)
	}
	return requireRow(res, models.ErrProductNotFound)
}

// List returns one page of products matching the filter plus the total match
// count. Deleted rows are excluded unless the filter asks for them.
func (r *ProductRepo) List(ctx context.Context, f models.ProductFilter) ([]*models.Product, int, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Search != "" {
		ph := arg("%" + f.Search + "%")
		where = append(where, fmt.Sprintf("(name ILIKE %s OR description ILIKE %s)", ph, ph))
	}
	if f.MinPrice != nil {
		where = append(where, "price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= "+arg(*f.MaxPrice))
	}
	if !f.IncludeDeleted {
		where = append(where, "deleted_at IS NULL")
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM products` + cond
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	sortCol, ok := productSortColumns[f.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		dir = "ASC"
	}

	offset := (f.Page - 1) * f.Limit
	query := `SELECT ` + productColumns + ` FROM products` + cond +
		fmt.Sprintf(" ORDER BY %s %s LIMIT %s OFFSET %s", sortCol, dir, arg(f.Limit), arg(offset))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
