package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/product-catalog-service/internal/models"
	"github.com/Cheertaboi/product-catalog-service/internal/pricing"
	"github.com/Cheertaboi/product-catalog-service/internal/service"
)

// --- Request / Response DTOs ---

type createProductRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

type updateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
}

type applyPercentRequest struct {
	Value decimal.Decimal `json:"value"`
}

type applyCouponRequest struct {
	Code string `json:"code"`
}

type productResponse struct {
	ID           int              `json:"id"`
	Name         string           `json:"name"`
	Description  *string          `json:"description"`
	Price        decimal.Decimal  `json:"price"`
	Stock        int              `json:"stock"`
	CreatedAt    time.Time        `json:"created_at"`
	DeletedAt    *time.Time       `json:"deleted_at"`
	IsOutOfStock bool             `json:"is_out_of_stock"`
	FinalPrice   decimal.Decimal  `json:"final_price"`
	Discount     *models.Discount `json:"discount"`
}

type productPageResponse struct {
	Data []productResponse `json:"data"`
	Meta service.PageMeta  `json:"meta"`
}

// toProductResponse materializes the computed fields every representation
// carries: final_price, discount details and the out-of-stock flag.
func toProductResponse(p *models.Product) productResponse {
	finalPrice, discount := pricing.FinalPrice(p.Price, p.ActiveDiscount())
	return productResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		CreatedAt:    p.CreatedAt,
		DeletedAt:    p.DeletedAt,
		IsOutOfStock: p.Stock == 0,
		FinalPrice:   finalPrice,
		Discount:     discount,
	}
}

// --- Handler struct & constructor ---

type ProductHandler struct {
	products  *service.ProductService
	discounts *service.DiscountService
}

func NewProductHandler(products *service.ProductService, discounts *service.DiscountService) *ProductHandler {
	return &ProductHandler{products: products, discounts: discounts}
}

func productID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil && id > 0
}

// --- Handlers ---

// Create handles POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	p, err := h.products.Create(r.Context(), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(p))
}

// Get handles GET /products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		writeError(w, r, models.ErrProductNotFound)
		return
	}
	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

// Update handles PATCH /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		writeError(w, r, models.ErrProductNotFound)
		return
	}
	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	p, err := h.products.Update(r.Context(), id, models.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

// Delete handles DELETE /products/{id} (soft delete)
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		writeError(w, r, models.ErrProductNotFound)
		return
	}
	if err := h.products.SoftDelete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Restore handles POST /products/{id}/restore
func (h *ProductHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		writeError(w, r, models.ErrProductNotFound)
		return
	}
	p, err := h.products.Restore(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

// ApplyPercent handles POST /products/{id}/discount/percent
func (h *ProductHandler) ApplyPercent(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		writeError(w, r, models.ErrProductNotFound)
		return
	}
	var req applyPercentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	p, err := h.discounts.ApplyPercent(r.Context(), id, req.Value)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

// ApplyCoupon handles POST /products/{id}/discount/coupon
func (h *ProductHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		writeError(w, r, models.ErrProductNotFound)
		return
	}
	var req applyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	p, err := h.discounts.ApplyCoupon(r.Context(), id, req.Code)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

// RemoveDiscount handles DELETE /products/{id}/discount (idempotent)
func (h *ProductHandler) RemoveDiscount(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		writeError(w, r, models.ErrProductNotFound)
		return
	}
	if err := h.discounts.Remove(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /products with pagination, search and price filters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.ProductFilter{
		Search:         q.Get("search"),
		SortBy:         q.Get("sortBy"),
		SortOrder:      q.Get("sortOrder"),
		IncludeDeleted: q.Get("includeDeleted") == "true",
	}
	if v := q.Get("page"); v != "" {
		f.Page, _ = strconv.Atoi(v)
	}
	if v := q.Get("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}
	if v := q.Get("minPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.MinPrice = &d
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			f.MaxPrice = &d
		}
	}

	products, meta, err := h.products.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	data := make([]productResponse, 0, len(products))
	for _, p := range products {
		data = append(data, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, productPageResponse{Data: data, Meta: meta})
}
