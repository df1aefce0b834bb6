package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/product-catalog-service/internal/models"
	"github.com/Cheertaboi/product-catalog-service/internal/service"
)

// --- Request / Response DTOs ---

type createCouponRequest struct {
	Code       string          `json:"code"`
	Type       string          `json:"type"`
	Value      decimal.Decimal `json:"value"`
	OneShot    bool            `json:"one_shot"`
	ValidFrom  time.Time       `json:"valid_from"`
	ValidUntil time.Time       `json:"valid_until"`
}

type updateCouponRequest struct {
	Type       *string          `json:"type,omitempty"`
	Value      *decimal.Decimal `json:"value,omitempty"`
	OneShot    *bool            `json:"one_shot,omitempty"`
	ValidFrom  *time.Time       `json:"valid_from,omitempty"`
	ValidUntil *time.Time       `json:"valid_until,omitempty"`
}

type couponResponse struct {
	ID         int             `json:"id"`
	Code       string          `json:"code"`
	Type       string          `json:"type"`
	Value      decimal.Decimal `json:"value"`
	OneShot    bool            `json:"one_shot"`
	ValidFrom  time.Time       `json:"valid_from"`
	ValidUntil time.Time       `json:"valid_until"`
	CreatedAt  time.Time       `json:"created_at"`
	DeletedAt  *time.Time      `json:"deleted_at"`
}

type couponPageResponse struct {
	Data []couponResponse `json:"data"`
	Meta service.PageMeta `json:"meta"`
}

func toCouponResponse(c *models.Coupon) couponResponse {
	return couponResponse{
		ID:         c.ID,
		Code:       c.Code,
		Type:       string(c.Type),
		Value:      c.Value,
		OneShot:    c.OneShot,
		ValidFrom:  c.ValidFrom,
		ValidUntil: c.ValidUntil,
		CreatedAt:  c.CreatedAt,
		DeletedAt:  c.DeletedAt,
	}
}

// --- Handler struct & constructor ---

type CouponHandler struct {
	coupons *service.CouponService
}

func NewCouponHandler(coupons *service.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

// --- Handlers ---

// Create handles POST /coupons
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	coupon, err := h.coupons.Create(r.Context(), models.CouponInput{
		Code:       req.Code,
		Type:       models.DiscountType(req.Type),
		Value:      req.Value,
		OneShot:    req.OneShot,
		ValidFrom:  req.ValidFrom,
		ValidUntil: req.ValidUntil,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCouponResponse(coupon))
}

// Get handles GET /coupons/{code}
func (h *CouponHandler) Get(w http.ResponseWriter, r *http.Request) {
	coupon, err := h.coupons.GetActive(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCouponResponse(coupon))
}

// Update handles PATCH /coupons/{code}
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	patch := models.CouponPatch{
		Value:      req.Value,
		OneShot:    req.OneShot,
		ValidFrom:  req.ValidFrom,
		ValidUntil: req.ValidUntil,
	}
	if req.Type != nil {
		t := models.DiscountType(*req.Type)
		patch.Type = &t
	}
	coupon, err := h.coupons.Update(r.Context(), chi.URLParam(r, "code"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCouponResponse(coupon))
}

// Delete handles DELETE /coupons/{code} (soft delete, no restore)
func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.coupons.Delete(r.Context(), chi.URLParam(r, "code")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /coupons
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.CouponFilter{IncludeDeleted: q.Get("includeDeleted") == "true"}
	if v := q.Get("page"); v != "" {
		f.Page, _ = strconv.Atoi(v)
	}
	if v := q.Get("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}
	coupons, meta, err := h.coupons.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	data := make([]couponResponse, 0, len(coupons))
	for _, c := range coupons {
		data = append(data, toCouponResponse(c))
	}
	writeJSON(w, http.StatusOK, couponPageResponse{Data: data, Meta: meta})
}
