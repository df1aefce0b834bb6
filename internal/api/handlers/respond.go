package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Cheertaboi/product-catalog-service/internal/models"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(r, err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps domain errors onto the HTTP taxonomy. Anything unrecognized
// is a 500 and gets logged; no domain error is fatal to the process.
func statusFor(r *http.Request, err error) int {
	switch {
	case errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrCouponNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrProductNameTaken),
		errors.Is(err, models.ErrDuplicateCouponCode),
		errors.Is(err, models.ErrDiscountConflict),
		errors.Is(err, models.ErrProductNotDeleted):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidCouponWindow),
		errors.Is(err, models.ErrCouponNotRedeemable):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidProduct),
		errors.Is(err, models.ErrInvalidCouponCode),
		errors.Is(err, models.ErrInvalidCouponType),
		errors.Is(err, models.ErrInvalidCouponValue),
		errors.Is(err, models.ErrInvalidDiscountValue),
		errors.Is(err, models.ErrPriceTooLow):
		return http.StatusUnprocessableEntity
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).
			Msg("unhandled error")
		return http.StatusInternalServerError
	}
}

func writeBadBody(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
}
