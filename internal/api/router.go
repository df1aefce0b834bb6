package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Cheertaboi/product-catalog-service/internal/api/handlers"
	"github.com/Cheertaboi/product-catalog-service/internal/service"
)

// NewRouter builds the HTTP router for the catalog service. Dependencies are
// injected explicitly; nothing here reaches for process-wide state.
func NewRouter(
	products *service.ProductService,
	discounts *service.DiscountService,
	coupons *service.CouponService,
) http.Handler {
	r := chi.NewRouter()

	productHandler := handlers.NewProductHandler(products, discounts)
	couponHandler := handlers.NewCouponHandler(coupons)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", productHandler.Create)
			r.Get("/", productHandler.List)
			r.Get("/{id}", productHandler.Get)
			r.Patch("/{id}", productHandler.Update)
			r.Delete("/{id}", productHandler.Delete)
			r.Post("/{id}/restore", productHandler.Restore)
			r.Post("/{id}/discount/percent", productHandler.ApplyPercent)
			r.Post("/{id}/discount/coupon", productHandler.ApplyCoupon)
			r.Delete("/{id}/discount", productHandler.RemoveDiscount)
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Post("/", couponHandler.Create)
			r.Get("/", couponHandler.List)
			r.Get("/{code}", couponHandler.Get)
			r.Patch("/{code}", couponHandler.Update)
			r.Delete("/{code}", couponHandler.Delete)
		})
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
