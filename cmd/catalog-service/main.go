package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Cheertaboi/product-catalog-service/internal/api"
	"github.com/Cheertaboi/product-catalog-service/internal/api/middleware"
	"github.com/Cheertaboi/product-catalog-service/internal/cache"
	"github.com/Cheertaboi/product-catalog-service/internal/repository"
	"github.com/Cheertaboi/product-catalog-service/internal/service"
	"github.com/Cheertaboi/product-catalog-service/pkg/db"
	pkgredis "github.com/Cheertaboi/product-catalog-service/pkg/redis"
)

type appConfig struct {
	Addr           string        `envconfig:"HTTP_ADDR" default:":8080"`
	Environment    string        `envconfig:"ENVIRONMENT" default:"development"`
	CouponCacheTTL time.Duration `envconfig:"COUPON_CACHE_TTL" default:"5m"`

	DB    db.PostgresConfig
	Redis pkgredis.Config
}

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	var cfg appConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal().Err(err).Msg("process environment config")
	}

	if cfg.Environment == "development" {
		log.Logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	conn, err := db.NewPostgresConnection(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	defer conn.Close()

	// coupon cache is optional; without REDIS_URL lookups go straight to
	// postgres
	var couponCache *cache.CouponCache
	if cfg.Redis.Enabled() {
		rdb, err := cfg.Redis.New(context.Background())
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect")
		}
		defer rdb.Close()
		couponCache = cache.NewCouponCache(rdb, cfg.CouponCacheTTL)
	}

	productRepo := repository.NewProductRepo(conn)
	couponRepo := repository.NewCouponRepo(conn)

	productSvc := service.NewProductService(productRepo)
	couponSvc := service.NewCouponService(couponRepo, couponCache)
	discountSvc := service.NewDiscountService(productRepo, couponSvc)

	handler := api.NewRouter(productSvc, discountSvc, couponSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Mount("/", handler)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown")
		}
		close(idleConnsClosed)
	}()

	log.Info().Str("addr", cfg.Addr).Msg("starting catalog-service")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("listen")
	}

	<-idleConnsClosed
	log.Info().Msg("server stopped")
}
