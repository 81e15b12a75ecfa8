package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/kitabghor/storefront-api/internal/auth"
	"github.com/kitabghor/storefront-api/internal/catalog"
	"github.com/kitabghor/storefront-api/internal/common"
	"github.com/kitabghor/storefront-api/internal/coupon"
	"github.com/kitabghor/storefront-api/internal/health"
	"github.com/kitabghor/storefront-api/internal/inventory"
	"github.com/kitabghor/storefront-api/internal/obs"
	"github.com/kitabghor/storefront-api/internal/pricing"
	"github.com/kitabghor/storefront-api/internal/ratelimit"
	"github.com/kitabghor/storefront-api/internal/security"
	"github.com/kitabghor/storefront-api/internal/shipping"
)

type server struct {
	logger         zerolog.Logger
	allowedOrigins []string
	metrics        *obs.HTTPMetrics
	tracing        bool
	bodyLimit      security.BodyLimit
	headers        security.Headers
	guard          *auth.AdminGuard
	idem           common.Idem
	couponLimit    ratelimit.Handler
	health         health.Handler

	catalog   *catalog.Handler
	shipping  *shipping.Handler
	coupons   *coupon.Handler
	pricing   *pricing.Handler
	inventory *inventory.Handler
}

func (s server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if s.tracing {
		r.Use(obs.TracingMiddleware)
	}
	if s.metrics != nil {
		r.Use(obs.HTTPObs{Metrics: s.metrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: s.logger}.Middleware)
	r.Use(s.headers.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins(s.allowedOrigins),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Total-Count", "X-RateLimit-Remaining", "Idempotent-Replayed"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(s.bodyLimit.Middleware)

	if s.metrics != nil {
		r.Handle("/metrics", promhttp.Handler())
	}
	r.Get("/health/live", s.health.Live)
	r.Get("/health/ready", s.health.Ready)

	r.Route("/api", func(api chi.Router) {
		api.Get("/products", s.catalog.Products)
		api.Get("/warehouses", s.catalog.Warehouses)
		api.Get("/product-variants", s.catalog.Variants)
		api.Get("/inventory-logs", s.inventory.Logs)

		api.Route("/stock-levels", func(st chi.Router) {
			st.Get("/", s.inventory.StockLevels)
			st.Get("/available", s.inventory.Available)
			st.Group(func(g chi.Router) {
				g.Use(s.guard.Require)
				g.With(s.idem.Middleware).Post("/", s.inventory.SetStockLevel)
				g.Delete("/{id}", s.inventory.DeleteStockLevel)
				g.With(s.idem.Middleware).Post("/reserve", s.inventory.Reserve)
				g.With(s.idem.Middleware).Post("/release", s.inventory.Release)
			})
		})

		api.Post("/shipping/quote", s.shipping.Quote)
		api.Get("/shipping/quote", s.shipping.QuoteQuery)
		api.With(s.couponLimit.Middleware).Post("/coupons/validate", s.coupons.Validate)
		api.Post("/pricing/quote", s.pricing.Quote)

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(s.guard.Require)
			admin.Use(security.NoStore)
			admin.Route("/shipping-rates", func(sr chi.Router) {
				sr.Get("/", s.shipping.AdminList)
				sr.Post("/", s.shipping.AdminCreate)
				sr.Get("/{id}", s.shipping.AdminGet)
				sr.Patch("/{id}", s.shipping.AdminUpdate)
				sr.Delete("/{id}", s.shipping.AdminDelete)
			})
			admin.Route("/coupons", func(c chi.Router) {
				c.Get("/", s.coupons.AdminList)
				c.Post("/", s.coupons.AdminCreate)
				c.Patch("/{id}", s.coupons.AdminUpdate)
				c.Delete("/{id}", s.coupons.AdminDelete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})
	return r
}

func origins(configured []string) []string {
	if len(configured) == 0 {
		return []string{"*"}
	}
	return configured
}
