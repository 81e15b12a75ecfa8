package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/kitabghor/storefront-api/internal/auth"
	"github.com/kitabghor/storefront-api/internal/catalog"
	"github.com/kitabghor/storefront-api/internal/common"
	"github.com/kitabghor/storefront-api/internal/config"
	"github.com/kitabghor/storefront-api/internal/coupon"
	dbgen "github.com/kitabghor/storefront-api/internal/db/gen"
	"github.com/kitabghor/storefront-api/internal/health"
	"github.com/kitabghor/storefront-api/internal/inventory"
	"github.com/kitabghor/storefront-api/internal/lock"
	"github.com/kitabghor/storefront-api/internal/obs"
	"github.com/kitabghor/storefront-api/internal/pricing"
	"github.com/kitabghor/storefront-api/internal/ratelimit"
	"github.com/kitabghor/storefront-api/internal/security"
	"github.com/kitabghor/storefront-api/internal/shipping"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Money fields render as JSON numbers for the storefront UI.
	decimal.MarshalJSONWithoutQuotes = true

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "kitabghor")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", true)
	if tracingEnabled {
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "kitabghor-api",
			Endpoint:      envOrDefault("OBS_OTLP_ENDPOINT", ""),
			Exporter:      envOrDefault("OBS_TRACING_EXPORTER", "otlp"),
			SamplingRatio: envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0),
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse database config")
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "kitabghor-api"
	if cfg.DBMaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.DBMaxConns)
	}

	pool, err := pgxpool.NewWithConfig(startCtx, poolConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()
	if err := pool.Ping(startCtx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}
	queries := dbgen.New(pool)

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()
	if err := redisClient.Ping(startCtx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}

	taskClient := asynq.NewClientFromRedisClient(redisClient)
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close task client")
		}
	}()

	catalogService, err := catalog.NewService(catalog.ServiceConfig{Queries: queries})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise catalog service")
	}

	shippingService := shipping.NewService(shipping.ServiceConfig{
		Queries:     queries,
		Cache:       shipping.NewRateCache(redisClient, cfg.ShippingRateCacheTTL),
		Country:     cfg.ShippingCountry,
		DefaultRate: cfg.ShippingDefaultRate,
		Logger:      logger.With().Str("component", "shipping").Logger(),
	})
	couponService := &coupon.Service{Q: queries, Logger: logger.With().Str("component", "coupon").Logger()}
	pricingService := &pricing.Service{
		Coupons:  couponService,
		Shipping: shippingService,
		Variants: queries,
		Currency: cfg.CurrencyCode,
	}
	ledger := inventory.NewLedger(inventory.LedgerConfig{
		Tx:                inventory.PoolTx{Pool: pool, Queries: queries},
		Reads:             queries,
		Locker:            lock.Locker{R: redisClient, RetryBackoff: cfg.LockRetryBackoff},
		LockTTL:           cfg.LockTTL,
		Tasks:             taskClient,
		LowStockThreshold: cfg.LowStockThreshold,
		Logger:            logger.With().Str("component", "inventory").Logger(),
	})

	couponLimiter, err := ratelimit.NewRedis(redisClient, cfg.CouponValidateRate, "ratelimit")
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise coupon rate limiter")
	}

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", "")), nil)
	}

	srv := server{
		logger:         logger,
		allowedOrigins: cfg.CORSAllowedOrigins,
		metrics:        httpMetrics,
		tracing:        tracingEnabled,
		bodyLimit:      security.BodyLimit{Max: cfg.HTTPBodyLimitBytes},
		headers:        security.Headers{EnableHSTS: cfg.AppEnv == "production"},
		guard: auth.NewAdminGuard(auth.GuardConfig{
			Secret: cfg.AdminJWTSecret,
			Issuer: cfg.AdminJWTIssuer,
			Logger: logger,
		}),
		idem: common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL},
		couponLimit: ratelimit.Handler{
			Limiter: couponLimiter,
			Prefix:  "coupon-validate:",
			OnError: func(err error) { logger.Warn().Err(err).Msg("coupon rate limiter unavailable") },
		},
		health: health.Handler{
			Checker:      health.Deps{Pool: pool, Redis: redisClient},
			DBTimeout:    envDurationMillis("HEALTH_READY_DB_TIMEOUT_MS", 500),
			RedisTimeout: envDurationMillis("HEALTH_READY_REDIS_TIMEOUT_MS", 300),
		},
		catalog:   catalog.NewHandler(catalog.HandlerConfig{Service: catalogService, Logger: logger}),
		shipping:  &shipping.Handler{Svc: shippingService, Logger: logger},
		coupons:   &coupon.Handler{Svc: couponService, Logger: logger},
		pricing:   &pricing.Handler{Svc: pricingService, Logger: logger},
		inventory: &inventory.Handler{Ledger: ledger, Logger: logger},
	}
	if !srv.guard.Enabled() {
		logger.Warn().Msg("ADMIN_JWT_SECRET is empty; admin routes are unauthenticated")
	}

	var handler http.Handler = srv.routes()
	if tracingEnabled {
		handler = otelhttp.NewHandler(handler, "kitabghor-api")
	}
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("server starting")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	case <-ctx.Done():
		health.SetReady(false)
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown")
		}
	}
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDurationMillis(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Millisecond
}
