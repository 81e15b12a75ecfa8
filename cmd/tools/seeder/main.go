package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kitabghor/storefront-api/internal/auth"
	"github.com/kitabghor/storefront-api/internal/config"
	"github.com/kitabghor/storefront-api/internal/coupon"
	dbgen "github.com/kitabghor/storefront-api/internal/db/gen"
	"github.com/kitabghor/storefront-api/internal/inventory"
	"github.com/kitabghor/storefront-api/internal/obs"
	"github.com/kitabghor/storefront-api/internal/shipping"
)

type seedWarehouse struct {
	Name    string
	Code    string
	Address string
}

type seedVariant struct {
	SKU     string
	Binding string
	Price   string
	Weight  int32
	Stock   map[string]int64
}

type seedProduct struct {
	Title    string
	TitleBn  string
	Slug     string
	Price    string
	Weight   int32
	Variants []seedVariant
}

var warehouses = []seedWarehouse{
	{Name: "Dhaka Central", Code: "DHK-01", Address: "Banglabazar, Dhaka"},
	{Name: "Chattogram Port", Code: "CTG-01", Address: "Agrabad, Chattogram"},
}

var products = []seedProduct{
	{
		Title: "Pather Panchali", TitleBn: "পথের পাঁচালী", Slug: "pather-panchali", Price: "450", Weight: 480,
		Variants: []seedVariant{
			{SKU: "PP-HC", Binding: "hardcover", Price: "450", Weight: 520, Stock: map[string]int64{"DHK-01": 40, "CTG-01": 12}},
			{SKU: "PP-PB", Binding: "paperback", Price: "280", Weight: 350, Stock: map[string]int64{"DHK-01": 75}},
		},
	},
	{
		Title: "Gitanjali", TitleBn: "গীতাঞ্জলি", Slug: "gitanjali", Price: "320", Weight: 300,
		Variants: []seedVariant{
			{SKU: "GT-PB", Binding: "paperback", Price: "320", Weight: 300, Stock: map[string]int64{"DHK-01": 4, "CTG-01": 20}},
		},
	},
	{
		Title: "Padma Nadir Majhi", TitleBn: "পদ্মা নদীর মাঝি", Slug: "padma-nadir-majhi", Price: "380", Weight: 410,
		Variants: []seedVariant{
			{SKU: "PNM-HC", Binding: "hardcover", Price: "380", Weight: 410, Stock: map[string]int64{"CTG-01": 9}},
		},
	},
}

func main() {
	printToken := flag.Bool("token", false, "print an admin token signed with ADMIN_JWT_SECRET")
	flag.Parse()

	cfg := config.MustLoad()
	logger := obs.NewLogger(envOrDefault("OBS_LOG_FORMAT", "console"), "info").With().Str("component", "seeder").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()
	queries := dbgen.New(pool)

	warehouseIDs, variantIDs, err := seedCatalog(ctx, pool)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed catalog")
	}
	logger.Info().Int("warehouses", len(warehouseIDs)).Int("variants", len(variantIDs)).Msg("catalog seeded")

	ledger := inventory.NewLedger(inventory.LedgerConfig{
		Tx:     inventory.PoolTx{Pool: pool, Queries: queries},
		Reads:  queries,
		Logger: logger,
	})
	if err := seedStock(ctx, ledger, warehouseIDs, variantIDs); err != nil {
		logger.Fatal().Err(err).Msg("seed stock")
	}

	shippingSvc := shipping.NewService(shipping.ServiceConfig{Queries: queries, Country: cfg.ShippingCountry, Logger: logger})
	if err := seedShippingRates(ctx, shippingSvc, logger); err != nil {
		logger.Fatal().Err(err).Msg("seed shipping rates")
	}

	couponSvc := &coupon.Service{Q: queries, Logger: logger}
	if err := seedCoupons(ctx, couponSvc, logger); err != nil {
		logger.Fatal().Err(err).Msg("seed coupons")
	}

	if *printToken {
		guard := auth.NewAdminGuard(auth.GuardConfig{Secret: cfg.AdminJWTSecret, Issuer: cfg.AdminJWTIssuer, Logger: logger})
		if !guard.Enabled() {
			logger.Fatal().Msg("ADMIN_JWT_SECRET is empty")
		}
		token, err := guard.IssueToken("seeder", 24*time.Hour)
		if err != nil {
			logger.Fatal().Err(err).Msg("issue admin token")
		}
		fmt.Println(token)
	}

	logger.Info().Msg("seeding completed")
}

func seedCatalog(ctx context.Context, pool *pgxpool.Pool) (map[string]int64, map[string]int64, error) {
	warehouseIDs := make(map[string]int64, len(warehouses))
	variantIDs := map[string]int64{}

	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for _, w := range warehouses {
			var id int64
			if err := tx.QueryRow(ctx, `
				INSERT INTO warehouses (name, code, address) VALUES ($1, $2, $3)
				ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address
				RETURNING id`, w.Name, w.Code, w.Address).Scan(&id); err != nil {
				return fmt.Errorf("warehouse %s: %w", w.Code, err)
			}
			warehouseIDs[w.Code] = id
		}
		for _, p := range products {
			var productID int64
			if err := tx.QueryRow(ctx, `
				INSERT INTO products (title, title_bn, slug, price, weight_grams) VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (slug) DO UPDATE SET title = EXCLUDED.title, title_bn = EXCLUDED.title_bn,
					price = EXCLUDED.price, weight_grams = EXCLUDED.weight_grams
				RETURNING id`, p.Title, p.TitleBn, p.Slug, decimal.RequireFromString(p.Price), p.Weight).Scan(&productID); err != nil {
				return fmt.Errorf("product %s: %w", p.Slug, err)
			}
			for _, v := range p.Variants {
				var variantID int64
				if err := tx.QueryRow(ctx, `
					INSERT INTO product_variants (product_id, sku, binding, price, weight_grams) VALUES ($1, $2, $3, $4, $5)
					ON CONFLICT (sku) DO UPDATE SET binding = EXCLUDED.binding, price = EXCLUDED.price,
						weight_grams = EXCLUDED.weight_grams
					RETURNING id`, productID, v.SKU, v.Binding, decimal.RequireFromString(v.Price), v.Weight).Scan(&variantID); err != nil {
					return fmt.Errorf("variant %s: %w", v.SKU, err)
				}
				variantIDs[v.SKU] = variantID
			}
		}
		return nil
	})
	return warehouseIDs, variantIDs, err
}

func seedStock(ctx context.Context, ledger *inventory.Ledger, warehouseIDs, variantIDs map[string]int64) error {
	for _, p := range products {
		for _, v := range p.Variants {
			for code, qty := range v.Stock {
				if _, err := ledger.SetStockLevel(ctx, inventory.SetInput{
					VariantID:   variantIDs[v.SKU],
					WarehouseID: warehouseIDs[code],
					Quantity:    qty,
					Reason:      "seed",
				}); err != nil {
					return fmt.Errorf("stock %s@%s: %w", v.SKU, code, err)
				}
			}
		}
	}
	return nil
}

func seedShippingRates(ctx context.Context, svc *shipping.Service, logger zerolog.Logger) error {
	existing, err := svc.List(ctx)
	if err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, r := range existing {
		seen[strings.ToLower(r.Area)] = true
	}

	dhakaFree := decimal.NewFromInt(1500)
	upTo := func(v int64) *decimal.Decimal { d := decimal.NewFromInt(v); return &d }
	rates := []shipping.RateInput{
		{
			Area:     "Dhaka",
			BaseCost: decimal.NewFromInt(60),
			WeightSlabs: []shipping.Slab{
				{MinWeight: decimal.Zero, MaxWeight: upTo(1000), Cost: decimal.NewFromInt(60)},
				{MinWeight: decimal.NewFromInt(1001), MaxWeight: upTo(3000), Cost: decimal.NewFromInt(90)},
			},
			FreeMinOrder: &dhakaFree,
			IsActive:     true,
		},
		{Area: "Chattogram", BaseCost: decimal.NewFromInt(120), IsActive: true},
		{Area: "Sylhet", BaseCost: decimal.NewFromInt(130), IsActive: true, Priority: 1},
	}
	for _, in := range rates {
		if seen[strings.ToLower(in.Area)] {
			continue
		}
		if _, err := svc.Create(ctx, in); err != nil {
			return fmt.Errorf("rate %s: %w", in.Area, err)
		}
		logger.Info().Str("area", in.Area).Msg("shipping rate seeded")
	}
	return nil
}

func seedCoupons(ctx context.Context, svc *coupon.Service, logger zerolog.Logger) error {
	existing, err := svc.List(ctx)
	if err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, c := range existing {
		seen[strings.ToUpper(c.Code)] = true
	}

	capAmount := decimal.NewFromInt(200)
	coupons := []coupon.Input{
		{Code: "BOIMELA10", DiscountType: "percentage", DiscountValue: decimal.NewFromInt(10), MinOrderValue: decimal.NewFromInt(500), MaxDiscount: &capAmount, IsValid: true},
		{Code: "FLAT50", DiscountType: "fixed", DiscountValue: decimal.NewFromInt(50), MinOrderValue: decimal.Zero, IsValid: true},
	}
	for _, in := range coupons {
		if seen[in.Code] {
			continue
		}
		if _, err := svc.Create(ctx, in); err != nil {
			return fmt.Errorf("coupon %s: %w", in.Code, err)
		}
		logger.Info().Str("code", in.Code).Msg("coupon seeded")
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
