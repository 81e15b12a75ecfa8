package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/kitabghor/storefront-api/internal/common"
	dbgen "github.com/kitabghor/storefront-api/internal/db/gen"
)

type queryProvider interface {
	ListWarehouses(ctx context.Context) ([]dbgen.Warehouse, error)
	CountProducts(ctx context.Context) (int64, error)
	ListProducts(ctx context.Context, arg dbgen.ListProductsParams) ([]dbgen.Product, error)
	ListVariantsByProduct(ctx context.Context, productID int64) ([]dbgen.ProductVariant, error)
}

// Service assembles catalog read models for the stock management screens.
type Service struct {
	queries      queryProvider
	defaultLimit int
	maxLimit     int
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Queries      queryProvider
	DefaultLimit int
	MaxLimit     int
}

// ListParams captures pagination for product listing.
type ListParams struct {
	Page  int
	Limit int
}

// Product is the list representation of a book.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	TitleBn     *string         `json:"titleBn,omitempty"`
	Slug        string          `json:"slug"`
	Price       decimal.Decimal `json:"price"`
	WeightGrams int32           `json:"weightGrams"`
}

// Variant is a purchasable edition or binding of a product.
type Variant struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	SKU         string          `json:"sku"`
	Binding     *string         `json:"binding,omitempty"`
	Edition     *string         `json:"edition,omitempty"`
	Price       decimal.Decimal `json:"price"`
	WeightGrams int32           `json:"weightGrams"`
}

// Warehouse is a stock-holding location.
type Warehouse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Address   *string   `json:"address,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductListResult contains list data and pagination metadata.
type ProductListResult struct {
	Items []Product
	Total int64
	Page  int
	Limit int
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Queries == nil {
		return nil, errors.New("catalog: queries provider is required")
	}
	maxLimit := cfg.MaxLimit
	if maxLimit < 1 {
		maxLimit = 100
	}
	defaultLimit := cfg.DefaultLimit
	if defaultLimit < 1 {
		defaultLimit = 50
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	return &Service{queries: cfg.Queries, defaultLimit: defaultLimit, maxLimit: maxLimit}, nil
}

// ParseListParams normalises raw query values into pagination parameters.
func (s *Service) ParseListParams(values url.Values) (ListParams, error) {
	params := ListParams{Page: 1, Limit: s.defaultLimit}
	if v := strings.TrimSpace(values.Get("page")); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return params, badRequest("page", "page must be a positive integer", err)
		}
		params.Page = page
	}
	if v := strings.TrimSpace(values.Get("limit")); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return params, badRequest("limit", "limit must be a positive integer", err)
		}
		params.Limit = limit
	}
	if params.Limit > s.maxLimit {
		params.Limit = s.maxLimit
	}
	return params, nil
}

// ListProducts returns a page of products.
func (s *Service) ListProducts(ctx context.Context, params ListParams) (ProductListResult, error) {
	total, err := s.queries.CountProducts(ctx)
	if err != nil {
		return ProductListResult{}, internalError("count products", err)
	}
	page := common.Pagination{Page: params.Page, PerPage: params.Limit}
	rows, err := s.queries.ListProducts(ctx, dbgen.ListProductsParams{
		Limit:  int32(params.Limit),
		Offset: int32(page.Offset()),
	})
	if err != nil {
		return ProductListResult{}, internalError("list products", err)
	}
	items := make([]Product, 0, len(rows))
	for _, row := range rows {
		items = append(items, Product{
			ID:          row.ID,
			Title:       row.Title,
			TitleBn:     textPtr(row.TitleBn),
			Slug:        row.Slug,
			Price:       row.Price,
			WeightGrams: row.WeightGrams,
		})
	}
	return ProductListResult{Items: items, Total: total, Page: params.Page, Limit: params.Limit}, nil
}

// ListVariants returns the variants of a product.
func (s *Service) ListVariants(ctx context.Context, productID int64) ([]Variant, error) {
	rows, err := s.queries.ListVariantsByProduct(ctx, productID)
	if err != nil {
		return nil, internalError("list variants", err)
	}
	out := make([]Variant, 0, len(rows))
	for _, row := range rows {
		out = append(out, Variant{
			ID:          row.ID,
			ProductID:   row.ProductID,
			SKU:         row.Sku,
			Binding:     textPtr(row.Binding),
			Edition:     textPtr(row.Edition),
			Price:       row.Price,
			WeightGrams: row.WeightGrams,
		})
	}
	return out, nil
}

// ListWarehouses returns every warehouse.
func (s *Service) ListWarehouses(ctx context.Context) ([]Warehouse, error) {
	rows, err := s.queries.ListWarehouses(ctx)
	if err != nil {
		return nil, internalError("list warehouses", err)
	}
	out := make([]Warehouse, 0, len(rows))
	for _, row := range rows {
		out = append(out, Warehouse{
			ID:        row.ID,
			Name:      row.Name,
			Code:      row.Code,
			Address:   textPtr(row.Address),
			IsActive:  row.IsActive,
			CreatedAt: row.CreatedAt.Time,
		})
	}
	return out, nil
}

func textPtr(v pgtype.Text) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func badRequest(field, message string, err error) error {
	return common.NewAppError("BAD_REQUEST", message, http.StatusBadRequest, err).
		WithDetails(map[string]string{"field": field})
}

func internalError(op string, err error) error {
	return common.NewAppError("INTERNAL", op+" failed", http.StatusInternalServerError, err)
}
