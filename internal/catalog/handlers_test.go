package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kitabghor/storefront-api/internal/catalog"
	dbgen "github.com/kitabghor/storefront-api/internal/db/gen"
)

type fakeCatalogQueries struct {
	products   []dbgen.Product
	variants   map[int64][]dbgen.ProductVariant
	warehouses []dbgen.Warehouse
	lastList   dbgen.ListProductsParams
	failList   bool
}

func (f *fakeCatalogQueries) ListWarehouses(ctx context.Context) ([]dbgen.Warehouse, error) {
	return f.warehouses, nil
}

func (f *fakeCatalogQueries) CountProducts(ctx context.Context) (int64, error) {
	return int64(len(f.products)), nil
}

func (f *fakeCatalogQueries) ListProducts(ctx context.Context, arg dbgen.ListProductsParams) ([]dbgen.Product, error) {
	f.lastList = arg
	if f.failList {
		return nil, errors.New("connection reset")
	}
	start := int(arg.Offset)
	if start > len(f.products) {
		return nil, nil
	}
	end := start + int(arg.Limit)
	if end > len(f.products) {
		end = len(f.products)
	}
	return f.products[start:end], nil
}

func (f *fakeCatalogQueries) ListVariantsByProduct(ctx context.Context, productID int64) ([]dbgen.ProductVariant, error) {
	return f.variants[productID], nil
}

func newFakeCatalogQueries() *fakeCatalogQueries {
	return &fakeCatalogQueries{
		products: []dbgen.Product{
			{ID: 1, Title: "Pather Panchali", TitleBn: pgtype.Text{String: "পথের পাঁচালী", Valid: true}, Slug: "pather-panchali", Price: decimal.RequireFromString("350"), WeightGrams: 420},
			{ID: 2, Title: "Debdas", Slug: "debdas", Price: decimal.RequireFromString("220"), WeightGrams: 250},
			{ID: 3, Title: "Gitanjali", Slug: "gitanjali", Price: decimal.RequireFromString("180"), WeightGrams: 200},
		},
		variants: map[int64][]dbgen.ProductVariant{
			1: {
				{ID: 10, ProductID: 1, Sku: "PP-HB", Binding: pgtype.Text{String: "hardcover", Valid: true}, Price: decimal.RequireFromString("450"), WeightGrams: 520},
				{ID: 11, ProductID: 1, Sku: "PP-PB", Binding: pgtype.Text{String: "paperback", Valid: true}, Price: decimal.RequireFromString("350"), WeightGrams: 420},
			},
		},
		warehouses: []dbgen.Warehouse{
			{ID: 1, Name: "Banglabazar", Code: "DHK-BB", IsActive: true},
		},
	}
}

func newHandler(t *testing.T, q *fakeCatalogQueries) *catalog.Handler {
	svc, err := catalog.NewService(catalog.ServiceConfig{Queries: q, DefaultLimit: 2, MaxLimit: 2})
	require.NoError(t, err)
	return catalog.NewHandler(catalog.HandlerConfig{Service: svc, Logger: zerolog.Nop()})
}

func TestProductsPagination(t *testing.T) {
	q := newFakeCatalogQueries()
	h := newHandler(t, q)

	rec := httptest.NewRecorder()
	h.Products(rec, httptest.NewRequest(http.MethodGet, "/api/products?page=2&limit=50", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "3", rec.Header().Get("X-Total-Count"))
	require.Equal(t, int32(2), q.lastList.Limit)
	require.Equal(t, int32(2), q.lastList.Offset)

	var resp struct {
		Data       []catalog.Product `json:"data"`
		Pagination struct {
			Page       int `json:"page"`
			PerPage    int `json:"perPage"`
			TotalItems int `json:"totalItems"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	require.Equal(t, "gitanjali", resp.Data[0].Slug)
	require.Equal(t, 2, resp.Pagination.Page)
	require.Equal(t, 3, resp.Pagination.TotalItems)
}

func TestProductsRejectsBadPage(t *testing.T) {
	h := newHandler(t, newFakeCatalogQueries())
	rec := httptest.NewRecorder()
	h.Products(rec, httptest.NewRequest(http.MethodGet, "/api/products?page=zero", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductsInternalError(t *testing.T) {
	q := newFakeCatalogQueries()
	q.failList = true
	h := newHandler(t, q)
	rec := httptest.NewRecorder()
	h.Products(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestVariantsAndWarehouses(t *testing.T) {
	h := newHandler(t, newFakeCatalogQueries())

	rec := httptest.NewRecorder()
	h.Variants(rec, httptest.NewRequest(http.MethodGet, "/api/product-variants?productId=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var variants struct {
		Data []catalog.Variant `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &variants))
	require.Len(t, variants.Data, 2)
	require.Equal(t, "hardcover", *variants.Data[0].Binding)

	rec = httptest.NewRecorder()
	h.Variants(rec, httptest.NewRequest(http.MethodGet, "/api/product-variants", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Warehouses(rec, httptest.NewRequest(http.MethodGet, "/api/warehouses", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var warehouses struct {
		Data []catalog.Warehouse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &warehouses))
	require.Equal(t, "DHK-BB", warehouses.Data[0].Code)
}
