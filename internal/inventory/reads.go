package inventory

import (
	"context"
	"fmt"
	"time"

	dbgen "github.com/kitabghor/storefront-api/internal/db/gen"
)

const (
	defaultLogLimit = 100
	maxLogLimit     = 500
)

// StockRow is a stock level joined with its warehouse and variant labels.
type StockRow struct {
	StockLevel
	WarehouseName string `json:"warehouseName"`
	SKU           string `json:"sku"`
}

// LogEntry is a single inventory log record.
type LogEntry struct {
	ID            int64     `json:"id"`
	VariantID     int64     `json:"productVariantId"`
	WarehouseID   int64     `json:"warehouseId"`
	WarehouseName string    `json:"warehouseName"`
	SKU           string    `json:"sku"`
	Change        int32     `json:"change"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ListStockLevels returns every stock level of a product's variants.
func (l *Ledger) ListStockLevels(ctx context.Context, productID int64) ([]StockRow, error) {
	rows, err := l.reads.ListStockLevelsByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	out := make([]StockRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, StockRow{
			StockLevel: StockLevel{
				ID:          row.ID,
				WarehouseID: row.WarehouseID,
				VariantID:   row.ProductVariantID,
				Quantity:    row.Quantity,
				Reserved:    row.Reserved,
				Available:   available(row.Quantity, row.Reserved),
				UpdatedAt:   row.UpdatedAt.Time,
			},
			WarehouseName: row.WarehouseName,
			SKU:           row.Sku,
		})
	}
	return out, nil
}

// ListLogs returns the newest inventory log entries of a product's variants.
func (l *Ledger) ListLogs(ctx context.Context, productID int64, limit int) ([]LogEntry, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}
	rows, err := l.reads.ListInventoryLogsByProduct(ctx, dbgen.ListInventoryLogsByProductParams{
		ProductID: productID,
		Limit:     int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list inventory logs: %w", err)
	}
	out := make([]LogEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, LogEntry{
			ID:            row.ID,
			VariantID:     row.ProductVariantID,
			WarehouseID:   row.WarehouseID,
			WarehouseName: row.WarehouseName,
			SKU:           row.Sku,
			Change:        row.Change,
			Reason:        row.Reason,
			CreatedAt:     row.CreatedAt.Time,
		})
	}
	return out, nil
}
