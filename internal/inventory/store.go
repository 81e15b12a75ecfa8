package inventory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	dbgen "github.com/kitabghor/storefront-api/internal/db/gen"
)

// Querier is the subset of generated queries used by the stock ledger.
type Querier interface {
	GetProductVariant(ctx context.Context, id int64) (dbgen.ProductVariant, error)
	GetWarehouse(ctx context.Context, id int64) (dbgen.Warehouse, error)
	GetStockLevelByPair(ctx context.Context, arg dbgen.GetStockLevelByPairParams) (dbgen.StockLevel, error)
	LockStockLevelByPair(ctx context.Context, arg dbgen.LockStockLevelByPairParams) (dbgen.StockLevel, error)
	LockStockLevel(ctx context.Context, id int64) (dbgen.StockLevel, error)
	InsertStockLevel(ctx context.Context, arg dbgen.InsertStockLevelParams) (dbgen.StockLevel, error)
	UpdateStockQuantity(ctx context.Context, arg dbgen.UpdateStockQuantityParams) (dbgen.StockLevel, error)
	UpdateStockReserved(ctx context.Context, arg dbgen.UpdateStockReservedParams) (dbgen.StockLevel, error)
	DeleteStockLevel(ctx context.Context, id int64) error
	InsertInventoryLog(ctx context.Context, arg dbgen.InsertInventoryLogParams) (dbgen.InventoryLog, error)
	ListStockLevelsByProduct(ctx context.Context, productID int64) ([]dbgen.ListStockLevelsByProductRow, error)
	ListInventoryLogsByProduct(ctx context.Context, arg dbgen.ListInventoryLogsByProductParams) ([]dbgen.ListInventoryLogsByProductRow, error)
}

// TxRunner runs fn inside a single database transaction. The transaction
// commits only when fn returns nil.
type TxRunner interface {
	InTx(ctx context.Context, fn func(Querier) error) error
}

// PoolTx runs ledger transactions on a pgx pool.
type PoolTx struct {
	Pool    *pgxpool.Pool
	Queries *dbgen.Queries
}

// InTx implements TxRunner.
func (p PoolTx) InTx(ctx context.Context, fn func(Querier) error) error {
	tx, err := p.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin stock transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(p.Queries.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit stock transaction: %w", err)
	}
	return nil
}
