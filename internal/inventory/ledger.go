package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	dbgen "github.com/kitabghor/storefront-api/internal/db/gen"
	"github.com/kitabghor/storefront-api/internal/obs"
)

var (
	// ErrInvalidQuantity is returned for negative, fractional or oversized quantities.
	ErrInvalidQuantity = errors.New("quantity must be a whole number between 0 and 2147483647")
	// ErrStockLevelNotFound is returned when a stock level row does not exist.
	ErrStockLevelNotFound = errors.New("stock level not found")
	// ErrVariantNotFound is returned when the product variant does not exist.
	ErrVariantNotFound = errors.New("product variant not found")
	// ErrWarehouseNotFound is returned when the warehouse does not exist.
	ErrWarehouseNotFound = errors.New("warehouse not found")
	// ErrInsufficientStock is returned when a reservation exceeds available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Inventory log reasons written by the ledger.
const (
	ReasonInitial = "initial stock"
	ReasonManual  = "manual adjustment"
	ReasonCleared = "stock entry cleared"
)

// metric labels stay bounded even though callers may pass free-form reasons.
const (
	metricInitial    = "initial"
	metricAdjustment = "adjustment"
	metricCleared    = "cleared"
	metricReserve    = "reserve"
	metricRelease    = "release"
)

const (
	maxReasonLength = 200
	maxQuantity     = math.MaxInt32
)

// StockLevel is the ledger view of a warehouse/variant pair.
type StockLevel struct {
	ID          int64     `json:"id"`
	WarehouseID int64     `json:"warehouseId"`
	VariantID   int64     `json:"productVariantId"`
	Quantity    int32     `json:"quantity"`
	Reserved    int32     `json:"reserved"`
	Available   int32     `json:"available"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SetInput sets the absolute quantity of a pair.
type SetInput struct {
	VariantID   int64
	WarehouseID int64
	Quantity    int64
	Reason      string
}

// ReservationInput reserves or releases units of a pair.
type ReservationInput struct {
	VariantID   int64
	WarehouseID int64
	Quantity    int64
}

// PairLocker serialises work on a key across processes. lock.Locker satisfies it.
type PairLocker interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error
}

// LedgerConfig configures a Ledger.
type LedgerConfig struct {
	Tx                TxRunner
	Reads             Querier
	Locker            PairLocker
	LockTTL           time.Duration
	Tasks             TaskEnqueuer
	LowStockThreshold int
	Logger            zerolog.Logger
}

// Ledger maintains stock levels and their append-only inventory log.
type Ledger struct {
	tx        TxRunner
	reads     Querier
	locker    PairLocker
	lockTTL   time.Duration
	tasks     TaskEnqueuer
	threshold int32
	logger    zerolog.Logger
}

// NewLedger constructs a Ledger.
func NewLedger(cfg LedgerConfig) *Ledger {
	ttl := cfg.LockTTL
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	threshold := cfg.LowStockThreshold
	if threshold < 0 {
		threshold = 0
	}
	return &Ledger{
		tx:        cfg.Tx,
		reads:     cfg.Reads,
		locker:    cfg.Locker,
		lockTTL:   ttl,
		tasks:     cfg.Tasks,
		threshold: int32(threshold),
		logger:    cfg.Logger,
	}
}

// SetStockLevel upserts the quantity of a pair and appends the signed delta to the inventory log.
func (l *Ledger) SetStockLevel(ctx context.Context, in SetInput) (StockLevel, error) {
	if in.Quantity < 0 || in.Quantity > maxQuantity {
		return StockLevel{}, ErrInvalidQuantity
	}
	if in.VariantID <= 0 {
		return StockLevel{}, ErrVariantNotFound
	}
	if in.WarehouseID <= 0 {
		return StockLevel{}, ErrWarehouseNotFound
	}
	quantity := int32(in.Quantity)
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = ReasonManual
	}
	if runes := []rune(reason); len(runes) > maxReasonLength {
		reason = string(runes[:maxReasonLength])
	}

	var (
		level  dbgen.StockLevel
		change int32
		label  string
	)
	err := l.withPairLock(ctx, in.WarehouseID, in.VariantID, func(ctx context.Context) error {
		return l.tx.InTx(ctx, func(q Querier) error {
			if _, err := q.GetProductVariant(ctx, in.VariantID); err != nil {
				return notFound(err, ErrVariantNotFound)
			}
			if _, err := q.GetWarehouse(ctx, in.WarehouseID); err != nil {
				return notFound(err, ErrWarehouseNotFound)
			}
			pair := dbgen.LockStockLevelByPairParams{WarehouseID: in.WarehouseID, ProductVariantID: in.VariantID}
			existing, err := q.LockStockLevelByPair(ctx, pair)
			if errors.Is(err, pgx.ErrNoRows) {
				created, insErr := q.InsertStockLevel(ctx, dbgen.InsertStockLevelParams{
					WarehouseID:      in.WarehouseID,
					ProductVariantID: in.VariantID,
					Quantity:         quantity,
				})
				switch {
				case insErr == nil:
					level, change, label = created, quantity, metricInitial
					return appendLog(ctx, q, created, quantity, ReasonInitial)
				case errors.Is(insErr, pgx.ErrNoRows):
					// Lost the insert race; the row exists now.
					existing, err = q.LockStockLevelByPair(ctx, pair)
				default:
					return fmt.Errorf("insert stock level: %w", insErr)
				}
			}
			if err != nil {
				return fmt.Errorf("lock stock level: %w", err)
			}
			delta := quantity - existing.Quantity
			if delta == 0 {
				level = existing
				return nil
			}
			updated, err := q.UpdateStockQuantity(ctx, dbgen.UpdateStockQuantityParams{ID: existing.ID, Quantity: quantity})
			if err != nil {
				return fmt.Errorf("update stock level: %w", err)
			}
			level, change, label = updated, delta, metricAdjustment
			return appendLog(ctx, q, updated, delta, reason)
		})
	})
	if err != nil {
		return StockLevel{}, err
	}

	view := toStockLevel(level)
	if label != "" {
		obs.ObserveStockAdjustment(label)
		l.logger.Info().
			Int64("stock_level_id", view.ID).
			Int64("warehouse_id", view.WarehouseID).
			Int64("variant_id", view.VariantID).
			Int32("change", change).
			Msg("stock level set")
	}
	if change < 0 {
		l.maybeAlert(ctx, view)
	}
	return view, nil
}

// DeleteStockLevel removes a stock level row and logs the cleared quantity.
func (l *Ledger) DeleteStockLevel(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrStockLevelNotFound
	}
	var cleared dbgen.StockLevel
	err := l.tx.InTx(ctx, func(q Querier) error {
		row, err := q.LockStockLevel(ctx, id)
		if err != nil {
			return notFound(err, ErrStockLevelNotFound)
		}
		if err := q.DeleteStockLevel(ctx, row.ID); err != nil {
			return fmt.Errorf("delete stock level: %w", err)
		}
		cleared = row
		return appendLog(ctx, q, row, -row.Quantity, ReasonCleared)
	})
	if err != nil {
		return err
	}
	obs.ObserveStockAdjustment(metricCleared)
	l.logger.Info().
		Int64("stock_level_id", cleared.ID).
		Int64("warehouse_id", cleared.WarehouseID).
		Int64("variant_id", cleared.ProductVariantID).
		Int32("change", -cleared.Quantity).
		Msg("stock level cleared")
	return nil
}

// Available returns max(0, quantity - reserved) for the pair, or 0 when no row exists.
func (l *Ledger) Available(ctx context.Context, variantID, warehouseID int64) (int32, error) {
	row, err := l.reads.GetStockLevelByPair(ctx, dbgen.GetStockLevelByPairParams{
		WarehouseID:      warehouseID,
		ProductVariantID: variantID,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get stock level: %w", err)
	}
	return available(row.Quantity, row.Reserved), nil
}

// Reserve holds units of a pair against pending orders.
func (l *Ledger) Reserve(ctx context.Context, in ReservationInput) (StockLevel, error) {
	if in.Quantity <= 0 || in.Quantity > maxQuantity {
		return StockLevel{}, ErrInvalidQuantity
	}
	level, err := l.adjustReserved(ctx, in, func(row dbgen.StockLevel) (int32, error) {
		if int64(available(row.Quantity, row.Reserved)) < in.Quantity {
			return 0, ErrInsufficientStock
		}
		return row.Reserved + int32(in.Quantity), nil
	}, ErrInsufficientStock)
	if err != nil {
		return StockLevel{}, err
	}
	obs.ObserveStockAdjustment(metricReserve)
	l.maybeAlert(ctx, level)
	return level, nil
}

// Release returns previously reserved units. The reserved count never drops below zero.
func (l *Ledger) Release(ctx context.Context, in ReservationInput) (StockLevel, error) {
	if in.Quantity <= 0 || in.Quantity > maxQuantity {
		return StockLevel{}, ErrInvalidQuantity
	}
	level, err := l.adjustReserved(ctx, in, func(row dbgen.StockLevel) (int32, error) {
		next := int64(row.Reserved) - in.Quantity
		if next < 0 {
			next = 0
		}
		return int32(next), nil
	}, ErrStockLevelNotFound)
	if err != nil {
		return StockLevel{}, err
	}
	obs.ObserveStockAdjustment(metricRelease)
	return level, nil
}

func (l *Ledger) adjustReserved(ctx context.Context, in ReservationInput, next func(dbgen.StockLevel) (int32, error), missing error) (StockLevel, error) {
	var level dbgen.StockLevel
	err := l.withPairLock(ctx, in.WarehouseID, in.VariantID, func(ctx context.Context) error {
		return l.tx.InTx(ctx, func(q Querier) error {
			row, err := q.LockStockLevelByPair(ctx, dbgen.LockStockLevelByPairParams{
				WarehouseID:      in.WarehouseID,
				ProductVariantID: in.VariantID,
			})
			if err != nil {
				return notFound(err, missing)
			}
			reserved, err := next(row)
			if err != nil {
				return err
			}
			if reserved == row.Reserved {
				level = row
				return nil
			}
			level, err = q.UpdateStockReserved(ctx, dbgen.UpdateStockReservedParams{ID: row.ID, Reserved: reserved})
			if err != nil {
				return fmt.Errorf("update reserved stock: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return StockLevel{}, err
	}
	return toStockLevel(level), nil
}

func (l *Ledger) withPairLock(ctx context.Context, warehouseID, variantID int64, fn func(context.Context) error) error {
	if l.locker == nil {
		return fn(ctx)
	}
	return l.locker.WithLock(ctx, LockKey(warehouseID, variantID), l.lockTTL, fn)
}

func (l *Ledger) maybeAlert(ctx context.Context, level StockLevel) {
	if l.tasks == nil || l.threshold <= 0 || level.Available > l.threshold {
		return
	}
	task, err := NewLowStockTask(LowStockPayload{
		WarehouseID: level.WarehouseID,
		VariantID:   level.VariantID,
		Available:   level.Available,
		Threshold:   l.threshold,
	})
	if err == nil {
		_, err = l.tasks.EnqueueContext(ctx, task, asynq.Unique(uniqueWindow))
	}
	switch {
	case err == nil:
		obs.ObserveLowStockAlert()
	case errors.Is(err, asynq.ErrDuplicateTask):
	default:
		l.logger.Warn().Err(err).
			Int64("warehouse_id", level.WarehouseID).
			Int64("variant_id", level.VariantID).
			Msg("enqueue low stock alert failed")
	}
}

// LockKey returns the redis lock key guarding a warehouse/variant pair.
func LockKey(warehouseID, variantID int64) string {
	return "lock:stock:" + strconv.FormatInt(warehouseID, 10) + ":" + strconv.FormatInt(variantID, 10)
}

func appendLog(ctx context.Context, q Querier, level dbgen.StockLevel, change int32, reason string) error {
	if _, err := q.InsertInventoryLog(ctx, dbgen.InsertInventoryLogParams{
		ProductVariantID: level.ProductVariantID,
		WarehouseID:      level.WarehouseID,
		Change:           change,
		Reason:           reason,
	}); err != nil {
		return fmt.Errorf("append inventory log: %w", err)
	}
	return nil
}

func notFound(err, sentinel error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return err
}

func available(quantity, reserved int32) int32 {
	if reserved >= quantity {
		return 0
	}
	return quantity - reserved
}

func toStockLevel(row dbgen.StockLevel) StockLevel {
	return StockLevel{
		ID:          row.ID,
		WarehouseID: row.WarehouseID,
		VariantID:   row.ProductVariantID,
		Quantity:    row.Quantity,
		Reserved:    row.Reserved,
		Available:   available(row.Quantity, row.Reserved),
		UpdatedAt:   row.UpdatedAt.Time,
	}
}
