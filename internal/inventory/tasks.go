package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

const (
	// TypeLowStock is the asynq task type emitted when a pair runs low.
	TypeLowStock = "inventory:low_stock"
	// TaskQueue is the asynq queue that carries inventory tasks.
	TaskQueue = "inventory"
)

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// LowStockPayload describes a warehouse/variant pair whose availability fell to the threshold.
type LowStockPayload struct {
	WarehouseID int64 `json:"warehouseId"`
	VariantID   int64 `json:"productVariantId"`
	Available   int32 `json:"available"`
	Threshold   int32 `json:"threshold"`
}

// NewLowStockTask builds the low-stock task for payload.
func NewLowStockTask(payload LowStockPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal low stock payload: %w", err)
	}
	return asynq.NewTask(TypeLowStock, body, asynq.Queue(TaskQueue), asynq.MaxRetry(3)), nil
}

// ParseLowStockPayload decodes the payload of a low-stock task.
func ParseLowStockPayload(task *asynq.Task) (LowStockPayload, error) {
	var payload LowStockPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LowStockPayload{}, fmt.Errorf("decode low stock payload: %w", err)
	}
	return payload, nil
}

// NewLowStockHandler returns the worker handler that reports low stock.
func NewLowStockHandler(logger zerolog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		payload, err := ParseLowStockPayload(task)
		if err != nil {
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		logger.Warn().
			Int64("warehouse_id", payload.WarehouseID).
			Int64("variant_id", payload.VariantID).
			Int32("available", payload.Available).
			Int32("threshold", payload.Threshold).
			Msg("low stock")
		return nil
	}
}

// uniqueWindow suppresses duplicate alerts for the same pair.
const uniqueWindow = 10 * time.Minute
