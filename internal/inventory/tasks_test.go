package inventory

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLowStockHandlerLogsAlert(t *testing.T) {
	var buf bytes.Buffer
	handler := NewLowStockHandler(zerolog.New(&buf))

	task, err := NewLowStockTask(LowStockPayload{WarehouseID: 2, VariantID: 6, Available: 1, Threshold: 5})
	require.NoError(t, err)
	require.NoError(t, handler.ProcessTask(context.Background(), task))
	require.Contains(t, buf.String(), `"message":"low stock"`)
	require.Contains(t, buf.String(), `"variant_id":6`)
}

func TestLowStockHandlerSkipsRetryOnBadPayload(t *testing.T) {
	handler := NewLowStockHandler(zerolog.Nop())
	err := handler.ProcessTask(context.Background(), asynq.NewTask(TypeLowStock, []byte("not json")))
	require.Error(t, err)
	require.True(t, errors.Is(err, asynq.SkipRetry))
}
