package inventory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/kitabghor/storefront-api/internal/db/gen"
)

// memStore is an in-memory Querier and TxRunner. InTx serialises callers and
// restores the previous state when the callback fails.
type memStore struct {
	mu  sync.Mutex
	txm sync.Mutex

	variants   map[int64]dbgen.ProductVariant
	warehouses map[int64]dbgen.Warehouse
	levels     map[int64]dbgen.StockLevel
	logs       []dbgen.InventoryLog
	nextLevel  int64
	nextLog    int64

	failLogInsert bool
	racedInsert   bool
}

func newMemStore() *memStore {
	return &memStore{
		variants: map[int64]dbgen.ProductVariant{
			5: {ID: 5, ProductID: 1, Sku: "PP-PB"},
			6: {ID: 6, ProductID: 1, Sku: "PP-HB"},
		},
		warehouses: map[int64]dbgen.Warehouse{
			1: {ID: 1, Name: "Banglabazar", Code: "DHK-BB", IsActive: true},
			2: {ID: 2, Name: "Chattogram", Code: "CTG", IsActive: true},
		},
		levels: map[int64]dbgen.StockLevel{},
	}
}

func (m *memStore) InTx(ctx context.Context, fn func(Querier) error) error {
	m.txm.Lock()
	defer m.txm.Unlock()

	m.mu.Lock()
	levels := make(map[int64]dbgen.StockLevel, len(m.levels))
	for k, v := range m.levels {
		levels[k] = v
	}
	logs := append([]dbgen.InventoryLog(nil), m.logs...)
	nextLevel, nextLog := m.nextLevel, m.nextLog
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.levels, m.logs = levels, logs
		m.nextLevel, m.nextLog = nextLevel, nextLog
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memStore) GetProductVariant(ctx context.Context, id int64) (dbgen.ProductVariant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.variants[id]
	if !ok {
		return dbgen.ProductVariant{}, pgx.ErrNoRows
	}
	return v, nil
}

func (m *memStore) GetWarehouse(ctx context.Context, id int64) (dbgen.Warehouse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.warehouses[id]
	if !ok {
		return dbgen.Warehouse{}, pgx.ErrNoRows
	}
	return w, nil
}

func (m *memStore) findPair(warehouseID, variantID int64) (dbgen.StockLevel, error) {
	for _, l := range m.levels {
		if l.WarehouseID == warehouseID && l.ProductVariantID == variantID {
			return l, nil
		}
	}
	return dbgen.StockLevel{}, pgx.ErrNoRows
}

func (m *memStore) GetStockLevelByPair(ctx context.Context, arg dbgen.GetStockLevelByPairParams) (dbgen.StockLevel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findPair(arg.WarehouseID, arg.ProductVariantID)
}

func (m *memStore) LockStockLevelByPair(ctx context.Context, arg dbgen.LockStockLevelByPairParams) (dbgen.StockLevel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findPair(arg.WarehouseID, arg.ProductVariantID)
}

func (m *memStore) LockStockLevel(ctx context.Context, id int64) (dbgen.StockLevel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.levels[id]
	if !ok {
		return dbgen.StockLevel{}, pgx.ErrNoRows
	}
	return l, nil
}

func (m *memStore) InsertStockLevel(ctx context.Context, arg dbgen.InsertStockLevelParams) (dbgen.StockLevel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.racedInsert {
		// Simulate another writer creating the pair between the lock and the insert.
		m.racedInsert = false
		m.nextLevel++
		m.levels[m.nextLevel] = dbgen.StockLevel{ID: m.nextLevel, WarehouseID: arg.WarehouseID, ProductVariantID: arg.ProductVariantID, Quantity: 7}
		m.nextLog++
		m.logs = append(m.logs, dbgen.InventoryLog{ID: m.nextLog, WarehouseID: arg.WarehouseID, ProductVariantID: arg.ProductVariantID, Change: 7, Reason: ReasonInitial})
		return dbgen.StockLevel{}, pgx.ErrNoRows
	}
	if _, err := m.findPair(arg.WarehouseID, arg.ProductVariantID); err == nil {
		return dbgen.StockLevel{}, pgx.ErrNoRows
	}
	m.nextLevel++
	l := dbgen.StockLevel{
		ID:               m.nextLevel,
		WarehouseID:      arg.WarehouseID,
		ProductVariantID: arg.ProductVariantID,
		Quantity:         arg.Quantity,
		UpdatedAt:        pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	m.levels[l.ID] = l
	return l, nil
}

func (m *memStore) UpdateStockQuantity(ctx context.Context, arg dbgen.UpdateStockQuantityParams) (dbgen.StockLevel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.levels[arg.ID]
	if !ok {
		return dbgen.StockLevel{}, pgx.ErrNoRows
	}
	l.Quantity = arg.Quantity
	l.UpdatedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}
	m.levels[l.ID] = l
	return l, nil
}

func (m *memStore) UpdateStockReserved(ctx context.Context, arg dbgen.UpdateStockReservedParams) (dbgen.StockLevel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.levels[arg.ID]
	if !ok {
		return dbgen.StockLevel{}, pgx.ErrNoRows
	}
	l.Reserved = arg.Reserved
	m.levels[l.ID] = l
	return l, nil
}

func (m *memStore) DeleteStockLevel(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.levels, id)
	return nil
}

func (m *memStore) InsertInventoryLog(ctx context.Context, arg dbgen.InsertInventoryLogParams) (dbgen.InventoryLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failLogInsert {
		return dbgen.InventoryLog{}, errors.New("disk full")
	}
	m.nextLog++
	entry := dbgen.InventoryLog{
		ID:               m.nextLog,
		ProductVariantID: arg.ProductVariantID,
		WarehouseID:      arg.WarehouseID,
		Change:           arg.Change,
		Reason:           arg.Reason,
		CreatedAt:        pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	m.logs = append(m.logs, entry)
	return entry, nil
}

func (m *memStore) ListStockLevelsByProduct(ctx context.Context, productID int64) ([]dbgen.ListStockLevelsByProductRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []dbgen.ListStockLevelsByProductRow
	for _, l := range m.levels {
		v := m.variants[l.ProductVariantID]
		if v.ProductID != productID {
			continue
		}
		out = append(out, dbgen.ListStockLevelsByProductRow{
			ID:               l.ID,
			WarehouseID:      l.WarehouseID,
			ProductVariantID: l.ProductVariantID,
			Quantity:         l.Quantity,
			Reserved:         l.Reserved,
			UpdatedAt:        l.UpdatedAt,
			WarehouseName:    m.warehouses[l.WarehouseID].Name,
			Sku:              v.Sku,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) ListInventoryLogsByProduct(ctx context.Context, arg dbgen.ListInventoryLogsByProductParams) ([]dbgen.ListInventoryLogsByProductRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []dbgen.ListInventoryLogsByProductRow
	for i := len(m.logs) - 1; i >= 0 && len(out) < int(arg.Limit); i-- {
		e := m.logs[i]
		v := m.variants[e.ProductVariantID]
		if v.ProductID != arg.ProductID {
			continue
		}
		out = append(out, dbgen.ListInventoryLogsByProductRow{
			ID:               e.ID,
			ProductVariantID: e.ProductVariantID,
			WarehouseID:      e.WarehouseID,
			Change:           e.Change,
			Reason:           e.Reason,
			CreatedAt:        e.CreatedAt,
			WarehouseName:    m.warehouses[e.WarehouseID].Name,
			Sku:              v.Sku,
		})
	}
	return out, nil
}

func (m *memStore) changes(warehouseID, variantID int64) []int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []int32
	for _, e := range m.logs {
		if e.WarehouseID == warehouseID && e.ProductVariantID == variantID {
			out = append(out, e.Change)
		}
	}
	return out
}

type recordingEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (r *recordingEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

func newTestLedger(store *memStore, tasks TaskEnqueuer, threshold int) *Ledger {
	return NewLedger(LedgerConfig{
		Tx:                store,
		Reads:             store,
		Tasks:             tasks,
		LowStockThreshold: threshold,
	})
}
