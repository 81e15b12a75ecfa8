package shipping_test

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/kitabghor/storefront-api/internal/db/gen"
)

type mockQueries struct {
	mu         sync.Mutex
	nextID     int64
	rates      map[int64]dbgen.ShippingRate
	areaListed map[string]int
	// afterList runs once after the next active-rate read returns its snapshot.
	afterList func()
}

func newMockQueries() *mockQueries {
	return &mockQueries{
		rates:      make(map[int64]dbgen.ShippingRate),
		areaListed: make(map[string]int),
	}
}

func (m *mockQueries) seed(rate dbgen.ShippingRate) dbgen.ShippingRate {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rate.ID == 0 {
		m.nextID++
		rate.ID = m.nextID
	} else if rate.ID > m.nextID {
		m.nextID = rate.ID
	}
	if rate.Country == "" {
		rate.Country = "BD"
	}
	m.rates[rate.ID] = rate
	return rate
}

func (m *mockQueries) listCalls(area string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.areaListed[area]
}

func (m *mockQueries) sorted(filter func(dbgen.ShippingRate) bool) []dbgen.ShippingRate {
	out := make([]dbgen.ShippingRate, 0, len(m.rates))
	for _, rate := range m.rates {
		if filter(rate) {
			out = append(out, rate)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Area != out[j].Area {
			return out[i].Area < out[j].Area
		}
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *mockQueries) ListActiveShippingRatesByArea(ctx context.Context, area string) ([]dbgen.ShippingRate, error) {
	m.mu.Lock()
	m.areaListed[area]++
	rows := m.sorted(func(r dbgen.ShippingRate) bool { return r.IsActive && r.Area == area })
	hook := m.afterList
	m.afterList = nil
	m.mu.Unlock()
	if hook != nil {
		hook()
	}
	return rows, nil
}

func (m *mockQueries) ListShippingRates(ctx context.Context) ([]dbgen.ShippingRate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(dbgen.ShippingRate) bool { return true }), nil
}

func (m *mockQueries) GetShippingRate(ctx context.Context, id int64) (dbgen.ShippingRate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rate, ok := m.rates[id]
	if !ok {
		return dbgen.ShippingRate{}, pgx.ErrNoRows
	}
	return rate, nil
}

func (m *mockQueries) CreateShippingRate(ctx context.Context, arg dbgen.CreateShippingRateParams) (dbgen.ShippingRate, error) {
	return m.seed(dbgen.ShippingRate{
		Country:      arg.Country,
		Area:         arg.Area,
		BaseCost:     arg.BaseCost,
		WeightSlabs:  arg.WeightSlabs,
		FreeMinOrder: arg.FreeMinOrder,
		IsActive:     arg.IsActive,
		Priority:     arg.Priority,
		CreatedAt:    pgtype.Timestamptz{Valid: true},
		UpdatedAt:    pgtype.Timestamptz{Valid: true},
	}), nil
}

func (m *mockQueries) UpdateShippingRate(ctx context.Context, arg dbgen.UpdateShippingRateParams) (dbgen.ShippingRate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rate, ok := m.rates[arg.ID]
	if !ok {
		return dbgen.ShippingRate{}, pgx.ErrNoRows
	}
	rate.Country = arg.Country
	rate.Area = arg.Area
	rate.BaseCost = arg.BaseCost
	rate.WeightSlabs = arg.WeightSlabs
	rate.FreeMinOrder = arg.FreeMinOrder
	rate.IsActive = arg.IsActive
	rate.Priority = arg.Priority
	m.rates[arg.ID] = rate
	return rate, nil
}

func (m *mockQueries) DeleteShippingRate(ctx context.Context, id int64) (dbgen.ShippingRate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rate, ok := m.rates[id]
	if !ok {
		return dbgen.ShippingRate{}, pgx.ErrNoRows
	}
	delete(m.rates, id)
	return rate, nil
}
