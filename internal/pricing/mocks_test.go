package pricing

import (
	"context"
	"sync"

	"usdtcalc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockRateRepository struct{ mock.Mock }

func (m *MockRateRepository) GetCurrent(ctx context.Context) (domain.RateConfig, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(domain.RateConfig)
	return r, args.Error(1)
}

func (m *MockRateRepository) Insert(ctx context.Context, buy, sell decimal.Decimal) (domain.RateConfig, error) {
	args := m.Called(ctx, buy, sell)
	r, _ := args.Get(0).(domain.RateConfig)
	return r, args.Error(1)
}

func (m *MockRateRepository) History(ctx context.Context, limit int) ([]domain.RateConfig, error) {
	args := m.Called(ctx, limit)
	h, _ := args.Get(0).([]domain.RateConfig)
	return h, args.Error(1)
}

type MockFeeRepository struct{ mock.Mock }

func (m *MockFeeRepository) GetAll(ctx context.Context) ([]domain.FeeRange, error) {
	args := m.Called(ctx)
	f, _ := args.Get(0).([]domain.FeeRange)
	return f, args.Error(1)
}

func (m *MockFeeRepository) ReplaceAll(ctx context.Context, ranges []domain.FeeRange) error {
	args := m.Called(ctx, ranges)
	return args.Error(0)
}

type MockRecorder struct{ mock.Mock }

func (m *MockRecorder) Record(ctx context.Context, tx domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

type MockSnapshotSource struct{ mock.Mock }

func (m *MockSnapshotSource) Snapshot(ctx context.Context) (domain.ConfigSnapshot, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(domain.ConfigSnapshot)
	return s, args.Error(1)
}

// memCache is a synchronous stand-in for the ristretto cache.
type memCache struct {
	mu          sync.Mutex
	snap        *domain.ConfigSnapshot
	invalidated int
}

func (c *memCache) Get() (domain.ConfigSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap == nil {
		return domain.ConfigSnapshot{}, false
	}
	return *c.snap, true
}

func (c *memCache) Set(snap domain.ConfigSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = &snap
}

func (c *memCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = nil
	c.invalidated++
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func flatSchedule(fee string) []domain.FeeRange {
	return []domain.FeeRange{{Min: decimal.Zero, Flat: dp(fee)}}
}
