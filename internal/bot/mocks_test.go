package bot

import (
	"context"

	"usdtcalc/internal/access"
	"usdtcalc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockConfigStore struct{ mock.Mock }

func (m *MockConfigStore) CurrentRates(ctx context.Context) (domain.RateConfig, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(domain.RateConfig)
	return r, args.Error(1)
}

func (m *MockConfigStore) SetRates(ctx context.Context, buy, sell decimal.Decimal) (domain.RateConfig, error) {
	args := m.Called(ctx, buy, sell)
	r, _ := args.Get(0).(domain.RateConfig)
	return r, args.Error(1)
}

func (m *MockConfigStore) FeeSchedule(ctx context.Context) ([]domain.FeeRange, error) {
	args := m.Called(ctx)
	f, _ := args.Get(0).([]domain.FeeRange)
	return f, args.Error(1)
}

func (m *MockConfigStore) SetFeeSchedule(ctx context.Context, ranges []domain.FeeRange) ([]domain.FeeRange, error) {
	args := m.Called(ctx, ranges)
	f, _ := args.Get(0).([]domain.FeeRange)
	return f, args.Error(1)
}

type MockCalculator struct{ mock.Mock }

func (m *MockCalculator) Calculate(ctx context.Context, userID int64, amount decimal.Decimal, dir domain.Direction) (domain.Transaction, error) {
	args := m.Called(ctx, userID, amount, dir)
	tx, _ := args.Get(0).(domain.Transaction)
	return tx, args.Error(1)
}

func (m *MockCalculator) CalculateFromCounter(ctx context.Context, userID int64, counter decimal.Decimal, dir domain.Direction) (domain.Transaction, error) {
	args := m.Called(ctx, userID, counter, dir)
	tx, _ := args.Get(0).(domain.Transaction)
	return tx, args.Error(1)
}

type MockStatsReader struct{ mock.Mock }

func (m *MockStatsReader) Summary(ctx context.Context) (domain.StatsSummary, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(domain.StatsSummary)
	return s, args.Error(1)
}

const (
	adminID = int64(42)
	userID  = int64(7)
)

type fixture struct {
	store  *MockConfigStore
	engine *MockCalculator
	stats  *MockStatsReader
	svc    *Service
	disp   *Dispatcher
}

func newFixture() fixture {
	f := fixture{
		store:  new(MockConfigStore),
		engine: new(MockCalculator),
		stats:  new(MockStatsReader),
	}
	f.svc = NewService(f.store, f.engine, f.stats, access.NewGate([]int64{adminID}))
	f.disp = NewDispatcher(f.svc, "Rp", 2)
	return f
}

func (f fixture) assertNoMutations(t mock.TestingT) {
	f.store.AssertNotCalled(t, "SetRates", mock.Anything, mock.Anything, mock.Anything)
	f.store.AssertNotCalled(t, "SetFeeSchedule", mock.Anything, mock.Anything)
	f.stats.AssertNotCalled(t, "Summary", mock.Anything)
}
