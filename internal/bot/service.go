package bot

import (
	"context"

	"usdtcalc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ConfigStore interface {
	CurrentRates(ctx context.Context) (domain.RateConfig, error)
	SetRates(ctx context.Context, buy, sell decimal.Decimal) (domain.RateConfig, error)
	FeeSchedule(ctx context.Context) ([]domain.FeeRange, error)
	SetFeeSchedule(ctx context.Context, ranges []domain.FeeRange) ([]domain.FeeRange, error)
}

type Calculator interface {
	Calculate(ctx context.Context, userID int64, amount decimal.Decimal, dir domain.Direction) (domain.Transaction, error)
	CalculateFromCounter(ctx context.Context, userID int64, counter decimal.Decimal, dir domain.Direction) (domain.Transaction, error)
}

type StatsReader interface {
	Summary(ctx context.Context) (domain.StatsSummary, error)
}

type Gate interface {
	IsAdmin(userID int64) bool
	Authorize(userID int64) error
}

// Service is the inbound surface of the bot. Admin operations are checked
// against the gate before any store is touched.
type Service struct {
	store  ConfigStore
	engine Calculator
	stats  StatsReader
	gate   Gate
}

func (s *Service) IsAdmin(userID int64) bool {
	return s.gate.IsAdmin(userID)
}

func (s *Service) HandleUserCalculate(ctx context.Context, userID int64, amount decimal.Decimal, dir domain.Direction) (domain.Transaction, error) {
	return s.engine.Calculate(ctx, userID, amount, dir)
}

// HandleUserCalculateFromCounter is HandleUserCalculate for an amount given
// in the counter currency.
func (s *Service) HandleUserCalculateFromCounter(ctx context.Context, userID int64, counter decimal.Decimal, dir domain.Direction) (domain.Transaction, error) {
	return s.engine.CalculateFromCounter(ctx, userID, counter, dir)
}

func (s *Service) HandleAdminSetRates(ctx context.Context, userID int64, buy, sell decimal.Decimal) (domain.RateConfig, error) {
	if err := s.authorize(userID, "setrates"); err != nil {
		return domain.RateConfig{}, err
	}
	return s.store.SetRates(ctx, buy, sell)
}

func (s *Service) HandleAdminSetFees(ctx context.Context, userID int64, ranges []domain.FeeRange) ([]domain.FeeRange, error) {
	if err := s.authorize(userID, "setfees"); err != nil {
		return nil, err
	}
	return s.store.SetFeeSchedule(ctx, ranges)
}

func (s *Service) HandleAdminGetStats(ctx context.Context, userID int64) (domain.StatsSummary, error) {
	if err := s.authorize(userID, "stats"); err != nil {
		return domain.StatsSummary{}, err
	}
	return s.stats.Summary(ctx)
}

func (s *Service) Rates(ctx context.Context) (domain.RateConfig, error) {
	return s.store.CurrentRates(ctx)
}

func (s *Service) FeeSchedule(ctx context.Context) ([]domain.FeeRange, error) {
	return s.store.FeeSchedule(ctx)
}

func (s *Service) authorize(userID int64, op string) error {
	if err := s.gate.Authorize(userID); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "op": op}).Warn("Admin operation denied")
		return err
	}
	return nil
}

func NewService(store ConfigStore, engine Calculator, stats StatsReader, gate Gate) *Service {
	return &Service{store: store, engine: engine, stats: stats, gate: gate}
}
