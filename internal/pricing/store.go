package pricing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"usdtcalc/internal/adapters"
	"usdtcalc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// Store owns the current rates and fee schedule. Writers are exclusive and
// drop the cached snapshot before returning, so a caller's next read sees
// its own write.
type Store struct {
	mu    sync.RWMutex
	rates adapters.RateRepository
	fees  adapters.FeeRepository
	cache adapters.ConfigCache
}

func (s *Store) CurrentRates(ctx context.Context) (domain.RateConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if snap, ok := s.cache.Get(); ok {
		return snap.Rates, nil
	}
	return s.rates.GetCurrent(ctx)
}

func (s *Store) SetRates(ctx context.Context, buy, sell decimal.Decimal) (domain.RateConfig, error) {
	if err := domain.ValidateRates(buy, sell); err != nil {
		return domain.RateConfig{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rate, err := s.rates.Insert(ctx, buy, sell)
	if err != nil {
		return domain.RateConfig{}, err
	}
	s.cache.Invalidate()

	logrus.WithFields(logrus.Fields{
		"buy_rate":  rate.BuyRate.String(),
		"sell_rate": rate.SellRate.String(),
		"rate_id":   rate.ID,
	}).Info("Rates updated")
	return rate, nil
}

func (s *Store) FeeSchedule(ctx context.Context) ([]domain.FeeRange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if snap, ok := s.cache.Get(); ok {
		return append([]domain.FeeRange(nil), snap.Fees...), nil
	}
	return s.fees.GetAll(ctx)
}

// SetFeeSchedule validates and normalizes ranges, then replaces the stored
// schedule as a whole. The normalized schedule is returned.
func (s *Store) SetFeeSchedule(ctx context.Context, ranges []domain.FeeRange) ([]domain.FeeRange, error) {
	normalized, err := domain.NormalizeFeeSchedule(ranges)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.fees.ReplaceAll(ctx, normalized); err != nil {
		return nil, err
	}
	s.cache.Invalidate()

	logrus.WithField("ranges", len(normalized)).Info("Fee schedule replaced")
	return normalized, nil
}

// RateHistory returns the most recent rate changes first.
func (s *Store) RateHistory(ctx context.Context, limit int) ([]domain.RateConfig, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.rates.History(ctx, limit)
}

// Snapshot returns rates and fee schedule as one consistent value.
func (s *Store) Snapshot(ctx context.Context) (domain.ConfigSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if snap, ok := s.cache.Get(); ok {
		return snap, nil
	}

	rates, err := s.rates.GetCurrent(ctx)
	if err != nil {
		return domain.ConfigSnapshot{}, err
	}
	fees, err := s.fees.GetAll(ctx)
	if err != nil {
		return domain.ConfigSnapshot{}, err
	}
	if len(fees) == 0 {
		return domain.ConfigSnapshot{}, fmt.Errorf("fee schedule is empty: %w", domain.ErrConfigMissing)
	}

	snap := domain.ConfigSnapshot{Rates: rates, Fees: fees}
	s.cache.Set(snap)
	return snap, nil
}

// SeedDefaults stores the given rates and schedule only where nothing has
// been configured yet. Either part may be skipped by passing zero values.
func (s *Store) SeedDefaults(ctx context.Context, buy, sell decimal.Decimal, schedule []domain.FeeRange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seeded := false
	if !buy.IsZero() || !sell.IsZero() {
		_, err := s.rates.GetCurrent(ctx)
		switch {
		case errors.Is(err, domain.ErrConfigMissing):
			if err = domain.ValidateRates(buy, sell); err != nil {
				return fmt.Errorf("invalid default rates: %w", err)
			}
			if _, err = s.rates.Insert(ctx, buy, sell); err != nil {
				return err
			}
			seeded = true
			logrus.WithFields(logrus.Fields{"buy_rate": buy.String(), "sell_rate": sell.String()}).Info("Default rates seeded")
		case err != nil:
			return err
		}
	}

	if len(schedule) > 0 {
		existing, err := s.fees.GetAll(ctx)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			normalized, normErr := domain.NormalizeFeeSchedule(schedule)
			if normErr != nil {
				return fmt.Errorf("invalid default fee schedule: %w", normErr)
			}
			if err = s.fees.ReplaceAll(ctx, normalized); err != nil {
				return err
			}
			seeded = true
			logrus.WithField("ranges", len(normalized)).Info("Default fee schedule seeded")
		}
	}

	if seeded {
		s.cache.Invalidate()
	}
	return nil
}

func NewStore(rates adapters.RateRepository, fees adapters.FeeRepository, cache adapters.ConfigCache) *Store {
	return &Store{rates: rates, fees: fees, cache: cache}
}
