package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"usdtcalc/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type SnapshotSource interface {
	Snapshot(ctx context.Context) (domain.ConfigSnapshot, error)
}

type Recorder interface {
	Record(ctx context.Context, tx domain.Transaction) error
}

type priceFunc func(value decimal.Decimal, dir domain.Direction, snap domain.ConfigSnapshot) (Quote, error)

// Engine runs a calculation against the current configuration and records
// the result as a transaction.
type Engine struct {
	source   SnapshotSource
	calc     Calculator
	recorder Recorder
	now      func() time.Time
}

// Calculate prices amount USDT and records it for userID.
func (e *Engine) Calculate(ctx context.Context, userID int64, amount decimal.Decimal, dir domain.Direction) (domain.Transaction, error) {
	return e.run(ctx, userID, amount, dir, e.calc.Calculate)
}

// CalculateFromCounter prices a request given in the counter currency and
// records it for userID.
func (e *Engine) CalculateFromCounter(ctx context.Context, userID int64, counter decimal.Decimal, dir domain.Direction) (domain.Transaction, error) {
	return e.run(ctx, userID, counter, dir, e.calc.CalculateFromCounter)
}

func (e *Engine) run(ctx context.Context, userID int64, value decimal.Decimal, dir domain.Direction, price priceFunc) (domain.Transaction, error) {
	if err := validateRequest(value, dir); err != nil {
		return domain.Transaction{}, err
	}

	snap, err := e.source.Snapshot(ctx)
	if err != nil {
		return domain.Transaction{}, err
	}

	q, err := price(value, dir, snap)
	if err != nil {
		if errors.Is(err, domain.ErrNoMatchingFeeRange) {
			logrus.WithError(err).WithFields(logrus.Fields{
				"value":     value.String(),
				"direction": dir,
				"ranges":    len(snap.Fees),
			}).Error("Fee schedule does not cover amount")
		}
		return domain.Transaction{}, err
	}

	tx := domain.Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		Direction:     q.Direction,
		USDTAmount:    q.Amount,
		Rate:          q.Rate,
		CounterAmount: q.Counter,
		FeeCharged:    q.Fee,
		Profit:        q.Profit,
		CreatedAt:     e.now().UTC(),
	}
	if err = e.recorder.Record(ctx, tx); err != nil {
		return domain.Transaction{}, fmt.Errorf("failed to record calculation: %w", err)
	}
	return tx, nil
}

func NewEngine(source SnapshotSource, calc Calculator, recorder Recorder) *Engine {
	return &Engine{source: source, calc: calc, recorder: recorder, now: time.Now}
}
