package adapters

import (
	"context"

	"usdtcalc/internal/domain"

	"github.com/shopspring/decimal"
)

type RateRepository interface {
	GetCurrent(ctx context.Context) (domain.RateConfig, error)
	Insert(ctx context.Context, buy, sell decimal.Decimal) (domain.RateConfig, error)
	History(ctx context.Context, limit int) ([]domain.RateConfig, error)
}

type FeeRepository interface {
	GetAll(ctx context.Context) ([]domain.FeeRange, error)
	ReplaceAll(ctx context.Context, ranges []domain.FeeRange) error
}

type TransactionRepository interface {
	// Append stores tx and folds it into the summary atomically.
	Append(ctx context.Context, tx domain.Transaction) error
	GetSummary(ctx context.Context) (domain.StatsSummary, error)
	// Recompute aggregates the whole log and, when it differs from the stored
	// summary, overwrites it. It reports whether the summary was repaired.
	Recompute(ctx context.Context) (domain.StatsSummary, bool, error)
}

type TransactionPublisher interface {
	PublishTransaction(ctx context.Context, tx domain.Transaction) error
	Close() error
}

// ConfigCache holds the current pricing snapshot between admin writes.
type ConfigCache interface {
	Get() (domain.ConfigSnapshot, bool)
	Set(snap domain.ConfigSnapshot)
	Invalidate()
}
