package stats

import (
	"context"
	"fmt"
	"time"

	"usdtcalc/internal/adapters"
	"usdtcalc/internal/domain"

	"github.com/sirupsen/logrus"
)

const publishTimeout = 5 * time.Second

// Accumulator keeps the transaction log and its running summary.
type Accumulator struct {
	repo      adapters.TransactionRepository
	publisher adapters.TransactionPublisher
}

// Record stores tx and updates the summary atomically. Publishing the event
// afterwards is best effort: a failure is logged and not returned.
func (a *Accumulator) Record(ctx context.Context, tx domain.Transaction) error {
	if err := a.repo.Append(ctx, tx); err != nil {
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := a.publisher.PublishTransaction(pubCtx, tx); err != nil {
		logrus.WithError(err).WithField("tx_id", tx.ID).Warn("Failed to publish transaction event")
	}
	return nil
}

func (a *Accumulator) Summary(ctx context.Context) (domain.StatsSummary, error) {
	return a.repo.GetSummary(ctx)
}

// Reconcile recomputes the summary from the log and reports whether the
// stored summary had to be repaired.
func (a *Accumulator) Reconcile(ctx context.Context) (bool, error) {
	summary, repaired, err := a.repo.Recompute(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to reconcile stats: %w", err)
	}
	if repaired {
		logrus.WithFields(logrus.Fields{
			"count":      summary.Count,
			"total_fees": summary.TotalFees.String(),
		}).Warn("Stats summary drifted from transaction log and was repaired")
	}
	return repaired, nil
}

func NewAccumulator(repo adapters.TransactionRepository, publisher adapters.TransactionPublisher) *Accumulator {
	return &Accumulator{repo: repo, publisher: publisher}
}
