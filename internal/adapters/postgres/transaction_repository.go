package postgres

import (
	"context"
	"fmt"

	"usdtcalc/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db DB
}

// Append inserts tx and folds it into the summary row in one transaction.
// The summary update takes the row lock, so concurrent appends serialize there.
func (r *TransactionRepository) Append(ctx context.Context, t domain.Transaction) error {
	const insertQ = `
		insert into transactions (id, user_id, direction, usdt_amount, rate, counter_amount, fee_charged, profit, created_at)
		values ($1::uuid, $2, $3, $4::numeric, $5::numeric, $6::numeric, $7::numeric, $8::numeric, $9);
	`
	const summaryQ = `
		update stats_summary
		set tx_count     = tx_count + 1,
		    buy_count    = buy_count + $1,
		    sell_count   = sell_count + $2,
		    total_volume = total_volume + $3::numeric,
		    buy_volume   = buy_volume + $4::numeric,
		    sell_volume  = sell_volume + $5::numeric,
		    total_fees   = total_fees + $6::numeric,
		    total_profit = total_profit + $7::numeric,
		    updated_at   = now()
		where id = 1;
	`

	var buyCount, sellCount int64
	buyVolume, sellVolume := decimal.Zero, decimal.Zero
	if t.Direction == domain.Buy {
		buyCount, buyVolume = 1, t.USDTAmount
	} else {
		sellCount, sellVolume = 1, t.USDTAmount
	}

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insertQ,
			t.ID.String(),
			t.UserID,
			string(t.Direction),
			t.USDTAmount.String(),
			t.Rate.String(),
			t.CounterAmount.String(),
			t.FeeCharged.String(),
			t.Profit.String(),
			t.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}

		tag, err := tx.Exec(ctx, summaryQ,
			buyCount,
			sellCount,
			t.USDTAmount.String(),
			buyVolume.String(),
			sellVolume.String(),
			t.FeeCharged.String(),
			t.Profit.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to update stats summary: %w", err)
		}
		if tag.RowsAffected() != 1 {
			return fmt.Errorf("stats summary row is missing")
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append transaction %s: %w", t.ID, err)
	}
	return nil
}

func (r *TransactionRepository) GetSummary(ctx context.Context) (domain.StatsSummary, error) {
	const q = `
		select tx_count, buy_count, sell_count,
		       total_volume::text, buy_volume::text, sell_volume::text,
		       total_fees::text, total_profit::text, updated_at
		from stats_summary
		where id = 1;
	`

	summary, err := scanSummary(r.db.QueryRow(ctx, q))
	if err != nil {
		return domain.StatsSummary{}, fmt.Errorf("failed to select stats summary: %w", err)
	}
	return summary, nil
}

// Recompute aggregates the transaction log and overwrites the summary row
// when the stored values drifted from it.
func (r *TransactionRepository) Recompute(ctx context.Context) (domain.StatsSummary, bool, error) {
	const lockQ = `
		select tx_count, buy_count, sell_count,
		       total_volume::text, buy_volume::text, sell_volume::text,
		       total_fees::text, total_profit::text, updated_at
		from stats_summary
		where id = 1
		for update;
	`
	const aggregateQ = `
		select count(*),
		       count(*) filter (where direction = 'buy'),
		       count(*) filter (where direction = 'sell'),
		       coalesce(sum(usdt_amount), 0)::text,
		       coalesce(sum(usdt_amount) filter (where direction = 'buy'), 0)::text,
		       coalesce(sum(usdt_amount) filter (where direction = 'sell'), 0)::text,
		       coalesce(sum(fee_charged), 0)::text,
		       coalesce(sum(profit), 0)::text,
		       now()
		from transactions;
	`
	const overwriteQ = `
		update stats_summary
		set tx_count     = $1,
		    buy_count    = $2,
		    sell_count   = $3,
		    total_volume = $4::numeric,
		    buy_volume   = $5::numeric,
		    sell_volume  = $6::numeric,
		    total_fees   = $7::numeric,
		    total_profit = $8::numeric,
		    updated_at   = now()
		where id = 1;
	`

	var (
		result   domain.StatsSummary
		repaired bool
	)
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		stored, err := scanSummary(tx.QueryRow(ctx, lockQ))
		if err != nil {
			return fmt.Errorf("failed to lock stats summary: %w", err)
		}
		actual, err := scanSummary(tx.QueryRow(ctx, aggregateQ))
		if err != nil {
			return fmt.Errorf("failed to aggregate transactions: %w", err)
		}

		if stored.Equal(actual) {
			result = stored
			return nil
		}

		_, err = tx.Exec(ctx, overwriteQ,
			actual.Count,
			actual.BuyCount,
			actual.SellCount,
			actual.TotalVolume.String(),
			actual.BuyVolume.String(),
			actual.SellVolume.String(),
			actual.TotalFees.String(),
			actual.TotalProfit.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to overwrite stats summary: %w", err)
		}
		result, repaired = actual, true
		return nil
	})
	if err != nil {
		return domain.StatsSummary{}, false, fmt.Errorf("failed to recompute stats: %w", err)
	}
	return result, repaired, nil
}

func scanSummary(row pgx.Row) (domain.StatsSummary, error) {
	var s domain.StatsSummary
	var total, buy, sell, fees, profitTotal string
	err := row.Scan(&s.Count, &s.BuyCount, &s.SellCount, &total, &buy, &sell, &fees, &profitTotal, &s.UpdatedAt)
	if err != nil {
		return domain.StatsSummary{}, err
	}

	for _, f := range []struct {
		dst *decimal.Decimal
		src string
	}{
		{&s.TotalVolume, total},
		{&s.BuyVolume, buy},
		{&s.SellVolume, sell},
		{&s.TotalFees, fees},
		{&s.TotalProfit, profitTotal},
	} {
		if *f.dst, err = parseDecimal(f.src); err != nil {
			return domain.StatsSummary{}, fmt.Errorf("bad summary value %q: %w", f.src, err)
		}
	}
	return s, nil
}

func NewTransactionRepository(db DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}
