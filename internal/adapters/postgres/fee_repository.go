package postgres

import (
	"context"
	"fmt"

	"usdtcalc/internal/domain"

	"github.com/jackc/pgx/v5"
)

type FeeRepository struct {
	db DB
}

func (r *FeeRepository) GetAll(ctx context.Context) ([]domain.FeeRange, error) {
	const q = `
		select min_amount::text, max_amount::text, fee_amount::text, fee_percent::text
		from fee_ranges
		order by position;
	`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query fee ranges: %w", err)
	}
	defer rows.Close()

	ranges := make([]domain.FeeRange, 0, 8)
	for rows.Next() {
		var (
			minAmount                   string
			maxAmount, flat, percentFee *string
		)
		if err = rows.Scan(&minAmount, &maxAmount, &flat, &percentFee); err != nil {
			return nil, fmt.Errorf("failed to scan fee range: %w", err)
		}

		var fr domain.FeeRange
		if fr.Min, err = parseDecimal(minAmount); err != nil {
			return nil, fmt.Errorf("bad fee range lower bound %q: %w", minAmount, err)
		}
		if fr.Max, err = parseNullableDecimal(maxAmount); err != nil {
			return nil, fmt.Errorf("bad fee range upper bound: %w", err)
		}
		if fr.Flat, err = parseNullableDecimal(flat); err != nil {
			return nil, fmt.Errorf("bad flat fee: %w", err)
		}
		if fr.Percent, err = parseNullableDecimal(percentFee); err != nil {
			return nil, fmt.Errorf("bad percent fee: %w", err)
		}
		ranges = append(ranges, fr)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fee ranges: %w", err)
	}
	return ranges, nil
}

// ReplaceAll swaps the whole schedule in one transaction.
func (r *FeeRepository) ReplaceAll(ctx context.Context, ranges []domain.FeeRange) error {
	const insertQ = `
		insert into fee_ranges (position, min_amount, max_amount, fee_amount, fee_percent)
		values ($1, $2::numeric, $3::numeric, $4::numeric, $5::numeric);
	`

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `delete from fee_ranges;`); err != nil {
			return fmt.Errorf("failed to clear fee ranges: %w", err)
		}
		for i, fr := range ranges {
			_, err := tx.Exec(ctx, insertQ,
				i+1,
				fr.Min.String(),
				nullableText(fr.Max),
				nullableText(fr.Flat),
				nullableText(fr.Percent),
			)
			if err != nil {
				return fmt.Errorf("failed to insert fee range %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace fee schedule: %w", err)
	}
	return nil
}

func NewFeeRepository(db DB) *FeeRepository {
	return &FeeRepository{db: db}
}
