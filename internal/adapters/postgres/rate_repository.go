package postgres

import (
	"context"
	"errors"
	"fmt"

	"usdtcalc/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type RateRepository struct {
	db DB
}

func (r *RateRepository) GetCurrent(ctx context.Context) (domain.RateConfig, error) {
	const q = `
		select id, buy_rate::text, sell_rate::text, effective_since
		from rate_configs
		order by id desc
		limit 1;
	`

	rate, err := scanRate(r.db.QueryRow(ctx, q))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RateConfig{}, domain.ErrConfigMissing
		}
		return domain.RateConfig{}, fmt.Errorf("failed to select current rates: %w", err)
	}
	return rate, nil
}

func (r *RateRepository) Insert(ctx context.Context, buy, sell decimal.Decimal) (domain.RateConfig, error) {
	const q = `
		insert into rate_configs (buy_rate, sell_rate, effective_since)
		values ($1::numeric, $2::numeric, now())
		returning id, buy_rate::text, sell_rate::text, effective_since;
	`

	rate, err := scanRate(r.db.QueryRow(ctx, q, buy.String(), sell.String()))
	if err != nil {
		return domain.RateConfig{}, fmt.Errorf("failed to insert rates %s/%s: %w", buy, sell, err)
	}
	return rate, nil
}

func (r *RateRepository) History(ctx context.Context, limit int) ([]domain.RateConfig, error) {
	const q = `
		select id, buy_rate::text, sell_rate::text, effective_since
		from rate_configs
		order by id desc
		limit $1;
	`

	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate history: %w", err)
	}
	defer rows.Close()

	history := make([]domain.RateConfig, 0, limit)
	for rows.Next() {
		rate, scanErr := scanRate(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan rate history: %w", scanErr)
		}
		history = append(history, rate)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate history: %w", err)
	}
	return history, nil
}

func scanRate(row pgx.Row) (domain.RateConfig, error) {
	var (
		rate      domain.RateConfig
		buy, sell string
	)
	if err := row.Scan(&rate.ID, &buy, &sell, &rate.EffectiveSince); err != nil {
		return domain.RateConfig{}, err
	}

	var err error
	if rate.BuyRate, err = parseDecimal(buy); err != nil {
		return domain.RateConfig{}, fmt.Errorf("bad buy rate %q: %w", buy, err)
	}
	if rate.SellRate, err = parseDecimal(sell); err != nil {
		return domain.RateConfig{}, fmt.Errorf("bad sell rate %q: %w", sell, err)
	}
	return rate, nil
}

func NewRateRepository(db DB) *RateRepository {
	return &RateRepository{db: db}
}
