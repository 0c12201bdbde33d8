package app

import (
	"fmt"
	"strings"

	"usdtcalc/internal/config"
	"usdtcalc/internal/domain"

	"github.com/shopspring/decimal"
)

// parseDefaults converts the configured seed values. Empty rates come back as
// zero, which SeedDefaults treats as "nothing to seed".
func parseDefaults(cfg config.Defaults) (buy, sell decimal.Decimal, schedule []domain.FeeRange, err error) {
	if cfg.BuyRate != "" || cfg.SellRate != "" {
		if buy, err = decimal.NewFromString(strings.TrimSpace(cfg.BuyRate)); err != nil {
			return buy, sell, nil, fmt.Errorf("invalid default buy rate %q: %w", cfg.BuyRate, err)
		}
		if sell, err = decimal.NewFromString(strings.TrimSpace(cfg.SellRate)); err != nil {
			return buy, sell, nil, fmt.Errorf("invalid default sell rate %q: %w", cfg.SellRate, err)
		}
	}

	for i, fr := range cfg.Fees {
		r, parseErr := parseDefaultFeeRange(fr)
		if parseErr != nil {
			return buy, sell, nil, fmt.Errorf("invalid default fee range %d: %w", i+1, parseErr)
		}
		schedule = append(schedule, r)
	}
	return buy, sell, schedule, nil
}

func parseDefaultFeeRange(fr config.FeeRange) (domain.FeeRange, error) {
	var (
		r   domain.FeeRange
		err error
	)
	if r.Min, err = decimal.NewFromString(strings.TrimSpace(fr.Min)); err != nil {
		return r, fmt.Errorf("min: %w", err)
	}
	if r.Max, err = optionalDecimal(fr.Max); err != nil {
		return r, fmt.Errorf("max: %w", err)
	}
	if r.Flat, err = optionalDecimal(fr.Flat); err != nil {
		return r, fmt.Errorf("flat: %w", err)
	}
	if r.Percent, err = optionalDecimal(fr.Percent); err != nil {
		return r, fmt.Errorf("percent: %w", err)
	}
	return r, nil
}

func optionalDecimal(raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
