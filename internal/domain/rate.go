package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RateConfig struct {
	ID             int64
	BuyRate        decimal.Decimal
	SellRate       decimal.Decimal
	EffectiveSince time.Time
}

// ValidateRates reports ErrInvalidRate unless both rates are strictly positive.
func ValidateRates(buy, sell decimal.Decimal) error {
	if !buy.IsPositive() || !sell.IsPositive() {
		return ErrInvalidRate
	}
	return nil
}

// ConfigSnapshot is the pricing configuration a single calculation works against.
type ConfigSnapshot struct {
	Rates RateConfig
	Fees  []FeeRange
}
