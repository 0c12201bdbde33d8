package pricing

import (
	"fmt"

	"usdtcalc/internal/domain"

	"github.com/shopspring/decimal"
)

const DefaultPrecision int32 = 2

// usdtScale is the number of decimal places kept when a USDT amount is
// derived from a counter currency amount.
const usdtScale int32 = 8

// Quote is the outcome of a single calculation. Money values are rounded.
type Quote struct {
	Direction domain.Direction
	Amount    decimal.Decimal
	Rate      decimal.Decimal
	Fee       decimal.Decimal
	Counter   decimal.Decimal
	Profit    decimal.Decimal
}

// Calculator is pure: it only looks at its arguments.
type Calculator struct {
	precision int32
}

// Calculate prices amount USDT in the given direction. Intermediate values
// keep full precision; fee, counter amount and profit are rounded half-up
// once at the end.
func (c Calculator) Calculate(amount decimal.Decimal, dir domain.Direction, snap domain.ConfigSnapshot) (Quote, error) {
	if err := validateRequest(amount, dir); err != nil {
		return Quote{}, err
	}
	rate, err := rateFor(dir, snap.Rates)
	if err != nil {
		return Quote{}, err
	}
	return c.price(amount, amount.Mul(rate), rate, dir, snap)
}

// CalculateFromCounter prices a request given in the counter currency. The
// USDT amount is counter/rate and the fee comes from the schedule for that
// amount; BUY adds it to counter, SELL deducts it.
func (c Calculator) CalculateFromCounter(counter decimal.Decimal, dir domain.Direction, snap domain.ConfigSnapshot) (Quote, error) {
	if err := validateRequest(counter, dir); err != nil {
		return Quote{}, err
	}
	rate, err := rateFor(dir, snap.Rates)
	if err != nil {
		return Quote{}, err
	}
	amount := counter.DivRound(rate, usdtScale)
	if !amount.IsPositive() {
		return Quote{}, fmt.Errorf("%w: %s buys less than the smallest USDT amount", domain.ErrInvalidAmount, counter)
	}
	return c.price(amount, counter, rate, dir, snap)
}

// price applies the fee for amount to base, the counter value before fees.
func (c Calculator) price(amount, base, rate decimal.Decimal, dir domain.Direction, snap domain.ConfigSnapshot) (Quote, error) {
	fr, err := domain.FindFeeRange(snap.Fees, amount)
	if err != nil {
		return Quote{}, err
	}
	fee := fr.Fee(amount)

	var counter, profit decimal.Decimal
	switch dir {
	case domain.Buy:
		counter = base.Add(fee)
		profit = fee
	case domain.Sell:
		counter = base.Sub(fee)
		profit = fee.Add(snap.Rates.BuyRate.Sub(rate).Mul(amount))
	}

	q := Quote{
		Direction: dir,
		Amount:    amount,
		Rate:      rate,
		Fee:       fee.Round(c.precision),
		Counter:   counter.Round(c.precision),
		Profit:    profit.Round(c.precision),
	}
	if dir == domain.Sell && !q.Counter.IsPositive() {
		return Quote{}, fmt.Errorf("%w: fee %s, payout %s", domain.ErrFeeExceedsPayout, q.Fee, q.Counter)
	}
	return q, nil
}

func rateFor(dir domain.Direction, rates domain.RateConfig) (decimal.Decimal, error) {
	rate := rates.BuyRate
	if dir == domain.Sell {
		rate = rates.SellRate
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s rate is %s", domain.ErrInvalidRate, dir, rate)
	}
	return rate, nil
}

func validateRequest(amount decimal.Decimal, dir domain.Direction) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: got %s", domain.ErrInvalidAmount, amount)
	}
	if dir != domain.Buy && dir != domain.Sell {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDirection, dir)
	}
	return nil
}

// NewCalculator returns a calculator rounding to precision decimal places.
// Negative precision falls back to DefaultPrecision.
func NewCalculator(precision int32) Calculator {
	if precision < 0 {
		precision = DefaultPrecision
	}
	return Calculator{precision: precision}
}
