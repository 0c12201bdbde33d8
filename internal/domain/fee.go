package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FeeRange covers amounts in [Min, Max). A nil Max means unbounded.
// Exactly one of Flat and Percent is set; Percent is in percentage points.
type FeeRange struct {
	Min     decimal.Decimal
	Max     *decimal.Decimal
	Flat    *decimal.Decimal
	Percent *decimal.Decimal
}

func (r FeeRange) Contains(amount decimal.Decimal) bool {
	if amount.LessThan(r.Min) {
		return false
	}
	return r.Max == nil || amount.LessThan(*r.Max)
}

// Fee returns the unrounded fee charged for amount.
func (r FeeRange) Fee(amount decimal.Decimal) decimal.Decimal {
	if r.Flat != nil {
		return *r.Flat
	}
	return amount.Mul(*r.Percent).Div(decimal.NewFromInt(100))
}

func (r FeeRange) IsPercent() bool { return r.Percent != nil }

// FindFeeRange returns the range of schedule containing amount.
func FindFeeRange(schedule []FeeRange, amount decimal.Decimal) (FeeRange, error) {
	for _, r := range schedule {
		if r.Contains(amount) {
			return r, nil
		}
	}
	return FeeRange{}, fmt.Errorf("%w: %s", ErrNoMatchingFeeRange, amount)
}

// NormalizeFeeSchedule validates ranges and returns a copy in which the last
// range is unbounded. Ranges must be given in ascending order, start at zero and
// be contiguous.
func NormalizeFeeSchedule(ranges []FeeRange) ([]FeeRange, error) {
	if len(ranges) == 0 {
		return nil, fmt.Errorf("%w: at least one range is required", ErrInvalidFeeSchedule)
	}

	out := make([]FeeRange, len(ranges))
	copy(out, ranges)
	out[len(out)-1].Max = nil

	for i, r := range out {
		if r.Min.IsNegative() {
			return nil, fmt.Errorf("%w: range %d has negative lower bound", ErrInvalidFeeSchedule, i+1)
		}
		if i == 0 && !r.Min.IsZero() {
			return nil, fmt.Errorf("%w: first range must start at 0", ErrInvalidFeeSchedule)
		}
		if r.Max == nil && i < len(out)-1 {
			return nil, fmt.Errorf("%w: only the last range may be unbounded", ErrInvalidFeeSchedule)
		}
		if r.Max != nil && !r.Max.GreaterThan(r.Min) {
			return nil, fmt.Errorf("%w: range %d upper bound must be greater than lower bound", ErrInvalidFeeSchedule, i+1)
		}
		if i > 0 {
			prevMax := *out[i-1].Max
			if r.Min.LessThan(prevMax) {
				return nil, fmt.Errorf("%w: range %d overlaps range %d", ErrInvalidFeeSchedule, i+1, i)
			}
			if r.Min.GreaterThan(prevMax) {
				return nil, fmt.Errorf("%w: gap between %s and %s", ErrInvalidFeeSchedule, prevMax, r.Min)
			}
		}
		switch {
		case r.Flat == nil && r.Percent == nil:
			return nil, fmt.Errorf("%w: range %d has no fee", ErrInvalidFeeSchedule, i+1)
		case r.Flat != nil && r.Percent != nil:
			return nil, fmt.Errorf("%w: range %d has both flat and percent fee", ErrInvalidFeeSchedule, i+1)
		case r.Flat != nil && r.Flat.IsNegative(), r.Percent != nil && r.Percent.IsNegative():
			return nil, fmt.Errorf("%w: range %d has negative fee", ErrInvalidFeeSchedule, i+1)
		}
	}
	return out, nil
}
