package bot

import (
	"errors"
	"fmt"
	"strings"

	"usdtcalc/internal/domain"

	"github.com/shopspring/decimal"
)

// ParseFeeSchedule reads the /setfees syntax:
//
//	0-100:1%; 100-500:2.5; 500-:1%
//
// Each entry is min-max:fee. A trailing % makes the fee a percentage,
// an empty max leaves the range unbounded. Entries are separated by
// semicolons or new lines.
func ParseFeeSchedule(input string) ([]domain.FeeRange, error) {
	entries := strings.FieldsFunc(input, func(r rune) bool { return r == ';' || r == '\n' })

	ranges := make([]domain.FeeRange, 0, len(entries))
	for i, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		fr, err := parseFeeEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d (%s): %s", domain.ErrInvalidFeeSchedule, i+1, entry, err)
		}
		ranges = append(ranges, fr)
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("%w: no ranges given", domain.ErrInvalidFeeSchedule)
	}
	return ranges, nil
}

func parseFeeEntry(entry string) (domain.FeeRange, error) {
	bounds, feeRaw, ok := strings.Cut(entry, ":")
	if !ok {
		return domain.FeeRange{}, errors.New("expected min-max:fee")
	}
	minRaw, maxRaw, ok := strings.Cut(bounds, "-")
	if !ok {
		return domain.FeeRange{}, errors.New("expected min-max before ':'")
	}

	var (
		fr  domain.FeeRange
		err error
	)
	if fr.Min, err = ParseNumber(minRaw); err != nil {
		return domain.FeeRange{}, errors.New("bad lower bound")
	}
	if strings.TrimSpace(maxRaw) != "" {
		upper, parseErr := ParseNumber(maxRaw)
		if parseErr != nil {
			return domain.FeeRange{}, errors.New("bad upper bound")
		}
		fr.Max = &upper
	}

	feeRaw = strings.TrimSpace(feeRaw)
	percent := strings.HasSuffix(feeRaw, "%")
	fee, err := ParseNumber(strings.TrimSuffix(feeRaw, "%"))
	if err != nil {
		return domain.FeeRange{}, errors.New("bad fee")
	}
	if percent {
		fr.Percent = &fee
	} else {
		fr.Flat = &fee
	}
	return fr, nil
}

// FormatFeeSchedule renders ranges in the syntax ParseFeeSchedule reads.
func FormatFeeSchedule(ranges []domain.FeeRange) string {
	parts := make([]string, 0, len(ranges))
	for _, fr := range ranges {
		upper := ""
		if fr.Max != nil {
			upper = fr.Max.String()
		}
		parts = append(parts, fmt.Sprintf("%s-%s:%s", fr.Min.String(), upper, feeText(fr)))
	}
	return strings.Join(parts, "; ")
}

func feeText(fr domain.FeeRange) string {
	if fr.IsPercent() {
		return fr.Percent.String() + "%"
	}
	if fr.Flat != nil {
		return fr.Flat.String()
	}
	return decimal.Zero.String()
}
