package bot

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var ErrInvalidNumber = errors.New("not a number")

var (
	plainNumber = regexp.MustCompile(`^\d+(\.\d+)?$`)
	digitsOnly  = regexp.MustCompile(`^\d+$`)
)

// ParseNumber reads amounts the way people type them: "1.234,56",
// "1,234.56", "1 000" and "0,5" are all accepted. When both separators
// appear the last one is the decimal mark. A single kind of separator that
// appears more than once groups thousands. Grouped digits must come in
// threes after the first group, so "1.5.0" is rejected.
func ParseNumber(raw string) (decimal.Decimal, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '_' {
			return -1
		}
		return r
	}, raw)

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	var thousands, mark string
	commas, dots := strings.Count(s, ","), strings.Count(s, ".")
	switch {
	case commas > 0 && dots > 0:
		thousands, mark = ",", "."
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			thousands, mark = ".", ","
		}
	case commas > 1:
		thousands = ","
	case commas == 1:
		mark = ","
	case dots > 1:
		thousands = "."
	}

	if thousands != "" {
		intPart := s
		if mark != "" {
			intPart = s[:strings.LastIndex(s, mark)]
		}
		if !groupedByThousands(intPart, thousands) {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
		}
		s = strings.ReplaceAll(s, thousands, "")
	}
	if mark == "," {
		s = strings.Replace(s, ",", ".", 1)
	}

	if !plainNumber.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	if negative {
		v = v.Neg()
	}
	return v, nil
}

// groupedByThousands reports whether intPart is 1-3 digits followed by
// groups of exactly three, all joined by sep.
func groupedByThousands(intPart, sep string) bool {
	for i, group := range strings.Split(intPart, sep) {
		if !digitsOnly.MatchString(group) {
			return false
		}
		if i == 0 && len(group) > 3 {
			return false
		}
		if i > 0 && len(group) != 3 {
			return false
		}
	}
	return true
}
