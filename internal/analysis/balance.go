package analysis

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a ledger amount cell. Thousands separators, currency
// signs and surrounding whitespace are tolerated; accountant-style
// parentheses mark a negative amount.
func ParseAmount(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	neg := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	if neg {
		s = s[1 : len(s)-1]
	}
	s = strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, ",", ""), "$", ""))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	if neg {
		d = d.Neg()
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

// FormatBalance renders a balance for join-key embedding. The contract:
// round to 2 decimals; integral values render without a decimal point;
// otherwise render two decimals and strip one trailing zero.
//
//	1000.00 -> "1000"
//	1000.50 -> "1000.5"
//	1000.12 -> "1000.12"
func FormatBalance(b decimal.NullDecimal) string {
	if !b.Valid {
		return "0"
	}
	rounded := b.Decimal.Round(2)
	if rounded.IsInteger() {
		return rounded.Truncate(0).String()
	}
	s := rounded.StringFixed(2)
	return strings.TrimSuffix(s, "0")
}

// FormatBalanceString is FormatBalance over a raw cell value. Values that do
// not parse as an amount pass through unchanged, matching the tolerant
// source behavior.
func FormatBalanceString(s string) string {
	d, err := ParseAmount(s)
	if err != nil {
		return s
	}
	return FormatBalance(d)
}
