// Package currencyutils provides the decimal helpers shared by the fee calculator, the
// aggregator and the stores: rounding, percentages, parsing and display formatting.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of fractional digits money is rounded to
const DefaultPrecision int32 = 2

var (
	hundred      = decimal.NewFromInt(100)
	currencyMark = regexp.MustCompile(`[€$£¥₣₤₹₽₩฿₫₴₸₪\s]|CHF|EUR|USD|GBP`)
)

// RoundHalfUp rounds amount to places fractional digits, halves away from zero.
// Ledger amounts are non-negative, so this is plain half-up rounding.
func RoundHalfUp(amount decimal.Decimal, places int32) decimal.Decimal {
	return amount.Round(places)
}

// Percent returns pct percent of amount, e.g. Percent(250, 1.5) = 3.75. No rounding is applied.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// Sum adds all values together
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// ParseAmount parses a string representation of an amount into a decimal value.
// It handles "1,234.56", "1.234,56", "1'234.56", "1234,56" and strips currency marks.
// An empty string parses as zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(StandardizeAmount(amountStr))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount converts the usual human formats into something decimal.NewFromString accepts
func StandardizeAmount(amountStr string) string {
	s := currencyMark.ReplaceAllString(amountStr, "")
	s = strings.ReplaceAll(s, "'", "")

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ".") < strings.LastIndex(s, ",") {
			// 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// 1,234.56
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		parts := strings.Split(s, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	return s
}

// FormatAmount renders amount with places fractional digits, prefixed by symbol when set.
// Thousands separators are never inserted so output stays machine-readable.
func FormatAmount(amount decimal.Decimal, symbol string, places int32) string {
	formatted := amount.StringFixed(places)
	if symbol == "" {
		return formatted
	}
	if len([]rune(symbol)) == 1 {
		return symbol + formatted
	}
	return symbol + " " + formatted
}

// IsNegative checks if an amount is negative
func IsNegative(amount decimal.Decimal) bool {
	return amount.IsNegative()
}

// IsPositive checks if an amount is positive
func IsPositive(amount decimal.Decimal) bool {
	return amount.IsPositive()
}
