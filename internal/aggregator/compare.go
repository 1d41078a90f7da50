package aggregator

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Comparison pairs a current-period bucket with the same key in the previous period
type Comparison struct {
	Key           string          `json:"key" csv:"key"`
	Current       decimal.Decimal `json:"current" csv:"current"`
	Previous      decimal.Decimal `json:"previous" csv:"previous"`
	Delta         decimal.Decimal `json:"delta" csv:"delta"`
	PercentChange decimal.Decimal `json:"percentChange" csv:"percent_change"`
}

// Compare pairs every current bucket with its previous counterpart, zero when absent.
// The output follows the order of current.
func Compare(current, previous []Bucket) []Comparison {
	prev := make(map[string]decimal.Decimal, len(previous))
	for _, b := range previous {
		prev[b.Key] = b.Total
	}

	out := make([]Comparison, 0, len(current))
	for _, b := range current {
		p, ok := prev[b.Key]
		if !ok {
			p = decimal.Zero
		}
		out = append(out, Comparison{
			Key:           b.Key,
			Current:       b.Total,
			Previous:      p,
			Delta:         b.Total.Sub(p),
			PercentChange: PercentChange(b.Total, p),
		})
	}
	return out
}

// PercentChange returns (current-previous)/previous*100 rounded to two places.
// A zero previous yields 100 when current is positive and 0 otherwise.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}
