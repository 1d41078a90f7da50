// Package budget measures category spending against budget limits.
package budget

import (
	"fjacquet/ledger/internal/aggregator"
	"fjacquet/ledger/internal/models"

	"github.com/shopspring/decimal"
)

// Progress is the state of one budget for a period. Ratio is Spent/Limit clamped to
// [0, 1] for progress bars.
type Progress struct {
	Category   string          `json:"category" csv:"category"`
	Spent      decimal.Decimal `json:"spent" csv:"spent"`
	Limit      decimal.Decimal `json:"limit" csv:"limit"`
	Ratio      decimal.Decimal `json:"ratio" csv:"ratio"`
	OverBudget bool            `json:"overBudget" csv:"over_budget"`
}

// Remaining is what is left to spend, never below zero
func (p Progress) Remaining() decimal.Decimal {
	left := p.Limit.Sub(p.Spent)
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}

// Evaluate compares categoryTotal with b.
// OverBudget uses the raw total so it stays true once Ratio saturates at 1. A limit of
// zero or less yields a ratio of 1 as soon as anything is spent.
func Evaluate(categoryTotal decimal.Decimal, b models.Budget) Progress {
	p := Progress{
		Category:   b.Category,
		Spent:      categoryTotal,
		Limit:      b.LimitAmount,
		OverBudget: categoryTotal.GreaterThan(b.LimitAmount),
	}

	switch {
	case !b.LimitAmount.IsPositive():
		if categoryTotal.IsPositive() {
			p.Ratio = decimal.NewFromInt(1)
		} else {
			p.Ratio = decimal.Zero
		}
	default:
		p.Ratio = clamp(categoryTotal.Div(b.LimitAmount))
	}

	return p
}

// EvaluateAll evaluates every budget against the category buckets of a period, in budget
// order. Categories without spending count as zero. Budgets on Loan, TransactionFee and
// BalanceAdjustment are skipped.
func EvaluateAll(buckets []aggregator.Bucket, budgets []models.Budget) []Progress {
	totals := make(map[string]decimal.Decimal, len(buckets))
	for _, b := range buckets {
		totals[b.Key] = b.Total
	}

	out := make([]Progress, 0, len(budgets))
	for _, b := range budgets {
		if IsExempt(b.Category) {
			continue
		}
		spent, ok := totals[b.Category]
		if !ok {
			spent = decimal.Zero
		}
		out = append(out, Evaluate(spent, b))
	}
	return out
}

// IsExempt reports whether budgets never apply to category
func IsExempt(category string) bool {
	c, ok := models.ParseSystemCategory(category)
	return ok && c.ExemptFromBudget()
}

// OverBudget returns the entries that exceed their limit
func OverBudget(progress []Progress) []Progress {
	var over []Progress
	for _, p := range progress {
		if p.OverBudget {
			over = append(over, p)
		}
	}
	return over
}

func clamp(ratio decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	switch {
	case ratio.IsNegative():
		return decimal.Zero
	case ratio.GreaterThan(one):
		return one
	default:
		return ratio
	}
}
