package aggregator

import (
	"fjacquet/ledger/internal/models"

	"github.com/shopspring/decimal"
)

// Totals are the headline figures of a period
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Transfer decimal.Decimal `json:"transfer"`
}

// Net is income minus expense
func (t Totals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// ComputeTotals sums INCOME, EXPENSE and TRANSFER amounts. Fees of every transaction
// count as expense; transfer fees are therefore not part of Transfer.
func ComputeTotals(txs []models.Transaction) Totals {
	totals := Totals{Income: decimal.Zero, Expense: decimal.Zero, Transfer: decimal.Zero}

	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionTypeIncome:
			totals.Income = totals.Income.Add(tx.Amount)
		case models.TransactionTypeExpense:
			totals.Expense = totals.Expense.Add(tx.Amount)
		case models.TransactionTypeTransfer:
			totals.Transfer = totals.Transfer.Add(tx.Amount)
		}
		if tx.FeeAmount.IsPositive() {
			totals.Expense = totals.Expense.Add(tx.FeeAmount)
		}
	}

	return totals
}
