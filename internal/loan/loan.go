// Package loan computes what is still owed on each loan from the transactions tagged to it.
package loan

import (
	"sort"

	"fjacquet/ledger/internal/models"

	"github.com/shopspring/decimal"
)

// Summary is the state of one loan. Balance is the amount still owed and is positive
// under both loan types. Given sums the tagged EXPENSE amounts, Received the tagged INCOME
// amounts.
type Summary struct {
	Loan             models.Loan     `json:"loan"`
	Balance          decimal.Decimal `json:"balance"`
	Given            decimal.Decimal `json:"given"`
	Received         decimal.Decimal `json:"received"`
	Settled          bool            `json:"settled"`
	TransactionCount int             `json:"transactionCount"`
}

// flows sums the EXPENSE and INCOME amounts of the transactions tagged to loanID.
// Transfers never count toward a loan.
func flows(loanID string, txs []models.Transaction) (given, received decimal.Decimal, count int) {
	given, received = decimal.Zero, decimal.Zero
	for _, tx := range txs {
		if !tx.BelongsToLoan(loanID) {
			continue
		}
		switch tx.Type {
		case models.TransactionTypeExpense:
			given = given.Add(tx.Amount)
			count++
		case models.TransactionTypeIncome:
			received = received.Add(tx.Amount)
			count++
		}
	}
	return given, received, count
}

// Balance returns the net amount still owed on l.
// LEND is money given minus money paid back; BORROW is money received minus money repaid.
func Balance(l models.Loan, txs []models.Transaction) decimal.Decimal {
	given, received, _ := flows(l.ID, txs)
	return net(l.Type, given, received)
}

func net(t models.LoanType, given, received decimal.Decimal) decimal.Decimal {
	if t == models.LoanBorrow {
		return received.Sub(given)
	}
	return given.Sub(received)
}

// Summarize builds the Summary of one loan
func Summarize(l models.Loan, txs []models.Transaction) Summary {
	given, received, count := flows(l.ID, txs)
	balance := net(l.Type, given, received)
	return Summary{
		Loan:             l,
		Balance:          balance,
		Given:            given,
		Received:         received,
		Settled:          !balance.IsPositive(),
		TransactionCount: count,
	}
}

// Summaries summarizes every loan, open loans first, then by name
func Summaries(loans []models.Loan, txs []models.Transaction) []Summary {
	out := make([]Summary, 0, len(loans))
	for _, l := range loans {
		out = append(out, Summarize(l, txs))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Settled != out[j].Settled {
			return !out[i].Settled
		}
		return out[i].Loan.Name < out[j].Loan.Name
	})
	return out
}

// Outstanding sums the open balances of loans of type t
func Outstanding(summaries []Summary, t models.LoanType) decimal.Decimal {
	total := decimal.Zero
	for _, s := range summaries {
		if s.Loan.Type == t && s.Balance.IsPositive() {
			total = total.Add(s.Balance)
		}
	}
	return total
}
