// Package balance derives account balances from the initial balance and the
// transactions that reference each account.
package balance

import (
	"fjacquet/ledger/internal/models"

	"github.com/shopspring/decimal"
)

// AccountBalance is the derived balance of one account
type AccountBalance struct {
	AccountID string          `json:"accountId" csv:"account_id"`
	Name      string          `json:"name" csv:"name"`
	Initial   decimal.Decimal `json:"initial" csv:"initial"`
	Current   decimal.Decimal `json:"current" csv:"current"`
	Inflow    decimal.Decimal `json:"inflow" csv:"inflow"`
	Outflow   decimal.Decimal `json:"outflow" csv:"outflow"`
}

// Effect returns the signed effect of tx on accountID.
// Expenses and outgoing transfers remove amount plus fee, income adds amount minus fee,
// and incoming transfers add the amount; the transfer fee is borne by the source.
func Effect(accountID string, tx models.Transaction) decimal.Decimal {
	effect := decimal.Zero

	if tx.IsOnAccount(accountID) {
		switch tx.Type {
		case models.TransactionTypeExpense, models.TransactionTypeTransfer:
			effect = effect.Sub(tx.Amount).Sub(tx.FeeAmount)
		case models.TransactionTypeIncome:
			effect = effect.Add(tx.Amount).Sub(tx.FeeAmount)
		}
	}
	if tx.IsTransferTo(accountID) {
		effect = effect.Add(tx.Amount)
	}

	return effect
}

// Current returns the balance of account after txs
func Current(account models.Account, txs []models.Transaction) decimal.Decimal {
	return Of(account, txs).Current
}

// Of computes the full AccountBalance of account
func Of(account models.Account, txs []models.Transaction) AccountBalance {
	b := AccountBalance{
		AccountID: account.ID,
		Name:      account.Name,
		Initial:   account.InitialBalance,
		Current:   account.InitialBalance,
		Inflow:    decimal.Zero,
		Outflow:   decimal.Zero,
	}

	for _, tx := range txs {
		e := Effect(account.ID, tx)
		switch {
		case e.IsPositive():
			b.Inflow = b.Inflow.Add(e)
		case e.IsNegative():
			b.Outflow = b.Outflow.Add(e.Neg())
		}
		b.Current = b.Current.Add(e)
	}

	return b
}

// All computes the balance of every account, in account order
func All(accounts []models.Account, txs []models.Transaction) []AccountBalance {
	out := make([]AccountBalance, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, Of(a, txs))
	}
	return out
}

// NetWorth sums the current balances
func NetWorth(balances []AccountBalance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Current)
	}
	return total
}
