// Package models provides the ledger records consumed and produced by the engine.
package models

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/ledger/internal/dateutils"
	"fjacquet/ledger/internal/ledgererror"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a transaction
type TransactionType string

const (
	TransactionTypeExpense  TransactionType = "EXPENSE"
	TransactionTypeIncome   TransactionType = "INCOME"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// IsValid reports whether t is one of the three known types
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeExpense, TransactionTypeIncome, TransactionTypeTransfer:
		return true
	default:
		return false
	}
}

// ParseTransactionType parses a type name case-insensitively
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
	return t, nil
}

// Transaction is a single ledger entry. It is replaced as a whole on edit and never
// mutated in place by the engine.
type Transaction struct {
	ID                      string          `json:"id" yaml:"id"`
	Amount                  decimal.Decimal `json:"amount" yaml:"amount"`
	Category                string          `json:"category" yaml:"category"`
	Title                   string          `json:"title" yaml:"title"`
	Date                    string          `json:"date" yaml:"date"` // YYYY-MM-DD
	Timestamp               time.Time       `json:"timestamp" yaml:"timestamp"`
	Type                    TransactionType `json:"transactionType" yaml:"transaction_type"`
	AccountID               *string         `json:"accountId,omitempty" yaml:"account_id,omitempty"`
	TransferTargetAccountID *string         `json:"transferTargetAccountId,omitempty" yaml:"transfer_target_account_id,omitempty"`
	FeeAmount               decimal.Decimal `json:"feeAmount" yaml:"fee_amount"`
	FeeConfigName           *string         `json:"feeConfigName,omitempty" yaml:"fee_config_name,omitempty"`
	LoanID                  *string         `json:"loanId,omitempty" yaml:"loan_id,omitempty"`
	Note                    *string         `json:"note,omitempty" yaml:"note,omitempty"`
}

// ParsedDate returns the transaction date as a UTC calendar day.
// Unparseable dates yield a *ledgererror.MalformedDateError.
func (t Transaction) ParsedDate() (time.Time, error) {
	d, err := dateutils.ParseISODate(t.Date)
	if err != nil {
		return time.Time{}, &ledgererror.MalformedDateError{
			TransactionID: t.ID,
			Value:         t.Date,
			Err:           err,
		}
	}
	return d, nil
}

// IsExpense returns true if the transaction is an expense
func (t Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// IsIncome returns true if the transaction is income
func (t Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// IsTransfer returns true if the transaction moves money between two accounts
func (t Transaction) IsTransfer() bool {
	return t.Type == TransactionTypeTransfer
}

// IsTransitional reports whether tx is a transfer still missing its source or target
// account. Such a transfer is pending completion and is not valid for reporting.
func (t Transaction) IsTransitional() bool {
	return t.IsTransfer() && (t.AccountID == nil || t.TransferTargetAccountID == nil)
}

// HasFee reports whether the transaction carries a non-zero fee
func (t Transaction) HasFee() bool {
	return !t.FeeAmount.IsZero()
}

// HasLoan reports whether the transaction is tagged to a loan
func (t Transaction) HasLoan() bool {
	return t.LoanID != nil
}

// BelongsToLoan reports whether the transaction is tagged to the given loan
func (t Transaction) BelongsToLoan(loanID string) bool {
	return t.LoanID != nil && *t.LoanID == loanID
}

// FeeSelection returns the normalized fee selection (None, Custom or a rule name)
func (t Transaction) FeeSelection() string {
	return NormalizeFeeSelection(t.FeeConfigName)
}

// AccountKey returns the source account id, or DeletedAccountKey when it is gone
func (t Transaction) AccountKey() string {
	if t.AccountID == nil {
		return DeletedAccountKey
	}
	return *t.AccountID
}

// IsOnAccount reports whether accountID is the source account
func (t Transaction) IsOnAccount(accountID string) bool {
	return t.AccountID != nil && *t.AccountID == accountID
}

// IsTransferTo reports whether the transaction is a transfer into accountID
func (t Transaction) IsTransferTo(accountID string) bool {
	return t.IsTransfer() && t.TransferTargetAccountID != nil && *t.TransferTargetAccountID == accountID
}

// StringPtr returns a pointer to s. Handy for the optional id fields.
func StringPtr(s string) *string {
	return &s
}

// DerefString returns *s, or "" when s is nil
func DerefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
