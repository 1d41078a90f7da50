package models

import (
	"errors"
	"fmt"
	"time"

	"fjacquet/ledger/internal/dateutils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionBuilder provides a fluent API for constructing transactions.
// The first error encountered sticks and is returned by Build.
type TransactionBuilder struct {
	tx  Transaction
	err error
}

// NewTransactionBuilder creates a builder for an EXPENSE with zero amount and fee
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{
		tx: Transaction{
			Type:      TransactionTypeExpense,
			Category:  CategoryOthers.String(),
			Amount:    decimal.Zero,
			FeeAmount: decimal.Zero,
		},
	}
}

// WithID sets the transaction ID
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.ID = id
	return b
}

// WithDate sets the transaction date from a YYYY-MM-DD string
func (b *TransactionBuilder) WithDate(dateStr string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if dateStr == "" {
		b.err = errors.New("date cannot be empty")
		return b
	}
	b.tx.Date = dateStr
	return b
}

// WithDateFromTime sets the transaction date from a time.Time
func (b *TransactionBuilder) WithDateFromTime(date time.Time) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if date.IsZero() {
		b.err = errors.New("date cannot be zero")
		return b
	}
	b.tx.Date = dateutils.ToISODate(date)
	return b
}

// WithTimestamp sets the creation instant
func (b *TransactionBuilder) WithTimestamp(ts time.Time) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Timestamp = ts
	return b
}

// WithAmount sets the transaction amount
func (b *TransactionBuilder) WithAmount(amount decimal.Decimal) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if amount.IsNegative() {
		b.err = fmt.Errorf("amount cannot be negative: %s", amount)
		return b
	}
	b.tx.Amount = amount
	return b
}

// WithAmountFromString parses and sets the transaction amount
func (b *TransactionBuilder) WithAmountFromString(amountStr string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		b.err = fmt.Errorf("invalid amount '%s': %w", amountStr, err)
		return b
	}
	return b.WithAmount(amount)
}

// WithCategory sets the category name
func (b *TransactionBuilder) WithCategory(category string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Category = category
	return b
}

// WithTitle sets the title
func (b *TransactionBuilder) WithTitle(title string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Title = title
	return b
}

// WithNote sets the optional note
func (b *TransactionBuilder) WithNote(note string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Note = StringPtr(note)
	return b
}

// WithAccount sets the source account
func (b *TransactionBuilder) WithAccount(accountID string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.AccountID = StringPtr(accountID)
	return b
}

// WithLoan tags the transaction to a loan
func (b *TransactionBuilder) WithLoan(loanID string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.LoanID = StringPtr(loanID)
	return b
}

// WithFee sets the fee amount and the selection it came from (None, Custom or a rule name)
func (b *TransactionBuilder) WithFee(amount decimal.Decimal, selection string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if amount.IsNegative() {
		b.err = fmt.Errorf("fee cannot be negative: %s", amount)
		return b
	}
	b.tx.FeeAmount = amount
	if selection != "" {
		b.tx.FeeConfigName = StringPtr(selection)
	}
	return b
}

// AsExpense marks the transaction as an expense
func (b *TransactionBuilder) AsExpense() *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Type = TransactionTypeExpense
	b.tx.TransferTargetAccountID = nil
	return b
}

// AsIncome marks the transaction as income
func (b *TransactionBuilder) AsIncome() *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Type = TransactionTypeIncome
	b.tx.TransferTargetAccountID = nil
	return b
}

// AsTransfer marks the transaction as a transfer into targetAccountID
func (b *TransactionBuilder) AsTransfer(targetAccountID string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Type = TransactionTypeTransfer
	b.tx.TransferTargetAccountID = StringPtr(targetAccountID)
	return b
}

// Build validates and returns the transaction. A missing ID is filled with a UUID and a
// missing timestamp with the current time.
func (b *TransactionBuilder) Build() (Transaction, error) {
	if b.err != nil {
		return Transaction{}, b.err
	}
	if b.tx.Date == "" {
		return Transaction{}, errors.New("transaction date is required")
	}
	if b.tx.ID == "" {
		b.tx.ID = uuid.NewString()
	}
	if b.tx.Timestamp.IsZero() {
		b.tx.Timestamp = time.Now().UTC()
	}
	return b.tx, nil
}

// MustBuild is Build for fixtures that are known to be valid. It panics on error.
func (b *TransactionBuilder) MustBuild() Transaction {
	tx, err := b.Build()
	if err != nil {
		panic(err)
	}
	return tx
}
