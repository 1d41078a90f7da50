package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LoanType says who owes whom
type LoanType string

const (
	// LoanLend is money given out that the user expects back
	LoanLend LoanType = "LEND"
	// LoanBorrow is money received that the user must repay
	LoanBorrow LoanType = "BORROW"
)

// ParseLoanType parses a loan type case-insensitively
func ParseLoanType(s string) (LoanType, error) {
	switch lt := LoanType(strings.ToUpper(strings.TrimSpace(s))); lt {
	case LoanLend, LoanBorrow:
		return lt, nil
	default:
		return "", fmt.Errorf("unknown loan type: %q", s)
	}
}

// Loan groups the transactions tagged with its id
type Loan struct {
	ID        string          `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name"`
	Type      LoanType        `json:"type" yaml:"type"`
	Amount    decimal.Decimal `json:"amount" yaml:"amount"` // original principal, informational only
	CreatedAt time.Time       `json:"createdAt" yaml:"created_at"`
}
