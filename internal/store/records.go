package store

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/ledger/internal/currencyutils"
	"fjacquet/ledger/internal/models"
)

// transactionRecord is one row of the transactions CSV journal.
// Amounts are kept as text so both "1234.50" and "1'234,50" are accepted.
type transactionRecord struct {
	ID                      string `csv:"id"`
	Date                    string `csv:"date"`
	Timestamp               string `csv:"timestamp"`
	Type                    string `csv:"type"`
	Amount                  string `csv:"amount"`
	Category                string `csv:"category"`
	Title                   string `csv:"title"`
	AccountID               string `csv:"account_id"`
	TransferTargetAccountID string `csv:"transfer_target_account_id"`
	FeeAmount               string `csv:"fee_amount"`
	FeeConfigName           string `csv:"fee_config_name"`
	LoanID                  string `csv:"loan_id"`
	Note                    string `csv:"note"`
}

type feeConfigRecord struct {
	Name         string `yaml:"name"`
	Value        string `yaml:"value"`
	IsPercentage bool   `yaml:"is_percentage"`
}

type accountRecord struct {
	ID             string            `yaml:"id"`
	Name           string            `yaml:"name"`
	InitialBalance string            `yaml:"initial_balance"`
	FeeConfigs     []feeConfigRecord `yaml:"fee_configs"`
}

type categoryRecord struct {
	Name     string `yaml:"name"`
	IconName string `yaml:"icon_name"`
	Color    string `yaml:"color"`
	IsSystem bool   `yaml:"is_system"`
}

type budgetRecord struct {
	Category    string `yaml:"category"`
	LimitAmount string `yaml:"limit_amount"`
}

type loanRecord struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Amount    string `yaml:"amount"`
	CreatedAt string `yaml:"created_at"`
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// toTransaction converts a journal row. The date is kept verbatim so that malformed
// values reach the filter, which reports them.
func (r transactionRecord) toTransaction() (models.Transaction, error) {
	amount, err := currencyutils.ParseAmount(r.Amount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("amount: %w", err)
	}
	fee, err := currencyutils.ParseAmount(r.FeeAmount)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("fee_amount: %w", err)
	}

	txType := models.TransactionType(strings.ToUpper(strings.TrimSpace(r.Type)))
	if txType == "" {
		txType = models.TransactionTypeExpense
	}
	category := strings.TrimSpace(r.Category)
	if category == "" {
		category = models.CategoryOthers.String()
	}

	return models.Transaction{
		ID:                      strings.TrimSpace(r.ID),
		Amount:                  amount,
		Category:                category,
		Title:                   r.Title,
		Date:                    strings.TrimSpace(r.Date),
		Timestamp:               parseTimestamp(r.Timestamp),
		Type:                    txType,
		AccountID:               optional(r.AccountID),
		TransferTargetAccountID: optional(r.TransferTargetAccountID),
		FeeAmount:               fee,
		FeeConfigName:           optional(r.FeeConfigName),
		LoanID:                  optional(r.LoanID),
		Note:                    optional(r.Note),
	}, nil
}

func (r accountRecord) toAccount() (models.Account, error) {
	initial, err := currencyutils.ParseAmount(r.InitialBalance)
	if err != nil {
		return models.Account{}, fmt.Errorf("account %s: initial_balance: %w", r.ID, err)
	}
	configs := make([]models.FeeConfig, 0, len(r.FeeConfigs))
	for _, fc := range r.FeeConfigs {
		value, err := currencyutils.ParseAmount(fc.Value)
		if err != nil {
			return models.Account{}, fmt.Errorf("account %s: fee rule %s: %w", r.ID, fc.Name, err)
		}
		configs = append(configs, models.FeeConfig{Name: fc.Name, Value: value, IsPercentage: fc.IsPercentage})
	}
	return models.Account{ID: r.ID, Name: r.Name, InitialBalance: initial, FeeConfigs: configs}, nil
}

func (r categoryRecord) toCategory() models.Category {
	return models.Category{
		Name:     r.Name,
		IconName: r.IconName,
		Color:    r.Color,
		IsSystem: r.IsSystem || models.IsSystemCategory(r.Name),
	}
}

func (r budgetRecord) toBudget() (models.Budget, error) {
	limit, err := currencyutils.ParseAmount(r.LimitAmount)
	if err != nil {
		return models.Budget{}, fmt.Errorf("budget %s: %w", r.Category, err)
	}
	return models.Budget{Category: r.Category, LimitAmount: limit}, nil
}

func (r loanRecord) toLoan() (models.Loan, error) {
	loanType, err := models.ParseLoanType(r.Type)
	if err != nil {
		return models.Loan{}, fmt.Errorf("loan %s: %w", r.ID, err)
	}
	amount, err := currencyutils.ParseAmount(r.Amount)
	if err != nil {
		return models.Loan{}, fmt.Errorf("loan %s: %w", r.ID, err)
	}
	return models.Loan{
		ID:        r.ID,
		Name:      r.Name,
		Type:      loanType,
		Amount:    amount,
		CreatedAt: parseTimestamp(r.CreatedAt),
	}, nil
}
