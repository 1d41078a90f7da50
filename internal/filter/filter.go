// Package filter selects the transactions that fall inside a period and match the
// report options.
package filter

import (
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"
	"fjacquet/ledger/internal/period"
)

// Options narrows a selection beyond the date range
type Options struct {
	// ExcludeLoans drops every transaction tagged to a loan
	ExcludeLoans bool
	// Type keeps only transactions of this type when set
	Type *models.TransactionType
}

// Result is the outcome of a selection. Transactions keep their input order.
type Result struct {
	Transactions []models.Transaction
	// Malformed holds the ids of transactions skipped because their date did not parse
	Malformed []string
	// Transitional holds the ids of in-period transfers skipped because an account is missing
	Transitional []string
}

// MalformedCount returns how many transactions were skipped for a bad date
func (r Result) MalformedCount() int {
	return len(r.Malformed)
}

// TransitionalCount returns how many incomplete transfers were skipped
func (r Result) TransitionalCount() int {
	return len(r.Transitional)
}

// Select returns the transactions whose date lies in rg (both ends included) and which
// match opts. Transactions with an unparseable date are never included; their ids are
// reported in Result.Malformed. Matching transfers missing an account are left out too and
// reported in Result.Transitional.
func Select(txs []models.Transaction, rg period.Range, opts Options) Result {
	result := Result{Transactions: make([]models.Transaction, 0, len(txs))}

	for _, tx := range txs {
		date, err := tx.ParsedDate()
		if err != nil {
			result.Malformed = append(result.Malformed, tx.ID)
			continue
		}
		if !rg.Contains(date) {
			continue
		}
		if opts.Type != nil && tx.Type != *opts.Type {
			continue
		}
		if opts.ExcludeLoans && tx.HasLoan() {
			continue
		}
		if tx.IsTransitional() {
			result.Transitional = append(result.Transitional, tx.ID)
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}

	return result
}

// Filter wraps Select and reports skipped rows through a logger
type Filter struct {
	logger logging.Logger
}

// NewFilter creates a Filter. A nil logger discards the warnings.
func NewFilter(logger logging.Logger) *Filter {
	return &Filter{logger: logging.OrDiscard(logger)}
}

// Select is the package-level Select plus one warning per call when malformed dates
// were skipped.
func (f *Filter) Select(txs []models.Transaction, rg period.Range, opts Options) Result {
	result := Select(txs, rg, opts)

	if n := result.MalformedCount(); n > 0 {
		f.logger.Warn("Skipped transactions with malformed dates",
			logging.F(logging.FieldMalformedCount, n),
			logging.F(logging.FieldPeriod, rg.String()))
		for _, id := range result.Malformed {
			f.logger.Debug("Malformed transaction date", logging.F(logging.FieldTransactionID, id))
		}
	}

	if n := result.TransitionalCount(); n > 0 {
		f.logger.Warn("Skipped transfers missing an account",
			logging.F(logging.FieldCount, n),
			logging.F(logging.FieldPeriod, rg.String()))
	}

	f.logger.Debug("Selected transactions",
		logging.F(logging.FieldPeriod, rg.String()),
		logging.F(logging.FieldCount, len(result.Transactions)))

	return result
}

// TypePtr is a convenience for building Options.Type
func TypePtr(t models.TransactionType) *models.TransactionType {
	return &t
}
