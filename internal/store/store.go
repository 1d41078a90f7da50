// Package store loads immutable ledger snapshots from a record store.
//
// Two backends are provided: a file backend reading YAML documents and a CSV transaction
// journal, and a SQLite backend. Both return a fully materialized Snapshot; the engine
// never sees a partially loaded store and never writes back.
package store

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"
)

// Backend names accepted by the configuration
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Reader is the read side of a record store
type Reader interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Snapshot is a consistent view of every record in the store at load time.
// Callers must treat it as read-only.
type Snapshot struct {
	Transactions []models.Transaction
	Accounts     []models.Account
	Categories   []models.Category
	Budgets      []models.Budget
	Loans        []models.Loan
}

// Account returns the account with id
func (s *Snapshot) Account(id string) (models.Account, bool) {
	for _, a := range s.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return models.Account{}, false
}

// Loan returns the loan with id
func (s *Snapshot) Loan(id string) (models.Loan, bool) {
	for _, l := range s.Loans {
		if l.ID == id {
			return l, true
		}
	}
	return models.Loan{}, false
}

// Budget returns the budget of category
func (s *Snapshot) Budget(category string) (models.Budget, bool) {
	for _, b := range s.Budgets {
		if b.Category == category {
			return b, true
		}
	}
	return models.Budget{}, false
}

// EnsureSystemCategories appends the reserved categories missing from categories
func EnsureSystemCategories(categories []models.Category) []models.Category {
	present := make(map[string]bool, len(categories))
	for _, c := range categories {
		present[c.Name] = true
	}
	out := append([]models.Category(nil), categories...)
	for _, c := range models.DefaultSystemCategories() {
		if !present[c.Name] {
			out = append(out, c)
		}
	}
	return out
}

// Backend is a store that can be closed
type Backend interface {
	Reader
	Close() error
}

// Writer replaces the whole content of a store
type Writer interface {
	Replace(ctx context.Context, snap *Snapshot) error
}

// Options selects and locates a backend
type Options struct {
	Backend string
	Files   FileConfig
	DBPath  string
}

// Open returns the backend named by opts.Backend
func Open(opts Options, logger logging.Logger) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		return NewFileStore(opts.Files, logger), nil
	case BackendSQLite:
		if opts.DBPath == "" {
			return nil, fmt.Errorf("sqlite backend requires a database path")
		}
		return OpenSQLite(opts.DBPath, logger)
	default:
		return nil, fmt.Errorf("unknown store backend: %q", opts.Backend)
	}
}
