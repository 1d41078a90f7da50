package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"fjacquet/ledger/internal/ledgererror"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"
	"fjacquet/ledger/internal/validation"

	"github.com/gocarina/gocsv"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Default file names inside the data directory
const (
	DefaultTransactionsFile = "transactions.csv"
	DefaultAccountsFile     = "accounts.yaml"
	DefaultCategoriesFile   = "categories.yaml"
	DefaultBudgetsFile      = "budgets.yaml"
	DefaultLoansFile        = "loans.yaml"
)

// FileConfig locates the files of a file-backed store. Relative file names are resolved
// against Directory.
type FileConfig struct {
	Directory        string
	TransactionsFile string
	AccountsFile     string
	CategoriesFile   string
	BudgetsFile      string
	LoansFile        string
}

// FileStore reads a snapshot from a CSV transaction journal and YAML documents
type FileStore struct {
	cfg    FileConfig
	logger logging.Logger
}

// NewFileStore creates a FileStore. Empty file names get the defaults.
func NewFileStore(cfg FileConfig, logger logging.Logger) *FileStore {
	if cfg.TransactionsFile == "" {
		cfg.TransactionsFile = DefaultTransactionsFile
	}
	if cfg.AccountsFile == "" {
		cfg.AccountsFile = DefaultAccountsFile
	}
	if cfg.CategoriesFile == "" {
		cfg.CategoriesFile = DefaultCategoriesFile
	}
	if cfg.BudgetsFile == "" {
		cfg.BudgetsFile = DefaultBudgetsFile
	}
	if cfg.LoansFile == "" {
		cfg.LoansFile = DefaultLoansFile
	}
	return &FileStore{cfg: cfg, logger: logging.OrDiscard(logger)}
}

// Close is a no-op; files are closed after each load
func (s *FileStore) Close() error { return nil }

// Path resolves name against the data directory
func (s *FileStore) Path(name string) string {
	if filepath.IsAbs(name) || s.cfg.Directory == "" {
		return name
	}
	return filepath.Join(s.cfg.Directory, name)
}

// Snapshot loads every file concurrently. A missing file is an empty source; an
// unreadable or unparseable one fails the whole load with a *ledgererror.StoreError.
func (s *FileStore) Snapshot(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	snap := &Snapshot{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		txs, err := s.loadTransactions(ctx)
		snap.Transactions = txs
		return err
	})
	g.Go(func() error {
		accounts, err := s.loadAccounts(ctx)
		snap.Accounts = accounts
		return err
	})
	g.Go(func() error {
		categories, err := s.loadCategories(ctx)
		snap.Categories = categories
		return err
	})
	g.Go(func() error {
		budgets, err := s.loadBudgets(ctx)
		snap.Budgets = budgets
		return err
	})
	g.Go(func() error {
		loans, err := s.loadLoans(ctx)
		snap.Loans = loans
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("Loaded ledger snapshot",
		logging.F(logging.FieldBackend, BackendFile),
		logging.F(logging.FieldSource, s.cfg.Directory),
		logging.F(logging.FieldCount, len(snap.Transactions)),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	return snap, nil
}

// open opens a data file, returning (nil, nil) when it does not exist
func (s *FileStore) open(source, name string) (*os.File, string, error) {
	path := s.Path(name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Data file not found, using an empty source",
				logging.F(logging.FieldSource, source),
				logging.F(logging.FieldFile, path))
			return nil, path, nil
		}
		return nil, path, &ledgererror.StoreError{Source: source, Path: path, Err: err}
	}
	if err := validation.IsValidFilePermissions(info.Mode().Perm()); err != nil {
		s.logger.WithError(err).Warn("Ledger data file is readable by other users",
			logging.F(logging.FieldFile, path))
	}

	f, err := os.Open(path) // #nosec G304 -- path comes from the user's own configuration
	if err != nil {
		return nil, path, &ledgererror.StoreError{Source: source, Path: path, Err: err}
	}
	return f, path, nil
}

func (s *FileStore) closeFile(f *os.File) {
	if err := f.Close(); err != nil {
		s.logger.WithError(err).Warn("Failed to close file")
	}
}

func (s *FileStore) loadTransactions(ctx context.Context) ([]models.Transaction, error) {
	const source = "transactions"
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, path, err := s.open(source, s.cfg.TransactionsFile)
	if err != nil || f == nil {
		return []models.Transaction{}, err
	}
	defer s.closeFile(f)

	var rows []transactionRecord
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []models.Transaction{}, nil
		}
		return nil, &ledgererror.StoreError{Source: source, Path: path, Err: err}
	}

	txs := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := row.toTransaction()
		if err != nil {
			s.logger.WithError(err).Warn("Skipping unreadable transaction row",
				logging.F(logging.FieldFile, path),
				logging.F(logging.FieldTransactionID, row.ID),
				logging.F("row", i+2))
			continue
		}
		if err := validation.IsReportable(tx); err != nil {
			s.logger.WithError(err).Warn("Transaction is not reportable",
				logging.F(logging.FieldTransactionID, tx.ID))
		}
		txs = append(txs, tx)
	}

	s.logger.Debug("Loaded transactions",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(txs)))
	return txs, nil
}

// decodeList unmarshals either a document with a top-level key holding the list, or a
// bare list.
func decodeList[T any](data []byte, key string) ([]T, error) {
	var doc map[string][]T
	if err := yaml.Unmarshal(data, &doc); err == nil {
		if items, ok := doc[key]; ok {
			return items, nil
		}
	}

	var items []T
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("expected a '%s' list: %w", key, err)
	}
	return items, nil
}

func readList[T any](ctx context.Context, s *FileStore, source, name string) ([]T, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	f, path, err := s.open(source, name)
	if err != nil || f == nil {
		return nil, path, err
	}
	defer s.closeFile(f)

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, path, &ledgererror.StoreError{Source: source, Path: path, Err: err}
	}

	items, err := decodeList[T](data, source)
	if err != nil {
		return nil, path, &ledgererror.StoreError{Source: source, Path: path, Err: err}
	}
	return items, path, nil
}

func (s *FileStore) loadAccounts(ctx context.Context) ([]models.Account, error) {
	records, path, err := readList[accountRecord](ctx, s, "accounts", s.cfg.AccountsFile)
	if err != nil {
		return nil, err
	}
	accounts := make([]models.Account, 0, len(records))
	for _, r := range records {
		a, err := r.toAccount()
		if err != nil {
			return nil, &ledgererror.StoreError{Source: "accounts", Path: path, Err: err}
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func (s *FileStore) loadCategories(ctx context.Context) ([]models.Category, error) {
	records, _, err := readList[categoryRecord](ctx, s, "categories", s.cfg.CategoriesFile)
	if err != nil {
		return nil, err
	}
	categories := make([]models.Category, 0, len(records))
	for _, r := range records {
		categories = append(categories, r.toCategory())
	}
	return EnsureSystemCategories(categories), nil
}

func (s *FileStore) loadBudgets(ctx context.Context) ([]models.Budget, error) {
	records, path, err := readList[budgetRecord](ctx, s, "budgets", s.cfg.BudgetsFile)
	if err != nil {
		return nil, err
	}
	budgets := make([]models.Budget, 0, len(records))
	seen := make(map[string]int, len(records))
	for _, r := range records {
		b, err := r.toBudget()
		if err != nil {
			return nil, &ledgererror.StoreError{Source: "budgets", Path: path, Err: err}
		}
		// one budget per category, the last one wins
		if i, ok := seen[b.Category]; ok {
			budgets[i] = b
			continue
		}
		seen[b.Category] = len(budgets)
		budgets = append(budgets, b)
	}
	return budgets, nil
}

func (s *FileStore) loadLoans(ctx context.Context) ([]models.Loan, error) {
	records, path, err := readList[loanRecord](ctx, s, "loans", s.cfg.LoansFile)
	if err != nil {
		return nil, err
	}
	loans := make([]models.Loan, 0, len(records))
	for _, r := range records {
		l, err := r.toLoan()
		if err != nil {
			return nil, &ledgererror.StoreError{Source: "loans", Path: path, Err: err}
		}
		loans = append(loans, l)
	}
	return loans, nil
}
