package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"fjacquet/ledger/internal/fileutils"
	"fjacquet/ledger/internal/ledgererror"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"

	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"
)

// SQLiteStore reads snapshots from a SQLite database.
// Amounts are stored as decimal text so no precision is lost.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

// OpenSQLite opens (creating if needed) the database at dbPath and migrates its schema
func OpenSQLite(dbPath string, logger logging.Logger) (*SQLiteStore, error) {
	if err := fileutils.EnsureDirectoryExists(filepath.Dir(dbPath)); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath, logger: logging.OrDiscard(logger)}, nil
}

// Close releases the database
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Snapshot reads every table concurrently
func (s *SQLiteStore) Snapshot(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	snap := &Snapshot{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		txs, err := s.queryTransactions(ctx)
		snap.Transactions = txs
		return s.wrap("transactions", err)
	})
	g.Go(func() error {
		accounts, err := s.queryAccounts(ctx)
		snap.Accounts = accounts
		return s.wrap("accounts", err)
	})
	g.Go(func() error {
		categories, err := s.queryCategories(ctx)
		snap.Categories = EnsureSystemCategories(categories)
		return s.wrap("categories", err)
	})
	g.Go(func() error {
		budgets, err := s.queryBudgets(ctx)
		snap.Budgets = budgets
		return s.wrap("budgets", err)
	})
	g.Go(func() error {
		loans, err := s.queryLoans(ctx)
		snap.Loans = loans
		return s.wrap("loans", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("Loaded ledger snapshot",
		logging.F(logging.FieldBackend, BackendSQLite),
		logging.F(logging.FieldSource, s.path),
		logging.F(logging.FieldCount, len(snap.Transactions)),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	return snap, nil
}

func (s *SQLiteStore) wrap(source string, err error) error {
	if err == nil {
		return nil
	}
	return &ledgererror.StoreError{Source: source, Path: s.path, Err: err}
}

// Replace swaps the whole content of the database for snap in one transaction
func (s *SQLiteStore) Replace(ctx context.Context, snap *Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"transactions", "fee_configs", "accounts", "categories", "budgets", "loans"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, a := range snap.Accounts {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO accounts (id, name, initial_balance) VALUES (?, ?, ?)`,
			a.ID, a.Name, a.InitialBalance.String()); err != nil {
			return fmt.Errorf("insert account %s: %w", a.ID, err)
		}
		for i, fc := range a.FeeConfigs {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO fee_configs (account_id, position, name, value, is_percentage) VALUES (?, ?, ?, ?, ?)`,
				a.ID, i, fc.Name, fc.Value.String(), fc.IsPercentage); err != nil {
				return fmt.Errorf("insert fee rule %s: %w", fc.Name, err)
			}
		}
	}

	for _, c := range snap.Categories {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO categories (name, icon_name, color, is_system) VALUES (?, ?, ?, ?)`,
			c.Name, c.IconName, c.Color, c.IsSystem); err != nil {
			return fmt.Errorf("insert category %s: %w", c.Name, err)
		}
	}

	for _, b := range snap.Budgets {
		if _, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO budgets (category, limit_amount) VALUES (?, ?)`,
			b.Category, b.LimitAmount.String()); err != nil {
			return fmt.Errorf("insert budget %s: %w", b.Category, err)
		}
	}

	for _, l := range snap.Loans {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO loans (id, name, type, amount, created_at) VALUES (?, ?, ?, ?, ?)`,
			l.ID, l.Name, string(l.Type), l.Amount.String(), timestampText(l.CreatedAt)); err != nil {
			return fmt.Errorf("insert loan %s: %w", l.ID, err)
		}
	}

	for _, t := range snap.Transactions {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO transactions (id, amount, category, title, date, timestamp, type, account_id,
				transfer_target_account_id, fee_amount, fee_config_name, loan_id, note)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Amount.String(), t.Category, t.Title, t.Date, timestampText(t.Timestamp), string(t.Type),
			nullable(t.AccountID), nullable(t.TransferTargetAccountID), t.FeeAmount.String(),
			nullable(t.FeeConfigName), nullable(t.LoanID), nullable(t.Note)); err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.logger.Info("Replaced ledger content",
		logging.F(logging.FieldBackend, BackendSQLite),
		logging.F(logging.FieldSource, s.path),
		logging.F(logging.FieldCount, len(snap.Transactions)))
	return nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return models.StringPtr(ns.String)
}

func timestampText(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func (s *SQLiteStore) queryTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, amount, category, title, date, timestamp, type, account_id,
			transfer_target_account_id, fee_amount, fee_config_name, loan_id, note
		FROM transactions ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := []models.Transaction{}
	for rows.Next() {
		var (
			rec                                  transactionRecord
			account, target, feeName, loan, note sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Amount, &rec.Category, &rec.Title, &rec.Date, &rec.Timestamp, &rec.Type,
			&account, &target, &rec.FeeAmount, &feeName, &loan, &note); err != nil {
			return nil, err
		}
		tx, err := rec.toTransaction()
		if err != nil {
			s.logger.WithError(err).Warn("Skipping unreadable transaction row",
				logging.F(logging.FieldTransactionID, rec.ID))
			continue
		}
		tx.AccountID = fromNullable(account)
		tx.TransferTargetAccountID = fromNullable(target)
		tx.FeeConfigName = fromNullable(feeName)
		tx.LoanID = fromNullable(loan)
		tx.Note = fromNullable(note)
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (s *SQLiteStore) queryAccounts(ctx context.Context) ([]models.Account, error) {
	rules, err := s.queryFeeConfigs(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, initial_balance FROM accounts ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var rec accountRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.InitialBalance); err != nil {
			return nil, err
		}
		rec.FeeConfigs = rules[rec.ID]
		a, err := rec.toAccount()
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *SQLiteStore) queryFeeConfigs(ctx context.Context) (map[string][]feeConfigRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT account_id, name, value, is_percentage FROM fee_configs ORDER BY account_id, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := make(map[string][]feeConfigRecord)
	for rows.Next() {
		var accountID string
		var rec feeConfigRecord
		if err := rows.Scan(&accountID, &rec.Name, &rec.Value, &rec.IsPercentage); err != nil {
			return nil, err
		}
		rules[accountID] = append(rules[accountID], rec)
	}
	return rules, rows.Err()
}

func (s *SQLiteStore) queryCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, icon_name, color, is_system FROM categories ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var rec categoryRecord
		if err := rows.Scan(&rec.Name, &rec.IconName, &rec.Color, &rec.IsSystem); err != nil {
			return nil, err
		}
		categories = append(categories, rec.toCategory())
	}
	return categories, rows.Err()
}

func (s *SQLiteStore) queryBudgets(ctx context.Context) ([]models.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, limit_amount FROM budgets ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var rec budgetRecord
		if err := rows.Scan(&rec.Category, &rec.LimitAmount); err != nil {
			return nil, err
		}
		b, err := rec.toBudget()
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (s *SQLiteStore) queryLoans(ctx context.Context) ([]models.Loan, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, type, amount, created_at FROM loans ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := []models.Loan{}
	for rows.Next() {
		var rec loanRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Type, &rec.Amount, &rec.CreatedAt); err != nil {
			return nil, err
		}
		l, err := rec.toLoan()
		if err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}
