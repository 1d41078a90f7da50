// Package importer handles copying a file-backed ledger into a SQLite database
package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"fjacquet/ledger/cmd/root"
	"fjacquet/ledger/internal/config"
	"fjacquet/ledger/internal/fileutils"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/store"
	"fjacquet/ledger/internal/validation"

	"github.com/spf13/cobra"
)

// Options are the import command settings
type Options struct {
	FromDir string
	DBPath  string
	DryRun  bool
}

// Result counts the records copied by an import
type Result struct {
	Transactions int
	Accounts     int
	Categories   int
	Budgets      int
	Loans        int
}

func (r Result) String() string {
	return fmt.Sprintf("%d transactions, %d accounts, %d categories, %d budgets, %d loans",
		r.Transactions, r.Accounts, r.Categories, r.Budgets, r.Loans)
}

var opts Options

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Copy the file-backed ledger into the SQLite database",
	Long: `Copy the file-backed ledger (CSV journal and YAML documents) into the SQLite
database, replacing its whole content. The source directory defaults to data.directory
and the database to data.sqlite_path.`,
	Run: importFunc,
}

func init() {
	Cmd.Flags().StringVar(&opts.FromDir, "from-dir", "", "Directory holding the ledger files (default: data.directory)")
	Cmd.Flags().StringVar(&opts.DBPath, "db", "", "SQLite database to fill (default: data.sqlite_path)")
	Cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Read and count the records without writing")
}

func importFunc(cmd *cobra.Command, args []string) {
	files, dbPath := Locations(root.AppConfig, opts)
	if err := CheckSource(files.Directory); err != nil {
		root.Log.Fatalf("Error reading ledger files: %v", err)
	}
	src := store.NewFileStore(files, root.Log)

	if opts.DryRun {
		res, err := Run(cmd.Context(), src, nil, root.Log)
		if err != nil {
			root.Log.Fatalf("Error reading ledger files: %v", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Would import %s\n", res)
		return
	}

	dst, err := store.OpenSQLite(dbPath, root.Log)
	if err != nil {
		root.Log.Fatalf("Error opening database %s: %v", dbPath, err)
	}
	defer dst.Close()

	res, err := Run(cmd.Context(), src, dst, root.Log)
	if err != nil {
		root.Log.Fatalf("Error importing ledger: %v", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s into %s\n", res, dbPath)
}

// Locations resolves the source files and target database of an import
func Locations(cfg *config.Config, o Options) (store.FileConfig, string) {
	so := cfg.StoreOptions()
	if o.FromDir != "" {
		so.Files.Directory = o.FromDir
	}
	dbPath := so.DBPath
	if o.DBPath != "" {
		dbPath = o.DBPath
	}
	return so.Files, dbPath
}

// CheckSource verifies that the ledger directory exists
func CheckSource(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("invalid source directory %q: %w", dir, err)
	}
	if err := validation.IsValidPath(abs); err != nil {
		return err
	}
	if !fileutils.DirectoryExists(abs) {
		return fmt.Errorf("source %s is not a directory", abs)
	}
	return nil
}

// Run copies the snapshot of src into dst. A nil dst only reads and counts.
func Run(ctx context.Context, src store.Reader, dst store.Writer, logger logging.Logger) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger = logging.OrDiscard(logger)
	start := time.Now()

	snap, err := src.Snapshot(ctx)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		Transactions: len(snap.Transactions),
		Accounts:     len(snap.Accounts),
		Categories:   len(snap.Categories),
		Budgets:      len(snap.Budgets),
		Loans:        len(snap.Loans),
	}
	if dst == nil {
		return res, nil
	}

	if err := dst.Replace(ctx, snap); err != nil {
		return Result{}, fmt.Errorf("failed to write ledger: %w", err)
	}

	logger.Info("Imported ledger",
		logging.F(logging.FieldOperation, "import"),
		logging.F(logging.FieldCount, res.Transactions),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return res, nil
}
