// Package validation checks ledger records and user-supplied paths before they reach
// the engine.
package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/ledger/internal/models"
)

// Output formats understood by the report generator
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatText = "text"
)

// IsValidPath checks if a given path exists and is accessible.
func IsValidPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}

	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}

	return nil
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatJSON, FormatCSV, FormatText:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'json', 'csv', 'text'", format)
	}
}

// IsValidFilePermissions checks that a ledger data file is not accessible to others.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600 or 0640", mode.String())
	}
	return nil
}

// IsReportable reports the problems that keep tx out of a trustworthy report: a
// negative amount or fee, an unknown type, a transfer missing one of its accounts, or a
// rule name recorded without any fee. Every problem found is joined into the error.
func IsReportable(tx models.Transaction) error {
	var problems []error

	if !tx.Type.IsValid() {
		problems = append(problems, fmt.Errorf("unknown type %q", tx.Type))
	}
	if tx.Amount.IsNegative() {
		problems = append(problems, fmt.Errorf("negative amount %s", tx.Amount))
	}
	if tx.FeeAmount.IsNegative() {
		problems = append(problems, fmt.Errorf("negative fee %s", tx.FeeAmount))
	}
	if tx.IsTransfer() {
		if tx.AccountID == nil || tx.TransferTargetAccountID == nil {
			problems = append(problems, errors.New("transfer without both source and target account"))
		} else if *tx.AccountID == *tx.TransferTargetAccountID {
			problems = append(problems, errors.New("transfer to its own source account"))
		}
	}
	if sel := tx.FeeSelection(); sel != models.FeeNone && sel != models.FeeCustom && tx.FeeAmount.IsZero() {
		problems = append(problems, fmt.Errorf("fee rule %q recorded without a fee amount", sel))
	}
	if _, err := tx.ParsedDate(); err != nil {
		problems = append(problems, err)
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("transaction %s is not reportable: %w", tx.ID, errors.Join(problems...))
}
