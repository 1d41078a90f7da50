// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"strings"
	"time"

	"fjacquet/ledger/internal/dateutils"
	"fjacquet/ledger/internal/fileutils"
	"fjacquet/ledger/internal/ledgererror"
	"fjacquet/ledger/internal/models"
	"fjacquet/ledger/internal/period"

	"github.com/spf13/cobra"
)

// PeriodFlags are the flags selecting a reporting period
type PeriodFlags struct {
	Granularity string
	Anchor      string
	From        string
	To          string
}

// Register adds the period flags to cmd
func (f *PeriodFlags) Register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Granularity, "granularity", "g", "", "Period granularity: daily, weekly, monthly, yearly or custom")
	cmd.Flags().StringVarP(&f.Anchor, "anchor", "a", "", "Any date inside the period, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&f.From, "from", "", "First day of a custom period, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.To, "to", "", "Last day of a custom period, YYYY-MM-DD")
}

// Selection turns the flags into a period selection. defaultGranularity applies when no
// granularity and no custom range are given. --from/--to imply a custom period, and a
// custom period without both of them is rejected.
func (f PeriodFlags) Selection(defaultGranularity string, today time.Time) (period.Selection, error) {
	anchor := dateutils.TruncateToDay(today)
	if f.Anchor != "" {
		parsed, err := dateutils.ParseISODate(f.Anchor)
		if err != nil {
			return period.Selection{}, fmt.Errorf("invalid --anchor: %w", err)
		}
		anchor = parsed
	}

	hasRange := f.From != "" || f.To != ""
	name := f.Granularity
	if name == "" {
		name = defaultGranularity
		if hasRange {
			name = string(period.Custom)
		}
	}
	g, err := period.ParseGranularity(name)
	if err != nil {
		return period.Selection{}, err
	}

	sel := period.Selection{Anchor: anchor, Granularity: g}
	if g != period.Custom {
		if hasRange {
			return period.Selection{}, &ledgererror.InvalidPeriodError{
				Granularity: string(g),
				Reason:      "--from/--to require the custom granularity",
			}
		}
		return sel, nil
	}

	if f.From == "" || f.To == "" {
		return period.Selection{}, &ledgererror.InvalidPeriodError{
			Granularity: string(g),
			Reason:      "a custom period needs both --from and --to",
		}
	}
	rg, err := period.ParseRange(f.From, f.To)
	if err != nil {
		return period.Selection{}, err
	}
	sel.Custom = &rg
	if f.Anchor == "" {
		sel.Anchor = rg.Start
	}
	return sel, nil
}

// ParseType parses a --type flag value. An empty value means every type.
func ParseType(s string) (*models.TransactionType, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t := models.TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return nil, fmt.Errorf("unknown transaction type: %q", s)
	}
	return &t, nil
}

// Emit writes data to the file at path, or to w when path is empty
func Emit(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	return fileutils.WriteFile(path, data, models.PermissionReportFile)
}
