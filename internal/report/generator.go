// Package report renders engine results as JSON, CSV or an aligned text table.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"fjacquet/ledger/internal/aggregator"
	"fjacquet/ledger/internal/balance"
	"fjacquet/ledger/internal/budget"
	"fjacquet/ledger/internal/currencyutils"
	"fjacquet/ledger/internal/dateutils"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/loan"
	"fjacquet/ledger/internal/period"
	"fjacquet/ledger/internal/validation"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// Generator renders reports in the configured currency format
type Generator struct {
	symbol    string
	precision int32
	logger    logging.Logger
}

// NewGenerator creates a Generator. symbol prefixes amounts in text output only.
func NewGenerator(symbol string, precision int32, logger logging.Logger) *Generator {
	return &Generator{
		symbol:    symbol,
		precision: precision,
		logger:    logging.OrDiscard(logger),
	}
}

type comparisonRow struct {
	Key           string `csv:"key"`
	Current       string `csv:"current"`
	Previous      string `csv:"previous"`
	Delta         string `csv:"delta"`
	PercentChange string `csv:"percent_change"`
}

type budgetRow struct {
	Category   string `csv:"category"`
	Spent      string `csv:"spent"`
	Limit      string `csv:"limit"`
	Remaining  string `csv:"remaining"`
	Ratio      string `csv:"ratio"`
	OverBudget bool   `csv:"over_budget"`
}

type loanRow struct {
	ID       string `csv:"id"`
	Name     string `csv:"name"`
	Type     string `csv:"type"`
	Given    string `csv:"given"`
	Received string `csv:"received"`
	Balance  string `csv:"balance"`
	Settled  bool   `csv:"settled"`
}

type balanceRow struct {
	AccountID string `csv:"account_id"`
	Name      string `csv:"name"`
	Initial   string `csv:"initial"`
	Inflow    string `csv:"inflow"`
	Outflow   string `csv:"outflow"`
	Current   string `csv:"current"`
}

func (g *Generator) plain(d decimal.Decimal) string {
	return currencyutils.FormatAmount(d, "", g.precision)
}

func (g *Generator) money(d decimal.Decimal) string {
	return currencyutils.FormatAmount(d, g.symbol, g.precision)
}

func percent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

// Report renders an aggregation report. CSV output holds one row per comparison.
func (g *Generator) Report(r *aggregator.Report, format string) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("cannot render a nil report")
	}
	return g.render(format, "report", r,
		func() ([]byte, error) {
			rows := make([]comparisonRow, 0, len(r.Comparisons))
			for _, c := range r.Comparisons {
				rows = append(rows, comparisonRow{
					Key:           c.Key,
					Current:       g.plain(c.Current),
					Previous:      g.plain(c.Previous),
					Delta:         g.plain(c.Delta),
					PercentChange: c.PercentChange.StringFixed(2),
				})
			}
			return marshalRows(&rows)
		},
		func(w *tabwriter.Writer) {
			fmt.Fprintf(w, "%s\t%s\t\t\n", r.Label, r.Current)
			fmt.Fprintf(w, "%s\tCURRENT\tPREVIOUS\tCHANGE\n", strings.ToUpper(string(r.GroupBy)))
			for _, c := range r.Comparisons {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Key, g.money(c.Current), g.money(c.Previous), percent(c.PercentChange))
			}
			fmt.Fprintln(w, "\t\t\t")
			fmt.Fprintf(w, "Income\t%s\t%s\t\n", g.money(r.Totals.Income), g.money(r.PreviousTotals.Income))
			fmt.Fprintf(w, "Expense\t%s\t%s\t%s\n", g.money(r.Totals.Expense), g.money(r.PreviousTotals.Expense), percent(r.ExpensePercentChange))
			fmt.Fprintf(w, "Transfer\t%s\t%s\t\n", g.money(r.Totals.Transfer), g.money(r.PreviousTotals.Transfer))
			fmt.Fprintf(w, "Net\t%s\t%s\t\n", g.money(r.Totals.Net()), g.money(r.PreviousTotals.Net()))
			if r.MalformedCount > 0 {
				fmt.Fprintf(w, "Skipped\t%d transaction(s) with malformed dates\t\t\n", r.MalformedCount)
			}
			if r.TransitionalCount > 0 {
				fmt.Fprintf(w, "Skipped\t%d transfer(s) missing an account\t\t\n", r.TransitionalCount)
			}
		})
}

// Budgets renders budget progress for the period named by label
func (g *Generator) Budgets(label string, progress []budget.Progress, format string) ([]byte, error) {
	return g.render(format, "budgets", map[string]interface{}{"period": label, "budgets": progress},
		func() ([]byte, error) {
			rows := make([]budgetRow, 0, len(progress))
			for _, p := range progress {
				rows = append(rows, budgetRow{
					Category:   p.Category,
					Spent:      g.plain(p.Spent),
					Limit:      g.plain(p.Limit),
					Remaining:  g.plain(p.Remaining()),
					Ratio:      p.Ratio.StringFixed(4),
					OverBudget: p.OverBudget,
				})
			}
			return marshalRows(&rows)
		},
		func(w *tabwriter.Writer) {
			fmt.Fprintf(w, "%s\t\t\t\t\n", label)
			fmt.Fprintln(w, "CATEGORY\tSPENT\tLIMIT\tUSED\tSTATUS")
			for _, p := range progress {
				status := "ok"
				if p.OverBudget {
					status = "OVER"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Category, g.money(p.Spent), g.money(p.Limit),
					percent(p.Ratio.Mul(decimal.NewFromInt(100))), status)
			}
		})
}

// Loans renders loan summaries
func (g *Generator) Loans(summaries []loan.Summary, format string) ([]byte, error) {
	return g.render(format, "loans", summaries,
		func() ([]byte, error) {
			rows := make([]loanRow, 0, len(summaries))
			for _, s := range summaries {
				rows = append(rows, loanRow{
					ID:       s.Loan.ID,
					Name:     s.Loan.Name,
					Type:     string(s.Loan.Type),
					Given:    g.plain(s.Given),
					Received: g.plain(s.Received),
					Balance:  g.plain(s.Balance),
					Settled:  s.Settled,
				})
			}
			return marshalRows(&rows)
		},
		func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "LOAN\tTYPE\tGIVEN\tRECEIVED\tOUTSTANDING")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.Loan.Name, s.Loan.Type, g.money(s.Given), g.money(s.Received), g.money(s.Balance))
			}
		})
}

// Balances renders account balances followed by the net worth
func (g *Generator) Balances(balances []balance.AccountBalance, format string) ([]byte, error) {
	return g.render(format, "balances", balances,
		func() ([]byte, error) {
			rows := make([]balanceRow, 0, len(balances))
			for _, b := range balances {
				rows = append(rows, balanceRow{
					AccountID: b.AccountID,
					Name:      b.Name,
					Initial:   g.plain(b.Initial),
					Inflow:    g.plain(b.Inflow),
					Outflow:   g.plain(b.Outflow),
					Current:   g.plain(b.Current),
				})
			}
			return marshalRows(&rows)
		},
		func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "ACCOUNT\tINITIAL\tIN\tOUT\tCURRENT")
			for _, b := range balances {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", b.Name, g.money(b.Initial), g.money(b.Inflow), g.money(b.Outflow), g.money(b.Current))
			}
			fmt.Fprintf(w, "Net worth\t\t\t\t%s\n", g.money(balance.NetWorth(balances)))
		})
}

func (g *Generator) render(format, kind string, v interface{}, csvFn func() ([]byte, error), textFn func(w *tabwriter.Writer)) ([]byte, error) {
	if err := validation.IsValidOutputFormat(format); err != nil {
		return nil, err
	}

	var (
		out []byte
		err error
	)
	switch strings.ToLower(format) {
	case validation.FormatJSON:
		out, err = json.MarshalIndent(v, "", "  ")
		if err == nil {
			out = append(out, '\n')
		}
	case validation.FormatCSV:
		out, err = csvFn()
	default:
		var buf bytes.Buffer
		w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
		textFn(w)
		err = w.Flush()
		out = buf.Bytes()
	}
	if err != nil {
		g.logger.WithError(err).Error("Failed to render output",
			logging.F(logging.FieldFormat, format),
			logging.F(logging.FieldOperation, kind))
		return nil, fmt.Errorf("failed to render %s as %s: %w", kind, format, err)
	}

	g.logger.Debug("Rendered output",
		logging.F(logging.FieldFormat, format),
		logging.F(logging.FieldOperation, kind))
	return out, nil
}

func marshalRows(rows interface{}) ([]byte, error) {
	s, err := gocsv.MarshalString(rows)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// FeeQuote is the outcome of resolving one fee selection
type FeeQuote struct {
	AccountID string          `json:"accountId" csv:"account_id"`
	Selection string          `json:"selection" csv:"selection"`
	Amount    decimal.Decimal `json:"amount" csv:"-"`
	Fee       decimal.Decimal `json:"fee" csv:"-"`
}

type feeRow struct {
	AccountID string `csv:"account_id"`
	Selection string `csv:"selection"`
	Amount    string `csv:"amount"`
	Fee       string `csv:"fee"`
	Total     string `csv:"total"`
}

// Fee renders resolved fees. Total is the amount plus its fee.
func (g *Generator) Fee(quotes []FeeQuote, format string) ([]byte, error) {
	return g.render(format, "fee", quotes,
		func() ([]byte, error) {
			rows := make([]feeRow, 0, len(quotes))
			for _, q := range quotes {
				rows = append(rows, feeRow{
					AccountID: q.AccountID,
					Selection: q.Selection,
					Amount:    g.plain(q.Amount),
					Fee:       g.plain(q.Fee),
					Total:     g.plain(q.Amount.Add(q.Fee)),
				})
			}
			return marshalRows(&rows)
		},
		func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "RULE\tAMOUNT\tFEE\tTOTAL")
			for _, q := range quotes {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", q.Selection, g.money(q.Amount), g.money(q.Fee), g.money(q.Amount.Add(q.Fee)))
			}
		})
}

// PeriodInfo describes a resolved period and the one before it
type PeriodInfo struct {
	Granularity   period.Granularity `json:"granularity"`
	Label         string             `json:"label"`
	Range         period.Range       `json:"range"`
	Days          int                `json:"days"`
	PreviousLabel string             `json:"previousLabel"`
	Previous      period.Range       `json:"previous"`
}

type periodRow struct {
	Granularity   string `csv:"granularity"`
	Label         string `csv:"label"`
	Start         string `csv:"start"`
	End           string `csv:"end"`
	Days          int    `csv:"days"`
	PreviousLabel string `csv:"previous_label"`
	PreviousStart string `csv:"previous_start"`
	PreviousEnd   string `csv:"previous_end"`
}

// Period renders resolved periods
func (g *Generator) Period(infos []PeriodInfo, format string) ([]byte, error) {
	return g.render(format, "period", infos,
		func() ([]byte, error) {
			rows := make([]periodRow, 0, len(infos))
			for _, p := range infos {
				rows = append(rows, periodRow{
					Granularity:   string(p.Granularity),
					Label:         p.Label,
					Start:         dateutils.ToISODate(p.Range.Start),
					End:           dateutils.ToISODate(p.Range.End),
					Days:          p.Days,
					PreviousLabel: p.PreviousLabel,
					PreviousStart: dateutils.ToISODate(p.Previous.Start),
					PreviousEnd:   dateutils.ToISODate(p.Previous.End),
				})
			}
			return marshalRows(&rows)
		},
		func(w *tabwriter.Writer) {
			fmt.Fprintln(w, "PERIOD\tRANGE\tDAYS\tPREVIOUS")
			for _, p := range infos {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s (%s)\n", p.Label, p.Range, p.Days, p.PreviousLabel, p.Previous)
			}
		})
}
