// Package aggregator groups period transactions into spending buckets, compares them with
// the previous period and computes the report totals.
package aggregator

import (
	"fmt"
	"sort"
	"time"

	"fjacquet/ledger/internal/dateutils"
	"fjacquet/ledger/internal/fee"
	"fjacquet/ledger/internal/filter"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"
	"fjacquet/ledger/internal/period"

	"github.com/shopspring/decimal"
)

// Request describes the report to build
type Request struct {
	Period  period.Selection
	GroupBy GroupBy
	Options filter.Options
}

// Report is the result of one aggregation run
type Report struct {
	Label                string             `json:"label"`
	Granularity          period.Granularity `json:"granularity"`
	Current              period.Range       `json:"current"`
	Previous             period.Range       `json:"previous"`
	GroupBy              GroupBy            `json:"groupBy"`
	Buckets              []Bucket           `json:"buckets"`
	PreviousBuckets      []Bucket           `json:"previousBuckets"`
	Comparisons          []Comparison       `json:"comparisons"`
	Totals               Totals             `json:"totals"`
	PreviousTotals       Totals             `json:"previousTotals"`
	ExpensePercentChange decimal.Decimal    `json:"expensePercentChange"`
	MalformedCount       int                `json:"malformedCount"`
	TransitionalCount    int                `json:"transitionalCount"`
	LineItems            []fee.LineItem     `json:"lineItems"`
}

// Aggregator runs the period → filter → group → compare pipeline
type Aggregator struct {
	resolver *period.Resolver
	filter   *filter.Filter
	logger   logging.Logger
}

// NewAggregator creates a new Aggregator instance
func NewAggregator(resolver *period.Resolver, logger logging.Logger) *Aggregator {
	logger = logging.OrDiscard(logger)
	return &Aggregator{
		resolver: resolver,
		filter:   filter.NewFilter(logger),
		logger:   logger,
	}
}

// Build resolves the current and previous periods of req, selects the transactions of
// each from txs, groups them and compares the two. txs is never modified.
func (a *Aggregator) Build(txs []models.Transaction, req Request) (*Report, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	sel := req.Period
	current := a.resolver.BoundsOf(sel.Anchor, sel.Granularity, sel.Custom)
	previous := a.resolver.PreviousPeriod(sel.Anchor, sel.Granularity, sel.Custom)

	a.logger.Debug("Building report",
		logging.F(logging.FieldGranularity, string(sel.Granularity)),
		logging.F(logging.FieldPeriodStart, dateutils.ToISODate(current.Start)),
		logging.F(logging.FieldPeriodEnd, dateutils.ToISODate(current.End)),
		logging.F(logging.FieldGroupBy, string(req.GroupBy)))

	currentSet := a.filter.Select(txs, current, req.Options)
	previousSet := filter.Select(txs, previous, req.Options)

	currentBuckets, err := Group(currentSet.Transactions, req.GroupBy)
	if err != nil {
		return nil, err
	}
	previousBuckets, err := Group(previousSet.Transactions, req.GroupBy)
	if err != nil {
		return nil, err
	}

	totals := ComputeTotals(currentSet.Transactions)
	previousTotals := ComputeTotals(previousSet.Transactions)

	report := &Report{
		Label:                a.resolver.Label(sel.Anchor, sel.Granularity, sel.Custom),
		Granularity:          sel.Granularity,
		Current:              current,
		Previous:             previous,
		GroupBy:              req.GroupBy,
		Buckets:              currentBuckets,
		PreviousBuckets:      previousBuckets,
		Comparisons:          Compare(currentBuckets, previousBuckets),
		Totals:               totals,
		PreviousTotals:       previousTotals,
		ExpensePercentChange: PercentChange(totals.Expense, previousTotals.Expense),
		MalformedCount:       currentSet.MalformedCount(),
		TransitionalCount:    currentSet.TransitionalCount(),
		LineItems:            fee.ExpandAll(Chronological(currentSet.Transactions)),
	}

	a.logger.Info("Built report",
		logging.F(logging.FieldPeriod, report.Label),
		logging.F(logging.FieldCount, len(currentSet.Transactions)),
		logging.F(logging.FieldMalformedCount, report.MalformedCount))

	return report, nil
}

func validateRequest(req Request) error {
	if req.GroupBy != GroupByCategory && req.GroupBy != GroupByAccount {
		return fmt.Errorf("unknown grouping %q", req.GroupBy)
	}
	for _, g := range period.Granularities {
		if req.Period.Granularity == g {
			return nil
		}
	}
	return fmt.Errorf("unknown granularity %q", req.Period.Granularity)
}

// Chronological returns a copy of txs sorted by date, then creation timestamp, then id.
// Transactions with a malformed date sort first.
func Chronological(txs []models.Transaction) []models.Transaction {
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)

	dates := make(map[string]time.Time, len(sorted))
	for _, tx := range sorted {
		d, err := tx.ParsedDate()
		if err == nil {
			dates[tx.ID] = d
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := dates[sorted[i].ID], dates[sorted[j].ID]
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		}
		return sorted[i].ID < sorted[j].ID
	})

	return sorted
}
