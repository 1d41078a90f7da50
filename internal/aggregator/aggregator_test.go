package aggregator

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"testing"
	"time"

	"fjacquet/ledger/internal/dateutils"
	"fjacquet/ledger/internal/filter"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"
	"fjacquet/ledger/internal/period"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cryptoRandIntn returns a random int in [0, n) using crypto/rand
func cryptoRandIntn(n int) int {
	if n <= 0 {
		return 0
	}
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(result.Int64())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestAggregator() (*Aggregator, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	resolver := period.NewResolver(period.DefaultSettings(), logger)
	return NewAggregator(resolver, logger), logger
}

func monthly(anchor string) period.Selection {
	return period.Selection{
		Anchor:      dateutils.MustParseISODate(anchor),
		Granularity: period.Monthly,
	}
}

func TestBuildScenario(t *testing.T) {
	txs := []models.Transaction{
		models.NewTransactionBuilder().WithID("t1").WithCategory("Food").WithAmount(dec("20")).WithDate("2024-03-05").MustBuild(),
		models.NewTransactionBuilder().WithID("t2").WithCategory("Food").WithAmount(dec("15")).WithFee(dec("2"), "ATM").WithDate("2024-03-10").MustBuild(),
	}

	agg, _ := newTestAggregator()
	report, err := agg.Build(txs, Request{Period: monthly("2024-03-15"), GroupBy: GroupByCategory})
	require.NoError(t, err)

	food, ok := FindBucket(report.Buckets, "Food")
	require.True(t, ok)
	assert.True(t, dec("35").Equal(food.Total))

	fees, ok := FindBucket(report.Buckets, "TransactionFee")
	require.True(t, ok)
	assert.True(t, dec("2").Equal(fees.Total))

	assert.True(t, dec("37").Equal(report.Totals.Expense))
	assert.Equal(t, "March 2024", report.Label)
	assert.Equal(t, "2024-03-01..2024-03-31", report.Current.String())
	assert.Equal(t, "2024-02-01..2024-02-29", report.Previous.String())
	assert.Equal(t, []string{"Food", "TransactionFee"}, []string{report.Buckets[0].Key, report.Buckets[1].Key})
	assert.Len(t, report.LineItems, 3)
}

func TestBuildComparesWithPreviousPeriod(t *testing.T) {
	txs := []models.Transaction{
		models.NewTransactionBuilder().WithCategory("Food").WithAmount(dec("50")).WithDate("2024-02-10").MustBuild(),
		models.NewTransactionBuilder().WithCategory("Food").WithAmount(dec("75")).WithDate("2024-03-10").MustBuild(),
		models.NewTransactionBuilder().WithCategory("Travel").WithAmount(dec("30")).WithDate("2024-03-12").MustBuild(),
		models.NewTransactionBuilder().WithCategory("Salary").WithAmount(dec("1000")).AsIncome().WithDate("2024-03-01").MustBuild(),
	}

	agg, _ := newTestAggregator()
	report, err := agg.Build(txs, Request{Period: monthly("2024-03-20"), GroupBy: GroupByCategory})
	require.NoError(t, err)

	require.Len(t, report.Comparisons, 2)
	food := report.Comparisons[0]
	assert.Equal(t, "Food", food.Key)
	assert.True(t, dec("75").Equal(food.Current))
	assert.True(t, dec("50").Equal(food.Previous))
	assert.True(t, dec("25").Equal(food.Delta))
	assert.True(t, dec("50").Equal(food.PercentChange))

	travel := report.Comparisons[1]
	assert.True(t, travel.Previous.IsZero())
	assert.True(t, dec("100").Equal(travel.PercentChange))

	assert.True(t, dec("1000").Equal(report.Totals.Income))
	assert.True(t, dec("105").Equal(report.Totals.Expense))
	assert.True(t, dec("50").Equal(report.PreviousTotals.Expense))
	assert.True(t, dec("110").Equal(report.ExpensePercentChange))
}

func TestBuildCountsMalformed(t *testing.T) {
	txs := []models.Transaction{
		models.NewTransactionBuilder().WithID("ok").WithAmount(dec("5")).WithDate("2024-03-05").MustBuild(),
		models.NewTransactionBuilder().WithID("bad").WithAmount(dec("5")).WithDate("05/03/2024").MustBuild(),
	}

	agg, logger := newTestAggregator()
	report, err := agg.Build(txs, Request{Period: monthly("2024-03-15"), GroupBy: GroupByAccount})
	require.NoError(t, err)

	assert.Equal(t, 1, report.MalformedCount)
	assert.True(t, dec("5").Equal(report.Totals.Expense))
	assert.Len(t, logger.GetEntriesByLevel("WARN"), 1)
}

func TestBuildSkipsTransitionalTransfers(t *testing.T) {
	txs := []models.Transaction{
		models.NewTransactionBuilder().WithID("done").WithAccount("checking").AsTransfer("savings").
			WithAmount(dec("100")).WithFee(dec("1"), models.FeeCustom).WithDate("2024-03-05").MustBuild(),
		models.NewTransactionBuilder().WithID("pending").AsTransfer("savings").
			WithAmount(dec("40")).WithFee(dec("2"), models.FeeCustom).WithDate("2024-03-06").MustBuild(),
	}

	agg, _ := newTestAggregator()
	report, err := agg.Build(txs, Request{Period: monthly("2024-03-15"), GroupBy: GroupByCategory})
	require.NoError(t, err)

	assert.Equal(t, 1, report.TransitionalCount)
	assert.True(t, dec("100").Equal(report.Totals.Transfer), "got %s", report.Totals.Transfer)
	assert.True(t, dec("1").Equal(report.Totals.Expense), "got %s", report.Totals.Expense)
}

func TestBuildHonoursFilterOptions(t *testing.T) {
	txs := []models.Transaction{
		models.NewTransactionBuilder().WithCategory("Food").WithAmount(dec("10")).WithDate("2024-03-05").MustBuild(),
		models.NewTransactionBuilder().WithCategory("Loan").WithAmount(dec("100")).WithLoan("l1").WithDate("2024-03-06").MustBuild(),
	}

	agg, _ := newTestAggregator()
	report, err := agg.Build(txs, Request{
		Period:  monthly("2024-03-15"),
		GroupBy: GroupByCategory,
		Options: filter.Options{ExcludeLoans: true},
	})
	require.NoError(t, err)

	require.Len(t, report.Buckets, 1)
	assert.Equal(t, "Food", report.Buckets[0].Key)
}

func TestBuildCustomPeriod(t *testing.T) {
	custom, err := period.ParseRange("2024-03-10", "2024-03-20")
	require.NoError(t, err)

	txs := []models.Transaction{
		models.NewTransactionBuilder().WithCategory("Food").WithAmount(dec("4")).WithDate("2024-03-01").MustBuild(),
		models.NewTransactionBuilder().WithCategory("Food").WithAmount(dec("8")).WithDate("2024-03-15").MustBuild(),
	}

	agg, _ := newTestAggregator()
	report, err := agg.Build(txs, Request{
		Period:  period.Selection{Anchor: custom.Start, Granularity: period.Custom, Custom: &custom},
		GroupBy: GroupByCategory,
	})
	require.NoError(t, err)

	assert.Equal(t, "Mar 10 - 20, 2024", report.Label)
	assert.Equal(t, "2024-02-28..2024-03-09", report.Previous.String())
	assert.True(t, dec("8").Equal(report.Totals.Expense))
	assert.True(t, dec("4").Equal(report.PreviousTotals.Expense))
}

func TestBuildRejectsInvalidRequest(t *testing.T) {
	agg, _ := newTestAggregator()

	_, err := agg.Build(nil, Request{Period: monthly("2024-03-15"), GroupBy: GroupBy("PAYEE")})
	assert.Error(t, err)

	sel := monthly("2024-03-15")
	sel.Granularity = period.Granularity("HOURLY")
	_, err = agg.Build(nil, Request{Period: sel, GroupBy: GroupByCategory})
	assert.Error(t, err)
}

func TestBuildEmpty(t *testing.T) {
	agg, _ := newTestAggregator()
	report, err := agg.Build(nil, Request{Period: monthly("2024-03-15"), GroupBy: GroupByCategory})
	require.NoError(t, err)

	assert.Empty(t, report.Buckets)
	assert.True(t, report.Totals.Expense.IsZero())
	assert.True(t, report.ExpensePercentChange.IsZero())
}

func TestChronological(t *testing.T) {
	ts := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		{ID: "c", Date: "2024-03-02", Timestamp: ts},
		{ID: "b", Date: "2024-03-01", Timestamp: ts.Add(time.Hour)},
		{ID: "a", Date: "2024-03-01", Timestamp: ts},
		{ID: "z", Date: "garbage"},
	}

	sorted := Chronological(txs)

	got := make([]string, 0, len(sorted))
	for _, tx := range sorted {
		got = append(got, tx.ID)
	}
	assert.Equal(t, []string{"z", "a", "b", "c"}, got)
	assert.Equal(t, "c", txs[0].ID)
}

func randomTransaction(i int) models.Transaction {
	types := []models.TransactionType{models.TransactionTypeExpense, models.TransactionTypeIncome, models.TransactionTypeTransfer}
	categories := []string{"Food", "Travel", "Rent", "TransactionFee", "Others"}
	accounts := []string{"checking", "savings", "card", ""}

	b := models.NewTransactionBuilder().
		WithID(fmt.Sprintf("tx-%d", i)).
		WithDate(dateutils.ToISODate(dateutils.MustParseISODate("2024-03-01").AddDate(0, 0, cryptoRandIntn(31)))).
		WithAmount(decimal.New(int64(cryptoRandIntn(100000)), -2)).
		WithCategory(categories[cryptoRandIntn(len(categories))])

	if acc := accounts[cryptoRandIntn(len(accounts))]; acc != "" {
		b = b.WithAccount(acc)
	}
	if cryptoRandIntn(3) == 0 {
		b = b.WithFee(decimal.New(int64(cryptoRandIntn(500)), -2), models.FeeCustom)
	}

	switch typ := types[cryptoRandIntn(len(types))]; typ {
	case models.TransactionTypeIncome:
		b = b.AsIncome()
	case models.TransactionTypeTransfer:
		b = b.WithAccount("checking").AsTransfer("savings")
	}

	return b.MustBuild()
}

// Fees are allocated exactly once whichever way spending is grouped.
func TestProperty_GroupingRoundTrip(t *testing.T) {
	agg, _ := newTestAggregator()

	for i := 0; i < 50; i++ {
		t.Run(fmt.Sprintf("iteration_%d", i), func(t *testing.T) {
			n := cryptoRandIntn(40) + 1
			txs := make([]models.Transaction, 0, n)
			expenses := decimal.Zero
			fees := decimal.Zero
			for j := 0; j < n; j++ {
				tx := randomTransaction(j)
				if tx.IsExpense() {
					expenses = expenses.Add(tx.Amount)
				}
				fees = fees.Add(tx.FeeAmount)
				txs = append(txs, tx)
			}

			byCategory, err := agg.Build(txs, Request{Period: monthly("2024-03-15"), GroupBy: GroupByCategory})
			require.NoError(t, err)
			byAccount, err := agg.Build(txs, Request{Period: monthly("2024-03-15"), GroupBy: GroupByAccount})
			require.NoError(t, err)

			want := expenses.Add(fees)
			assert.True(t, want.Equal(byCategory.Totals.Expense), "want %s got %s", want, byCategory.Totals.Expense)
			assert.True(t, want.Equal(SumBuckets(byCategory.Buckets)))
			assert.True(t, want.Equal(SumBuckets(byAccount.Buckets)))
			assert.True(t, byCategory.Totals.Expense.Equal(byAccount.Totals.Expense))
		})
	}
}
