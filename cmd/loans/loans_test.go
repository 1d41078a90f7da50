package loans_test

import (
	"context"
	"strings"
	"testing"

	"fjacquet/ledger/cmd/loans"
	"fjacquet/ledger/internal/config"
	"fjacquet/ledger/internal/container"
	"fjacquet/ledger/internal/logging"
	"fjacquet/ledger/internal/models"
	"fjacquet/ledger/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newContainer(t *testing.T) *container.Container {
	t.Helper()
	cfg := config.Default()
	cfg.Report.Format = "csv"

	snap := &store.Snapshot{
		Loans: []models.Loan{
			{ID: "l1", Name: "Bob", Type: models.LoanLend, Amount: dec("100")},
			{ID: "l2", Name: "Alice", Type: models.LoanBorrow, Amount: dec("100")},
			{ID: "l3", Name: "Carol", Type: models.LoanLend, Amount: dec("10")},
		},
		Transactions: []models.Transaction{
			models.NewTransactionBuilder().WithLoan("l1").WithAmount(dec("100")).WithDate("2024-01-01").MustBuild(),
			models.NewTransactionBuilder().WithLoan("l1").AsIncome().WithAmount(dec("40")).WithDate("2024-02-01").MustBuild(),
			models.NewTransactionBuilder().WithLoan("l2").AsIncome().WithAmount(dec("100")).WithDate("2024-01-01").MustBuild(),
			models.NewTransactionBuilder().WithLoan("l2").WithAmount(dec("40")).WithDate("2024-02-01").MustBuild(),
			models.NewTransactionBuilder().WithLoan("l3").WithAmount(dec("10")).WithDate("2024-01-01").MustBuild(),
			models.NewTransactionBuilder().WithLoan("l3").AsIncome().WithAmount(dec("10")).WithDate("2024-01-05").MustBuild(),
		},
	}
	c, err := container.NewContainerWithStore(cfg, &store.MockStore{Snap: snap}, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func TestLoansCommand_Metadata(t *testing.T) {
	assert.Equal(t, "loans", loans.Cmd.Use)
	assert.Contains(t, loans.Cmd.Short, "still owed")
	assert.NotNil(t, loans.Cmd.Run)
	assert.NotNil(t, loans.Cmd.Flags().Lookup("open-only"))
	assert.NotNil(t, loans.Cmd.Flags().Lookup("type"))
}

func TestRun(t *testing.T) {
	out, err := loans.Run(context.Background(), newContainer(t), loans.Options{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "id,name,type,given,received,balance,settled", lines[0])
	assert.Equal(t, "l2,Alice,BORROW,40.00,100.00,60.00,false", lines[1])
	assert.Equal(t, "l1,Bob,LEND,100.00,40.00,60.00,false", lines[2])
	assert.Equal(t, "l3,Carol,LEND,10.00,10.00,0.00,true", lines[3])
}

func TestRun_Filters(t *testing.T) {
	c := newContainer(t)

	out, err := loans.Run(context.Background(), c, loans.Options{OpenOnly: true, Type: "lend"})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "l1,Bob"))

	_, err = loans.Run(context.Background(), c, loans.Options{Type: "gift"})
	assert.Error(t, err)
}
