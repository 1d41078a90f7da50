package fee_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fjacquet/ledger/cmd/fee"
	"fjacquet/ledger/internal/config"
	"fjacquet/ledger/internal/container"
	"fjacquet/ledger/internal/ledgererror"
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
		Accounts: []models.Account{{
			ID:   "a1",
			Name: "Checking",
			FeeConfigs: []models.FeeConfig{
				{Name: "Wire", Value: dec("1.5"), IsPercentage: true},
				{Name: "ATM", Value: dec("2")},
			},
		}},
	}
	c, err := container.NewContainerWithStore(cfg, &store.MockStore{Snap: snap}, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func lines(out []byte) []string {
	return strings.Split(strings.TrimSpace(string(out)), "\n")
}

func TestFeeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "fee", fee.Cmd.Use)
	assert.NotNil(t, fee.Cmd.Flags().Lookup("account"))
	assert.NotNil(t, fee.Cmd.Flags().Lookup("custom"))
}

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		opts fee.Options
		want string
	}{
		{"percentage rule", fee.Options{Account: "a1", Rule: "Wire", Amount: "200"}, "a1,Wire,200.00,3.00,203.00"},
		{"flat rule", fee.Options{Account: "a1", Rule: "ATM", Amount: "50"}, "a1,ATM,50.00,2.00,52.00"},
		{"none", fee.Options{Account: "a1", Rule: "None", Amount: "50"}, "a1,None,50.00,0.00,50.00"},
		{"custom", fee.Options{Account: "a1", Rule: "Custom", Amount: "50", Custom: "4.25"}, "a1,Custom,50.00,4.25,54.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := fee.Run(context.Background(), newContainer(t), tt.opts)
			require.NoError(t, err)
			got := lines(out)
			require.Len(t, got, 2)
			assert.Equal(t, tt.want, got[1])
		})
	}
}

func TestRun_All(t *testing.T) {
	out, err := fee.Run(context.Background(), newContainer(t), fee.Options{Account: "a1", Amount: "100", All: true})
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 3)
	assert.Equal(t, "a1,Wire,100.00,1.50,101.50", got[1])
	assert.Equal(t, "a1,ATM,100.00,2.00,102.00", got[2])
}

func TestRun_Errors(t *testing.T) {
	c := newContainer(t)

	_, err := fee.Run(context.Background(), c, fee.Options{Account: "a1", Rule: "Gone", Amount: "10"})
	assert.True(t, errors.Is(err, ledgererror.ErrRuleNotFound))
	assert.Contains(t, err.Error(), "a1")

	_, err = fee.Run(context.Background(), c, fee.Options{Account: "zz", Rule: "None", Amount: "10"})
	assert.ErrorContains(t, err, "unknown account")

	_, err = fee.Run(context.Background(), c, fee.Options{Account: "a1", Rule: "None", Amount: "abc"})
	assert.ErrorContains(t, err, "invalid --amount")

	_, err = fee.Run(context.Background(), c, fee.Options{Account: "a1", Rule: "Custom", Amount: "10", Custom: "-1"})
	assert.ErrorContains(t, err, "invalid --custom")
}
