package balance

import (
	"testing"

	"fjacquet/ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func build(b *models.TransactionBuilder) models.Transaction {
	return b.WithDate("2024-03-05").MustBuild()
}

func TestEffect(t *testing.T) {
	expense := build(models.NewTransactionBuilder().WithAccount("checking").WithAmount(dec("20")).WithFee(dec("1"), "ATM"))
	income := build(models.NewTransactionBuilder().WithAccount("checking").WithAmount(dec("100")).WithFee(dec("2"), models.FeeCustom).AsIncome())
	transfer := build(models.NewTransactionBuilder().WithAccount("checking").WithAmount(dec("50")).WithFee(dec("0.5"), models.FeeCustom).AsTransfer("savings"))
	orphan := build(models.NewTransactionBuilder().WithAmount(dec("9")))

	tests := []struct {
		name    string
		account string
		tx      models.Transaction
		want    string
	}{
		{"expense on source", "checking", expense, "-21"},
		{"expense elsewhere", "savings", expense, "0"},
		{"income on source", "checking", income, "98"},
		{"transfer out", "checking", transfer, "-50.5"},
		{"transfer in", "savings", transfer, "50"},
		{"deleted account", "checking", orphan, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Effect(tt.account, tt.tx)
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestAll(t *testing.T) {
	accounts := []models.Account{
		{ID: "checking", Name: "Checking", InitialBalance: dec("1000")},
		{ID: "savings", Name: "Savings", InitialBalance: dec("500")},
	}
	txs := []models.Transaction{
		build(models.NewTransactionBuilder().WithAccount("checking").WithAmount(dec("20")).WithFee(dec("1"), "ATM")),
		build(models.NewTransactionBuilder().WithAccount("checking").WithAmount(dec("300")).AsIncome()),
		build(models.NewTransactionBuilder().WithAccount("checking").WithAmount(dec("200")).WithFee(dec("2"), models.FeeCustom).AsTransfer("savings")),
	}

	got := All(accounts, txs)
	require.Len(t, got, 2)

	checking := got[0]
	assert.Equal(t, "Checking", checking.Name)
	assert.True(t, dec("1077").Equal(checking.Current), "got %s", checking.Current)
	assert.True(t, dec("300").Equal(checking.Inflow))
	assert.True(t, dec("223").Equal(checking.Outflow))

	savings := got[1]
	assert.True(t, dec("700").Equal(savings.Current))
	assert.True(t, dec("700").Equal(Current(accounts[1], txs)))

	assert.True(t, dec("1777").Equal(NetWorth(got)))
}
