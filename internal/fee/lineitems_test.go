package fee

import (
	"testing"

	"fjacquet/ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandLineItems(t *testing.T) {
	t.Run("no fee yields the transaction only", func(t *testing.T) {
		tx := models.NewTransactionBuilder().
			WithID("t1").
			WithDate("2024-03-05").
			WithAmount(dec("20")).
			WithCategory("Food").
			WithTitle("Lunch").
			MustBuild()

		items := ExpandLineItems(tx)
		require.Len(t, items, 1)
		assert.Equal(t, "Food", items[0].Category)
		assert.False(t, items[0].Synthetic)
	})

	t.Run("fee adds a synthetic expense line", func(t *testing.T) {
		tx := models.NewTransactionBuilder().
			WithID("t2").
			WithDate("2024-03-05").
			WithAmount(dec("500")).
			WithCategory("Salary").
			WithTitle("Payday").
			AsIncome().
			WithFee(dec("1.50"), "Wire").
			MustBuild()

		items := ExpandLineItems(tx)
		require.Len(t, items, 2)

		assert.Equal(t, models.TransactionTypeIncome, items[0].Type)
		assert.True(t, dec("500").Equal(items[0].Amount))

		fee := items[1]
		assert.True(t, fee.Synthetic)
		assert.Equal(t, "t2", fee.TransactionID)
		assert.Equal(t, "TransactionFee", fee.Category)
		assert.Equal(t, models.TransactionTypeExpense, fee.Type)
		assert.True(t, dec("1.5").Equal(fee.Amount))
		assert.Equal(t, "2024-03-05", fee.Date)
		assert.Equal(t, "Fee: Wire", fee.Title)
	})

	t.Run("custom fee is titled after the transaction", func(t *testing.T) {
		tx := models.NewTransactionBuilder().
			WithDate("2024-03-05").
			WithAmount(dec("10")).
			WithTitle("Taxi").
			WithFee(dec("0.5"), models.FeeCustom).
			MustBuild()

		items := ExpandLineItems(tx)
		require.Len(t, items, 2)
		assert.Equal(t, "Fee: Taxi", items[1].Title)
	})
}

func TestExpandAll(t *testing.T) {
	txs := []models.Transaction{
		models.NewTransactionBuilder().WithID("a").WithDate("2024-03-01").WithAmount(dec("1")).MustBuild(),
		models.NewTransactionBuilder().WithID("b").WithDate("2024-03-02").WithAmount(dec("2")).WithFee(dec("1"), models.FeeCustom).MustBuild(),
		models.NewTransactionBuilder().WithID("c").WithDate("2024-03-03").WithAmount(dec("3")).MustBuild(),
	}

	items := ExpandAll(txs)
	require.Len(t, items, 4)
	ids := []string{items[0].TransactionID, items[1].TransactionID, items[2].TransactionID, items[3].TransactionID}
	assert.Equal(t, []string{"a", "b", "b", "c"}, ids)
	assert.True(t, items[2].Synthetic)
	assert.Len(t, txs, 3)
}
