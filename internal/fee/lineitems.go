package fee

import (
	"fjacquet/ledger/internal/models"

	"github.com/shopspring/decimal"
)

// LineItem is one display row derived from a transaction
type LineItem struct {
	TransactionID string                 `json:"transactionId"`
	Title         string                 `json:"title"`
	Category      string                 `json:"category"`
	Type          models.TransactionType `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	Date          string                 `json:"date"`
	Synthetic     bool                   `json:"synthetic"`
}

// ExpandLineItems returns the transaction's own line followed, when it carries a fee, by a
// synthetic expense line in the TransactionFee category. The synthetic line exists only in
// derived views and must never be stored.
func ExpandLineItems(tx models.Transaction) []LineItem {
	items := []LineItem{{
		TransactionID: tx.ID,
		Title:         tx.Title,
		Category:      tx.Category,
		Type:          tx.Type,
		Amount:        tx.Amount,
		Date:          tx.Date,
	}}

	if !tx.FeeAmount.IsPositive() {
		return items
	}

	return append(items, LineItem{
		TransactionID: tx.ID,
		Title:         feeTitle(tx),
		Category:      models.CategoryTransactionFee.String(),
		Type:          models.TransactionTypeExpense,
		Amount:        tx.FeeAmount,
		Date:          tx.Date,
		Synthetic:     true,
	})
}

// ExpandAll expands every transaction, preserving order
func ExpandAll(txs []models.Transaction) []LineItem {
	items := make([]LineItem, 0, len(txs))
	for _, tx := range txs {
		items = append(items, ExpandLineItems(tx)...)
	}
	return items
}

func feeTitle(tx models.Transaction) string {
	if sel := tx.FeeSelection(); sel != models.FeeNone && sel != models.FeeCustom {
		return "Fee: " + sel
	}
	if tx.Title == "" {
		return "Fee"
	}
	return "Fee: " + tx.Title
}
