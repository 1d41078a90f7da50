package models

import (
	"testing"
	"time"

	"fjacquet/ledger/internal/ledgererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		input     string
		expected  TransactionType
		expectErr bool
	}{
		{"EXPENSE", TransactionTypeExpense, false},
		{"income", TransactionTypeIncome, false},
		{" Transfer ", TransactionTypeTransfer, false},
		{"refund", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseTransactionType(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestTransaction_ParsedDate(t *testing.T) {
	tx := Transaction{ID: "t1", Date: "2024-03-05"}
	d, err := tx.ParsedDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), d)

	bad := Transaction{ID: "t2", Date: "05/03/2024"}
	_, err = bad.ParsedDate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ledgererror.ErrMalformedDate)

	var malformed *ledgererror.MalformedDateError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "t2", malformed.TransactionID)
	assert.Equal(t, "05/03/2024", malformed.Value)
}

func TestTransaction_Predicates(t *testing.T) {
	tx := Transaction{
		Type:                    TransactionTypeTransfer,
		AccountID:               StringPtr("a1"),
		TransferTargetAccountID: StringPtr("a2"),
		FeeAmount:               decimal.NewFromInt(1),
		LoanID:                  StringPtr("loan-1"),
	}

	assert.True(t, tx.IsTransfer())
	assert.False(t, tx.IsExpense())
	assert.False(t, tx.IsIncome())
	assert.True(t, tx.HasFee())
	assert.True(t, tx.HasLoan())
	assert.True(t, tx.BelongsToLoan("loan-1"))
	assert.False(t, tx.BelongsToLoan("loan-2"))
	assert.True(t, tx.IsOnAccount("a1"))
	assert.True(t, tx.IsTransferTo("a2"))
	assert.False(t, tx.IsTransferTo("a1"))
	assert.Equal(t, "a1", tx.AccountKey())

	orphan := Transaction{Type: TransactionTypeExpense}
	assert.Equal(t, DeletedAccountKey, orphan.AccountKey())
	assert.False(t, orphan.HasFee())
	assert.False(t, orphan.HasLoan())
}

func TestNormalizeFeeSelection(t *testing.T) {
	tests := []struct {
		name     string
		input    *string
		expected string
	}{
		{"nil", nil, FeeNone},
		{"blank", StringPtr("  "), FeeNone},
		{"none", StringPtr(" None "), FeeNone},
		{"custom", StringPtr("Custom"), FeeCustom},
		{"lowercase none is a rule name", StringPtr("none"), "none"},
		{"uppercase custom is a rule name", StringPtr("CUSTOM"), "CUSTOM"},
		{"rule", StringPtr(" ATM withdrawal "), "ATM withdrawal"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeFeeSelection(tc.input))
		})
	}
}

func TestSystemCategories(t *testing.T) {
	for _, c := range SystemCategories {
		parsed, ok := ParseSystemCategory(c.String())
		assert.True(t, ok, c.String())
		assert.Equal(t, c, parsed)
	}

	_, ok := ParseSystemCategory("loan")
	assert.False(t, ok, "matching is case-sensitive")
	assert.False(t, IsSystemCategory("Food"))
	assert.Equal(t, "", CategoryNone.String())

	assert.True(t, CategoryLoan.ExemptFromBudget())
	assert.True(t, CategoryTransactionFee.ExemptFromBudget())
	assert.True(t, CategoryBalanceAdjustment.ExemptFromBudget())
	assert.False(t, CategoryOthers.ExemptFromBudget())
	assert.False(t, CategoryNone.ExemptFromBudget())
}

func TestDefaultSystemCategories(t *testing.T) {
	cats := DefaultSystemCategories()
	require.Len(t, cats, 4)
	for _, c := range cats {
		assert.True(t, c.IsSystem)
		assert.True(t, IsSystemCategory(c.Name))
	}
}

func TestFindFeeConfig(t *testing.T) {
	acc := Account{
		ID: "a1",
		FeeConfigs: []FeeConfig{
			{Name: "ATM", Value: decimal.NewFromInt(2)},
			{Name: "FX", Value: decimal.RequireFromString("1.5"), IsPercentage: true},
		},
	}

	fx, ok := acc.FindFeeConfig("FX")
	require.True(t, ok)
	assert.True(t, fx.IsPercentage)

	_, ok = acc.FindFeeConfig("fx")
	assert.False(t, ok)
}

func TestParseLoanType(t *testing.T) {
	lt, err := ParseLoanType("lend")
	require.NoError(t, err)
	assert.Equal(t, LoanLend, lt)

	lt, err = ParseLoanType("BORROW")
	require.NoError(t, err)
	assert.Equal(t, LoanBorrow, lt)

	_, err = ParseLoanType("gift")
	assert.Error(t, err)
}

func TestDerefString(t *testing.T) {
	assert.Equal(t, "", DerefString(nil))
	assert.Equal(t, "x", DerefString(StringPtr("x")))
}
