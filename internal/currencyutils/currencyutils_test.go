package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		input    string
		places   int32
		expected string
	}{
		{"1.005", 2, "1.01"},
		{"1.004", 2, "1.00"},
		{"2.675", 2, "2.68"},
		{"12.5", 0, "13"},
		{"0.125", 2, "0.13"},
		{"3", 2, "3.00"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := RoundHalfUp(decimal.RequireFromString(tc.input), tc.places)
			assert.Equal(t, tc.expected, got.StringFixed(tc.places))
		})
	}
}

func TestPercent(t *testing.T) {
	got := Percent(decimal.NewFromInt(250), decimal.RequireFromString("1.5"))
	assert.True(t, got.Equal(decimal.RequireFromString("3.75")), got.String())
}

func TestSum(t *testing.T) {
	assert.True(t, Sum().IsZero())
	got := Sum(decimal.NewFromInt(1), decimal.RequireFromString("2.5"), decimal.RequireFromString("0.25"))
	assert.Equal(t, "3.75", got.StringFixed(2))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		expectErr bool
	}{
		{"plain", "1234.56", "1234.56", false},
		{"empty is zero", "", "0.00", false},
		{"comma decimal", "1234,56", "1234.56", false},
		{"european grouping", "1.234,56", "1234.56", false},
		{"us grouping", "1,234.56", "1234.56", false},
		{"swiss apostrophe", "1'234.56", "1234.56", false},
		{"comma thousands", "1,234", "1234.00", false},
		{"currency code", "CHF 12.50", "12.50", false},
		{"currency symbol", "€9.99", "9.99", false},
		{"invalid", "twelve", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got.StringFixed(2))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	amount := decimal.RequireFromString("1234.5")
	assert.Equal(t, "1234.50", FormatAmount(amount, "", 2))
	assert.Equal(t, "€1234.50", FormatAmount(amount, "€", 2))
	assert.Equal(t, "CHF 1234.50", FormatAmount(amount, "CHF", 2))
	assert.Equal(t, "1235", FormatAmount(amount, "", 0))
}

func TestSignHelpers(t *testing.T) {
	assert.True(t, IsNegative(decimal.NewFromInt(-1)))
	assert.False(t, IsNegative(decimal.Zero))
	assert.True(t, IsPositive(decimal.NewFromInt(1)))
	assert.False(t, IsPositive(decimal.Zero))
}
