// Package fee resolves the fee attached to a transaction from its fee selection and the
// account's fee rules, and expands a transaction into display line items.
package fee

import (
	"errors"

	"fjacquet/ledger/internal/currencyutils"
	"fjacquet/ledger/internal/ledgererror"
	"fjacquet/ledger/internal/models"

	"github.com/shopspring/decimal"
)

// Calculator computes fee amounts. Precision is the number of fractional digits computed
// fees are rounded to.
type Calculator struct {
	Precision int32
}

// NewCalculator returns a Calculator rounding to precision digits
func NewCalculator(precision int32) *Calculator {
	return &Calculator{Precision: precision}
}

// DefaultCalculator rounds to cents
func DefaultCalculator() *Calculator {
	return NewCalculator(currencyutils.DefaultPrecision)
}

// Resolve returns the fee for amount under selection.
//
// "None" (or an empty selection) yields zero, "Custom" returns customAmount unchanged, and
// any other value is looked up by exact name in configs: a percentage rule yields
// amount*value/100 and a flat rule yields its value. A name that matches no rule is a
// *ledgererror.RuleNotFoundError.
func (c *Calculator) Resolve(selection string, amount, customAmount decimal.Decimal, configs []models.FeeConfig) (decimal.Decimal, error) {
	switch name := models.NormalizeFeeSelection(&selection); name {
	case models.FeeNone:
		return decimal.Zero, nil
	case models.FeeCustom:
		return customAmount, nil
	default:
		rule, ok := models.FindFeeConfig(configs, name)
		if !ok {
			return decimal.Zero, &ledgererror.RuleNotFoundError{Rule: name}
		}
		return c.Apply(rule, amount), nil
	}
}

// ResolveForAccount is Resolve against the rules of account. The returned
// RuleNotFoundError names the account.
func (c *Calculator) ResolveForAccount(selection string, amount, customAmount decimal.Decimal, account models.Account) (decimal.Decimal, error) {
	fee, err := c.Resolve(selection, amount, customAmount, account.FeeConfigs)
	if err != nil {
		var rnf *ledgererror.RuleNotFoundError
		if errors.As(err, &rnf) {
			rnf.AccountID = account.ID
		}
		return decimal.Zero, err
	}
	return fee, nil
}

// Apply computes the fee a single rule charges on amount
func (c *Calculator) Apply(rule models.FeeConfig, amount decimal.Decimal) decimal.Decimal {
	if rule.IsPercentage {
		return currencyutils.RoundHalfUp(currencyutils.Percent(amount, rule.Value), c.Precision)
	}
	return currencyutils.RoundHalfUp(rule.Value, c.Precision)
}
