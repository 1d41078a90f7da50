package models

import (
	"github.com/shopspring/decimal"
)

// FeeConfig is a named fee rule owned by an account, either a flat amount or a
// percentage of the transaction amount.
type FeeConfig struct {
	Name         string          `json:"name" yaml:"name"`
	Value        decimal.Decimal `json:"value" yaml:"value"`
	IsPercentage bool            `json:"isPercentage" yaml:"is_percentage"`
}

// Account holds money and an ordered list of fee rules
type Account struct {
	ID             string          `json:"id" yaml:"id"`
	Name           string          `json:"name" yaml:"name"`
	InitialBalance decimal.Decimal `json:"initialBalance" yaml:"initial_balance"`
	FeeConfigs     []FeeConfig     `json:"feeConfigs" yaml:"fee_configs"`
}

// FindFeeConfig looks a rule up by exact name
func (a Account) FindFeeConfig(name string) (FeeConfig, bool) {
	return FindFeeConfig(a.FeeConfigs, name)
}

// FindFeeConfig looks a rule up by exact name in configs
func FindFeeConfig(configs []FeeConfig, name string) (FeeConfig, bool) {
	for _, c := range configs {
		if c.Name == name {
			return c, true
		}
	}
	return FeeConfig{}, false
}

// Category is a user or system category
type Category struct {
	Name     string `json:"name" yaml:"name"`
	IconName string `json:"iconName" yaml:"icon_name"`
	Color    string `json:"color" yaml:"color"`
	IsSystem bool   `json:"isSystem" yaml:"is_system"`
}

// DefaultSystemCategories returns the reserved categories every ledger starts with
func DefaultSystemCategories() []Category {
	icons := map[SystemCategory]string{
		CategoryTransactionFee:    "receipt",
		CategoryLoan:              "handshake",
		CategoryBalanceAdjustment: "scale",
		CategoryOthers:            "dots",
	}
	out := make([]Category, 0, len(SystemCategories))
	for _, c := range SystemCategories {
		out = append(out, Category{Name: c.String(), IconName: icons[c], Color: "#9E9E9E", IsSystem: true})
	}
	return out
}

// Budget is a spending limit for one category
type Budget struct {
	Category    string          `json:"category" yaml:"category"`
	LimitAmount decimal.Decimal `json:"limitAmount" yaml:"limit_amount"`
}
