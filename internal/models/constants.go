package models

import "strings"

// SystemCategory enumerates the reserved categories the engine treats specially.
// Only the storage and display boundaries deal with their string names.
type SystemCategory int

const (
	// CategoryNone marks a user category, i.e. not a reserved one
	CategoryNone SystemCategory = iota
	CategoryTransactionFee
	CategoryLoan
	CategoryBalanceAdjustment
	CategoryOthers
)

var systemCategoryNames = map[SystemCategory]string{
	CategoryTransactionFee:    "TransactionFee",
	CategoryLoan:              "Loan",
	CategoryBalanceAdjustment: "BalanceAdjustment",
	CategoryOthers:            "Others",
}

// SystemCategories lists every reserved category in a stable order
var SystemCategories = []SystemCategory{
	CategoryTransactionFee,
	CategoryLoan,
	CategoryBalanceAdjustment,
	CategoryOthers,
}

// String returns the stored name of the category, or "" for CategoryNone
func (c SystemCategory) String() string {
	return systemCategoryNames[c]
}

// ParseSystemCategory maps a stored category name onto the enumeration.
// Matching is exact: "loan" is a user category, "Loan" is reserved.
func ParseSystemCategory(name string) (SystemCategory, bool) {
	for c, n := range systemCategoryNames {
		if n == name {
			return c, true
		}
	}
	return CategoryNone, false
}

// IsSystemCategory reports whether name is one of the reserved category names
func IsSystemCategory(name string) bool {
	_, ok := ParseSystemCategory(name)
	return ok
}

// ExemptFromBudget reports whether budgets never apply to this category
func (c SystemCategory) ExemptFromBudget() bool {
	switch c {
	case CategoryLoan, CategoryTransactionFee, CategoryBalanceAdjustment:
		return true
	default:
		return false
	}
}

// Fee selection vocabulary stored in Transaction.FeeConfigName
const (
	FeeNone   = "None"
	FeeCustom = "Custom"
)

// NormalizeFeeSelection maps a stored fee selection onto the vocabulary:
// nil, blank and "None" become FeeNone, "Custom" becomes FeeCustom, everything else is a
// rule name and is returned trimmed. The reserved words are case-sensitive so that a rule
// named "custom" or "none" stays selectable.
func NormalizeFeeSelection(name *string) string {
	if name == nil {
		return FeeNone
	}
	trimmed := strings.TrimSpace(*name)
	switch {
	case trimmed == "", trimmed == FeeNone:
		return FeeNone
	case trimmed == FeeCustom:
		return FeeCustom
	default:
		return trimmed
	}
}

// DeletedAccountKey is the bucket key used for transactions whose account was deleted
const DeletedAccountKey = "(deleted account)"

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
