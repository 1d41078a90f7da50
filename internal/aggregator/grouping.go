package aggregator

import (
	"fmt"
	"sort"
	"strings"

	"fjacquet/ledger/internal/models"

	"github.com/shopspring/decimal"
)

// GroupBy selects how spending is bucketed
type GroupBy string

const (
	GroupByCategory GroupBy = "CATEGORY"
	GroupByAccount  GroupBy = "ACCOUNT"
)

// ParseGroupBy parses a grouping mode case-insensitively
func ParseGroupBy(s string) (GroupBy, error) {
	switch g := GroupBy(strings.ToUpper(strings.TrimSpace(s))); g {
	case GroupByCategory, GroupByAccount:
		return g, nil
	default:
		return "", fmt.Errorf("unknown grouping %q, expected category or account", s)
	}
}

// Bucket is the spending total of one category or account
type Bucket struct {
	Key   string          `json:"key" csv:"key"`
	Total decimal.Decimal `json:"total" csv:"total"`
}

// Group buckets txs according to mode
func Group(txs []models.Transaction, mode GroupBy) ([]Bucket, error) {
	switch mode {
	case GroupByCategory:
		return ByCategory(txs), nil
	case GroupByAccount:
		return ByAccount(txs), nil
	default:
		return nil, fmt.Errorf("unknown grouping %q", mode)
	}
}

// ByCategory sums EXPENSE amounts per category. The fees of every transaction, whatever
// its type, go to the TransactionFee bucket, which also receives expenses categorised
// TransactionFee. Buckets are sorted by total descending, then by key.
func ByCategory(txs []models.Transaction) []Bucket {
	totals := newAccumulator()
	feeKey := models.CategoryTransactionFee.String()

	for _, tx := range txs {
		if tx.IsExpense() {
			totals.add(tx.Category, tx.Amount)
		}
		if tx.FeeAmount.IsPositive() {
			totals.add(feeKey, tx.FeeAmount)
		}
	}

	return totals.buckets()
}

// ByAccount sums, per source account, the EXPENSE amounts plus the fees of every
// transaction on that account. Transactions whose account was deleted share the
// models.DeletedAccountKey bucket. Accounts without spending get no bucket.
func ByAccount(txs []models.Transaction) []Bucket {
	totals := newAccumulator()

	for _, tx := range txs {
		key := tx.AccountKey()
		if tx.IsExpense() {
			totals.add(key, tx.Amount)
		}
		if tx.FeeAmount.IsPositive() {
			totals.add(key, tx.FeeAmount)
		}
	}

	return totals.buckets()
}

// SumBuckets adds up bucket totals
func SumBuckets(buckets []Bucket) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range buckets {
		sum = sum.Add(b.Total)
	}
	return sum
}

// FindBucket returns the bucket with key, if any
func FindBucket(buckets []Bucket, key string) (Bucket, bool) {
	for _, b := range buckets {
		if b.Key == key {
			return b, true
		}
	}
	return Bucket{}, false
}

type accumulator struct {
	totals map[string]decimal.Decimal
}

func newAccumulator() *accumulator {
	return &accumulator{totals: make(map[string]decimal.Decimal)}
}

func (a *accumulator) add(key string, amount decimal.Decimal) {
	current, ok := a.totals[key]
	if !ok {
		current = decimal.Zero
	}
	a.totals[key] = current.Add(amount)
}

func (a *accumulator) buckets() []Bucket {
	buckets := make([]Bucket, 0, len(a.totals))
	for key, total := range a.totals {
		buckets = append(buckets, Bucket{Key: key, Total: total})
	}
	sortBuckets(buckets)
	return buckets
}

// sortBuckets orders by total descending; equal totals fall back to the key so output is
// stable across runs.
func sortBuckets(buckets []Bucket) {
	sort.Slice(buckets, func(i, j int) bool {
		if c := buckets[i].Total.Cmp(buckets[j].Total); c != 0 {
			return c > 0
		}
		return buckets[i].Key < buckets[j].Key
	})
}
