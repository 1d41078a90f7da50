// Package ledgererror defines the typed errors surfaced by the ledger engine and its stores.
package ledgererror

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against the typed errors below
var (
	ErrMalformedDate = errors.New("malformed date")
	ErrRuleNotFound  = errors.New("fee rule not found")
	ErrInvalidPeriod = errors.New("invalid period configuration")
)

// MalformedDateError reports a transaction whose date cannot be parsed.
// The filter skips such rows and counts them; it is never fatal.
type MalformedDateError struct {
	TransactionID string
	Value         string
	Err           error
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("transaction %s: malformed date '%s': %v", e.TransactionID, e.Value, e.Err)
}

func (e *MalformedDateError) Unwrap() error {
	return e.Err
}

func (e *MalformedDateError) Is(target error) bool {
	return target == ErrMalformedDate
}

// RuleNotFoundError is returned when a fee selection names a rule the account no longer has
type RuleNotFoundError struct {
	Rule      string
	AccountID string
}

func (e *RuleNotFoundError) Error() string {
	if e.AccountID != "" {
		return fmt.Sprintf("fee rule '%s' not found on account %s", e.Rule, e.AccountID)
	}
	return fmt.Sprintf("fee rule '%s' not found", e.Rule)
}

func (e *RuleNotFoundError) Is(target error) bool {
	return target == ErrRuleNotFound
}

// InvalidPeriodError reports a period request that cannot be resolved as asked
type InvalidPeriodError struct {
	Granularity string
	Reason      string
}

func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("invalid %s period: %s", e.Granularity, e.Reason)
}

func (e *InvalidPeriodError) Is(target error) bool {
	return target == ErrInvalidPeriod
}

// StoreError wraps a failure to load one source of the record store
type StoreError struct {
	Source string
	Path   string
	Err    error
}

func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("store: failed to load %s from '%s': %v", e.Source, e.Path, e.Err)
	}
	return fmt.Sprintf("store: failed to load %s: %v", e.Source, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
