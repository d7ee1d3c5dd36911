package shared

import (
	"errors"
	"fmt"
)

// Error codes used across the ledger domain
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeImbalancedEntry = "IMBALANCED_ENTRY"
	CodeNotFound        = "NOT_FOUND"
	CodeStore           = "STORE_ERROR"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same error code, so that
// errors.Is(err, shared.ErrNotFound) matches errors with a custom message.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrValidation      = NewDomainError(CodeValidation, "Invalid input provided")
	ErrImbalancedEntry = NewDomainError(CodeImbalancedEntry, "Debit total does not equal credit total")
	ErrNotFound        = NewDomainError(CodeNotFound, "Resource not found")
)

// NewValidationError reports a missing or malformed input field
func NewValidationError(format string, args ...any) *DomainError {
	return NewDomainError(CodeValidation, fmt.Sprintf(format, args...))
}

// NewNotFoundError reports an unresolved journal, account, organization or record
func NewNotFoundError(format string, args ...any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf(format, args...))
}

// StoreError wraps a failure of the persistence collaborator.
// The core does not distinguish transient from permanent failures.
type StoreError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying store error
func (e *StoreError) Unwrap() error {
	return e.Err
}

// WrapStoreError wraps err as a StoreError unless it is already a domain error
// (for example a not-found translated by the repository) or nil.
func WrapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsStoreError reports whether err is (or wraps) a StoreError
func IsStoreError(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}

// NewImbalancedEntryError reports an entry whose debits and credits differ
func NewImbalancedEntryError(format string, args ...any) *DomainError {
	return NewDomainError(CodeImbalancedEntry, fmt.Sprintf(format, args...))
}
