package utils

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrValidation               ErrorCode = "VALIDATION"
	ErrInvalidState             ErrorCode = "INVALID_STATE"
	ErrInvalidTransition        ErrorCode = "INVALID_TRANSITION"
	ErrOverReceipt              ErrorCode = "OVER_RECEIPT"
	ErrIncompleteReconciliation ErrorCode = "INCOMPLETE_RECONCILIATION"
	ErrNotFound                 ErrorCode = "NOT_FOUND"
	ErrConstraint               ErrorCode = "CONSTRAINT_VIOLATION"
)

// DomainError is the value-level failure returned by every service
// operation. The gateway maps codes to HTTP statuses; services never
// swallow one and continue.
type DomainError struct {
	Code    ErrorCode
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func NewDomainErrorf(code ErrorCode, format string, args ...interface{}) *DomainError {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the domain error code, or "" for non-domain errors.
func CodeOf(err error) ErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
