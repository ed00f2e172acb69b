package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates an operation was attempted from a status that
// does not allow it (e.g. approving a non-pending accrual).
var ErrInvalidState = errors.New("operation not allowed in current state")

// ErrOverAmount indicates a reversal or settlement exceeds the outstanding balance.
var ErrOverAmount = errors.New("amount exceeds outstanding balance")

// ErrInvalidAccount indicates a debit/credit account code is unknown or not postable.
var ErrInvalidAccount = errors.New("invalid or non-postable account")

// ErrConcurrencyConflict indicates the accrual was modified by another
// transaction between read and write. Safe to retry after re-reading state.
var ErrConcurrencyConflict = errors.New("concurrent modification detected")

// ErrPostingImbalance indicates a journal entry's debits do not equal its
// credits. This should be unreachable; it aborts the transaction and is
// never silently corrected.
var ErrPostingImbalance = errors.New("journal entry debits do not equal credits")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with an application-level code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
