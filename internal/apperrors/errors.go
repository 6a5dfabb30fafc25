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

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not allowed")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Ledger-specific failures surfaced to collaborators. Callers wrap these with
// the offending entity id, entry id or amounts so a user-facing message can be
// rendered.
var (
	// ErrInvalidAccountCode indicates an account code whose leading digit does
	// not match the declared account type.
	ErrInvalidAccountCode = errors.New("account code does not match account type")

	// ErrUnbalanced indicates a journal entry whose debit and credit totals
	// differ, or whose total is zero.
	ErrUnbalanced = errors.New("journal entry debits and credits do not balance")

	// ErrPeriodLocked indicates an entry dated on or before the entity's
	// locked-through date.
	ErrPeriodLocked = errors.New("entry date falls within a locked period")

	// ErrSelfApproval indicates the approver is the same identity that created
	// the entry.
	ErrSelfApproval = errors.New("entries cannot be approved by their creator")

	// ErrNotPending indicates an approval decision on an entry that is no
	// longer pending. Also returned when a concurrent approver won the race.
	ErrNotPending = errors.New("journal entry is not pending approval")

	// ErrImmutable indicates an attempt to modify or delete a posted entry.
	ErrImmutable = errors.New("posted journal entries are immutable")

	// ErrCloseBlocked indicates a period close attempted while a gating
	// condition (unreconciled bank activity, unposted documents) holds.
	ErrCloseBlocked = errors.New("period close blocked by open items")

	// ErrSplitMismatch indicates split parts that do not sum to the original
	// bank transaction amount.
	ErrSplitMismatch = errors.New("split amounts do not sum to the original transaction amount")
)

// AppError wraps an underlying error with a status code and a message suitable
// for logging. Repositories use it to annotate storage failures without losing
// the cause.
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

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
