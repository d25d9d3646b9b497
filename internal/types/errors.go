package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode is a typed string for categorizing application errors.
type ErrorCode string

// Error code constants, grouped by how the cycle reacts to them.
// All packages MUST use these constants instead of hardcoded strings.
const (
	// Input errors: one domain's evaluation is skipped, the cycle continues.
	ErrCodeReadingMissingField ErrorCode = "reading_missing_field"
	ErrCodeHistoryUnavailable  ErrorCode = "history_unavailable"

	// Data-source errors: no work is possible without a current observation.
	ErrCodeDataNoRecentReading ErrorCode = "data_no_recent_reading"
	ErrCodeInternalDB          ErrorCode = "internal_database_error"

	// State errors. A corrupt or version-mismatched document is recoverable
	// (the store bootstraps a fresh one); a failed persist is not.
	ErrCodeStateCorrupt     ErrorCode = "state_document_corrupt"
	ErrCodeStateVersion     ErrorCode = "state_version_unsupported"
	ErrCodeStatePersist     ErrorCode = "state_persist_failed"
	ErrCodeLockHeld         ErrorCode = "lock_already_held"
	ErrCodeLockUnavailable  ErrorCode = "lock_unavailable"

	// Dispatch errors: isolated per message, never abort the cycle.
	ErrCodeDispatchFailed   ErrorCode = "dispatch_failed"
	ErrCodeDispatchRejected ErrorCode = "dispatch_rejected_permanent"

	// Fatal errors.
	ErrCodeConfigInvalid      ErrorCode = "config_invalid"
	ErrCodeCycleBudget        ErrorCode = "cycle_budget_exceeded"
	ErrCodeInternalUnexpected ErrorCode = "internal_unexpected_error"
)

// ErrNotFound is the sentinel returned by repositories when a lookup matches
// no row. Callers that treat absence as a normal outcome (nearest-reading
// lookups, summaries over empty windows) test for it with errors.Is.
var ErrNotFound = errors.New("not found")

// CycleFatal reports whether an error of this code must abort the cycle with
// exit code 1. Dispatch and per-reading input errors are survivable; state,
// data-source and config errors are not. Unrecognized codes abort, as the
// safe default.
func (c ErrorCode) CycleFatal() bool {
	s := string(c)
	switch {
	case strings.HasPrefix(s, "reading_"), strings.HasPrefix(s, "history_"):
		return false
	case strings.HasPrefix(s, "dispatch_"):
		return false
	case s == string(ErrCodeStateCorrupt), s == string(ErrCodeStateVersion):
		// The store recovers by bootstrapping; only persist failures abort.
		return false
	default:
		return true
	}
}

// AppError is the standard application error type used throughout the
// watchdog. All domain errors should be expressed as AppError so that the
// engine can classify them consistently and logs carry a stable code.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Err     error          `json:"-"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// CycleFatal reports whether this error must abort the cycle.
func (e *AppError) CycleFatal() bool {
	return e.Code.CycleFatal()
}

// WithDetails returns a copy of the error with the provided details merged
// in, leaving the original untouched.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     e.Err,
		Details: merged,
	}
}

// NewAppError creates a new AppError with the given code, message, and
// optional underlying error. This is the standard constructor for domain
// errors.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf extracts the ErrorCode from an error chain. Errors that never
// passed through NewAppError classify as internal_unexpected_error.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternalUnexpected
}
