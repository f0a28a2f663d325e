// Package errors provides error classification for the triage pipeline.
package errors

import (
	"errors"
	"strings"
)

// ============================================================
// Error Categories
// ============================================================

// Category defines the type of error for handling decisions.
type Category int

const (
	// CategoryTemporary errors are retryable (throttling, timeouts, transient
	// service failures)
	CategoryTemporary Category = iota

	// CategoryPermanent errors are not retryable (invalid input, not found)
	CategoryPermanent

	// CategoryUser errors are due to caller or model input (validation)
	CategoryUser

	// CategoryAccess errors are permission denials; they abort the current
	// model tier without consuming retries
	CategoryAccess
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryTemporary:
		return "temporary"
	case CategoryPermanent:
		return "permanent"
	case CategoryUser:
		return "user"
	case CategoryAccess:
		return "access"
	default:
		return "unknown"
	}
}

// ============================================================
// AppError - Main Error Type
// ============================================================

// AppError is the main error type across the pipeline.
type AppError struct {
	// Code is a unique error code for programmatic handling
	Code string

	// Message is a human-readable error message
	Message string

	// Category determines how the error should be handled
	Category Category

	// Inner is the underlying error
	Inner error

	// Retryable indicates if the operation can be retried
	Retryable bool
}

// Error returns the error message.
func (e *AppError) Error() string {
	var sb strings.Builder

	if e.Code != "" {
		sb.WriteString("[")
		sb.WriteString(e.Code)
		sb.WriteString("] ")
	}

	sb.WriteString(e.Message)

	if e.Inner != nil {
		innerMsg := e.Inner.Error()
		if innerMsg != "" && innerMsg != e.Message {
			sb.WriteString(": ")
			sb.WriteString(innerMsg)
		}
	}

	return sb.String()
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Inner
}

// Is checks if the target error is contained in this error.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Inner, target)
}

// ============================================================
// Error Constructors
// ============================================================

// New creates a new AppError.
func New(code, message string, category Category) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Category:  category,
		Retryable: category == CategoryTemporary,
	}
}

// Wrap wraps an existing error with context.
func Wrap(err error, code, message string, category Category) *AppError {
	if err == nil {
		return nil
	}

	return &AppError{
		Code:      code,
		Message:   message,
		Category:  category,
		Inner:     err,
		Retryable: category == CategoryTemporary,
	}
}

// Temporary creates a retryable temporary error.
func Temporary(code, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Category:  CategoryTemporary,
		Retryable: true,
	}
}

// Permanent creates a non-retryable permanent error.
func Permanent(code, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Category: CategoryPermanent,
	}
}

// User creates a caller input error.
func User(code, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Category: CategoryUser,
	}
}

// AccessDenied creates a permission error. Access denials are never retried;
// the invoker escalates to the next tier immediately.
func AccessDenied(code, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Category: CategoryAccess,
	}
}

// ============================================================
// Error Codes
// ============================================================

const (
	// Model invocation errors
	CodeModelThrottled     = "MODEL_THROTTLED"
	CodeModelTimeout       = "MODEL_TIMEOUT"
	CodeModelUnavailable   = "MODEL_UNAVAILABLE"
	CodeModelAccessDenied  = "MODEL_ACCESS_DENIED"
	CodeModelParseError    = "MODEL_PARSE_ERROR"
	CodeModelEmptyResponse = "MODEL_EMPTY_RESPONSE"

	// Tool errors
	CodeToolNotFound        = "TOOL_NOT_FOUND"
	CodeToolExecutionFailed = "TOOL_EXECUTION_FAILED"
	CodeToolInvalidParams   = "TOOL_INVALID_PARAMS"

	// Store errors
	CodeStoreWriteFailed = "STORE_WRITE_FAILED"

	// Config errors
	CodeConfigInvalid = "CONFIG_INVALID"

	// Validation errors
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidInput     = "INVALID_INPUT"
)

// ============================================================
// Helpers
// ============================================================

// GetCategory extracts the category from an error.
// Returns CategoryTemporary for non-AppError errors.
func GetCategory(err error) Category {
	if err == nil {
		return CategoryTemporary
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Category
	}

	// Default to temporary for unknown errors (safe default)
	return CategoryTemporary
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Retryable
	}

	// Default to retryable for unknown errors
	return true
}

// IsAccessDenied checks if an error is a permission denial.
func IsAccessDenied(err error) bool {
	return GetCategory(err) == CategoryAccess
}
