package apperrors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the application error type shared by repositories and services.
type AppError struct {
	Code    ErrorCode   `json:"code"`
	Domain  string      `json:"domain"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds a fresh AppError.
func New(code ErrorCode, domain, message string) *AppError {
	return &AppError{
		Code:    code,
		Domain:  domain,
		Message: message,
	}
}

// Wrap attaches an underlying error to an AppError.
func Wrap(err error, code ErrorCode, domain, message string) *AppError {
	return &AppError{
		Code:    code,
		Domain:  domain,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err carries the given application error code.
func IsCode(err error, code ErrorCode) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// ---- Common factories ----

// InternalError wraps an unexpected system error.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal error")
}

// StorageUnavailable wraps a failed backing-store write. Callers are
// expected to keep operating on the in-memory state and surface a warning.
func StorageUnavailable(err error, key string) *AppError {
	return Wrap(err, CodeStorageUnavailable, "storage", "Backing store write failed").
		WithDetails(map[string]string{"key": key})
}

// ValidationError builds a validation failure with field details.
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", "Validation failed").WithDetails(details)
}

// ErrNotFound converts a missing-record condition into an AppError.
func ErrNotFound(domain, message string) *AppError {
	return New(CodeNotFound, domain, message)
}

// ErrAlreadyExists reports a uniqueness conflict.
func ErrAlreadyExists(domain, message string) *AppError {
	return New(CodeAlreadyExists, domain, message)
}

// ErrInvalidOperation reports an operation not allowed in the current state.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message)
}

// ErrInvalidStatus reports an unknown or disallowed status value.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message)
}

// ErrInvalidCredentials is returned by failed login attempts.
var ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid credentials")
