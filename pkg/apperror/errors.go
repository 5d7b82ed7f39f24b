package apperror

import (
	"errors"
	"net/http"
)

// Kind is the coarse error category surfaced to callers.
type Kind string

const (
	KindUnauthenticated  Kind = "unauthenticated"
	KindPermissionDenied Kind = "permission-denied"
	KindInvalidArgument  Kind = "invalid-argument"
	KindNotFound         Kind = "not-found"
	KindInternal         Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is reports kind equality so errors.Is works against the sentinels below.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// Common errors
var (
	ErrUnauthenticated    = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthenticated, Message: "Authentication required"}
	ErrPermissionDenied   = &AppError{Code: http.StatusForbidden, Kind: KindPermissionDenied, Message: "You do not have permission to access this data"}
	ErrInvalidArgument    = &AppError{Code: http.StatusBadRequest, Kind: KindInvalidArgument, Message: "Invalid argument"}
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrInternal           = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthenticated, Message: "Invalid email or password"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthenticated, Message: "Invalid token"}
)

// NewAppError creates a new application error
func NewAppError(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// NewInvalidArgumentError creates an invalid-argument error with a custom message
func NewInvalidArgumentError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, KindInvalidArgument, message)
}

// NewPermissionDeniedError creates a permission-denied error with a custom message
func NewPermissionDeniedError(message string) *AppError {
	return NewAppError(http.StatusForbidden, KindPermissionDenied, message)
}

// NewInternalError creates an internal error. The message is shown to the
// caller as-is, so it must never carry query text or driver payloads.
func NewInternalError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, KindInternal, message)
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidArgument,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// GetAppError converts an error to AppError if possible. Foreign errors
// collapse to a generic internal error so their text never reaches a caller.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal
}
