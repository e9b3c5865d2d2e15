package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an AppError independently of its HTTP status.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindNotFound          ErrorKind = "not_found"
	KindRemoteOperation   ErrorKind = "remote_operation"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindConflict          ErrorKind = "conflict"
	KindData              ErrorKind = "data"
)

// AppError represents an application error
type AppError struct {
	Code    int       `json:"code"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, kind ErrorKind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// ValidationError creates a 422 error for input rejected before any remote call
func ValidationError(message string, err error) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, KindValidation, message, err)
}

// BadRequestError creates a 400 Bad Request error
func BadRequestError(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, KindValidation, message, err)
}

// NotFoundError creates a 404 Not Found error
func NotFoundError(message string, err error) *AppError {
	return NewAppError(http.StatusNotFound, KindNotFound, message, err)
}

// ConflictError creates a 409 Conflict error
func ConflictError(message string, err error) *AppError {
	return NewAppError(http.StatusConflict, KindConflict, message, err)
}

// InvalidTransitionError creates a 409 error for an illegal order status change
func InvalidTransitionError(message string, err error) *AppError {
	return NewAppError(http.StatusConflict, KindInvalidTransition, message, err)
}

// RemoteOperationError creates a 503 error for a failed store call
func RemoteOperationError(message string, err error) *AppError {
	return NewAppError(http.StatusServiceUnavailable, KindRemoteOperation, message, err)
}

// DataError creates a 500 error for persisted data that violates an invariant
func DataError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, KindData, message, err)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetAppError returns the AppError if the error is or wraps an AppError
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func hasKind(err error, kind ErrorKind) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Kind == kind
	}
	return false
}

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool { return hasKind(err, KindNotFound) }

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool { return hasKind(err, KindValidation) }

// IsRemoteOperationError checks if an error came from a failed store call
func IsRemoteOperationError(err error) bool { return hasKind(err, KindRemoteOperation) }

// IsInvalidTransitionError checks if an error is an illegal status change
func IsInvalidTransitionError(err error) bool { return hasKind(err, KindInvalidTransition) }

// IsConflictError checks if an error is a conflict error
func IsConflictError(err error) bool { return hasKind(err, KindConflict) }

// IsDataError checks if an error reports corrupt persisted data
func IsDataError(err error) bool { return hasKind(err, KindData) }
