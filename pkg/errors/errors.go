package errors

import (
	"fmt"
	"net/http"
)

// Common application errors
var (
	ErrNotFound     = NewNotFoundError("resource", "resource not found")
	ErrUnauthorized = NewUnauthorizedError("unauthorized")
	ErrInternal     = NewInternalError("internal server error", nil)
)

// HTTPStatuser is implemented by errors that map to an HTTP status code.
type HTTPStatuser interface {
	HTTPStatus() int
}

// ValidationError represents a validation failure with field-level details.
// It is always detected before any storage call.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// ConflictError represents a uniqueness violation on write
type ConflictError struct {
	Resource string
	Message  string
}

// NewConflictError creates a new conflict error
func NewConflictError(resource, message string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *ConflictError) HTTPStatus() int {
	return http.StatusConflict
}

// DuplicateError represents a repeated ride-join request for the same
// (ride, requester) pair.
type DuplicateError struct {
	Message string
}

// NewDuplicateError creates a new duplicate error
func NewDuplicateError(message string) *DuplicateError {
	return &DuplicateError{Message: message}
}

// Error implements the error interface
func (e *DuplicateError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "already requested"
}

// HTTPStatus returns the HTTP status for this error.
// The reference binding reports duplicates as a bad request.
func (e *DuplicateError) HTTPStatus() int {
	return http.StatusBadRequest
}

// UnauthorizedError represents a credential or token failure
type UnauthorizedError struct {
	Message string
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

// Error implements the error interface
func (e *UnauthorizedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// HTTPStatus returns the HTTP status for this error
func (e *UnauthorizedError) HTTPStatus() int {
	return http.StatusUnauthorized
}

// ForbiddenError represents an authenticated caller acting outside their
// ownership (e.g. removing another passenger's ride request).
type ForbiddenError struct {
	Message string
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

// Error implements the error interface
func (e *ForbiddenError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "forbidden"
}

// HTTPStatus returns the HTTP status for this error
func (e *ForbiddenError) HTTPStatus() int {
	return http.StatusForbidden
}

// NotFoundError represents a lookup miss on a required record
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// InternalError represents a storage or unexpected failure. The wrapped
// cause is logged server-side only and never reaches the caller.
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *InternalError) HTTPStatus() int {
	return http.StatusInternalServerError
}
