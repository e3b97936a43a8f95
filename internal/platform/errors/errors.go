// Package errors provides structured error handling with HTTP status code mapping.
//
// Every error surfaced by a handler flows through this package's middleware,
// which serializes only the Type and Message. The Cause chain is log-only and
// never reaches a network caller.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the category of error for metrics and response formatting.
type ErrorType string

const (
	// TypeMissingCredential indicates a request without any API key (HTTP 401)
	TypeMissingCredential ErrorType = "missing_credential"
	// TypeInvalidCredential indicates a request with a wrong API key (HTTP 401)
	TypeInvalidCredential ErrorType = "invalid_credential"
	// TypeConfigUnavailable indicates the secret store could not be loaded (HTTP 500)
	TypeConfigUnavailable ErrorType = "configuration_unavailable"
	// TypeMisconfigured indicates the server has no API key configured (HTTP 500)
	TypeMisconfigured ErrorType = "server_misconfigured"
	// TypeValidation indicates invalid input (HTTP 400)
	TypeValidation ErrorType = "validation"
	// TypeNotFound indicates resource not found (HTTP 404)
	TypeNotFound ErrorType = "not_found"
	// TypeInternal indicates server-side error (HTTP 500)
	TypeInternal ErrorType = "internal"
)

// Error represents a structured error with type, message, and context.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for this error type.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeMissingCredential, TypeInvalidCredential:
		return http.StatusUnauthorized
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConfigUnavailable, TypeMisconfigured, TypeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// MissingCredentialError creates an error for requests lacking any API key (HTTP 401).
func MissingCredentialError() *Error {
	return &Error{
		Type:    TypeMissingCredential,
		Message: "missing API key",
	}
}

// InvalidCredentialError creates an error for requests with a wrong API key (HTTP 401).
// The message is deliberately generic: no hint about the expected value.
func InvalidCredentialError() *Error {
	return &Error{
		Type:    TypeInvalidCredential,
		Message: "invalid API key",
	}
}

// ConfigUnavailableError creates an error for failed secret loading (HTTP 500).
// The cause stays log-only.
func ConfigUnavailableError(cause error) *Error {
	return &Error{
		Type:    TypeConfigUnavailable,
		Message: "configuration unavailable",
		Cause:   cause,
	}
}

// MisconfiguredError creates an error for a server missing its own API key (HTTP 500).
func MisconfiguredError(message string) *Error {
	return &Error{
		Type:    TypeMisconfigured,
		Message: message,
	}
}

// ValidationError creates a new validation error (HTTP 400).
func ValidationError(message string) *Error {
	return &Error{
		Type:    TypeValidation,
		Message: message,
	}
}

// NotFoundError creates a new not-found error (HTTP 404).
func NotFoundError(message string) *Error {
	return &Error{
		Type:    TypeNotFound,
		Message: message,
	}
}

// InternalError creates a new internal error (HTTP 500).
func InternalError(message string, cause error) *Error {
	return &Error{
		Type:    TypeInternal,
		Message: message,
		Cause:   cause,
	}
}

// WithContext adds a context field to the error (chainable).
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// ErrorResponse represents the JSON structure sent to clients.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Type    ErrorType      `json:"type"`
	Context map[string]any `json:"context,omitempty"`
}

// ToResponse converts an Error to an ErrorResponse for JSON serialization.
// The Cause is intentionally absent.
func (e *Error) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Type:    e.Type,
		Context: e.Context,
	}
}

// AsStructuredError converts any error into a structured Error.
// If err is already an *Error, returns it unchanged.
// Otherwise wraps it as an internal error with a generic message.
func AsStructuredError(err error) *Error {
	if err == nil {
		return nil
	}

	var structuredErr *Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}

	return InternalError("internal server error", err)
}
