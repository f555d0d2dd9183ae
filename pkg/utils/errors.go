package utils

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindValidation         ErrorKind = "VALIDATION_ERROR"
	KindInvalidCredentials ErrorKind = "INVALID_CREDENTIALS"
	KindUnauthenticated    ErrorKind = "UNAUTHENTICATED"
	KindForbidden          ErrorKind = "FORBIDDEN"
	KindConflict           ErrorKind = "CONFLICT"
	KindRateLimited        ErrorKind = "RATE_LIMITED"
	KindInternal           ErrorKind = "INTERNAL"
)

type APIError struct {
	Code    int       `json:"code"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// Is matches on kind so callers can write errors.Is(err, utils.ErrForbidden).
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Extensions is read by the GraphQL executor when formatting errors.
func (e *APIError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.Kind)}
}

// Kind-only targets for errors.Is.
var (
	ErrValidation         = &APIError{Kind: KindValidation}
	ErrInvalidCredentials = &APIError{Kind: KindInvalidCredentials}
	ErrUnauthenticated    = &APIError{Kind: KindUnauthenticated}
	ErrForbidden          = &APIError{Kind: KindForbidden}
	ErrConflict           = &APIError{Kind: KindConflict}
	ErrRateLimited        = &APIError{Kind: KindRateLimited}
	ErrInternal           = &APIError{Kind: KindInternal}
)

func NewValidationError(message string) *APIError {
	return &APIError{
		Code:    3001,
		Kind:    KindValidation,
		Message: message,
	}
}

func NewFieldValidationError(field string, value interface{}) *APIError {
	return &APIError{
		Code:    3002,
		Kind:    KindValidation,
		Message: fmt.Sprintf("invalid value for %s", field),
		Details: fmt.Sprintf("got %v", value),
	}
}

// NewInvalidCredentialsError is deliberately identical for unknown users and
// wrong passwords.
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:    1001,
		Kind:    KindInvalidCredentials,
		Message: "Invalid username or password",
	}
}

func NewUnauthenticatedError() *APIError {
	return &APIError{
		Code:    1002,
		Kind:    KindUnauthenticated,
		Message: "Authentication required",
	}
}

func NewForbiddenError(message string) *APIError {
	return &APIError{
		Code:    1003,
		Kind:    KindForbidden,
		Message: message,
	}
}

func NewConflictError(message string) *APIError {
	return &APIError{
		Code:    4001,
		Kind:    KindConflict,
		Message: message,
	}
}

func NewRateLimitedError() *APIError {
	return &APIError{
		Code:    4291,
		Kind:    KindRateLimited,
		Message: "Too many requests",
	}
}

func NewInternalError(message string) *APIError {
	return &APIError{
		Code:    5001,
		Kind:    KindInternal,
		Message: message,
	}
}

// KindOf classifies any error; anything that is not an *APIError is internal.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindInternal
}

// Public returns the error as it may be shown to a client. Errors that are not
// *APIError are replaced by a generic internal error.
func Public(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewInternalError("Internal server error")
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindInvalidCredentials, KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
