// Package apperr holds the error kinds shared by the client layers.
package apperr

import (
	"errors"
	"fmt"
)

// Kinds. Concrete errors unwrap to one of these, match them with errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrNetwork            = errors.New("network error")
	ErrServer             = errors.New("server error")
)

// ValidationError is a local field check that failed before any request was sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// APIError is a failed answer from the backend.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func NewAPIError(status int, message string, kind error) *APIError {
	return &APIError{Status: status, Message: message, kind: kind}
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v (status %d)", e.kind, e.Status)
	}
	return fmt.Sprintf("%v (status %d): %s", e.kind, e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// Kind reports which of the package kinds err belongs to, or nil.
func Kind(err error) error {
	for _, k := range []error{
		ErrValidation, ErrInvalidCredentials, ErrUnauthorized,
		ErrConflict, ErrNotFound, ErrNetwork, ErrServer,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
