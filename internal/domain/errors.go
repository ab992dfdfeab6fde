// Package domain contains the dedication entities, ordering and song metadata
// rules, and the business-level errors they produce.
// Errors here are transport-agnostic and get mapped to HTTP by adapters.
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested dedication does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a submission failed field checks.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable indicates the storage backing or a metadata source is unreachable.
	ErrUnavailable = errors.New("unavailable")
)

// NotFoundError provides context for not found errors.
// Ref is either a list position or a dedication ID.
type NotFoundError struct {
	Entity string
	Ref    string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s %q not found", e.Entity, e.Ref)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, ref string) error {
	return &NotFoundError{Entity: entity, Ref: ref}
}

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error for one field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// FieldErrors maps a field name (JSON name) to the user-facing message for it.
// A submission produces one FieldErrors value holding every failed field.
type FieldErrors map[string]string

// Error implements the error interface. Fields are listed in name order.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e FieldErrors) Unwrap() error {
	return ErrValidation
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
