// Package shared provides common domain types used across the catalog domain packages.
package shared

import (
	"errors"
	"fmt"
)

// Error classes. Concrete domain errors match one of these through errors.Is.
var (
	// ErrValidation is matched by every ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("entity not found")

	// ErrRuleViolation is matched by every RuleViolationError.
	ErrRuleViolation = errors.New("business rule violated")
)

// ValidationKind classifies a broken value object invariant.
type ValidationKind string

// Validation kinds.
const (
	KindEmptyValue     ValidationKind = "empty-value"
	KindLengthExceeded ValidationKind = "length-exceeded"
	KindNegativeValue  ValidationKind = "negative-value"
	KindNotFinite      ValidationKind = "not-finite"
)

// ValidationError is returned when a value object or entity invariant is violated.
type ValidationError struct {
	Field   string
	Kind    ValidationKind
	Message string
}

// NewValidationError creates a ValidationError.
func NewValidationError(field string, kind ValidationKind, message string) *ValidationError {
	return &ValidationError{Field: field, Kind: kind, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is reports whether target is the ErrValidation class.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError is returned when an operation targets an absent entity.
type NotFoundError struct {
	Resource string
}

// NewNotFoundError creates a NotFoundError for the given resource name.
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is reports whether target is the ErrNotFound class.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// RuleViolationError is returned by use cases when a domain policy rejects an operation.
// Domain services never return it; they answer policy questions with booleans.
type RuleViolationError struct {
	Rule    string
	Message string
}

// NewRuleViolationError creates a RuleViolationError.
func NewRuleViolationError(rule, message string) *RuleViolationError {
	return &RuleViolationError{Rule: rule, Message: message}
}

func (e *RuleViolationError) Error() string {
	return e.Message
}

// Is reports whether target is the ErrRuleViolation class.
func (e *RuleViolationError) Is(target error) bool {
	return target == ErrRuleViolation
}

// ValidationDetails extracts the field-level detail of a validation error, if any.
func ValidationDetails(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
