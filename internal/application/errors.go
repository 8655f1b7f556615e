package application

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/example/event-registry/internal/persistence"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("application: not found")

// NotFoundError identifies which entity kind and id could not be resolved.
type NotFoundError struct {
	Kind EntityKind
	ID   string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// Unwrap allows errors.Is(err, ErrNotFound) checks.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// StoreError wraps a failed store round trip. Store failures are never
// retried; they propagate to the caller on first occurrence.
type StoreError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying store failure.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// ValidationError captures field level validation issues. Every failing
// field is recorded so callers can redisplay all problems at once.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error. The first message per field
// wins, matching how the original form redisplay reported errors.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	if _, ok := v.FieldErrors[field]; !ok {
		v.FieldErrors[field] = message
	}
}

// mapRepoError converts repository failures into application error kinds.
func mapRepoError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	return &StoreError{Op: op, Err: err}
}

// notFoundAs converts a repository not-found into a kind-qualified error.
func notFoundAs(kind EntityKind, id string, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return &StoreError{Op: op, Err: err}
}
