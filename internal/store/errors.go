// Package store provides the shared database handle and the error
// taxonomy used by every data-access package.
package store

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports input rejected before any store call was made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError reports a single-row fetch that matched zero rows.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: not found: %s", e.Entity, e.ID)
}

// ConflictError reports a write that lost to a concurrent writer
// (stale version token) or violated a uniqueness rule.
type ConflictError struct {
	Entity string
	ID     string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: conflict on %s: %s", e.Entity, e.ID, e.Reason)
}

// StoreError reports a transport, auth, or store-side fault. It is never
// swallowed below the HTTP layer.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

// ConfigurationError reports connection parameters absent at startup.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "store: missing configuration: " + strings.Join(e.Missing, ", ")
}

// Invalid builds a ValidationError with a formatted message.
func Invalid(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFound builds a NotFoundError for the given entity and id.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// Conflict builds a ConflictError.
func Conflict(entity, id, reason string) error {
	return &ConflictError{Entity: entity, ID: id, Reason: reason}
}

// Wrap builds a StoreError around a store-reported fault.
func Wrap(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

// IsStore reports whether err is a StoreError.
func IsStore(err error) bool {
	var e *StoreError
	return errors.As(err, &e)
}

// IsConfiguration reports whether err is (or wraps) a ConfigurationError.
func IsConfiguration(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}
