// Package errors provides custom error types for the reconciliation system.
// These errors enable programmatic error checking across the core engine,
// the job store, and the HTTP layer.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the reconciliation system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyProcessed indicates that a job has already left the
	// PROCESSING state and must not be run again
	ErrAlreadyProcessed = errors.New("already processed")

	// ErrMalformedInput indicates that raw input could not be parsed
	// as tabular data at all
	ErrMalformedInput = errors.New("malformed tabular input")

	// ErrSchema indicates that a dataset failed schema validation
	ErrSchema = errors.New("schema validation failed")
)

// SchemaError reports a dataset that is missing a required column, or
// otherwise fails structural validation, after header normalization.
type SchemaError struct {
	Dataset string // "source" or "target"
	Column  string
	Message string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("schema error in %s dataset: required column %q is missing", e.Dataset, e.Column)
	}
	return fmt.Sprintf("schema error in %s dataset: %s", e.Dataset, e.Message)
}

// Is implements errors.Is support
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema || target == ErrInvalidInput
}

// NewSchemaError creates a SchemaError for a missing required column.
func NewSchemaError(dataset, column string) *SchemaError {
	return &SchemaError{Dataset: dataset, Column: column}
}

// NewSchemaViolation creates a SchemaError for a structural violation
// other than a missing column (e.g. duplicate keys).
func NewSchemaViolation(dataset, message string) *SchemaError {
	return &SchemaError{Dataset: dataset, Message: message}
}

// ParseError reports raw input that is not well-formed delimited text.
type ParseError struct {
	Dataset string // "source" or "target"
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s dataset at line %d: %s", e.Dataset, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s dataset: %s", e.Dataset, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedInput || target == ErrInvalidInput
}

// NewParseError creates a new ParseError
func NewParseError(dataset string, line int, message string, err error) *ParseError {
	return &ParseError{Dataset: dataset, Line: line, Message: message, Err: err}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// StoreError represents an error from the job record store
type StoreError struct {
	Operation string // "create", "get", "update", "delete"
	TaskID    string
	Err       error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	if e.TaskID != "" {
		return fmt.Sprintf("store error during %s of job %s: %v", e.Operation, e.TaskID, e.Err)
	}
	return fmt.Sprintf("store error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError
func NewStoreError(operation, taskID string, err error) *StoreError {
	return &StoreError{Operation: operation, TaskID: taskID, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsSchemaError checks if an error is a schema validation error
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrSchema)
}

// IsParseError checks if an error is a malformed input error
func IsParseError(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsAlreadyProcessed checks if an error indicates a terminal job state
func IsAlreadyProcessed(err error) bool {
	return errors.Is(err, ErrAlreadyProcessed)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapStore wraps an error as a StoreError
func WrapStore(operation, taskID string, err error) error {
	if err == nil {
		return nil
	}
	return NewStoreError(operation, taskID, err)
}
