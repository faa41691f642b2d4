package domain

import "fmt"

// ValidationError reports malformed or out-of-range input. It is raised
// before any computation runs; a request that fails validation is never
// partially computed.
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

// NewValidationError builds a ValidationError for a named input field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ComputationError reports an internal arithmetic inconsistency. It should
// be unreachable for validated input; when triggered it is fatal for that
// request only and is always surfaced to the caller.
type ComputationError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *ComputationError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *ComputationError) Unwrap() error {
	return e.Cause
}
