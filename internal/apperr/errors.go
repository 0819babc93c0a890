// Package apperr defines the error kinds surfaced by the guide core.
// Callers match them with errors.As.
package apperr

import "fmt"

// ValidationError reports caller input that was rejected without any
// state change (empty chat text, out-of-range answer index, ...).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError reports a failed read or write against the metadata
// store. In-memory state is retained when this is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// BackendError reports a failure of the remote chat backend.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	if e.Err == nil {
		return "chat backend failed"
	}
	return fmt.Sprintf("chat backend failed: %v", e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// ConfigurationError reports a feature that cannot run with the current
// configuration, e.g. a quiz with no questions.
type ConfigurationError struct {
	Feature string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s unavailable: %s", e.Feature, e.Reason)
}
